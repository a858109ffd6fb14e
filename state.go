package stakk

import (
	"fmt"
)

// State is the result of parsing arguments against a command grammar. Use [Get] to retrieve
// converted argument values by name.
type State struct {
	// Command is the selected subcommand.
	Command *Command

	// Rest contains the raw tokens of a variadic command.
	Rest []string

	values map[string]any
}

// Get retrieves the converted value of the named argument. Omitted optional arguments hold
// their default. Example usage:
//
//	count := Get[int](state, "count")
//	mode := Get[string](state, "mode")
//
// If the argument isn't found, or has a different type, it panics with a detailed error message.
// Either case is a mismatch between the registered parameters and the caller, not bad input.
func Get[T any](s *State, name string) T {
	v, ok := s.values[name]
	if !ok {
		panic(fmt.Sprintf("internal error: argument not found: %q in command %q", name, s.Command.Name))
	}
	if v == nil {
		return *new(T)
	}
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("internal error: type mismatch for argument %q: registered %T, requested %T", name, v, *new(T)))
	}
	return t
}

// Lookup returns the converted value of the named argument and whether it exists.
func (s *State) Lookup(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}
