package stakk

import (
	"flag"
	"fmt"
)

// SchemaError is returned by [Compile] when a registered function cannot be turned into a
// command, for example a choice set mixing value types. It is a programming error and is
// reported before any arguments are parsed.
type SchemaError struct {
	Function string
	// Param is empty when the error concerns the function as a whole.
	Param string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("function %q: %v", e.Function, e.Err)
	}
	return fmt.Sprintf("function %q: parameter %q: %v", e.Function, e.Param, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// UsageError reports invalid user input: an unknown command or flag, a missing or surplus
// positional argument, or a value that fails conversion.
type UsageError struct {
	// Command is the command being parsed when the error occurred.
	Command *Command
	Err     error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error { return e.Err }

// InvalidChoiceError is returned when a token matches none of a choice set's values.
type InvalidChoiceError struct {
	Value   string
	Choices []any
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("invalid choice: %q (choose from %s)", e.Value, joinValues(e.Choices, ", "))
}

// ConversionError is returned when a token cannot be converted to a parameter's type.
type ConversionError struct {
	Type  string
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("invalid %s value: %q", e.Type, e.Value)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// HelpError is returned by [Parse] when help was requested. It matches [flag.ErrHelp].
type HelpError struct {
	Command *Command
}

func (e *HelpError) Error() string {
	return fmt.Sprintf("command %q: %v", e.Command.Name, flag.ErrHelp)
}

func (e *HelpError) Is(target error) bool {
	return target == flag.ErrHelp
}
