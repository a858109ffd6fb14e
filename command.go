package stakk

import (
	"fmt"
	"strings"

	"github.com/mfridman/stakk/pkg/suggest"
)

// Command is a node of a compiled command grammar. The root command holds one subcommand per
// registered function; each subcommand dispatches to its [Descriptor].
type Command struct {
	// Name is a single word identifying the command.
	Name string

	// ShortHelp is a one-line summary shown in the parent's command listing.
	ShortHelp string

	// Description is shown at the top of the command's own help text.
	Description string

	// Arguments lists the command's arguments in the order they are shown in help. Positional
	// arguments are consumed in this order.
	Arguments []*Argument

	// SubCommands lists the commands nested under this command.
	SubCommands []*Command

	// Descriptor is the function this command dispatches to. Nil for the root command.
	Descriptor *Descriptor

	parent *Command
}

// Path returns the command's full name, starting with the program name.
func (c *Command) Path() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.Path() + " " + c.Name
}

// Argument describes one argument of a command.
type Argument struct {
	// Name is the parameter name. For optional arguments it is also the long flag name.
	Name string
	// Short is the short flag name of an optional argument. Empty when no short form could be
	// assigned.
	Short string

	// Type converts raw tokens. Nil passes them through as strings.
	Type Type
	// Choices lists the allowed values of a choice-typed argument.
	Choices []any
	// Default is the value used when an optional argument is not given.
	Default any

	// Optional arguments are given as flags. All others are positional and required.
	Optional bool
	// Variadic marks the rest argument of a variadic function. It takes zero or more raw
	// tokens.
	Variadic bool
	// Help marks the help flag.
	Help bool

	// Metavar is the placeholder shown for the argument's value in help text.
	Metavar string
	// Usage is the argument's help text.
	Usage string
}

// flagNames returns the argument's flag spellings, short form first.
func (a *Argument) flagNames() []string {
	if a.Short == "" {
		return []string{"--" + a.Name}
	}
	return []string{"-" + a.Short, "--" + a.Name}
}

// positionals returns the command's positional arguments in order.
func (c *Command) positionals() []*Argument {
	var out []*Argument
	for _, a := range c.Arguments {
		if !a.Optional {
			out = append(out, a)
		}
	}
	return out
}

// findSubCommand searches for a subcommand by name and returns it if found. Returns nil if no
// subcommand with the given name exists.
func (c *Command) findSubCommand(name string) *Command {
	for _, sub := range c.SubCommands {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

func (c *Command) formatUnknownCommandError(unknownCmd string) error {
	var known []string
	for _, sub := range c.SubCommands {
		known = append(known, sub.Name)
	}
	suggestions := suggest.FindSimilar(unknownCmd, known, 3)
	if len(suggestions) > 0 {
		return fmt.Errorf("unknown command %q. Did you mean one of these?\n\t%s",
			unknownCmd,
			strings.Join(suggestions, "\n\t"))
	}
	return fmt.Errorf("unknown command %q", unknownCmd)
}
