package stakk

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/mfridman/xflag"
)

// Parse parses args against the command grammar rooted at root, typically os.Args[1:].
//
// It returns a nil [*State] and a nil error when args select no subcommand. Help requests are
// reported as a [*HelpError], which matches [flag.ErrHelp]; everything wrong with the input
// itself is a [*UsageError].
func Parse(root *Command, args []string) (*State, error) {
	if root == nil {
		return nil, errors.New("failed to parse: root command is nil")
	}

	// First split args at the -- delimiter if present
	var argsToParse []string
	var remainingArgs []string
	for i, arg := range args {
		if arg == "--" {
			argsToParse = args[:i]
			remainingArgs = args[i+1:]
			break
		}
	}
	if argsToParse == nil {
		argsToParse = args
	}

	// First pass: find the subcommand and capture help requests before any flag parsing errors
	current := root
	subIdx := -1
	var stray []string
	for i, arg := range argsToParse {
		if isHelpToken(arg) {
			return nil, &HelpError{Command: current}
		}
		if current != root {
			continue
		}
		if strings.HasPrefix(arg, "-") {
			stray = append(stray, arg)
			continue
		}
		sub := root.findSubCommand(arg)
		if sub == nil {
			return nil, &UsageError{Command: root, Err: root.formatUnknownCommandError(arg)}
		}
		current = sub
		subIdx = i
	}
	if len(stray) > 0 {
		return nil, &UsageError{Command: root, Err: unrecognized(stray)}
	}
	if current == root {
		if len(remainingArgs) > 0 {
			return nil, &UsageError{Command: root, Err: unrecognized(remainingArgs)}
		}
		return nil, nil
	}
	return parseCommand(current, argsToParse[subIdx+1:], remainingArgs)
}

func parseCommand(cmd *Command, args, remainingArgs []string) (*State, error) {
	fset := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	fset.Usage = func() {}

	var flagValues []*argValue
	for _, a := range cmd.Arguments {
		if !a.Optional || a.Help {
			continue
		}
		v := &argValue{arg: a, value: a.Default}
		flagValues = append(flagValues, v)
		fset.Var(v, a.Name, a.Usage)
		if a.Short != "" {
			fset.Var(v, a.Short, a.Usage)
		}
	}

	// Negative numbers are hidden from the flag set so they stay positional.
	args, negatives := maskNegativeNumbers(cmd, fset, args)

	// Let ParseToEnd handle flags interleaved with positional arguments
	if err := xflag.ParseToEnd(fset, args); err != nil {
		for _, v := range flagValues {
			if v.err != nil {
				return nil, &UsageError{
					Command: cmd,
					Err:     fmt.Errorf("argument %s: %w", strings.Join(v.arg.flagNames(), "/"), v.err),
				}
			}
		}
		return nil, &UsageError{Command: cmd, Err: err}
	}

	state := &State{
		Command: cmd,
		values:  make(map[string]any, len(cmd.Arguments)),
	}
	for _, v := range flagValues {
		state.values[v.arg.Name] = v.value
	}

	parsed := fset.Args()
	for i, tok := range parsed {
		if orig, ok := negatives[tok]; ok {
			parsed[i] = orig
		}
	}
	tokens := slices.Concat(parsed, remainingArgs)
	positionals := cmd.positionals()
	if len(positionals) == 1 && positionals[0].Variadic {
		state.Rest = tokens
		return state, nil
	}
	if len(tokens) < len(positionals) {
		var missing []string
		for _, a := range positionals[len(tokens):] {
			missing = append(missing, a.Name)
		}
		return nil, &UsageError{
			Command: cmd,
			Err:     fmt.Errorf("the following arguments are required: %s", strings.Join(missing, ", ")),
		}
	}
	if len(tokens) > len(positionals) {
		return nil, &UsageError{Command: cmd, Err: unrecognized(tokens[len(positionals):])}
	}
	for i, a := range positionals {
		v, err := convert(a, tokens[i])
		if err != nil {
			return nil, &UsageError{Command: cmd, Err: fmt.Errorf("argument %s: %w", a.Name, err)}
		}
		state.values[a.Name] = v
	}
	return state, nil
}

func convert(a *Argument, raw string) (any, error) {
	if a.Type == nil {
		return raw, nil
	}
	return a.Type.Convert(raw)
}

var negativeNumber = regexp.MustCompile(`^-\d+$|^-\d*\.\d+$`)

// maskNegativeNumbers replaces tokens such as -1 or -2.5 with placeholders the flag set treats as
// positional arguments, and returns the original tokens keyed by placeholder. A token that is
// the value of the preceding flag is left alone. Nothing is masked when the command has a flag
// that itself looks like a negative number.
func maskNegativeNumbers(cmd *Command, fset *flag.FlagSet, args []string) ([]string, map[string]string) {
	for _, a := range cmd.Arguments {
		if a.Optional && (numberLike(a.Name) || numberLike(a.Short)) {
			return args, nil
		}
	}
	var negatives map[string]string
	masked := make([]string, len(args))
	takesValue := false
	for i, arg := range args {
		if !takesValue && negativeNumber.MatchString(arg) {
			if negatives == nil {
				negatives = make(map[string]string)
			}
			placeholder := fmt.Sprintf("\x00%d", i)
			negatives[placeholder] = arg
			masked[i] = placeholder
			continue
		}
		masked[i] = arg
		takesValue = !takesValue && expectsValue(fset, arg)
	}
	return masked, negatives
}

func numberLike(name string) bool {
	return name != "" && negativeNumber.MatchString("-"+name)
}

// expectsValue reports whether arg is a non-boolean flag whose value is the next token.
func expectsValue(fset *flag.FlagSet, arg string) bool {
	if len(arg) < 2 || arg[0] != '-' || strings.Contains(arg, "=") {
		return false
	}
	f := fset.Lookup(strings.TrimPrefix(arg[1:], "-"))
	if f == nil {
		return false
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return false
	}
	return true
}

func isHelpToken(arg string) bool {
	return arg == "-h" || arg == "--h" || arg == "-help" || arg == "--help"
}

func unrecognized(args []string) error {
	return fmt.Errorf("unrecognized arguments: %s", strings.Join(args, " "))
}

// argValue adapts an optional [Argument] to [flag.Value].
type argValue struct {
	arg   *Argument
	value any
	err   error
}

var _ flag.Getter = (*argValue)(nil)

func (v *argValue) String() string {
	if v == nil || v.arg == nil {
		return ""
	}
	return fmt.Sprint(v.value)
}

func (v *argValue) Set(s string) error {
	x, err := convert(v.arg, s)
	if err != nil {
		v.err = err
		return err
	}
	v.value = x
	return nil
}

func (v *argValue) Get() any { return v.value }

func (v *argValue) IsBoolFlag() bool {
	return isBoolType(v.arg.Type)
}
