package stakk

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	helpName  = "help"
	helpShort = "h"

	helpUsage     = "Show this help message and exit."
	variadicUsage = "*args: any number of values; **kwargs: key=value pairs passed by keyword"
)

// Compile builds the command grammar for descs: a root command named program, described by
// description, with one subcommand per descriptor in the given order.
//
// A [*SchemaError] is returned for a descriptor that cannot be turned into a command, such as a
// choice set whose values do not share one type.
func Compile(program, description string, descs []*Descriptor) (*Command, error) {
	if program == "" {
		return nil, errors.New("program name is empty")
	}
	root := &Command{
		Name:        program,
		Description: description,
		Arguments:   []*Argument{helpArgument()},
	}
	for _, d := range descs {
		if root.findSubCommand(d.Name) != nil {
			return nil, &SchemaError{Function: d.Name, Err: errors.New("registered more than once")}
		}
		sub, err := compileCommand(d)
		if err != nil {
			return nil, err
		}
		sub.parent = root
		root.SubCommands = append(root.SubCommands, sub)
	}
	return root, nil
}

func compileCommand(d *Descriptor) (*Command, error) {
	if err := validateName(d.Name); err != nil {
		return nil, &SchemaError{Function: d.Name, Err: err}
	}
	if d.Func == nil || (d.Func.Call == nil && d.Func.Async == nil) {
		return nil, &SchemaError{Function: d.Name, Err: errors.New("no call target")}
	}

	signature := signatureLine(d)
	cmd := &Command{
		Name:        d.Name,
		ShortHelp:   signature,
		Description: signature,
		Descriptor:  d,
	}
	if doc := strings.TrimSpace(d.Description); doc != "" {
		cmd.ShortHelp = firstLine(doc)
		cmd.Description = signature + "\n\n" + doc
	}

	if d.Variadic {
		cmd.Arguments = []*Argument{{
			Name:     ArgsName,
			Variadic: true,
			Metavar:  "args",
			Usage:    variadicUsage,
		}, helpArgument()}
		return cmd, nil
	}

	// Long flag names and the help flag are claimed before any short flag is assigned; the flag
	// package does not distinguish -x from --x.
	claimed := map[string]bool{helpName: true, helpShort: true}
	seen := make(map[string]bool, len(d.ParamNames))
	for _, name := range d.ParamNames {
		if err := validateName(name); err != nil {
			return nil, &SchemaError{Function: d.Name, Param: name, Err: err}
		}
		if seen[name] {
			return nil, &SchemaError{Function: d.Name, Param: name, Err: errors.New("declared more than once")}
		}
		seen[name] = true
		if _, ok := d.Defaults[name]; !ok {
			continue
		}
		if claimed[name] {
			return nil, &SchemaError{Function: d.Name, Param: name, Err: errors.New("conflicts with the help flag")}
		}
		claimed[name] = true
	}

	for _, name := range d.ParamNames {
		arg, err := compileArgument(d, name)
		if err != nil {
			return nil, err
		}
		if arg.Optional {
			arg.Short = assignShort(name, claimed)
		}
		cmd.Arguments = append(cmd.Arguments, arg)
	}
	cmd.Arguments = append(cmd.Arguments, helpArgument())
	return cmd, nil
}

func compileArgument(d *Descriptor, name string) (*Argument, error) {
	typ := d.Annotations[name]
	arg := &Argument{Name: name, Type: typ}
	var choices string
	if c, ok := typ.(*ChoiceType); ok {
		if err := c.validate(); err != nil {
			return nil, &SchemaError{Function: d.Name, Param: name, Err: err}
		}
		arg.Choices = c.Values()
		choices = "choices: (" + joinValues(arg.Choices, ", ") + ")"
	}

	def, ok := d.Defaults[name]
	if !ok {
		arg.Metavar = name
		var help []string
		if typ != nil && arg.Choices == nil {
			help = append(help, typ.String())
		}
		if choices != "" {
			help = append(help, choices)
		}
		arg.Usage = strings.Join(help, ", ")
		return arg, nil
	}

	arg.Optional = true
	arg.Default = def
	switch {
	case isBoolType(typ):
	case typ == nil:
		arg.Metavar = "value"
	default:
		arg.Metavar = typ.String()
	}
	arg.Usage = "default: " + fmt.Sprint(def)
	if choices != "" {
		arg.Usage += ", " + choices
	}
	return arg, nil
}

// assignShort picks a short flag for name: its first two characters, or its last character when
// those are taken. It returns "" when both are taken.
func assignShort(name string, claimed map[string]bool) string {
	r := []rune(name)
	short := string(r[:min(2, len(r))])
	if claimed[short] {
		short = string(r[len(r)-1])
	}
	if claimed[short] {
		return ""
	}
	claimed[short] = true
	return short
}

func helpArgument() *Argument {
	return &Argument{
		Name:     helpName,
		Short:    helpShort,
		Type:     Bool,
		Optional: true,
		Help:     true,
		Usage:    helpUsage,
	}
}

// signatureLine renders a descriptor as name(param[: type][ = default], ...) [-> type].
func signatureLine(d *Descriptor) string {
	params := make([]string, 0, len(d.ParamNames))
	for _, name := range d.ParamNames {
		p := name
		if t, ok := d.Annotations[name]; ok {
			p += ": " + t.String()
		}
		if def, ok := d.Defaults[name]; ok {
			p += " = " + formatDefault(def)
		}
		params = append(params, p)
	}
	line := fmt.Sprintf("%s(%s)", d.Name, strings.Join(params, ", "))
	if t, ok := d.Annotations[ReturnKey]; ok {
		line += " -> " + t.String()
	}
	return line
}

func formatDefault(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

func validateName(name string) error {
	switch {
	case name == "":
		return errors.New("name is empty")
	case strings.ContainsFunc(name, unicode.IsSpace):
		return fmt.Errorf("name %q contains spaces", name)
	case strings.HasPrefix(name, "-") || strings.Contains(name, "="):
		return fmt.Errorf("name %q must not start with '-' or contain '='", name)
	}
	return nil
}
