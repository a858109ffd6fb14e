package stakk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
)

// Options configures a [CLI]. A nil *Options, and any zero field, uses the defaults.
type Options struct {
	// Description is shown at the top of the program's help text.
	Description string

	// Program is the program name used in help text. Defaults to [ProgramName] of os.Args[0].
	Program string

	// Args are the arguments parsed by [Registry.CLI]. Defaults to os.Args[1:].
	Args []string

	// Stdout receives results and help text, Stderr receives usage errors. Default to
	// [os.Stdout] and [os.Stderr].
	Stdout, Stderr io.Writer

	// Exit terminates the process after a command has run or a usage error was reported.
	// Defaults to [os.Exit].
	Exit func(code int)

	// Logger receives debug output at V(1). Defaults to a logger that discards everything.
	Logger logr.Logger
}

func checkAndSetOptions(opt *Options) *Options {
	if opt == nil {
		opt = &Options{}
	}
	if opt.Program == "" {
		opt.Program = ProgramName(os.Args[0])
	}
	if opt.Args == nil {
		opt.Args = os.Args[1:]
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Exit == nil {
		opt.Exit = os.Exit
	}
	return opt
}

// CLI is a compiled command-line interface for one stack of functions.
type CLI struct {
	// Group is the stack the CLI was built for.
	Group string
	// Root is the compiled command grammar.
	Root *Command

	opts *Options
	log  logr.Logger
}

// New compiles a CLI for group from descs. Descriptor problems are reported as a
// [*SchemaError] before anything is parsed.
func New(group string, descs []*Descriptor, opts *Options) (*CLI, error) {
	opts = checkAndSetOptions(opts)
	root, err := Compile(opts.Program, opts.Description, descs)
	if err != nil {
		return nil, err
	}
	log := opts.Logger.WithName("stakk").WithValues("group", group)
	for _, sub := range root.SubCommands {
		log.V(1).Info("compiled command", "command", sub.Name, "arguments", len(sub.Arguments))
	}
	return &CLI{Group: group, Root: root, opts: opts, log: log}, nil
}

// CLI builds the command-line interface for group, runs it against the configured arguments and
// returns it. See [CLI.Execute] for how the arguments are handled.
//
// Build errors are returned before anything is parsed. Errors returned by the dispatched
// function are returned unmodified.
func (r *Registry) CLI(ctx context.Context, group string, opts *Options) (*CLI, error) {
	c, err := New(group, r.Descriptors(group), opts)
	if err != nil {
		return nil, err
	}
	r.cli = c
	return c, c.Execute(ctx, c.opts.Args)
}

// Parse parses args against the CLI's grammar. See [Parse].
func (c *CLI) Parse(args []string) (*State, error) {
	return Parse(c.Root, args)
}

// Execute parses args and runs the selected command.
//
//   - No subcommand: nothing happens and nil is returned, so the host program continues.
//   - Help requested: help is written to Stdout and the process exits with status 0.
//   - Invalid input: the usage line and the error are written to Stderr and the process exits
//     with status 2.
//   - Otherwise the command's function is called, a non-empty result is printed to Stdout and
//     the process exits with status 0. If the function fails its error is returned and the
//     process is not exited.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	state, err := c.Parse(args)
	if err != nil {
		if helpErr := (*HelpError)(nil); errors.As(err, &helpErr) {
			fmt.Fprintln(c.opts.Stdout, DefaultUsage(helpErr.Command))
			c.opts.Exit(0)
			return nil
		}
		if usageErr := (*UsageError)(nil); errors.As(err, &usageErr) {
			c.reportUsageError(usageErr)
			c.opts.Exit(2)
		}
		return err
	}
	if state == nil {
		return nil
	}
	result, err := c.Dispatch(ctx, state)
	if err != nil {
		return err
	}
	if !isEmpty(result) {
		fmt.Fprintln(c.opts.Stdout, result)
	}
	c.opts.Exit(0)
	return nil
}

func (c *CLI) reportUsageError(err *UsageError) {
	cmd := err.Command
	if cmd == nil {
		cmd = c.Root
	}
	fmt.Fprintf(c.opts.Stderr, "usage: %s\n", UsageLine(cmd))
	fmt.Fprintf(c.opts.Stderr, "%s %s: %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), cmd.Path(), err.Err)
}

// Dispatch calls the function of the command selected in state and returns its result.
//
// Asynchronous functions run in their own errgroup with a fresh context that is cancelled as
// soon as the function returns; Dispatch blocks until then. Synchronous functions run on the
// calling goroutine.
func (c *CLI) Dispatch(ctx context.Context, state *State) (any, error) {
	if state == nil || state.Command == nil || state.Command.Descriptor == nil {
		return nil, errors.New("failed to dispatch: no command selected")
	}
	d := state.Command.Descriptor
	args := callArgs(d, state)
	c.log.V(1).Info("dispatching", "command", d.Name, "kind", d.Kind, "args", args.Len())

	if d.Kind == KindSync {
		return d.Func.Call(args)
	}
	var (
		result   any
		panicked any
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// A panic in the target is re-raised on the calling goroutine, as it would be for a
		// synchronous function.
		defer func() {
			if r := recover(); r != nil {
				panicked = r
			}
		}()
		var err error
		result, err = d.Func.Async(gctx, args)
		return err
	})
	err := g.Wait()
	if panicked != nil {
		panic(panicked)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// callArgs assembles the call arguments for d from a parse result.
func callArgs(d *Descriptor, state *State) Args {
	if d.Variadic {
		args := Args{Positional: []any{}, Keywords: map[string]string{}}
		for _, tok := range state.Rest {
			if k, v, ok := strings.Cut(tok, "="); ok {
				args.Keywords[k] = v
				continue
			}
			args.Positional = append(args.Positional, tok)
		}
		return args
	}
	args := Args{Positional: make([]any, 0, len(d.ParamNames))}
	for _, name := range d.ParamNames {
		v, _ := state.Lookup(name)
		args.Positional = append(args.Positional, v)
	}
	return args
}

// isEmpty reports whether a result is not worth printing: nil, a zero value, or an empty
// string, slice or map.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return rv.IsZero()
}

// ProgramName derives a program name from the invocation path argv0: the file name without its
// extension or, when that names a package entry point ("main" or "__main__"), the name of the
// containing directory.
func ProgramName(argv0 string) string {
	dir, file := filepath.Split(argv0)
	name := strings.TrimSuffix(file, filepath.Ext(file))
	if name == "main" || name == "__main__" {
		if base := filepath.Base(filepath.Clean(dir)); base != "." && base != string(filepath.Separator) {
			return base
		}
	}
	if name == "" {
		return "stakk"
	}
	return name
}
