// Package stakk registers ordinary functions under named stacks and turns each stack into a
// command-line interface with one subcommand per function.
//
// A function is described explicitly with [Func] or [Async] and a list of parameters built with
// [Arg] and [Opt]. Registration computes a [Descriptor] from that description; [Compile] turns
// the descriptors of one stack into a command grammar, and a [CLI] parses arguments against it,
// converts them and calls back into the original function:
//
//	reg := stakk.NewRegistry()
//	reg.Register("math")(stakk.Func("add", add,
//	    stakk.Arg("x", stakk.Int),
//	    stakk.Opt("y", stakk.Int, 1),
//	))
//	if _, err := reg.CLI(ctx, "math", nil); err != nil {
//	    log.Fatal(err)
//	}
//
// Required parameters become positional arguments, parameters with a default become flags with
// a long and an automatically derived short form. A successful dispatch prints the function's
// result and exits the process; when no subcommand is given the host program keeps running.
package stakk
