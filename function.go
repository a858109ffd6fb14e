package stakk

import (
	"context"
	"fmt"
)

// CallFunc is a synchronous call target. It receives the converted command-line arguments and
// returns a result to print, or an error.
type CallFunc func(args Args) (any, error)

// AsyncFunc is an asynchronous call target. The dispatcher runs it on a dedicated execution
// context and blocks until it returns.
type AsyncFunc func(ctx context.Context, args Args) (any, error)

// Function describes a function that can be registered on a stack. Go does not expose parameter
// names or default values at runtime, so the signature is spelled out with [Param] values.
//
// Use [Func] or [Async] to construct one.
type Function struct {
	// Name identifies the function within a stack and becomes its subcommand name.
	Name string

	// Doc is the function's documentation text. When set it is used as the command's help text.
	Doc string

	// Params lists the parameters in declaration order.
	Params []Param

	// Variadic marks a function that accepts any number of positional values and key=value
	// keyword values. Params are not used to build the command of a variadic function.
	Variadic bool

	// Returns is the return annotation. It is only used for help text.
	Returns Type

	// Call is the synchronous target. Exactly one of Call and Async should be set.
	Call CallFunc
	// Async is the asynchronous target.
	Async AsyncFunc

	// Wrapped points at the function this one wraps, if any. Registration always resolves to
	// the innermost function of the chain.
	Wrapped *Function
}

// Func returns a synchronous [Function].
func Func(name string, call CallFunc, params ...Param) *Function {
	return &Function{Name: name, Params: params, Call: call}
}

// Async returns an asynchronous [Function].
func Async(name string, call AsyncFunc, params ...Param) *Function {
	return &Function{Name: name, Params: params, Async: call}
}

// WithDoc sets the documentation text and returns f.
func (f *Function) WithDoc(doc string) *Function {
	f.Doc = doc
	return f
}

// WithReturns sets the return annotation and returns f.
func (f *Function) WithReturns(t Type) *Function {
	f.Returns = t
	return f
}

// AsVariadic marks f as variadic and returns f.
func (f *Function) AsVariadic() *Function {
	f.Variadic = true
	return f
}

// Unwrap returns the innermost function of the wrap chain.
func (f *Function) Unwrap() *Function {
	for f != nil && f.Wrapped != nil {
		f = f.Wrapped
	}
	return f
}

// Wrap returns a synchronous adapter around inner. The adapter copies inner's metadata, calls
// through call, and keeps a back-reference so that registering the adapter registers inner.
func Wrap(inner *Function, call CallFunc) *Function {
	w := *inner
	w.Call = call
	w.Async = nil
	w.Wrapped = inner
	return &w
}

// Param describes one parameter of a [Function].
type Param struct {
	Name string
	// Type converts raw command-line strings. A nil Type passes the raw string through.
	Type Type
	// Default is the parameter's default value. Only meaningful when HasDefault is true.
	Default    any
	HasDefault bool
}

// Arg returns a required parameter.
func Arg(name string, typ Type) Param {
	return Param{Name: name, Type: typ}
}

// Opt returns a parameter with a default value.
func Opt(name string, typ Type, def any) Param {
	return Param{Name: name, Type: typ, Default: def, HasDefault: true}
}

// Args holds the arguments of a single call.
type Args struct {
	// Positional holds the positional values. For regular functions there is one value per
	// declared parameter, in declaration order, already converted. For variadic functions these
	// are the raw string tokens.
	Positional []any

	// Keywords holds key=value tokens of a variadic call.
	Keywords map[string]string
}

// Len returns the number of positional arguments.
func (a Args) Len() int {
	return len(a.Positional)
}

// ArgAt returns the positional argument at index i as type T. Example usage:
//
//	x := stakk.ArgAt[int](args, 0)
//	tags := stakk.ArgAt[[]string](args, 1)
//
// It panics if i is out of range or the value has a different type. Both indicate a mismatch
// between the registered parameters and the function body.
func ArgAt[T any](a Args, i int) T {
	if i < 0 || i >= len(a.Positional) {
		panic(fmt.Sprintf("internal error: argument index %d out of range [0,%d)", i, len(a.Positional)))
	}
	if a.Positional[i] == nil {
		return *new(T)
	}
	v, ok := a.Positional[i].(T)
	if !ok {
		panic(fmt.Sprintf("internal error: type mismatch for argument %d: got %T, requested %T", i, a.Positional[i], *new(T)))
	}
	return v
}
