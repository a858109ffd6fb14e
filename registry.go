package stakk

import (
	"maps"
	"slices"
)

// Names of the two synthetic parameters of a variadic function.
const (
	ArgsName   = "*args"
	KwargsName = "**kwargs"
)

// ReturnKey is the [Descriptor.Annotations] key holding the return annotation.
const ReturnKey = "return"

// Kind tells the dispatcher how to call a function.
type Kind int

const (
	KindSync Kind = iota
	KindAsync
)

func (k Kind) String() string {
	switch k {
	case KindSync:
		return "sync"
	case KindAsync:
		return "async"
	default:
		return "unknown"
	}
}

// Descriptor is the signature metadata computed for a registered function. It is not modified
// after [Describe] returns it.
type Descriptor struct {
	Name  string
	Group string
	// Description is the function's documentation text, possibly empty.
	Description string

	// Func is the function called on dispatch.
	Func *Function

	// ParamNames lists parameter names in declaration order. For variadic functions it is
	// exactly [ArgsName, KwargsName].
	ParamNames []string
	// Annotations maps parameter names, and [ReturnKey], to their types. Unannotated
	// parameters are absent. Empty for variadic functions.
	Annotations map[string]Type
	// Defaults maps parameter names to default values. Parameters without an entry are
	// required.
	Defaults map[string]any

	Variadic bool
	Kind     Kind
}

// Describe computes the descriptor of fn as a member of group. Wrapping adapters are resolved
// to the innermost function first.
func Describe(group string, fn *Function) *Descriptor {
	fn = fn.Unwrap()
	d := &Descriptor{
		Name:        fn.Name,
		Group:       group,
		Description: fn.Doc,
		Func:        fn,
		ParamNames:  make([]string, 0, len(fn.Params)),
		Annotations: make(map[string]Type),
		Defaults:    make(map[string]any),
		Variadic:    fn.Variadic,
	}
	if fn.Async != nil {
		d.Kind = KindAsync
	}
	for _, p := range fn.Params {
		d.ParamNames = append(d.ParamNames, p.Name)
		if p.Type != nil {
			d.Annotations[p.Name] = p.Type
		}
		if p.HasDefault {
			d.Defaults[p.Name] = p.Default
		}
	}
	if fn.Returns != nil {
		d.Annotations[ReturnKey] = fn.Returns
	}
	if d.Variadic {
		// Per-argument typing is not supported for variadic calls.
		d.ParamNames = []string{ArgsName, KwargsName}
		d.Annotations = make(map[string]Type)
	}
	return d
}

// Registry holds the descriptors of registered functions, grouped by stack name.
//
// A Registry is meant to be populated during program setup and is not safe for concurrent
// registration.
type Registry struct {
	stacks map[string]map[string]*Descriptor
	order  map[string][]string
	groups map[string]struct{}
	cli    *CLI
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Reset removes all registered functions and groups.
func (r *Registry) Reset() {
	r.stacks = make(map[string]map[string]*Descriptor)
	r.order = make(map[string][]string)
	r.groups = make(map[string]struct{})
	r.cli = nil
}

// Register returns a function that registers its argument under group and returns the argument
// unchanged. Example usage:
//
//	var add = reg.Register("math")(stakk.Func("add", addImpl, stakk.Arg("x", stakk.Int)))
func (r *Registry) Register(group string) func(*Function) *Function {
	return func(fn *Function) *Function {
		r.Add(group, fn)
		return fn
	}
}

// Add registers fn under group and returns its descriptor. A function with the same name
// already registered in group is replaced and keeps its position.
func (r *Registry) Add(group string, fn *Function) *Descriptor {
	d := Describe(group, fn)
	r.groups[group] = struct{}{}
	stack, ok := r.stacks[group]
	if !ok {
		stack = make(map[string]*Descriptor)
		r.stacks[group] = stack
	}
	if _, exists := stack[d.Name]; !exists {
		r.order[group] = append(r.order[group], d.Name)
	}
	stack[d.Name] = d
	return d
}

// Stack returns the descriptors registered under group, keyed by function name. Unknown groups
// yield an empty map.
func (r *Registry) Stack(group string) map[string]*Descriptor {
	out := make(map[string]*Descriptor, len(r.stacks[group]))
	maps.Copy(out, r.stacks[group])
	return out
}

// Descriptors returns the descriptors registered under group in registration order.
func (r *Registry) Descriptors(group string) []*Descriptor {
	names := r.order[group]
	out := make([]*Descriptor, 0, len(names))
	for _, name := range names {
		out = append(out, r.stacks[group][name])
	}
	return out
}

// Groups returns the names of all groups that have been registered to, sorted.
func (r *Registry) Groups() []string {
	return slices.Sorted(maps.Keys(r.groups))
}

// LastCLI returns the handle most recently built by [Registry.CLI], or nil.
func (r *Registry) LastCLI() *CLI {
	return r.cli
}
