package stakk

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Type converts a raw command-line token into a typed value. It plays the role of a parameter's
// type annotation.
type Type interface {
	// String returns the type's display name used in help text.
	String() string
	// Convert converts a raw token.
	Convert(raw string) (any, error)
}

// Built-in types.
var (
	String   Type = TypeFunc("str", func(s string) (any, error) { return s, nil })
	Int      Type = TypeFunc("int", func(s string) (any, error) { return strconv.Atoi(s) })
	Float    Type = TypeFunc("float", func(s string) (any, error) { return strconv.ParseFloat(s, 64) })
	Bool     Type = TypeFunc("bool", func(s string) (any, error) { return strconv.ParseBool(s) })
	Duration Type = TypeFunc("duration", func(s string) (any, error) { return time.ParseDuration(s) })

	// List splits a token into a []string on any of ';', ',', '|' or whitespace. It never fails;
	// an empty token yields a single empty element.
	List Type = &listType{}
)

// TypeFunc returns a [Type] with the given display name that converts tokens with fn. Errors
// returned by fn are reported as a [ConversionError].
func TypeFunc(name string, fn func(string) (any, error)) Type {
	return &funcType{name: name, fn: fn}
}

type funcType struct {
	name string
	fn   func(string) (any, error)
}

func (t *funcType) String() string { return t.name }

func (t *funcType) Convert(raw string) (any, error) {
	v, err := t.fn(raw)
	if err != nil {
		return nil, &ConversionError{Type: t.name, Value: raw, Err: err}
	}
	return v, nil
}

type listType struct{}

func (*listType) String() string { return "list" }

func (*listType) Convert(raw string) (any, error) {
	return splitList(raw), nil
}

func splitList(s string) []string {
	out := []string{}
	start := 0
	for i, r := range s {
		if r == ';' || r == ',' || r == '|' || unicode.IsSpace(r) {
			out = append(out, s[start:i])
			start = i + len(string(r))
		}
	}
	return append(out, s[start:])
}

// ChoiceType is a finite, ordered set of literal values that all share one Go type. A token
// converts to the literal it matches, keeping the literal's type.
type ChoiceType struct {
	values []any
}

// Choice returns a [ChoiceType] over values. Mixing value types is reported by [Compile].
func Choice(values ...any) *ChoiceType {
	return &ChoiceType{values: values}
}

// Values returns a copy of the literal values in declaration order.
func (c *ChoiceType) Values() []any {
	return append([]any(nil), c.values...)
}

func (c *ChoiceType) String() string {
	return "{" + joinValues(c.values, ",") + "}"
}

// Convert returns the literal equal to raw, or whose string form equals raw. Numeric and bool
// literals also match a token that parses to the same value, so 2.0 matches "2" and "2.0".
func (c *ChoiceType) Convert(raw string) (any, error) {
	for _, v := range c.values {
		if s, ok := v.(string); ok && s == raw {
			return v, nil
		}
	}
	for _, v := range c.values {
		if fmt.Sprint(v) == raw {
			return v, nil
		}
	}
	for _, v := range c.values {
		if x, ok := parseAs(v, raw); ok && x == v {
			return v, nil
		}
	}
	return nil, &InvalidChoiceError{Value: raw, Choices: c.Values()}
}

// parseAs parses raw into the type of the literal v.
func parseAs(v any, raw string) (any, bool) {
	var (
		x   any
		err error
	)
	switch v.(type) {
	case int:
		x, err = strconv.Atoi(raw)
	case int64:
		x, err = strconv.ParseInt(raw, 10, 64)
	case uint:
		var n uint64
		n, err = strconv.ParseUint(raw, 10, 0)
		x = uint(n)
	case float64:
		x, err = strconv.ParseFloat(raw, 64)
	case float32:
		var f float64
		f, err = strconv.ParseFloat(raw, 32)
		x = float32(f)
	case bool:
		x, err = strconv.ParseBool(raw)
	default:
		return nil, false
	}
	return x, err == nil
}

func (c *ChoiceType) validate() error {
	if len(c.values) == 0 {
		return fmt.Errorf("choice set is empty")
	}
	first := reflect.TypeOf(c.values[0])
	for _, v := range c.values[1:] {
		if t := reflect.TypeOf(v); t != first {
			return fmt.Errorf("choice values must share one type, found %s and %s: %s",
				typeName(first), typeName(t), c)
		}
	}
	return nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

func joinValues(values []any, sep string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, sep)
}

// isBoolType reports whether flags of type t may be given without a value.
func isBoolType(t Type) bool {
	return t == Bool
}
