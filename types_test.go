package stakk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "all delimiters", raw: "a,b;c|d e", want: []string{"a", "b", "c", "d", "e"}},
		{name: "empty", raw: "", want: []string{""}},
		{name: "single", raw: "abc", want: []string{"abc"}},
		{name: "adjacent delimiters", raw: "a,,b", want: []string{"a", "", "b"}},
		{name: "tab", raw: "x\ty", want: []string{"x", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := List.Convert(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChoiceType(t *testing.T) {
	t.Parallel()

	t.Run("strings", func(t *testing.T) {
		t.Parallel()
		c := Choice("fast", "slow")
		require.NoError(t, c.validate())
		got, err := c.Convert("slow")
		require.NoError(t, err)
		assert.Equal(t, "slow", got)
		assert.Equal(t, "{fast,slow}", c.String())
	})
	t.Run("ints keep their type", func(t *testing.T) {
		t.Parallel()
		c := Choice(1, 2, 3)
		require.NoError(t, c.validate())
		got, err := c.Convert("2")
		require.NoError(t, err)
		assert.Equal(t, 2, got)
	})
	t.Run("floats match by string form", func(t *testing.T) {
		t.Parallel()
		c := Choice(0.5, 1.5)
		got, err := c.Convert("1.5")
		require.NoError(t, err)
		assert.Equal(t, 1.5, got)
	})
	t.Run("numbers match by value", func(t *testing.T) {
		t.Parallel()
		c := Choice(1.5, 2.0)
		for _, raw := range []string{"2", "2.0", "2.00"} {
			got, err := c.Convert(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, 2.0, got, raw)
		}
		got, err := Choice(1, 2, 3).Convert("+3")
		require.NoError(t, err)
		assert.Equal(t, 3, got)

		_, err = c.Convert("2.5")
		var choiceErr *InvalidChoiceError
		require.ErrorAs(t, err, &choiceErr)
	})
	t.Run("invalid choice", func(t *testing.T) {
		t.Parallel()
		c := Choice("a", "b")
		_, err := c.Convert("c")
		require.Error(t, err)
		var choiceErr *InvalidChoiceError
		require.ErrorAs(t, err, &choiceErr)
		assert.Equal(t, "c", choiceErr.Value)
		assert.Equal(t, []any{"a", "b"}, choiceErr.Choices)
		assert.EqualError(t, err, `invalid choice: "c" (choose from a, b)`)
	})
	t.Run("mixed types", func(t *testing.T) {
		t.Parallel()
		err := Choice("a", 1, 2).validate()
		require.Error(t, err)
		assert.ErrorContains(t, err, "choice values must share one type, found string and int")
	})
	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		require.Error(t, Choice().validate())
	})
	t.Run("values is a copy", func(t *testing.T) {
		t.Parallel()
		c := Choice("a", "b")
		v := c.Values()
		v[0] = "z"
		assert.Equal(t, []any{"a", "b"}, c.Values())
	})
}

func TestBasicTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  Type
		raw  string
		want any
	}{
		{typ: String, raw: "hi", want: "hi"},
		{typ: Int, raw: "42", want: 42},
		{typ: Float, raw: "2.5", want: 2.5},
		{typ: Bool, raw: "true", want: true},
		{typ: Duration, raw: "1m30s", want: 90 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			t.Parallel()
			got, err := tt.typ.Convert(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("conversion error", func(t *testing.T) {
		t.Parallel()
		_, err := Int.Convert("abc")
		require.Error(t, err)
		var convErr *ConversionError
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, "int", convErr.Type)
		assert.EqualError(t, err, `invalid int value: "abc"`)
	})
	t.Run("custom type", func(t *testing.T) {
		t.Parallel()
		upper := TypeFunc("upper", func(s string) (any, error) { return s + "!", nil })
		got, err := upper.Convert("hey")
		require.NoError(t, err)
		assert.Equal(t, "hey!", got)
		assert.Equal(t, "upper", upper.String())
	})
}
