package primitive_test

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-mapper/options"
	"model-mapper/primitive"
)

func TestCastBoolean(t *testing.T) {
	t.Parallel()

	t.Run("truthy tokens", func(t *testing.T) {
		t.Parallel()

		for _, in := range []any{"yes", "y", "1", "t", "true", "TRUE", " Yes ", true} {
			got, err := primitive.Cast(primitive.KindBoolean, in)
			require.NoError(t, err, "input %v", in)
			assert.Equal(t, true, got, "input %v", in)
		}
	})

	t.Run("falsy tokens", func(t *testing.T) {
		t.Parallel()

		for _, in := range []any{"no", "n", "0", "f", "false", "False", false} {
			got, err := primitive.Cast(primitive.KindBoolean, in)
			require.NoError(t, err, "input %v", in)
			assert.Equal(t, false, got, "input %v", in)
		}
	})

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()

		got, err := primitive.Cast(primitive.KindBoolean, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("rejects everything else", func(t *testing.T) {
		t.Parallel()

		cases := map[string]any{
			"1":                    1,
			"0":                    int64(0),
			"1.5":                  1.5,
			"[true]":               []bool{true},
			"map[a:true]":          map[string]bool{"a": true},
			"{x}":                  struct{ X string }{"x"},
			"maybe":                "maybe",
			"https://example.com/": &url.URL{Scheme: "https", Host: "example.com", Path: "/"},
		}

		for want, in := range cases {
			_, err := primitive.Cast(primitive.KindBoolean, in)
			require.Error(t, err, "input %v", in)
			assert.ErrorIs(t, err, primitive.ErrInvalidCast)

			var castErr *primitive.CastError
			require.True(t, errors.As(err, &castErr))
			assert.Equal(t, want, castErr.Value)
			assert.Equal(t, primitive.KindBoolean, castErr.Kind)
		}
	})

	t.Run("numeric booleans only when enabled", func(t *testing.T) {
		t.Parallel()

		got, err := primitive.CastWith(primitive.KindBoolean, 1, options.CategoryAll)
		require.NoError(t, err)
		assert.Equal(t, true, got)
	})
}

func TestCastInteger(t *testing.T) {
	t.Parallel()

	for _, in := range []any{42, int8(42), uint16(42), 42.0, "42", " 42 ", "42.0"} {
		got, err := primitive.Cast(primitive.KindInteger, in)
		require.NoError(t, err, "input %v", in)
		assert.Equal(t, int64(42), got, "input %v", in)
	}

	for _, in := range []any{"abc", 4.5, "4.5", true, []int{1}} {
		_, err := primitive.Cast(primitive.KindInteger, in)
		assert.ErrorIs(t, err, primitive.ErrInvalidCast, "input %v", in)
	}

	_, err := primitive.CastWith(primitive.KindInteger, "42", options.CategoryNone)
	assert.ErrorIs(t, err, primitive.ErrInvalidCast)
}

func TestCastFloat(t *testing.T) {
	t.Parallel()

	got, err := primitive.Cast(primitive.KindFloat, "2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)

	got, err = primitive.Cast(primitive.KindFloat, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	_, err = primitive.Cast(primitive.KindFloat, "two")
	assert.ErrorIs(t, err, primitive.ErrInvalidCast)
}

func TestCastString(t *testing.T) {
	t.Parallel()

	type Name string

	u := &url.URL{Scheme: "file", Path: "/tmp/a.xml"}

	cases := []struct {
		in   any
		want string
	}{
		{"plain", "plain"},
		{Name("named"), "named"},
		{[]byte("bytes"), "bytes"},
		{u, "file:///tmp/a.xml"},
		{12, "12"},
		{true, "true"},
		{90 * time.Minute, "1h30m0s"},
	}

	for _, tc := range cases {
		got, err := primitive.Cast(primitive.KindString, tc.in)
		require.NoError(t, err, "input %v", tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := primitive.Cast(primitive.KindString, []string{"a"})
	assert.ErrorIs(t, err, primitive.ErrInvalidCast)

	_, err = primitive.Cast(primitive.KindString, map[string]any{"a": 1})
	assert.ErrorIs(t, err, primitive.ErrInvalidCast)
}

func TestCastTemporal(t *testing.T) {
	t.Parallel()

	got, err := primitive.Cast(primitive.KindDate, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", primitive.Format(primitive.KindDate, got))

	got, err = primitive.Cast(primitive.KindTime, "2024-03-01T10:11:12Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T10:11:12Z", primitive.Format(primitive.KindTime, got))

	got, err = primitive.Cast(primitive.KindDuration, "2h45m")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour+45*time.Minute, got)

	_, err = primitive.Cast(primitive.KindDuration, 5)
	assert.ErrorIs(t, err, primitive.ErrInvalidCast)
}

func TestCastAnyAndRaw(t *testing.T) {
	t.Parallel()

	in := map[string]any{"k": []any{1, 2}}
	got, err := primitive.Cast(primitive.KindAny, in)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	got, err = primitive.Cast(primitive.KindRaw, "<a>&amp;</a>")
	require.NoError(t, err)
	assert.Equal(t, "<a>&amp;</a>", got)
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	cases := map[string]primitive.KindEnum{
		"string":    primitive.KindString,
		"String":    primitive.KindString,
		"int":       primitive.KindInteger,
		"Integer":   primitive.KindInteger,
		"bool":      primitive.KindBoolean,
		"date_time": primitive.KindTime,
		"float64":   primitive.KindFloat,
		"raw":       primitive.KindRaw,
	}

	for name, want := range cases {
		got, err := primitive.ParseKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := primitive.ParseKind("Widget")
	require.ErrorIs(t, err, primitive.ErrUnknownType)
	assert.Contains(t, err.Error(), "Widget")
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", primitive.Format(primitive.KindString, nil))
	assert.Equal(t, "1.5", primitive.Format(primitive.KindFloat, 1.5))
	assert.Equal(t, "7", primitive.Format(primitive.KindInteger, int64(7)))
	assert.Equal(t, "false", primitive.Format(primitive.KindBoolean, false))
}
