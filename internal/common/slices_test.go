package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       []string
		empty    bool
		single   bool
		multiple bool
		first    string
	}{
		{"nil", nil, true, false, false, ""},
		{"one", []string{"color"}, false, true, false, "color"},
		{"candidates", []string{"color", "colour"}, false, false, true, "color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.empty, IsEmpty(tt.in))
			assert.Equal(t, tt.single, IsSingle(tt.in))
			assert.Equal(t, tt.multiple, IsMultiple(tt.in))

			first, ok := First(tt.in)
			assert.Equal(t, !tt.empty, ok)
			assert.Equal(t, tt.first, first)
		})
	}
}

func TestQuoted(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "`Person`", Quoted("Person"))
}
