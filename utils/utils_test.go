package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInRange(t *testing.T) {
	t.Parallel()

	assert.True(t, IsInRange(0, 0, 1))
	assert.True(t, IsInRange(1, 3, 3))
	assert.False(t, IsInRange(1, 0, 3))
	assert.False(t, IsInRange(0.5, 0.75, 0.7))
}

func TestUnpack2(t *testing.T) {
	t.Parallel()

	a, b := Unpack2([]int{})
	assert.Equal(t, [2]int{0, 0}, [2]int{a, b})

	a, b = Unpack2([]int{4})
	assert.Equal(t, [2]int{4, 0}, [2]int{a, b})

	a, b = Unpack2([]int{1, -1, 9})
	assert.Equal(t, [2]int{1, -1}, [2]int{a, b})
}
