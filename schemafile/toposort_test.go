package schemafile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopoSort_Order(t *testing.T) {
	t.Parallel()

	order, left, err := topoSort(4, func(i int) []int {
		switch i {
		case 0:
			return []int{2}
		case 1:
			return []int{0}
		default:
			return nil
		}
	})
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.Equal(t, []int{2, 0, 1, 3}, order)
}

func TestTopoSort_Cycle(t *testing.T) {
	t.Parallel()

	_, left, err := topoSort(3, func(i int) []int {
		switch i {
		case 0:
			return []int{1}
		case 1:
			return []int{0}
		default:
			return nil
		}
	})
	require.ErrorIs(t, err, errCycle)
	assert.Equal(t, []int{0, 1}, left)
}
