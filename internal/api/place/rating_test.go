package place

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededAverage(t *testing.T) {
	t.Run("plain mean when there is no seed", func(t *testing.T) {
		assert.Equal(t, 4.0, seededAverage(0, []int{3, 4, 5}))
	})

	t.Run("seed counts as one extra vote", func(t *testing.T) {
		// (5 + 4 + 4.5) / 3
		assert.Equal(t, 4.5, seededAverage(4.5, []int{5, 4}))
	})

	t.Run("seed alone is the initial average", func(t *testing.T) {
		assert.Equal(t, 4.2, seededAverage(4.2, nil))
	})

	t.Run("no reviews and no seed yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, seededAverage(0, nil))
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		// (5 + 4 + 4) / 3 = 4.333...
		assert.Equal(t, 4.33, seededAverage(4.0, []int{5, 4}))
		// (5 + 5 + 4 + 3.8) / 4 = 4.45
		assert.Equal(t, 4.45, seededAverage(3.8, []int{5, 5, 4}))
	})

	t.Run("recomputing the same inputs is stable", func(t *testing.T) {
		first := seededAverage(3.7, []int{5, 2, 4})
		second := seededAverage(3.7, []int{5, 2, 4})
		assert.Equal(t, first, second)
	})
}
