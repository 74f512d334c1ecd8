package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	t.Run("Equal", func(t *testing.T) {
		assert.Equal(t, 0, Compare[float32](0, 0))
		assert.Equal(t, 0, Compare[float32](1, 1))
		assert.Equal(t, 0, Compare[float32](0.5, 0.5+4e-8))
	})

	t.Run("Less", func(t *testing.T) {
		assert.Equal(t, -1, Compare[float32](-1, 0))
		assert.Equal(t, -1, Compare[float32](0.5, 0.5000002))
	})

	t.Run("Greater", func(t *testing.T) {
		assert.Equal(t, 1, Compare[float32](1, 0))
		assert.Equal(t, 1, Compare[float32](0.5000002, 0.5))
	})

	t.Run("Integers", func(t *testing.T) {
		assert.Equal(t, 0, Compare(7, 7))
		assert.Equal(t, -1, Compare(6, 7))
		assert.Equal(t, 1, Compare(8, 7))
	})
}
