package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint(t *testing.T) {
	t.Run("NewPoint", func(t *testing.T) {
		p := NewPoint[float32](3, 1.5)
		require.Equal(t, 3, p.Dims())
		for d := 0; d < p.Dims(); d++ {
			assert.Equal(t, float32(1.5), p[d])
		}
	})

	t.Run("Equal", func(t *testing.T) {
		p := Point[float32]{0, 1, 0.5}
		q := Point[float32]{0, 1, 0.5}
		assert.True(t, p.Equal(q))

		// Within tolerance on one coordinate.
		r := Point[float32]{0, 1, 0.5 + 4e-8}
		assert.True(t, p.Equal(r))

		// Beyond tolerance on one coordinate.
		s := Point[float32]{0, 1, 0.5002}
		assert.False(t, p.Equal(s))
	})

	t.Run("Sum", func(t *testing.T) {
		p := Point[float32]{0, 1, 2}
		assert.Equal(t, float32(3), p.Sum())
	})

	t.Run("Clone", func(t *testing.T) {
		p := Point[float32]{0, 1, 2}
		c := p.Clone()
		require.True(t, p.Equal(c))
		c[0] = 9
		assert.Equal(t, float32(0), p[0])
	})

	t.Run("String", func(t *testing.T) {
		p := Point[float32]{0, 1, 2}
		assert.Equal(t, "(0,1,2)", p.String())
	})
}

func TestBoundary(t *testing.T) {
	t.Run("NewBoundary", func(t *testing.T) {
		b := NewBoundary(2, Interval[float32]{Min: 0, Max: 1})
		require.Equal(t, 2, b.Dims())
		assert.Equal(t, float32(0), b[0].Min)
		assert.Equal(t, float32(1), b[1].Max)
	})

	t.Run("Clone", func(t *testing.T) {
		b := NewBoundary(2, Interval[float32]{Min: 0, Max: 1})
		c := b.Clone()
		c[0].Max = 5
		assert.Equal(t, float32(1), b[0].Max)
	})

	t.Run("String", func(t *testing.T) {
		b := Boundary[float32]{{Min: 0, Max: 1}, {Min: -1, Max: 1}}
		assert.Equal(t, "([0:1],[-1:1])", b.String())
	})
}
