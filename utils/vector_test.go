package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector(t *testing.T) {
	// Linspace
	{
		req := NewVector(2).Linspace(-1, 1)
		assert.Equal(t, -1., req.AtVec(0))
		assert.Equal(t, 1., req.AtVec(1))
		req = NewVector(3).Linspace(-1, 1)
		assert.Equal(t, -1., req.AtVec(0))
		assert.Equal(t, 0., req.AtVec(1))
		assert.Equal(t, 1., req.AtVec(2))
	}
	// Scatter and gather
	{
		v := NewVector(4)
		v.ScatterAdd(Index{3, 1, 3}, NewVector(3, []float64{1, 2, 3}))
		assert.Equal(t, []float64{0, 2, 0, 4}, v.Data())
		assert.Equal(t, []float64{4, 2}, v.Gather(Index{3, 1}).Data())
		assert.Panics(t, func() { v.ScatterAdd(Index{0}, NewVector(2)) })
	}
	// Views share storage
	{
		v := NewVector(4, []float64{1, 2, 3, 4})
		w := v.View(2, 4)
		w.Scale(10)
		assert.Equal(t, []float64{1, 2, 30, 40}, v.Data())
		assert.Equal(t, 0, v.View(1, 1).Len())
		assert.Panics(t, func() { v.View(3, 5) })
	}
	// Norms, copies and resizing
	{
		v := NewVector(2, []float64{3, -4})
		assert.Equal(t, 5., v.Norm())
		assert.Equal(t, 4., v.NormInf())
		c := v.Copy()
		c.Set(0, 0)
		assert.Equal(t, 3., v.AtVec(0))
		v.Resize(2)
		assert.Equal(t, []float64{0, 0}, v.Data())
		v.Resize(0)
		assert.Equal(t, 0, v.Len())
		assert.Equal(t, 0., v.Norm())
		v.Add(NewVector(0))
	}
	// NaN detection
	{
		assert.False(t, IsNan(NewVector(2, []float64{1, 2})))
		assert.True(t, IsNan(NewMatrix(1, 2, []float64{1, math.NaN()})))
		assert.True(t, IsNan(math.NaN()))
	}
}
