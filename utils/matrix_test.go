package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	// Transpose
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		mNr, mNc := M.Dims()
		A := M.Transpose()
		aNr, aNc := A.Dims()
		assert.Equal(t, aNc, mNr)
		assert.Equal(t, aNr, mNc)
		assert.Equal(t, A.RawMatrix().Data, []float64{1, 4, 2, 5, 3, 6})
	}
	// Empty matrices carry no storage but keep their shape
	{
		M := NewMatrix(0, 3)
		assert.True(t, M.IsEmpty())
		nr, nc := M.Dims()
		assert.Equal(t, 0, nr)
		assert.Equal(t, 3, nc)
		M.Zero()
		assert.Nil(t, M.Data())
		nr, nc = M.Transpose().Dims()
		assert.Equal(t, [2]int{3, 0}, [2]int{nr, nc})
		R := NewMatrix(2, 0).Mul(NewMatrix(0, 2))
		nr, nc = R.Dims()
		assert.Equal(t, [2]int{2, 2}, [2]int{nr, nc})
		assert.Equal(t, []float64{0, 0, 0, 0}, R.Data())
		assert.Equal(t, []float64{0, 0}, NewMatrix(2, 0).MulVec(NewVector(0)).Data())
		V := NewMatrix(3, 4).View(1, 3, 2, 2)
		assert.True(t, V.IsEmpty())
		nr, nc = V.Dims()
		assert.Equal(t, [2]int{2, 0}, [2]int{nr, nc})
		V = NewMatrix(3, 4)
		V.Resize(2, 0)
		nr, nc = V.Dims()
		assert.Equal(t, [2]int{2, 0}, [2]int{nr, nc})
	}
	// Views share storage with the parent
	{
		M := NewMatrix(3, 3)
		V := M.View(1, 3, 1, 3)
		V.AddAt(0, 0, 5)
		V.AddAt(1, 1, 7)
		assert.Equal(t, 5., M.At(1, 1))
		assert.Equal(t, 7., M.At(2, 2))
		V.Add(NewMatrix(2, 2, []float64{1, 1, 1, 1}))
		assert.Equal(t, 1., M.At(1, 2))
		assert.Equal(t, 0., M.At(0, 0))
		assert.True(t, M.View(1, 1, 0, 3).IsEmpty())
		assert.Panics(t, func() { M.View(0, 4, 0, 1) })
	}
	// Resize reuses storage of the same shape and zeros it
	{
		M := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		data := M.Data()
		M.Resize(2, 2)
		assert.Equal(t, []float64{0, 0, 0, 0}, data)
		M.Resize(3, 1)
		nr, nc := M.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 1, nc)
	}
	// Inverse
	{
		M := NewMatrix(2, 2, []float64{
			4, 7,
			2, 6,
		})
		Minv, err := M.Inverse()
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.6, -0.7, -0.2, 0.4}, Minv.Data(), 1.e-14)
		assert.Equal(t, []float64{4, 7, 2, 6}, M.Data())
		I := M.Mul(Minv)
		assert.InDeltaSlice(t, []float64{1, 0, 0, 1}, I.Data(), 1.e-14)
		_, err = NewMatrix(2, 2, []float64{1, 2, 2, 4}).Inverse()
		assert.Error(t, err)
		_, err = NewMatrix(2, 3).Inverse()
		assert.Error(t, err)
	}
	// ScatterAdd
	{
		M := NewMatrix(3, 3)
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		M.ScatterAdd(Index{0, 2}, Index{2, 0}, A)
		M.ScatterAdd(Index{0, 2}, Index{2, 0}, A)
		assert.Equal(t, []float64{
			4, 0, 2,
			0, 0, 0,
			8, 0, 6,
		}, M.Data())
		assert.Panics(t, func() { M.ScatterAdd(Index{0}, Index{0, 1}, A) })
	}
	// Read only
	{
		M := NewMatrix(1, 1)
		M.SetReadOnly("M")
		assert.Panics(t, func() { M.Set(0, 0, 1) })
		M.SetWritable()
		M.Set(0, 0, 1)
		assert.Equal(t, 1., M.At(0, 0))
	}
	// Eigenvalues and symmetry
	{
		S := NewMatrix(2, 2, []float64{
			2, 1,
			1, 2,
		})
		assert.True(t, S.IsSymmetric(0))
		assert.InDeltaSlice(t, []float64{1, 3}, S.Eigenvalues(), 1.e-12)
		N := NewMatrix(2, 2, []float64{
			3, 2,
			0, 1,
		})
		assert.False(t, N.IsSymmetric(1.e-12))
		assert.InDeltaSlice(t, []float64{1, 3}, N.Eigenvalues(), 1.e-12)
		assert.Equal(t, 3., N.MaxAbs())
		assert.InDelta(t, 1., NewMatrix(2, 2, []float64{1, 0, 0, 1}).ConditionNumber(), 1.e-12)
	}
	// MulVec
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		v := M.MulVec(NewVector(3, []float64{1, 1, 1}))
		assert.Equal(t, []float64{6, 15}, v.Data())
	}
}

func TestSparse(t *testing.T) {
	{
		D := NewDOK(3, 3)
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		require.NoError(t, D.ScatterAdd(Index{0, 2}, Index{0, 2}, A))
		require.NoError(t, D.ScatterAdd(Index{0, 2}, Index{0, 2}, A))
		assert.Equal(t, 6., D.At(2, 0))
		assert.Equal(t, 4, D.NNZ())
		assert.Equal(t, []float64{
			2, 0, 4,
			0, 0, 0,
			6, 0, 8,
		}, D.ToDense().Data())
		x := NewVector(3, []float64{1, 2, 3})
		assert.Equal(t, []float64{14, 0, 30}, D.ToCSR().MulVec(x).Data())
		assert.Error(t, D.ScatterAdd(Index{3}, Index{0}, NewMatrix(1, 1, []float64{1})))
		assert.Error(t, D.ScatterAdd(Index{0, 1}, Index{0}, NewMatrix(1, 1, []float64{1})))
		D.Reset()
		assert.Equal(t, 0, D.NNZ())
		nr, nc := D.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 3, nc)
	}
}
