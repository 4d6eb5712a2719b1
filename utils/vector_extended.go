package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Vector wraps a gonum VecDense. As with Matrix, a zero length Vector has a
// nil V.
type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			panic(fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v", n, len(dataO[0])))
		}
		if n != 0 {
			R.V = mat.NewVecDense(n, dataO[0])
		}
		return
	}
	if n != 0 {
		R.V = mat.NewVecDense(n, nil)
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.Len(), 1 }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int {
	if v.V == nil {
		return 0
	}
	return v.V.Len()
}

// Data copies the contents out, views are strided.
func (v Vector) Data() (d []float64) {
	d = make([]float64, v.Len())
	for i := range d {
		d[i] = v.V.AtVec(i)
	}
	return
}

// Resize makes the vector length n and zero filled. Changes receiver
func (v *Vector) Resize(n int) {
	if v.Len() == n {
		v.Zero()
		return
	}
	*v = NewVector(n)
}

// View shares storage with v for entries [i,k).
func (v Vector) View(i, k int) (R Vector) {
	if i < 0 || k > v.Len() || k < i {
		panic(fmt.Errorf("view [%d:%d] out of bounds for vector of length %d", i, k, v.Len()))
	}
	if k == i {
		return
	}
	R.V = v.V.SliceVec(i, k).(*mat.VecDense)
	return
}

// Chainable (extended) methods
func (v Vector) Zero() Vector { // Changes receiver
	if v.V != nil {
		v.V.Zero()
	}
	return v
}

func (v Vector) Set(i int, val float64) Vector { // Changes receiver
	v.V.SetVec(i, val)
	return v
}

func (v Vector) AddAt(i int, val float64) Vector { // Changes receiver
	v.V.SetVec(i, v.V.AtVec(i)+val)
	return v
}

func (v Vector) Add(a Vector) Vector { // Changes receiver
	if v.V != nil {
		v.V.AddVec(v.V, a.V)
	}
	return v
}

func (v Vector) Subtract(a Vector) Vector { // Changes receiver
	if v.V != nil {
		v.V.SubVec(v.V, a.V)
	}
	return v
}

func (v Vector) Scale(a float64) Vector { // Changes receiver
	if v.V != nil {
		v.V.ScaleVec(a, v.V)
	}
	return v
}

func (v Vector) Copy() (R Vector) { // Does not change receiver
	R = NewVector(v.Len())
	if R.V != nil {
		R.V.CopyVec(v.V)
	}
	return
}

func (v Vector) Min() (min float64) {
	min = v.V.AtVec(0)
	for i := 0; i < v.Len(); i++ {
		if val := v.V.AtVec(i); val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	max = v.V.AtVec(0)
	for i := 0; i < v.Len(); i++ {
		if val := v.V.AtVec(i); val > max {
			max = val
		}
	}
	return
}
