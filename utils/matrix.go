package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// View returns rows [i,k) and columns [j,l) of m sharing storage with m, so
// accumulating into the view accumulates into m. An empty range gives an
// empty Matrix.
func (m Matrix) View(i, k, j, l int) (R Matrix) {
	var (
		nr, nc = m.Dims()
	)
	if i < 0 || j < 0 || k > nr || l > nc || k < i || l < j {
		panic(fmt.Errorf("view [%d:%d, %d:%d] out of bounds for %d x %d matrix", i, k, j, l, nr, nc))
	}
	R = Matrix{nr: k - i, nc: l - j, readOnly: m.readOnly, name: m.name}
	if k == i || l == j {
		return
	}
	R.M = m.M.Slice(i, k, j, l).(*mat.Dense)
	return
}

// ScatterAdd adds A into the rows and columns of m named by the index lists,
// m[rows[i], cols[j]] += A[i, j]. Changes receiver
func (m Matrix) ScatterAdd(rows, cols Index, A Matrix) Matrix {
	var (
		nr, nc = A.Dims()
	)
	if nr != len(rows) || nc != len(cols) {
		panic(fmt.Errorf("scatter size mismatch: block is %d x %d, index is %d x %d", nr, nc, len(rows), len(cols)))
	}
	m.checkWritable()
	for i, gi := range rows {
		for j, gj := range cols {
			m.M.Set(gi, gj, m.M.At(gi, gj)+A.M.At(i, j))
		}
	}
	return m
}

// IsSymmetric compares m with its transpose entry by entry.
func (m Matrix) IsSymmetric(tol float64) bool {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		return false
	}
	for i := 0; i < nr; i++ {
		for j := i + 1; j < nc; j++ {
			if d := m.M.At(i, j) - m.M.At(j, i); d > tol || d < -tol {
				return false
			}
		}
	}
	return true
}
