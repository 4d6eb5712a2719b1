package utils

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

func (m Matrix) ConditionNumber() float64 {
	var svd mat.SVD
	if !svd.Factorize(m.M, mat.SVDThin) {
		// If SVD fails, return a large number indicating poor conditioning
		return 1e16
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 1e16
	}
	// Singular values are in descending order
	minVal := values[len(values)-1]
	maxVal := values[0]
	if minVal < 1e-16 {
		return 1e16
	}
	return maxVal / minVal
}

// Eigenvalues returns the sorted real parts of the eigenvalues. Symmetric
// matrices go through the symmetric solver.
func (m Matrix) Eigenvalues() []float64 {
	rows, cols := m.Dims()
	if rows != cols {
		panic("Eigenvalues only defined for square matrices")
	}
	if m.IsSymmetric(1.e-12 * m.MaxAbs()) {
		return m.SymEigenvalues()
	}
	var eigen mat.Eigen
	if !eigen.Factorize(m.M, mat.EigenNone) {
		return nil
	}
	values := eigen.Values(nil)
	realValues := make([]float64, len(values))
	for i, val := range values {
		realValues[i] = real(val)
	}
	sort.Float64s(realValues)
	return realValues
}

// SymEigenvalues uses the lower triangle of m only, ascending order.
func (m Matrix) SymEigenvalues() []float64 {
	var (
		n, _ = m.Dims()
		sym  = mat.NewSymDense(n, nil)
		eig  mat.EigenSym
	)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sym.SetSym(i, j, m.M.At(i, j))
		}
	}
	if !eig.Factorize(sym, false) {
		return nil
	}
	return eig.Values(nil)
}

func (m Matrix) MaxAbs() (max float64) {
	var (
		nr, nc = m.Dims()
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			max = math.Max(max, math.Abs(m.M.At(i, j)))
		}
	}
	return
}
