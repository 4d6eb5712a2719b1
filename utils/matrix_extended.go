package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense row-major matrix. A Matrix with zero rows or columns has
// a nil M, gonum does not allow empty Dense matrices, and keeps its shape in
// nr, nc.
type Matrix struct {
	M        *mat.Dense
	nr, nc   int
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		if nr*nc != 0 {
			m = mat.NewDense(nr, nc, dataO[0])
		}
	} else if nr*nc != 0 {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		M:    m,
		nr:   nr,
		nc:   nc,
		name: "unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int) {
	if m.M == nil {
		return m.nr, m.nc
	}
	return m.M.Dims()
}
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) IsEmpty() bool             { return m.M == nil }

// Data returns the backing storage. For a View the storage is strided and
// belongs to the parent.
func (m Matrix) Data() []float64 {
	if m.M == nil {
		return nil
	}
	return m.M.RawMatrix().Data
}

// Chainable methods (extended)
func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m *Matrix) SetWritable() Matrix {
	m.readOnly = false
	return *m
}

// Resize makes the matrix nr x nc and zero filled, storage is reused when the
// size does not change. Changes receiver
func (m *Matrix) Resize(nr, nc int) {
	m.checkWritable()
	if r, c := m.Dims(); r == nr && c == nc {
		m.Zero()
		return
	}
	*m = NewMatrix(nr, nc)
}

func (m Matrix) Zero() { // Changes receiver
	m.checkWritable()
	if m.M != nil {
		m.M.Zero()
	}
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	if R.M != nil {
		R.M.Copy(m.M)
	}
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			R.M.Set(j, i, m.M.At(i, j))
		}
	}
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.Dims()
		_, ncA = A.Dims()
	)
	R = NewMatrix(nrM, ncA)
	if R.M != nil && m.M != nil && A.M != nil {
		R.M.Mul(m.M, A.M)
	}
	return R
}

func (m Matrix) MulVec(v Vector) (R Vector) { // Does not change receiver
	var (
		nr, _ = m.Dims()
	)
	R = NewVector(nr)
	if R.V != nil && m.M != nil {
		R.V.MulVec(m.M, v.V)
	}
	return
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) AddAt(i, j int, val float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
	return m
}

func (m Matrix) Add(A Matrix) Matrix { // Changes receiver
	m.checkWritable()
	if m.M != nil {
		m.M.Add(m.M, A.M)
	}
	return m
}

func (m Matrix) Subtract(A Matrix) Matrix { // Changes receiver
	m.checkWritable()
	if m.M != nil {
		m.M.Sub(m.M, A.M)
	}
	return m
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	m.checkWritable()
	if m.M != nil {
		m.M.Scale(a, m.M)
	}
	return m
}

func (m Matrix) Inverse() (R Matrix, err error) {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("unable to invert, matrix is %d x %d", nr, nc)
		return
	}
	R = m.Copy()
	if nr == 0 {
		return
	}
	iPiv := make([]int, nr)
	if ok := lapack64.Getrf(R.RawMatrix(), iPiv); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
		return
	}
	work := make([]float64, nr*nc)
	if ok := lapack64.Getri(R.RawMatrix(), iPiv, work, nr*nc); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
	}
	return
}

func (m Matrix) Row(i int) []float64 {
	var (
		_, nc = m.Dims()
		r     = make([]float64, nc)
	)
	for j := range r {
		r[j] = m.M.At(i, j)
	}
	return r
}

func (m Matrix) Min() (min float64) {
	var (
		nr, nc = m.Dims()
	)
	min = m.M.At(0, 0)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if val := m.M.At(i, j); val < min {
				min = val
			}
		}
	}
	return
}

func (m Matrix) Max() (max float64) {
	var (
		nr, nc = m.Dims()
	)
	max = m.M.At(0, 0)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if val := m.M.At(i, j); val > max {
				max = val
			}
		}
	}
	return
}

func (m Matrix) Print(msgI ...string) (o string) {
	var (
		name = ""
	)
	if len(msgI) != 0 {
		name = msgI[0]
	}
	if m.M == nil {
		return fmt.Sprintf("%s = []\n", name)
	}
	o = fmt.Sprintf("%s = \n%v\n", name, mat.Formatted(m.M, mat.Squeeze()))
	return
}

func (m Matrix) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}
