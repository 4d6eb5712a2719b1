package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK is a dictionary of keys sparse matrix, cheap to accumulate into in any
// order.
type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }
func (m DOK) NNZ() int            { return m.M.NNZ() }

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

// Reset drops every entry, keeping the dimensions. Changes receiver
func (m *DOK) Reset() {
	m.checkWritable()
	nr, nc := m.Dims()
	m.M = sparse.NewDOK(nr, nc)
}

func (m DOK) AddAt(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
	return m
}

// ScatterAdd adds the dense block A at the global rows and columns,
// m[rows[i], cols[j]] += A[i, j]. Changes receiver
func (m DOK) ScatterAdd(rows, cols Index, A Matrix) (err error) {
	var (
		nr, nc = A.Dims()
		mr, mc = m.Dims()
	)
	m.checkWritable()
	if nr != len(rows) || nc != len(cols) {
		err = fmt.Errorf("block is %d x %d, index is %d x %d", nr, nc, len(rows), len(cols))
		return
	}
	if err = rows.CheckBounds(mr); err != nil {
		return
	}
	if err = cols.CheckBounds(mc); err != nil {
		return
	}
	for i, gi := range rows {
		for j, gj := range cols {
			if val := A.At(i, j); val != 0 {
				m.M.Set(gi, gj, m.M.At(gi, gj)+val)
			}
		}
	}
	return
}

func (m DOK) ToDense() (R Matrix) {
	nr, nc := m.Dims()
	R = Matrix{
		M:        m.M.ToDense(),
		nr:       nr,
		nc:       nc,
		readOnly: m.readOnly,
		name:     m.name,
	}
	return
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:        m.M.ToCSR(),
		readOnly: m.readOnly,
		name:     m.name,
	}
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

// CSR is the compressed row form used for products once assembly is done.
type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }
func (m CSR) NNZ() int            { return m.M.NNZ() }

func (m CSR) MulVec(x Vector) (R Vector) { // Does not change receiver
	var (
		nr, _ = m.Dims()
		dst   = make([]float64, nr)
	)
	m.M.MulVecTo(dst, false, x.Data())
	R = NewVector(nr, dst)
	return
}
