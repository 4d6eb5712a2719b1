package HDG

import (
	"github.com/notargets/gohdg/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

type QRule interface {
	NPoints() int
}

// VolumeData holds the element shape function tables, all indexed [dof][qp].
// The vector basis is the flux space, the scalar basis the primal space.
type VolumeData struct {
	JxW           []float64
	QPoints       []r3.Vec
	VectorPhi     [][]r3.Vec
	DivVectorPhi  [][]float64
	ScalarPhi     [][]float64
	GradScalarPhi [][]r3.Vec
}

func (vd *VolumeData) NPoints() int { return len(vd.JxW) }

// FaceData holds the tables of one element side. LMPhi covers every trace
// dof of the element, rows belonging to other sides are zero.
type FaceData struct {
	Side      int
	JxW       []float64
	QPoints   []r3.Vec
	Normals   []r3.Vec
	VectorPhi [][]r3.Vec
	ScalarPhi [][]float64
	LMPhi     [][]float64
}

func (fd *FaceData) NPoints() int { return len(fd.JxW) }

// Assembly evaluates shape functions on one element at a time. The pointers
// returned by Volume and Face are stable and refilled by each reinit, an
// Assembly belongs to a single goroutine.
type Assembly interface {
	Reinit(elem int)
	ReinitFace(elem, side int)
	Volume() *VolumeData
	Face() *FaceData
}

type BoundaryID int

type Mesh interface {
	Dim() int
	NumElements() int
	NumSides(elem int) int
	Neighbor(elem, side int) (neighbor int, ok bool)
	BoundaryIDs(elem, side int) []BoundaryID
}

type Discretization interface {
	Mesh
	Variable(name string) (*Variable, error)
	DofIndices(v *Variable, elem int) utils.Index
	NumLocalDofs(v *Variable, elem int) int
	NumDofs(sys SystemKind) int
	NewAssembly() Assembly
}

// EvalScalar interpolates the dof values c[offset:offset+len(phi)] at each
// quadrature point.
func EvalScalar(phi [][]float64, c utils.Vector, offset int, dst []float64) []float64 {
	dst = resize(dst, nPoints(phi))
	for qp := range dst {
		dst[qp] = 0
	}
	for j, row := range phi {
		cj := c.AtVec(offset + j)
		if cj == 0 {
			continue
		}
		for qp, p := range row {
			dst[qp] += cj * p
		}
	}
	return dst
}

func EvalVector(phi [][]r3.Vec, c utils.Vector, offset int, dst []r3.Vec) []r3.Vec {
	var (
		nq = 0
	)
	if len(phi) != 0 {
		nq = len(phi[0])
	}
	if cap(dst) < nq {
		dst = make([]r3.Vec, nq)
	}
	dst = dst[:nq]
	for qp := range dst {
		dst[qp] = r3.Vec{}
	}
	for j, row := range phi {
		cj := c.AtVec(offset + j)
		if cj == 0 {
			continue
		}
		for qp, p := range row {
			dst[qp] = r3.Add(dst[qp], r3.Scale(cj, p))
		}
	}
	return dst
}

func nPoints(phi [][]float64) int {
	if len(phi) == 0 {
		return 0
	}
	return len(phi[0])
}

func resize(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}
