package HDG

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// line1D is a uniform P1 mesh of [0, L] used to exercise the kernels without a
// full discretization package. Scalar and vector bases are the two hat
// functions of each element, the trace lives on the vertices.
type line1D struct {
	*DofMap
	h float64
}

type vertexTrace struct{ K int }

func (vt vertexTrace) NumTraceDofs() int       { return vt.K + 1 }
func (vt vertexTrace) TraceDofs(elem int) []int { return []int{elem, elem + 1} }

func newLine1D(K int, L float64) *line1D {
	return &line1D{
		DofMap: NewDofMap(K, 2, 2, vertexTrace{K}),
		h:      L / float64(K),
	}
}

func (l *line1D) Dim() int              { return 1 }
func (l *line1D) NumElements() int      { return l.K }
func (l *line1D) NumSides(elem int) int { return 2 }

func (l *line1D) Neighbor(elem, side int) (neighbor int, ok bool) {
	neighbor = elem - 1 + 2*side
	ok = neighbor >= 0 && neighbor < l.K
	return
}

func (l *line1D) BoundaryIDs(elem, side int) []BoundaryID {
	if _, ok := l.Neighbor(elem, side); ok {
		return nil
	}
	return []BoundaryID{BoundaryID(side)}
}

func (l *line1D) NewAssembly() Assembly { return &p1Assembly{l: l} }

// addDiffusionVars adds q, u on the aux system and lm on the nonlinear one.
func (l *line1D) addDiffusionVars() *line1D {
	for _, v := range []struct {
		name string
		kind FieldKind
		sys  SystemKind
	}{{"q", VectorField, Aux}, {"u", ScalarField, Aux}, {"lm", TraceField, Nonlinear}} {
		if _, err := l.AddVariable(v.name, v.kind, v.sys); err != nil {
			panic(err)
		}
	}
	return l
}

type p1Assembly struct {
	l    *line1D
	vol  VolumeData
	face FaceData
}

func (a *p1Assembly) Volume() *VolumeData { return &a.vol }
func (a *p1Assembly) Face() *FaceData     { return &a.face }

func (a *p1Assembly) Reinit(elem int) {
	var (
		h  = a.l.h
		x0 = float64(elem) * h
		g  = 1. / math.Sqrt(3.)
		vd = &a.vol
	)
	vd.JxW = []float64{h / 2, h / 2}
	vd.QPoints = make([]r3.Vec, 2)
	vd.ScalarPhi = [][]float64{make([]float64, 2), make([]float64, 2)}
	vd.VectorPhi = [][]r3.Vec{make([]r3.Vec, 2), make([]r3.Vec, 2)}
	vd.DivVectorPhi = [][]float64{{-1 / h, -1 / h}, {1 / h, 1 / h}}
	vd.GradScalarPhi = [][]r3.Vec{{{X: -1 / h}, {X: -1 / h}}, {{X: 1 / h}, {X: 1 / h}}}
	for qp, xi := range []float64{-g, g} {
		s := (1 + xi) / 2
		vd.QPoints[qp] = r3.Vec{X: x0 + s*h}
		vd.ScalarPhi[0][qp], vd.ScalarPhi[1][qp] = 1-s, s
		vd.VectorPhi[0][qp], vd.VectorPhi[1][qp] = r3.Vec{X: 1 - s}, r3.Vec{X: s}
	}
}

func (a *p1Assembly) ReinitFace(elem, side int) {
	var (
		x  = float64(elem+side) * a.l.h
		fd = &a.face
	)
	fd.Side = side
	fd.JxW = []float64{1}
	fd.QPoints = []r3.Vec{{X: x}}
	fd.Normals = []r3.Vec{{X: float64(2*side - 1)}}
	fd.ScalarPhi = [][]float64{{float64(1 - side)}, {float64(side)}}
	fd.VectorPhi = [][]r3.Vec{{{X: float64(1 - side)}}, {{X: float64(side)}}}
	fd.LMPhi = [][]float64{{float64(1 - side)}, {float64(side)}}
}
