package DG1D

import (
	"math"

	"github.com/notargets/gohdg/HDG"
	"github.com/notargets/gohdg/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// HDG1D is the hybridized discretization of a line: nodal elements of order
// N for the flux and scalar fields, one trace dof per vertex.
type HDG1D struct {
	*HDG.DofMap
	*Mesh1D
	*Basis1D
}

func NewHDG1D(N, K int, xmin, xmax float64) (d *HDG1D) {
	VX, EToV := SimpleMesh1D(xmin, xmax, K)
	d = &HDG1D{
		Mesh1D:  NewMesh1D(VX, EToV),
		Basis1D: NewBasis1D(N),
	}
	d.DofMap = HDG.NewDofMap(K, d.Np, d.Np, d.Mesh1D)
	return
}

// AddDiffusionVariables adds the flux and scalar to the aux system and the
// trace to the nonlinear system.
func (d *HDG1D) AddDiffusionVariables(q, u, lm string) (err error) {
	if _, err = d.AddVariable(q, HDG.VectorField, HDG.Aux); err != nil {
		return
	}
	if _, err = d.AddVariable(u, HDG.ScalarField, HDG.Aux); err != nil {
		return
	}
	_, err = d.AddVariable(lm, HDG.TraceField, HDG.Nonlinear)
	return
}

// NodeCoordinates are the physical positions of the dofs of elem.
func (d *HDG1D) NodeCoordinates(elem int) (x []float64) {
	x0, x1 := d.Bounds(elem)
	x = make([]float64, d.Np)
	for i := range x {
		x[i] = x0 + 0.5*(d.R.AtVec(i)+1)*(x1-x0)
	}
	return
}

// MaxNodalError compares the dofs of v in sol with exact at the nodes.
func (d *HDG1D) MaxNodalError(sol utils.Vector, v *HDG.Variable, exact func(x float64) float64) (maxErr float64) {
	for k := 0; k < d.NumElements(); k++ {
		vals := sol.Gather(d.DofIndices(v, k)).Data()
		for i, x := range d.NodeCoordinates(k) {
			maxErr = math.Max(maxErr, math.Abs(vals[i]-exact(x)))
		}
	}
	return
}

func (d *HDG1D) NewAssembly() HDG.Assembly { return newAssembly1D(d) }

// Assembly1D fills the shape function tables of one element of an HDG1D.
type Assembly1D struct {
	d    *HDG1D
	vol  HDG.VolumeData
	face HDG.FaceData
	ends [2][]float64 // basis values at r = -1 and r = 1
}

func newAssembly1D(d *HDG1D) (a *Assembly1D) {
	var (
		Np = d.Np
		NQ = d.RQ.Len()
	)
	a = &Assembly1D{d: d}
	a.vol = HDG.VolumeData{
		JxW:           make([]float64, NQ),
		QPoints:       make([]r3.Vec, NQ),
		VectorPhi:     make([][]r3.Vec, Np),
		DivVectorPhi:  make([][]float64, Np),
		ScalarPhi:     make([][]float64, Np),
		GradScalarPhi: make([][]r3.Vec, Np),
	}
	for j := 0; j < Np; j++ {
		a.vol.VectorPhi[j] = make([]r3.Vec, NQ)
		a.vol.DivVectorPhi[j] = make([]float64, NQ)
		a.vol.ScalarPhi[j] = make([]float64, NQ)
		a.vol.GradScalarPhi[j] = make([]r3.Vec, NQ)
	}
	a.face = HDG.FaceData{
		JxW:       []float64{1},
		QPoints:   make([]r3.Vec, 1),
		Normals:   make([]r3.Vec, 1),
		VectorPhi: make([][]r3.Vec, Np),
		ScalarPhi: make([][]float64, Np),
		LMPhi:     [][]float64{{0}, {0}},
	}
	for j := 0; j < Np; j++ {
		a.face.VectorPhi[j] = make([]r3.Vec, 1)
		a.face.ScalarPhi[j] = make([]float64, 1)
	}
	phi, _ := d.Evaluate(utils.NewVector(2, []float64{-1, 1}))
	for side := range a.ends {
		a.ends[side] = phi.Row(side)
	}
	return
}

func (a *Assembly1D) Volume() *HDG.VolumeData { return &a.vol }
func (a *Assembly1D) Face() *HDG.FaceData     { return &a.face }

func (a *Assembly1D) Reinit(elem int) {
	var (
		b      = a.d.Basis1D
		x0, x1 = a.d.Bounds(elem)
		jac    = 0.5 * (x1 - x0)
		vd     = &a.vol
	)
	for qp := range vd.JxW {
		vd.JxW[qp] = b.WQ.AtVec(qp) * jac
		vd.QPoints[qp] = r3.Vec{X: x0 + (b.RQ.AtVec(qp)+1)*jac}
		for j := 0; j < b.Np; j++ {
			phi, dphi := b.Phi.At(qp, j), b.DPhi.At(qp, j)/jac
			vd.ScalarPhi[j][qp] = phi
			vd.GradScalarPhi[j][qp] = r3.Vec{X: dphi}
			vd.VectorPhi[j][qp] = r3.Vec{X: phi}
			vd.DivVectorPhi[j][qp] = dphi
		}
	}
}

func (a *Assembly1D) ReinitFace(elem, side int) {
	var (
		x0, x1 = a.d.Bounds(elem)
		fd     = &a.face
	)
	fd.Side = side
	fd.QPoints[0] = r3.Vec{X: x0}
	fd.Normals[0] = r3.Vec{X: -1}
	if side == 1 {
		fd.QPoints[0] = r3.Vec{X: x1}
		fd.Normals[0] = r3.Vec{X: 1}
	}
	for j, phi := range a.ends[side] {
		fd.ScalarPhi[j][0] = phi
		fd.VectorPhi[j][0] = r3.Vec{X: phi}
	}
	for s := range fd.LMPhi {
		fd.LMPhi[s][0] = 0
	}
	fd.LMPhi[side][0] = 1
}
