package DGQuad

import (
	"fmt"

	"github.com/notargets/gohdg/DG1D"
	"github.com/notargets/gohdg/HDG"
	"github.com/notargets/gohdg/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// HDGQuad is the hybridized discretization of a QuadMesh with the tensor
// product basis of order N. The vector basis is two copies of the scalar one,
// x components first. Each edge carries N+1 trace dofs.
type HDGQuad struct {
	*HDG.DofMap
	*QuadMesh
	Basis *DG1D.Basis1D
	Np1   int // nodes per direction
}

func NewHDGQuad(N, nx, ny int, x0, x1, y0, y1 float64) (d *HDGQuad) {
	d = &HDGQuad{
		QuadMesh: NewQuadMesh(nx, ny, x0, x1, y0, y1),
		Basis:    DG1D.NewBasis1D(N),
		Np1:      N + 1,
	}
	np2 := d.Np1 * d.Np1
	d.DofMap = HDG.NewDofMap(d.NumElements(), 2*np2, np2, d)
	return
}

func (d *HDGQuad) NumTraceDofs() int { return d.NumEdges() * d.Np1 }

func (d *HDGQuad) TraceDofs(elem int) (dofs []int) {
	dofs = make([]int, 0, 4*d.Np1)
	for side := 0; side < 4; side++ {
		first := d.Edge(elem, side) * d.Np1
		for m := 0; m < d.Np1; m++ {
			dofs = append(dofs, first+m)
		}
	}
	return
}

func (d *HDGQuad) AddDiffusionVariables(q, u, lm string) (err error) {
	if _, err = d.AddVariable(q, HDG.VectorField, HDG.Aux); err != nil {
		return
	}
	if _, err = d.AddVariable(u, HDG.ScalarField, HDG.Aux); err != nil {
		return
	}
	_, err = d.AddVariable(lm, HDG.TraceField, HDG.Nonlinear)
	return
}

// AddNavierStokesVariables adds the velocity gradients and velocities to the
// aux system, the velocity traces, the pressure and the optional global
// multiplier to the nonlinear one.
func (d *HDGQuad) AddNavierStokesVariables(names HDG.NavierStokesNames) (err error) {
	vars := []struct {
		name string
		kind HDG.FieldKind
		sys  HDG.SystemKind
	}{
		{names.QU, HDG.VectorField, HDG.Aux},
		{names.U, HDG.ScalarField, HDG.Aux},
		{names.QV, HDG.VectorField, HDG.Aux},
		{names.V, HDG.ScalarField, HDG.Aux},
		{names.LMU, HDG.TraceField, HDG.Nonlinear},
		{names.LMV, HDG.TraceField, HDG.Nonlinear},
		{names.P, HDG.ScalarField, HDG.Nonlinear},
	}
	if names.Global != "" {
		vars = append(vars, struct {
			name string
			kind HDG.FieldKind
			sys  HDG.SystemKind
		}{names.Global, HDG.GlobalScalar, HDG.Nonlinear})
	}
	for _, v := range vars {
		if _, err = d.AddVariable(v.name, v.kind, v.sys); err != nil {
			return
		}
	}
	return
}

// tensor returns the value and gradient in reference coordinates of scalar
// basis function j at a point given by the 1D tables of each direction.
func (d *HDGQuad) tensor(j int, pr, dpr, ps, dps []float64) (phi float64, grad r3.Vec) {
	a, b := j%d.Np1, j/d.Np1
	phi = pr[a] * ps[b]
	grad = r3.Vec{X: dpr[a] * ps[b], Y: pr[a] * dps[b]}
	return
}

// Evaluate interpolates the scalar field v of sol at (x, y).
func (d *HDGQuad) Evaluate(sol utils.Vector, v *HDG.Variable, x, y float64) (val float64) {
	if v.Kind != HDG.ScalarField {
		panic(fmt.Errorf("variable %q is not a scalar field", v.Name))
	}
	elem, r, s := d.Locate(x, y)
	phiR, dphiR := d.Basis.Evaluate(utils.NewVector(1, []float64{r}))
	phiS, dphiS := d.Basis.Evaluate(utils.NewVector(1, []float64{s}))
	c := sol.Gather(d.DofIndices(v, elem))
	for j := 0; j < c.Len(); j++ {
		phi, _ := d.tensor(j, phiR.Row(0), dphiR.Row(0), phiS.Row(0), dphiS.Row(0))
		val += phi * c.AtVec(j)
	}
	return
}

// Integrate is the integral of the scalar field v of sol over the domain.
func (d *HDGQuad) Integrate(sol utils.Vector, v *HDG.Variable) (sum float64) {
	a := d.NewAssembly()
	for k := 0; k < d.NumElements(); k++ {
		a.Reinit(k)
		vd := a.Volume()
		vals := HDG.EvalScalar(vd.ScalarPhi, sol.Gather(d.DofIndices(v, k)), 0, nil)
		for qp, val := range vals {
			sum += vd.JxW[qp] * val
		}
	}
	return
}

func (d *HDGQuad) NewAssembly() HDG.Assembly { return newAssembly2D(d) }

// Assembly2D fills the tensor product tables of one quad.
type Assembly2D struct {
	d        *HDGQuad
	vol      HDG.VolumeData
	face     HDG.FaceData
	ends     [2][]float64 // 1D basis values and derivatives at r = -1 and r = 1
	endsGrad [2][]float64
	xi       utils.Vector // edge parameters of the face points
}

func newAssembly2D(d *HDGQuad) (a *Assembly2D) {
	var (
		np2 = d.Np1 * d.Np1
		nq  = d.Basis.RQ.Len()
	)
	a = &Assembly2D{d: d, xi: utils.NewVector(nq)}
	a.vol = HDG.VolumeData{
		JxW:           make([]float64, nq*nq),
		QPoints:       make([]r3.Vec, nq*nq),
		VectorPhi:     vecTable(2*np2, nq*nq),
		DivVectorPhi:  table(2*np2, nq*nq),
		ScalarPhi:     table(np2, nq*nq),
		GradScalarPhi: vecTable(np2, nq*nq),
	}
	a.face = HDG.FaceData{
		JxW:       make([]float64, nq),
		QPoints:   make([]r3.Vec, nq),
		Normals:   make([]r3.Vec, nq),
		VectorPhi: vecTable(2*np2, nq),
		ScalarPhi: table(np2, nq),
		LMPhi:     table(4*d.Np1, nq),
	}
	phi, dphi := d.Basis.Evaluate(utils.NewVector(2, []float64{-1, 1}))
	for e := 0; e < 2; e++ {
		a.ends[e], a.endsGrad[e] = phi.Row(e), dphi.Row(e)
	}
	return
}

func table(n, nq int) (t [][]float64) {
	t = make([][]float64, n)
	for i := range t {
		t[i] = make([]float64, nq)
	}
	return
}

func vecTable(n, nq int) (t [][]r3.Vec) {
	t = make([][]r3.Vec, n)
	for i := range t {
		t[i] = make([]r3.Vec, nq)
	}
	return
}

func (a *Assembly2D) Volume() *HDG.VolumeData { return &a.vol }
func (a *Assembly2D) Face() *HDG.FaceData     { return &a.face }

func (a *Assembly2D) Reinit(elem int) {
	var (
		d      = a.d
		b      = d.Basis
		nq     = b.RQ.Len()
		np2    = d.Np1 * d.Np1
		x0, y0 = d.Corner(elem)
		jx, jy = d.HX / 2, d.HY / 2
		vd     = &a.vol
	)
	for qb := 0; qb < nq; qb++ {
		for qa := 0; qa < nq; qa++ {
			qp := qa + qb*nq
			vd.JxW[qp] = b.WQ.AtVec(qa) * b.WQ.AtVec(qb) * jx * jy
			vd.QPoints[qp] = r3.Vec{X: x0 + (b.RQ.AtVec(qa)+1)*jx, Y: y0 + (b.RQ.AtVec(qb)+1)*jy}
			pr, dpr := b.Phi.Row(qa), b.DPhi.Row(qa)
			ps, dps := b.Phi.Row(qb), b.DPhi.Row(qb)
			for j := 0; j < np2; j++ {
				phi, g := d.tensor(j, pr, dpr, ps, dps)
				g = r3.Vec{X: g.X / jx, Y: g.Y / jy}
				vd.ScalarPhi[j][qp] = phi
				vd.GradScalarPhi[j][qp] = g
				vd.VectorPhi[j][qp] = r3.Vec{X: phi}
				vd.VectorPhi[np2+j][qp] = r3.Vec{Y: phi}
				vd.DivVectorPhi[j][qp] = g.X
				vd.DivVectorPhi[np2+j][qp] = g.Y
			}
		}
	}
}

// ReinitFace places the face points with the 1D Gauss rule along the edge
// orientation and recovers their edge parameters through the inverse map.
func (a *Assembly2D) ReinitFace(elem, side int) {
	var (
		d    = a.d
		b    = d.Basis
		nq   = b.RQ.Len()
		np2  = d.Np1 * d.Np1
		A, B = d.EdgeEnds(elem, side)
		edge = HDG.LinearEdge{A: A, B: B}
		half = 0.5 * r3.Norm(r3.Sub(B, A))
		fd   = &a.face
	)
	fd.Side = side
	for qp := 0; qp < nq; qp++ {
		t := b.RQ.AtVec(qp)
		fd.JxW[qp] = b.WQ.AtVec(qp) * half
		fd.QPoints[qp] = r3.Add(A, r3.Scale(0.5*(t+1), r3.Sub(B, A)))
		fd.Normals[qp] = sideNormals[side]
		xi, err := HDG.InverseMap(edge, fd.QPoints[qp], nil)
		if err != nil {
			panic(fmt.Errorf("element %d side %d: %w", elem, side, err))
		}
		a.xi.Set(qp, xi[0])
		// 1D tables across and along the side
		var (
			pt, dpt = b.Phi.Row(qp), b.DPhi.Row(qp)
			pr, dpr = pt, dpt
			ps, dps = pt, dpt
		)
		switch side {
		case Bottom:
			ps, dps = a.ends[0], a.endsGrad[0]
		case Top:
			ps, dps = a.ends[1], a.endsGrad[1]
		case Left:
			pr, dpr = a.ends[0], a.endsGrad[0]
		case Right:
			pr, dpr = a.ends[1], a.endsGrad[1]
		}
		for j := 0; j < np2; j++ {
			phi, _ := d.tensor(j, pr, dpr, ps, dps)
			fd.ScalarPhi[j][qp] = phi
			fd.VectorPhi[j][qp] = r3.Vec{X: phi}
			fd.VectorPhi[np2+j][qp] = r3.Vec{Y: phi}
		}
	}
	edgePhi, _ := b.Evaluate(a.xi)
	for row := range fd.LMPhi {
		s, m := row/d.Np1, row%d.Np1
		for qp := 0; qp < nq; qp++ {
			fd.LMPhi[row][qp] = 0
			if s == side {
				fd.LMPhi[row][qp] = edgePhi.At(qp, m)
			}
		}
	}
}
