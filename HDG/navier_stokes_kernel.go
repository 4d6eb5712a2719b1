package HDG

import (
	"fmt"

	"github.com/notargets/gohdg/utils"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/spatial/r3"
)

// NavierStokesNames names the variables of the 2D hybridized Navier-Stokes
// problem. Global is optional, when set it names the scalar multiplier that
// fixes the mean pressure of an enclosed flow.
type NavierStokesNames struct {
	QU, U, QV, V string
	LMU, LMV     string
	P, Global    string
}

// NSFields are the variables of one Navier-Stokes element.
// Primal layout is [QU | U | QV | V], LM layout is [LMU | LMV | P | Global].
type NSFields struct {
	disc             Discretization
	QU, U, QV, V     *Variable
	LMU, LMV, P, Glb *Variable
	qSol             [2][]r3.Vec
	uSol             [2][]float64
	lmSol            [2][]float64
}

type nsLayout struct {
	q, u, lm [2]utils.Index // per component
	p, g     utils.Index
}

func NewNSFields(disc Discretization, names NavierStokesNames) (nf NSFields, err error) {
	get := func(name string, kind FieldKind) (v *Variable) {
		var e error
		if v, e = disc.Variable(name); e != nil {
			err = multierr.Append(err, e)
			return
		}
		if v.Kind != kind {
			err = multierr.Append(err, fmt.Errorf("variable %q must be a %s, got %s", name, kind, v.Kind))
		}
		return
	}
	nf.disc = disc
	if disc.Dim() != 2 {
		err = fmt.Errorf("%w: navier-stokes in %d dimensions", ErrNotImplemented, disc.Dim())
		return
	}
	nf.QU = get(names.QU, VectorField)
	nf.U = get(names.U, ScalarField)
	nf.QV = get(names.QV, VectorField)
	nf.V = get(names.V, ScalarField)
	nf.LMU = get(names.LMU, TraceField)
	nf.LMV = get(names.LMV, TraceField)
	nf.P = get(names.P, ScalarField)
	if names.Global != "" {
		nf.Glb = get(names.Global, GlobalScalar)
	}
	return
}

func (nf *NSFields) Variables() (vars []*Variable) {
	vars = []*Variable{nf.QU, nf.U, nf.QV, nf.V, nf.LMU, nf.LMV, nf.P}
	if nf.Glb != nil {
		vars = append(vars, nf.Glb)
	}
	return
}

func (nf *NSFields) layout(elem int) (l nsLayout) {
	var (
		vs, ss = nf.disc.NumLocalDofs(nf.QU, elem), nf.disc.NumLocalDofs(nf.U, elem)
		ls     = nf.disc.NumLocalDofs(nf.LMU, elem)
		ps     = nf.disc.NumLocalDofs(nf.P, elem)
	)
	for c := 0; c < 2; c++ {
		start := c * (vs + ss)
		l.q[c] = utils.NewRange(start, start+vs)
		l.u[c] = utils.NewRange(start+vs, start+vs+ss)
		l.lm[c] = utils.NewRange(c*ls, (c+1)*ls)
	}
	l.p = utils.NewRange(2*ls, 2*ls+ps)
	if nf.Glb != nil {
		l.g = utils.NewRange(2*ls+ps, 2*ls+ps+1)
	}
	return
}

func (nf *NSFields) Sizes(elem int) (nPrimal, nLM int) {
	l := nf.layout(elem)
	nPrimal = 2 * (len(l.q[0]) + len(l.u[0]))
	nLM = 2*len(l.lm[0]) + len(l.p) + len(l.g)
	return
}

func (nf *NSFields) PrimalIndices(elem int) utils.Index {
	d := nf.disc
	return utils.Concat(d.DofIndices(nf.QU, elem), d.DofIndices(nf.U, elem),
		d.DofIndices(nf.QV, elem), d.DofIndices(nf.V, elem))
}

func (nf *NSFields) LMIndices(elem int) utils.Index {
	d := nf.disc
	idx := utils.Concat(d.DofIndices(nf.LMU, elem), d.DofIndices(nf.LMV, elem), d.DofIndices(nf.P, elem))
	if nf.Glb != nil {
		idx = utils.Concat(idx, d.DofIndices(nf.Glb, elem))
	}
	return idx
}

func (nf *NSFields) reset() {
	for c := 0; c < 2; c++ {
		nf.qSol[c], nf.uSol[c], nf.lmSol[c] = nil, nil, nil
	}
}

// NavierStokesPhysics assembles the steady incompressible Navier-Stokes
// equations in 2D.
type NavierStokesPhysics struct {
	NavierStokesHelper
	NSFields
	BodyForce       [2]Functor
	PressureForcing Functor
}

func NewNavierStokesPhysics(disc Discretization, names NavierStokesNames, mu MaterialProperty,
	rho, tau float64, bodyForce [2]Functor, pressureForcing Functor, ti TimeState) (np *NavierStokesPhysics, err error) {
	np = &NavierStokesPhysics{
		NavierStokesHelper: NewNavierStokesHelper(mu, rho, tau, names.Global != "", ti),
		BodyForce:          bodyForce,
		PressureForcing:    pressureForcing,
	}
	if np.NSFields, err = NewNSFields(disc, names); err != nil {
		err = configErr(np.Name(), "", err)
		return
	}
	for c := range np.BodyForce {
		if np.BodyForce[c] == nil {
			np.BodyForce[c] = ConstantFunctor(0)
		}
	}
	if np.PressureForcing == nil {
		np.PressureForcing = ConstantFunctor(0)
	}
	return
}

func (np *NavierStokesPhysics) Name() string { return "NavierStokesPhysics" }

func (np *NavierStokesPhysics) Clone() ElementPhysics {
	c := *np
	c.NSFields.reset()
	c.NavierStokesHelper = c.NavierStokesHelper.clone()
	return &c
}

// clone drops the scratch space, the coefficients are shared.
func (h NavierStokesHelper) clone() NavierStokesHelper {
	h.diffVol, h.diffFace = nil, nil
	h.USol, h.VSol, h.PSol = nil, nil, nil
	h.LMUSol, h.LMVSol, h.PFace = nil, nil, nil
	return h
}

// volumeSolution refreshes the field values at the volume points.
func (np *NavierStokesPhysics) volumeSolution(ctx *ElementContext, vd *VolumeData, l nsLayout) {
	for c := 0; c < 2; c++ {
		np.qSol[c] = EvalVector(vd.VectorPhi, ctx.Primal, l.q[c][0], np.qSol[c])
		np.uSol[c] = EvalScalar(vd.ScalarPhi, ctx.Primal, l.u[c][0], np.uSol[c])
	}
	np.USol, np.VSol = np.uSol[0], np.uSol[1]
	np.PSol = EvalScalar(vd.ScalarPhi, ctx.LM, l.p[0], np.PSol)
	if len(l.g) != 0 {
		np.GlobalLM = ctx.LM.AtVec(l.g[0])
	}
}

func (np *NavierStokesPhysics) OnElement(ctx *ElementContext, hd *HybridizedData) {
	var (
		vd = ctx.Assembly.Volume()
		l  = np.layout(ctx.Elem)
	)
	np.ReinitVolume(ctx.Elem, vd)
	np.volumeSolution(ctx, vd, l)
	for c := 0; c < 2; c++ {
		q, u := l.q[c], l.u[c]
		np.VectorVolumeResidual(vd, np.qSol[c], np.uSol[c], vecView(hd.PrimalVec, q))
		np.VectorVolumeJacobian(vd, matView(hd.PrimalMat, q, q), matView(hd.PrimalMat, q, u))
		np.ScalarVolumeResidual(vd, c, np.qSol[c], np.BodyForce[c], vecView(hd.PrimalVec, u))
		np.ScalarVolumeJacobian(vd, c, matView(hd.PrimalMat, u, q), matView(hd.PrimalMat, u, l.u[0]),
			matView(hd.PrimalMat, u, l.u[1]), matView(hd.PrimalLM, u, l.p))
	}
	np.PressureVolumeResidual(vd, np.PressureForcing, vecView(hd.LMVec, l.p), vecView(hd.LMVec, l.g))
	np.PressureVolumeJacobian(vd, matView(hd.LMPrimal, l.p, l.u[0]), matView(hd.LMPrimal, l.p, l.u[1]),
		matView(hd.LMMat, l.p, l.g), matView(hd.LMMat, l.g, l.p))
}

func (np *NavierStokesPhysics) OnInternalSide(ctx *ElementContext, side int, hd *HybridizedData) {
	np.sideTerms(ctx, true, hd)
}

// faceSolution refreshes the field values at the points of the active face.
func (np *NavierStokesPhysics) faceSolution(ctx *ElementContext, fd *FaceData, l nsLayout) {
	np.ReinitFace(ctx.Elem, fd)
	for c := 0; c < 2; c++ {
		np.qSol[c] = EvalVector(fd.VectorPhi, ctx.Primal, l.q[c][0], np.qSol[c])
		np.uSol[c] = EvalScalar(fd.ScalarPhi, ctx.Primal, l.u[c][0], np.uSol[c])
		np.lmSol[c] = EvalScalar(fd.LMPhi, ctx.LM, l.lm[c][0], np.lmSol[c])
	}
	np.LMUSol, np.LMVSol = np.lmSol[0], np.lmSol[1]
	np.PFace = EvalScalar(fd.ScalarPhi, ctx.LM, l.p[0], np.PFace)
}

// sideTerms adds the face integrals of the active side into hd. Without a
// neighbor the trace equations lose their convective flux.
func (np *NavierStokesPhysics) sideTerms(ctx *ElementContext, hasNeighbor bool, hd *HybridizedData) {
	var (
		fd = ctx.Assembly.Face()
		l  = np.layout(ctx.Elem)
	)
	np.faceSolution(ctx, fd, l)
	for c := 0; c < 2; c++ {
		q, u, lm := l.q[c], l.u[c], l.lm[c]
		np.VectorFaceResidual(fd, np.lmSol[c], vecView(hd.PrimalVec, q))
		np.VectorFaceJacobian(fd, matView(hd.PrimalLM, q, lm))
		np.ScalarFaceResidual(fd, c, np.qSol[c], np.uSol[c], np.lmSol[c], vecView(hd.PrimalVec, u))
		np.ScalarFaceJacobian(fd, c, matView(hd.PrimalMat, u, q), matView(hd.PrimalMat, u, u),
			matView(hd.PrimalLM, u, lm), matView(hd.PrimalLM, u, l.p),
			matView(hd.PrimalLM, u, l.lm[0]), matView(hd.PrimalLM, u, l.lm[1]))
		np.LMFaceResidual(fd, c, hasNeighbor, np.qSol[c], np.uSol[c], np.lmSol[c], vecView(hd.LMVec, lm))
		np.LMFaceJacobian(fd, c, hasNeighbor, matView(hd.LMPrimal, lm, q), matView(hd.LMPrimal, lm, u),
			matView(hd.LMMat, lm, lm), matView(hd.LMMat, lm, l.p),
			matView(hd.LMMat, lm, l.lm[0]), matView(hd.LMMat, lm, l.lm[1]))
	}
	np.PressureFaceResidual(fd, vecView(hd.LMVec, l.p))
	np.PressureFaceJacobian(fd, matView(hd.LMMat, l.p, l.lm[0]), matView(hd.LMMat, l.p, l.lm[1]))
}

// NavierStokesVelocityDirichletBC imposes the velocity on its boundaries.
// The velocity traces there are unused and pinned by an identity block.
type NavierStokesVelocityDirichletBC struct {
	NavierStokesPhysics
	Velocity [2]Functor
	ids      []BoundaryID
	data     HybridizedData
}

func NewNavierStokesVelocityDirichletBC(disc Discretization, names NavierStokesNames, mu MaterialProperty,
	rho, tau float64, velocity [2]Functor, ti TimeState, ids ...BoundaryID) (bc *NavierStokesVelocityDirichletBC, err error) {
	bc = &NavierStokesVelocityDirichletBC{Velocity: velocity, ids: ids}
	for c := range bc.Velocity {
		if bc.Velocity[c] == nil {
			bc.Velocity[c] = ConstantFunctor(0)
		}
	}
	bc.NavierStokesHelper = NewNavierStokesHelper(mu, rho, tau, names.Global != "", ti)
	if bc.NSFields, err = NewNSFields(disc, names); err != nil {
		err = configErr(bc.Name(), "", err)
	}
	return
}

func (bc *NavierStokesVelocityDirichletBC) Name() string {
	return fmt.Sprintf("NavierStokesVelocityDirichletBC%v", bc.ids)
}

func (bc *NavierStokesVelocityDirichletBC) BoundaryIDs() []BoundaryID { return bc.ids }

func (bc *NavierStokesVelocityDirichletBC) Data() *HybridizedData { return &bc.data }

func (bc *NavierStokesVelocityDirichletBC) Clone() HybridizedBC {
	c := *bc
	c.data = HybridizedData{}
	c.NSFields.reset()
	c.NavierStokesHelper = c.NavierStokesHelper.clone()
	return &c
}

func (bc *NavierStokesVelocityDirichletBC) OnBoundary(ctx *ElementContext, side int) {
	var (
		fd = ctx.Assembly.Face()
		hd = &bc.data
		l  = bc.layout(ctx.Elem)
	)
	bc.faceSolution(ctx, fd, l)
	for c := 0; c < 2; c++ {
		q, u, lm := l.q[c], l.u[c], l.lm[c]
		bc.VectorDirichletResidual(fd, bc.Velocity[c], vecView(hd.PrimalVec, q))
		bc.ScalarDirichletResidual(fd, c, bc.qSol[c], bc.uSol[c], bc.Velocity, vecView(hd.PrimalVec, u))
		bc.ScalarDirichletJacobian(fd, c, matView(hd.PrimalMat, u, q), matView(hd.PrimalMat, u, u),
			matView(hd.PrimalLM, u, l.p))
		bc.CreateIdentityResidual(fd, fd.LMPhi, bc.lmSol[c], vecView(hd.LMVec, lm))
		bc.CreateIdentityJacobian(fd, fd.LMPhi, matView(hd.LMMat, lm, lm))
	}
	bc.PressureDirichletResidual(fd, bc.Velocity, vecView(hd.LMVec, l.p))
}

// NavierStokesOutflowBC is the natural condition: the side is assembled like
// an internal one minus the convective flux of the trace equations.
type NavierStokesOutflowBC struct {
	NavierStokesPhysics
	ids  []BoundaryID
	data HybridizedData
}

func NewNavierStokesOutflowBC(disc Discretization, names NavierStokesNames, mu MaterialProperty,
	rho, tau float64, ti TimeState, ids ...BoundaryID) (bc *NavierStokesOutflowBC, err error) {
	bc = &NavierStokesOutflowBC{ids: ids}
	bc.NavierStokesHelper = NewNavierStokesHelper(mu, rho, tau, names.Global != "", ti)
	if bc.NSFields, err = NewNSFields(disc, names); err != nil {
		err = configErr(bc.Name(), "", err)
	}
	return
}

func (bc *NavierStokesOutflowBC) Name() string {
	return fmt.Sprintf("NavierStokesOutflowBC%v", bc.ids)
}

func (bc *NavierStokesOutflowBC) BoundaryIDs() []BoundaryID { return bc.ids }

func (bc *NavierStokesOutflowBC) Data() *HybridizedData { return &bc.data }

func (bc *NavierStokesOutflowBC) Clone() HybridizedBC {
	c := *bc
	c.data = HybridizedData{}
	c.NSFields.reset()
	c.NavierStokesHelper = c.NavierStokesHelper.clone()
	return &c
}

func (bc *NavierStokesOutflowBC) OnBoundary(ctx *ElementContext, side int) {
	bc.sideTerms(ctx, false, &bc.data)
}
