package HDG

import (
	"fmt"

	"github.com/notargets/gohdg/utils"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/spatial/r3"
)

// DiffusionFields are the variables of the hybridized diffusion problem, the
// flux Q and scalar U recovered per element and the trace LM solved for.
// Primal layout is [Q | U], LM layout is [LM].
type DiffusionFields struct {
	disc     Discretization
	Q, U, LM *Variable
	// scratch, solutions at the active quadrature points
	qSol  []r3.Vec
	uSol  []float64
	lmSol []float64
}

func NewDiffusionFields(disc Discretization, q, u, lm string) (df DiffusionFields, err error) {
	var e error
	df.disc = disc
	df.Q, e = disc.Variable(q)
	err = multierr.Append(err, e)
	df.U, e = disc.Variable(u)
	err = multierr.Append(err, e)
	df.LM, e = disc.Variable(lm)
	err = multierr.Append(err, e)
	if err != nil {
		return
	}
	if df.Q.Kind != VectorField || df.U.Kind != ScalarField || df.LM.Kind != TraceField {
		err = fmt.Errorf("diffusion needs vector, scalar and trace fields, got %s, %s and %s",
			df.Q.Kind, df.U.Kind, df.LM.Kind)
	}
	return
}

func (df *DiffusionFields) Variables() []*Variable { return []*Variable{df.Q, df.U, df.LM} }

func (df *DiffusionFields) layout(elem int) (vs, ss, ls int) {
	return df.disc.NumLocalDofs(df.Q, elem), df.disc.NumLocalDofs(df.U, elem), df.disc.NumLocalDofs(df.LM, elem)
}

func (df *DiffusionFields) Sizes(elem int) (nPrimal, nLM int) {
	vs, ss, ls := df.layout(elem)
	return vs + ss, ls
}

func (df *DiffusionFields) PrimalIndices(elem int) utils.Index {
	return utils.Concat(df.disc.DofIndices(df.Q, elem), df.disc.DofIndices(df.U, elem))
}

func (df *DiffusionFields) LMIndices(elem int) utils.Index {
	return df.disc.DofIndices(df.LM, elem)
}

func (df *DiffusionFields) volumeSolution(ctx *ElementContext, vd *VolumeData) {
	vs, _, _ := df.layout(ctx.Elem)
	df.qSol = EvalVector(vd.VectorPhi, ctx.Primal, 0, df.qSol)
	df.uSol = EvalScalar(vd.ScalarPhi, ctx.Primal, vs, df.uSol)
}

func (df *DiffusionFields) faceSolution(ctx *ElementContext, fd *FaceData) {
	vs, _, _ := df.layout(ctx.Elem)
	df.qSol = EvalVector(fd.VectorPhi, ctx.Primal, 0, df.qSol)
	df.uSol = EvalScalar(fd.ScalarPhi, ctx.Primal, vs, df.uSol)
	df.lmSol = EvalScalar(fd.LMPhi, ctx.LM, 0, df.lmSol)
}

// DiffusionPhysics assembles -div(D grad u) = f.
type DiffusionPhysics struct {
	DiffusionHelper
	DiffusionFields
	Source Functor
}

func NewDiffusionPhysics(disc Discretization, q, u, lm string, diff MaterialProperty, tau float64,
	source Functor, ti TimeState) (dp *DiffusionPhysics, err error) {
	dp = &DiffusionPhysics{
		DiffusionHelper: NewDiffusionHelper(diff, tau, ti),
		Source:          source,
	}
	if dp.DiffusionFields, err = NewDiffusionFields(disc, q, u, lm); err != nil {
		err = configErr(dp.Name(), "", err)
		return
	}
	if dp.Source == nil {
		dp.Source = ConstantFunctor(0)
	}
	return
}

func (dp *DiffusionPhysics) Name() string { return "DiffusionPhysics" }

func (dp *DiffusionPhysics) Clone() ElementPhysics {
	c := *dp
	c.DiffusionFields.qSol, c.DiffusionFields.uSol, c.DiffusionFields.lmSol = nil, nil, nil
	c.DiffusionHelper.diffVol, c.DiffusionHelper.diffFace = nil, nil
	return &c
}

func (dp *DiffusionPhysics) OnElement(ctx *ElementContext, hd *HybridizedData) {
	var (
		vd        = ctx.Assembly.Volume()
		vs, ss, _ = dp.layout(ctx.Elem)
		q, u      = utils.NewRange(0, vs), utils.NewRange(vs, vs+ss)
	)
	dp.ReinitVolume(ctx.Elem, vd)
	dp.volumeSolution(ctx, vd)
	dp.VectorVolumeResidual(vd, dp.qSol, dp.uSol, vecView(hd.PrimalVec, q))
	dp.VectorVolumeJacobian(vd, matView(hd.PrimalMat, q, q), matView(hd.PrimalMat, q, u))
	dp.ScalarVolumeResidual(vd, dp.qSol, dp.Source, vecView(hd.PrimalVec, u))
	dp.ScalarVolumeJacobian(vd, matView(hd.PrimalMat, u, q))
}

func (dp *DiffusionPhysics) OnInternalSide(ctx *ElementContext, side int, hd *HybridizedData) {
	var (
		fd         = ctx.Assembly.Face()
		vs, ss, ls = dp.layout(ctx.Elem)
		q, u, lm   = utils.NewRange(0, vs), utils.NewRange(vs, vs+ss), utils.NewRange(0, ls)
	)
	dp.ReinitFace(ctx.Elem, fd)
	dp.faceSolution(ctx, fd)
	dp.VectorFaceResidual(fd, dp.lmSol, vecView(hd.PrimalVec, q))
	dp.VectorFaceJacobian(fd, matView(hd.PrimalLM, q, lm))
	dp.ScalarFaceResidual(fd, dp.qSol, dp.uSol, dp.lmSol, vecView(hd.PrimalVec, u))
	dp.ScalarFaceJacobian(fd, matView(hd.PrimalMat, u, q), matView(hd.PrimalMat, u, u), matView(hd.PrimalLM, u, lm))
	dp.LMFaceResidual(fd, dp.qSol, dp.uSol, dp.lmSol, vecView(hd.LMVec, lm))
	dp.LMFaceJacobian(fd, matView(hd.LMPrimal, lm, q), matView(hd.LMPrimal, lm, u), matView(hd.LMMat, lm, lm))
}

// DiffusionDirichletBC replaces the trace by the data G on its boundaries
// and pins the unused trace dofs there with an identity block.
type DiffusionDirichletBC struct {
	DiffusionHelper
	DiffusionFields
	G    Functor
	ids  []BoundaryID
	data HybridizedData
}

func NewDiffusionDirichletBC(disc Discretization, q, u, lm string, diff MaterialProperty, tau float64,
	g Functor, ti TimeState, ids ...BoundaryID) (bc *DiffusionDirichletBC, err error) {
	bc = &DiffusionDirichletBC{
		DiffusionHelper: NewDiffusionHelper(diff, tau, ti),
		G:               g,
		ids:             ids,
	}
	if bc.DiffusionFields, err = NewDiffusionFields(disc, q, u, lm); err != nil {
		err = configErr(bc.Name(), "", err)
	}
	return
}

func (bc *DiffusionDirichletBC) Name() string {
	return fmt.Sprintf("DiffusionDirichletBC%v", bc.ids)
}

func (bc *DiffusionDirichletBC) BoundaryIDs() []BoundaryID { return bc.ids }

func (bc *DiffusionDirichletBC) Data() *HybridizedData { return &bc.data }

func (bc *DiffusionDirichletBC) Clone() HybridizedBC {
	c := *bc
	c.data = HybridizedData{}
	c.DiffusionFields.qSol, c.DiffusionFields.uSol, c.DiffusionFields.lmSol = nil, nil, nil
	c.DiffusionHelper.diffVol, c.DiffusionHelper.diffFace = nil, nil
	return &c
}

func (bc *DiffusionDirichletBC) OnBoundary(ctx *ElementContext, side int) {
	var (
		fd         = ctx.Assembly.Face()
		hd         = &bc.data
		vs, ss, ls = bc.layout(ctx.Elem)
		q, u, lm   = utils.NewRange(0, vs), utils.NewRange(vs, vs+ss), utils.NewRange(0, ls)
	)
	bc.ReinitFace(ctx.Elem, fd)
	bc.faceSolution(ctx, fd)
	bc.VectorDirichletResidual(fd, bc.G, vecView(hd.PrimalVec, q))
	bc.ScalarDirichletResidual(fd, bc.qSol, bc.uSol, bc.G, vecView(hd.PrimalVec, u))
	bc.ScalarDirichletJacobian(fd, matView(hd.PrimalMat, u, q), matView(hd.PrimalMat, u, u))
	bc.CreateIdentityResidual(fd, fd.LMPhi, bc.lmSol, vecView(hd.LMVec, lm))
	bc.CreateIdentityJacobian(fd, fd.LMPhi, matView(hd.LMMat, lm, lm))
}

// vecView and matView address a contiguous block of the local layout.
func vecView(v utils.Vector, r utils.Index) utils.Vector {
	if len(r) == 0 {
		return utils.Vector{}
	}
	return v.View(r[0], r[0]+len(r))
}

func matView(m utils.Matrix, rows, cols utils.Index) utils.Matrix {
	if len(rows) == 0 || len(cols) == 0 {
		return utils.Matrix{}
	}
	return m.View(rows[0], rows[0]+len(rows), cols[0], cols[0]+len(cols))
}
