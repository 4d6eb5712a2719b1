package HDG

import (
	"fmt"

	"github.com/notargets/gohdg/utils"
)

// ElementContext is what physics and boundary objects see of the element
// being assembled. Primal and LM hold the current local dof values in the
// order of PrimalIndices and LMIndices.
type ElementContext struct {
	Elem     int
	Assembly Assembly
	Primal   utils.Vector
	LM       utils.Vector
}

// ElementPhysics fills the local blocks of one element. Implementations keep
// scratch space and are cloned once per goroutine.
type ElementPhysics interface {
	Name() string
	Variables() []*Variable
	Sizes(elem int) (nPrimal, nLM int)
	PrimalIndices(elem int) utils.Index
	LMIndices(elem int) utils.Index
	OnElement(ctx *ElementContext, hd *HybridizedData)
	OnInternalSide(ctx *ElementContext, side int, hd *HybridizedData)
	Clone() ElementPhysics
}

// HybridizedBC contributes boundary terms into its own blocks, which the
// kernel folds into the element blocks.
type HybridizedBC interface {
	Name() string
	Variables() []*Variable
	BoundaryIDs() []BoundaryID
	OnBoundary(ctx *ElementContext, side int)
	Data() *HybridizedData
	Clone() HybridizedBC
}

// HybridizedKernel drives the local assembly, static condensation and primal
// recovery for the elements handed to it. One kernel per goroutine.
type HybridizedKernel struct {
	HybridizedData
	sys               *System
	disc              Discretization
	physics           ElementPhysics
	bcs               map[BoundaryID][]HybridizedBC
	ctx               ElementContext
	computingForSolve bool
}

func NewHybridizedKernel(sys *System, disc Discretization, physics ElementPhysics,
	bcs []HybridizedBC) (hk *HybridizedKernel) {
	hk = &HybridizedKernel{
		sys:     sys,
		disc:    disc,
		physics: physics.Clone(),
		bcs:     make(map[BoundaryID][]HybridizedBC),
		ctx: ElementContext{
			Assembly: disc.NewAssembly(),
		},
	}
	for _, bc := range bcs {
		bcc := bc.Clone()
		for _, bid := range bcc.BoundaryIDs() {
			hk.bcs[bid] = append(hk.bcs[bid], bcc)
		}
	}
	return
}

// ComputeResidualAndJacobian assembles elem, condenses it and adds the
// condensed residual and Jacobian to the global system.
func (hk *HybridizedKernel) ComputeResidualAndJacobian(elem int) {
	hk.computingForSolve = true
	hk.assemble(elem)
}

// ComputePostLinearSolve reassembles elem at the current solution, recovers
// the primal increment from the solved trace increment and adds it to the
// aux solution.
func (hk *HybridizedKernel) ComputePostLinearSolve(elem int) {
	hk.computingForSolve = false
	hk.assemble(elem)
}

func (hk *HybridizedKernel) assemble(elem int) {
	var (
		pIdx, lmIdx = hk.assembleLocal(elem)
	)
	if hk.computingForSolve {
		primalNorm2 := hk.PrimalVec.Norm()
		primalNorm2 *= primalNorm2
		if err := hk.Condense(); err != nil {
			panic(fmt.Errorf("%w: %s element %d: %v", ErrSingularBlock, hk.physics.Name(), elem, err))
		}
		hk.sys.AddCondensed(lmIdx, hk.LMMat, hk.LMVec, primalNorm2)
		return
	}
	hk.LMIncrement = hk.sys.Vector(LMIncrementVector).Gather(lmIdx)
	if err := hk.RecoverPrimal(); err != nil {
		panic(fmt.Errorf("%w: %s element %d: %v", ErrSingularBlock, hk.physics.Name(), elem, err))
	}
	hk.sys.AddToAux(pIdx, hk.PrimalIncrement)
}

// LocalBlocks runs the element and side assembly of elem and returns a copy
// of the uncondensed blocks. The global system is not touched.
func (hk *HybridizedKernel) LocalBlocks(elem int) (hd HybridizedData) {
	hk.assembleLocal(elem)
	hd = HybridizedData{
		PrimalMat: hk.PrimalMat.Copy(),
		PrimalLM:  hk.PrimalLM.Copy(),
		LMPrimal:  hk.LMPrimal.Copy(),
		LMMat:     hk.LMMat.Copy(),
		PrimalVec: hk.PrimalVec.Copy(),
		LMVec:     hk.LMVec.Copy(),
	}
	return
}

func (hk *HybridizedKernel) assembleLocal(elem int) (pIdx, lmIdx utils.Index) {
	var (
		nP, nLM = hk.physics.Sizes(elem)
		asm     = hk.ctx.Assembly
	)
	pIdx = hk.physics.PrimalIndices(elem)
	lmIdx = hk.physics.LMIndices(elem)
	hk.Resize(nP, nLM)
	hk.ctx.Elem = elem
	hk.ctx.Primal = hk.sys.Aux.Gather(pIdx)
	hk.ctx.LM = hk.sys.Solution.Gather(lmIdx)

	asm.Reinit(elem)
	hk.physics.OnElement(&hk.ctx, &hk.HybridizedData)
	for side := 0; side < hk.disc.NumSides(elem); side++ {
		var reinit bool
		for _, bid := range hk.disc.BoundaryIDs(elem, side) {
			for _, bc := range hk.bcs[bid] {
				if !reinit {
					asm.ReinitFace(elem, side)
					reinit = true
				}
				bc.Data().Resize(nP, nLM)
				bc.OnBoundary(&hk.ctx, side)
				hk.AddBCData(bc.Data())
			}
		}
		if _, ok := hk.disc.Neighbor(elem, side); ok {
			if !reinit {
				asm.ReinitFace(elem, side)
			}
			hk.physics.OnInternalSide(&hk.ctx, side, &hk.HybridizedData)
		}
	}
	return
}
