package HDG

import (
	"github.com/notargets/gohdg/utils"
)

// HybridizedData holds the dense local blocks of one element. Primal rows
// belong to the element interior (aux) fields, LM rows to the fields that
// stay in the global system.
type HybridizedData struct {
	PrimalMat, PrimalLM, LMPrimal, LMMat utils.Matrix
	PrimalMatInv                         utils.Matrix
	PrimalVec, LMVec                     utils.Vector
	PrimalIncrement, LMIncrement         utils.Vector
}

// Resize zero fills the blocks, storage is only reallocated when a size changes.
func (hd *HybridizedData) Resize(nPrimal, nLM int) {
	hd.PrimalMat.Resize(nPrimal, nPrimal)
	hd.PrimalLM.Resize(nPrimal, nLM)
	hd.LMPrimal.Resize(nLM, nPrimal)
	hd.LMMat.Resize(nLM, nLM)
	hd.PrimalVec.Resize(nPrimal)
	hd.LMVec.Resize(nLM)
	hd.PrimalIncrement.Resize(nPrimal)
	hd.LMIncrement.Resize(nLM)
}

func (hd *HybridizedData) Sizes() (nPrimal, nLM int) {
	return hd.PrimalVec.Len(), hd.LMVec.Len()
}

// AddBCData folds a boundary condition's blocks into hd.
func (hd *HybridizedData) AddBCData(bc *HybridizedData) {
	hd.PrimalMat.Add(bc.PrimalMat)
	hd.PrimalLM.Add(bc.PrimalLM)
	hd.LMPrimal.Add(bc.LMPrimal)
	hd.LMMat.Add(bc.LMMat)
	hd.PrimalVec.Add(bc.PrimalVec)
	hd.LMVec.Add(bc.LMVec)
}

// Condense inverts PrimalMat and eliminates the primal unknowns:
//
//	LMMat -= LMPrimal PrimalMat⁻¹ PrimalLM
//	LMVec -= LMPrimal PrimalMat⁻¹ PrimalVec
func (hd *HybridizedData) Condense() (err error) {
	if err = hd.invert(); err != nil {
		return
	}
	LMPrimalInv := hd.LMPrimal.Mul(hd.PrimalMatInv)
	hd.LMMat.Subtract(LMPrimalInv.Mul(hd.PrimalLM))
	hd.LMVec.Subtract(LMPrimalInv.MulVec(hd.PrimalVec))
	return
}

// RecoverPrimal sets PrimalIncrement = PrimalMat⁻¹(-PrimalVec - PrimalLM LMIncrement).
func (hd *HybridizedData) RecoverPrimal() (err error) {
	if err = hd.invert(); err != nil {
		return
	}
	rhs := hd.PrimalVec.Copy().Scale(-1).Subtract(hd.PrimalLM.MulVec(hd.LMIncrement))
	hd.PrimalIncrement = hd.PrimalMatInv.MulVec(rhs)
	return
}

func (hd *HybridizedData) invert() (err error) {
	hd.PrimalMatInv, err = hd.PrimalMat.Inverse()
	return
}
