package HDG

import (
	"github.com/notargets/gohdg/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// DiffusionHelper accumulates the local residuals and Jacobians of the
// hybridized mixed form of -div(D grad u) = f, with q = grad u as the flux
// variable and û the trace variable:
//
//	(v, q) + (div v, u) - <v·n, û>                         = 0
//	(grad w, D q) - (w, f) - <w, D q·n> + <w, τ(u - û)>     = 0
//	<μ, -D q·n + τ(u - û)> summed over the sides of a face  = 0
//
// Every method adds into caller owned blocks, nothing is resized here.
type DiffusionHelper struct {
	Diffusivity MaterialProperty
	Tau         float64
	TI          TimeState
	elem        int
	diffVol     []float64
	diffFace    []float64
}

func NewDiffusionHelper(diff MaterialProperty, tau float64, ti TimeState) DiffusionHelper {
	if ti == nil {
		ti = SteadyState{}
	}
	return DiffusionHelper{
		Diffusivity: diff,
		Tau:         tau,
		TI:          ti,
	}
}

// ReinitVolume refreshes the diffusivity at the volume quadrature points.
func (h *DiffusionHelper) ReinitVolume(elem int, vd *VolumeData) {
	h.elem = elem
	h.diffVol = fill(h.Diffusivity, elem, vd.QPoints, h.diffVol)
}

func (h *DiffusionHelper) ReinitFace(elem int, fd *FaceData) {
	h.elem = elem
	h.diffFace = fill(h.Diffusivity, elem, fd.QPoints, h.diffFace)
}

func (h *DiffusionHelper) VectorVolumeResidual(vd *VolumeData, qSol []r3.Vec, uSol []float64,
	re utils.Vector) {
	for qp := 0; qp < vd.NPoints(); qp++ {
		for i := range vd.VectorPhi {
			// Vector equation dependence on vector dofs
			val := r3.Dot(vd.VectorPhi[i][qp], qSol[qp])
			// Vector equation dependence on scalar dofs
			val += vd.DivVectorPhi[i][qp] * uSol[qp]
			re.AddAt(i, vd.JxW[qp]*val)
		}
	}
}

func (h *DiffusionHelper) VectorVolumeJacobian(vd *VolumeData, vectorVectorJac, vectorScalarJac utils.Matrix) {
	for qp := 0; qp < vd.NPoints(); qp++ {
		jxw := vd.JxW[qp]
		for i := range vd.VectorPhi {
			for j := range vd.VectorPhi {
				vectorVectorJac.AddAt(i, j, jxw*r3.Dot(vd.VectorPhi[i][qp], vd.VectorPhi[j][qp]))
			}
			for j := range vd.ScalarPhi {
				vectorScalarJac.AddAt(i, j, jxw*vd.DivVectorPhi[i][qp]*vd.ScalarPhi[j][qp])
			}
		}
	}
}

func (h *DiffusionHelper) ScalarVolumeResidual(vd *VolumeData, qSol []r3.Vec, source Functor,
	re utils.Vector) {
	var (
		state = h.TI.DetermineState()
	)
	for qp := 0; qp < vd.NPoints(); qp++ {
		f := source.Evaluate(ElemQp(h.elem, qp, vd, vd.QPoints[qp]), state)
		flux := r3.Scale(h.diffVol[qp], qSol[qp])
		for i := range vd.ScalarPhi {
			re.AddAt(i, vd.JxW[qp]*(r3.Dot(vd.GradScalarPhi[i][qp], flux)-vd.ScalarPhi[i][qp]*f))
		}
	}
}

func (h *DiffusionHelper) ScalarVolumeJacobian(vd *VolumeData, scalarVectorJac utils.Matrix) {
	for qp := 0; qp < vd.NPoints(); qp++ {
		jxw := vd.JxW[qp] * h.diffVol[qp]
		for i := range vd.ScalarPhi {
			for j := range vd.VectorPhi {
				scalarVectorJac.AddAt(i, j, jxw*r3.Dot(vd.GradScalarPhi[i][qp], vd.VectorPhi[j][qp]))
			}
		}
	}
}

func (h *DiffusionHelper) VectorFaceResidual(fd *FaceData, lmSol []float64, re utils.Vector) {
	for qp := 0; qp < fd.NPoints(); qp++ {
		for i := range fd.VectorPhi {
			re.AddAt(i, -fd.JxW[qp]*r3.Dot(fd.VectorPhi[i][qp], fd.Normals[qp])*lmSol[qp])
		}
	}
}

func (h *DiffusionHelper) VectorFaceJacobian(fd *FaceData, vectorLMJac utils.Matrix) {
	for qp := 0; qp < fd.NPoints(); qp++ {
		for i := range fd.VectorPhi {
			vn := fd.JxW[qp] * r3.Dot(fd.VectorPhi[i][qp], fd.Normals[qp])
			for j := range fd.LMPhi {
				vectorLMJac.AddAt(i, j, -vn*fd.LMPhi[j][qp])
			}
		}
	}
}

// faceFlux is -D q·n + τ(u - û) n·n at one face point.
func (h *DiffusionHelper) faceFlux(fd *FaceData, qp int, q r3.Vec, u, lm float64) float64 {
	n := fd.Normals[qp]
	return -h.diffFace[qp]*r3.Dot(q, n) + h.Tau*(u-lm)*r3.Dot(n, n)
}

func (h *DiffusionHelper) ScalarFaceResidual(fd *FaceData, qSol []r3.Vec, uSol, lmSol []float64,
	re utils.Vector) {
	for qp := 0; qp < fd.NPoints(); qp++ {
		flux := fd.JxW[qp] * h.faceFlux(fd, qp, qSol[qp], uSol[qp], lmSol[qp])
		for i := range fd.ScalarPhi {
			re.AddAt(i, fd.ScalarPhi[i][qp]*flux)
		}
	}
}

func (h *DiffusionHelper) ScalarFaceJacobian(fd *FaceData, scalarVectorJac, scalarScalarJac,
	scalarLMJac utils.Matrix) {
	h.faceJacobian(fd, fd.ScalarPhi, scalarVectorJac, scalarScalarJac, scalarLMJac)
}

// LMFaceResidual is the scalar face term tested with the trace basis.
func (h *DiffusionHelper) LMFaceResidual(fd *FaceData, qSol []r3.Vec, uSol, lmSol []float64,
	re utils.Vector) {
	for qp := 0; qp < fd.NPoints(); qp++ {
		flux := fd.JxW[qp] * h.faceFlux(fd, qp, qSol[qp], uSol[qp], lmSol[qp])
		for i := range fd.LMPhi {
			re.AddAt(i, fd.LMPhi[i][qp]*flux)
		}
	}
}

func (h *DiffusionHelper) LMFaceJacobian(fd *FaceData, lmVectorJac, lmScalarJac, lmLMJac utils.Matrix) {
	h.faceJacobian(fd, fd.LMPhi, lmVectorJac, lmScalarJac, lmLMJac)
}

func (h *DiffusionHelper) faceJacobian(fd *FaceData, test [][]float64, vecJac, scalarJac, lmJac utils.Matrix) {
	for qp := 0; qp < fd.NPoints(); qp++ {
		var (
			n    = fd.Normals[qp]
			jxw  = fd.JxW[qp]
			tauN = h.Tau * r3.Dot(n, n)
		)
		for i := range test {
			ti := test[i][qp]
			if ti == 0 {
				continue
			}
			for j := range fd.VectorPhi {
				vecJac.AddAt(i, j, -jxw*h.diffFace[qp]*ti*r3.Dot(fd.VectorPhi[j][qp], n))
			}
			for j := range fd.ScalarPhi {
				scalarJac.AddAt(i, j, jxw*tauN*ti*fd.ScalarPhi[j][qp])
			}
			if lmJac.IsEmpty() {
				continue
			}
			for j := range fd.LMPhi {
				lmJac.AddAt(i, j, -jxw*tauN*ti*fd.LMPhi[j][qp])
			}
		}
	}
}

func (h *DiffusionHelper) VectorDirichletResidual(fd *FaceData, dirichlet Functor, re utils.Vector) {
	var (
		state = h.TI.DetermineState()
	)
	for qp := 0; qp < fd.NPoints(); qp++ {
		g := dirichlet.Evaluate(ElemSideQp(h.elem, fd.Side, qp, fd, fd.QPoints[qp]), state)
		for i := range fd.VectorPhi {
			re.AddAt(i, -fd.JxW[qp]*r3.Dot(fd.VectorPhi[i][qp], fd.Normals[qp])*g)
		}
	}
}

func (h *DiffusionHelper) ScalarDirichletResidual(fd *FaceData, qSol []r3.Vec, uSol []float64,
	dirichlet Functor, re utils.Vector) {
	var (
		state = h.TI.DetermineState()
	)
	for qp := 0; qp < fd.NPoints(); qp++ {
		g := dirichlet.Evaluate(ElemSideQp(h.elem, fd.Side, qp, fd, fd.QPoints[qp]), state)
		flux := fd.JxW[qp] * h.faceFlux(fd, qp, qSol[qp], uSol[qp], g)
		for i := range fd.ScalarPhi {
			re.AddAt(i, fd.ScalarPhi[i][qp]*flux)
		}
	}
}

// ScalarDirichletJacobian has no trace block, the trace is replaced by data.
func (h *DiffusionHelper) ScalarDirichletJacobian(fd *FaceData, scalarVectorJac, scalarScalarJac utils.Matrix) {
	h.faceJacobian(fd, fd.ScalarPhi, scalarVectorJac, scalarScalarJac, utils.Matrix{})
}

// CreateIdentityResidual weakly pins a field to zero, -<phi_i, sol>.
func (h *DiffusionHelper) CreateIdentityResidual(fd *FaceData, phi [][]float64, sol []float64, re utils.Vector) {
	for qp := 0; qp < fd.NPoints(); qp++ {
		for i := range phi {
			re.AddAt(i, -fd.JxW[qp]*phi[i][qp]*sol[qp])
		}
	}
}

// CreateIdentityJacobian is the negative face mass matrix.
func (h *DiffusionHelper) CreateIdentityJacobian(fd *FaceData, phi [][]float64, jac utils.Matrix) {
	for qp := 0; qp < fd.NPoints(); qp++ {
		for i := range phi {
			if phi[i][qp] == 0 {
				continue
			}
			for j := range phi {
				jac.AddAt(i, j, -fd.JxW[qp]*phi[i][qp]*phi[j][qp])
			}
		}
	}
}
