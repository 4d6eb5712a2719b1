package HDG

import (
	"github.com/notargets/gohdg/autodiff"
	"github.com/notargets/gohdg/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// NavierStokesHelper adds the pressure and convective terms of the
// incompressible Navier-Stokes equations to the diffusion forms, one velocity
// component at a time, plus the mass conservation equation for the pressure.
// The diffusion part is always added first.
//
// The caller refreshes the solution caches before each use: USol, VSol and
// PSol at volume points, LMUSol, LMVSol and PFace at face points.
type NavierStokesHelper struct {
	DiffusionHelper
	Rho                   float64
	Enclosure             bool    // a global multiplier removes the pressure nullspace
	GlobalLM              float64 // current value of that multiplier
	USol, VSol, PSol      []float64
	LMUSol, LMVSol, PFace []float64
}

func NewNavierStokesHelper(mu MaterialProperty, rho, tau float64, enclosure bool, ti TimeState) NavierStokesHelper {
	return NavierStokesHelper{
		DiffusionHelper: NewDiffusionHelper(mu, tau, ti),
		Rho:             rho,
		Enclosure:       enclosure,
	}
}

// rhoVelCrossVel returns ρ U U_c and its derivatives with respect to the two
// velocity components, computed with two seeded dual directions.
func (h *NavierStokesHelper) rhoVelCrossVel(u, v float64, comp int) (F, dFdU, dFdV r3.Vec) {
	var (
		U   = autodiff.Seed(autodiff.Real(u), autodiff.Real(v))
		rho = autodiff.Real(h.Rho)
		Fx  = U[0].Mul(U[comp]).MulScalar(rho)
		Fy  = U[1].Mul(U[comp]).MulScalar(rho)
		J   = autodiff.Jacobian([]autodiff.DualArray{Fx, Fy}, 2)
	)
	F = r3.Vec{X: Fx.Float(), Y: Fy.Float()}
	dFdU = r3.Vec{X: J[0][0], Y: J[1][0]}
	dFdV = r3.Vec{X: J[0][1], Y: J[1][1]}
	return
}

func component(v r3.Vec, comp int) float64 {
	if comp == 0 {
		return v.X
	}
	return v.Y
}

func unit(comp int, val float64) (e r3.Vec) {
	if comp == 0 {
		e.X = val
	} else {
		e.Y = val
	}
	return
}

func (h *NavierStokesHelper) ScalarVolumeResidual(vd *VolumeData, comp int, velGradient []r3.Vec,
	bodyForce Functor, re utils.Vector) {
	h.DiffusionHelper.ScalarVolumeResidual(vd, velGradient, bodyForce, re)
	for qp := 0; qp < vd.NPoints(); qp++ {
		var (
			F, _, _ = h.rhoVelCrossVel(h.USol[qp], h.VSol[qp], comp)
			flux    = r3.Add(unit(comp, h.PSol[qp]), F)
		)
		for i := range vd.ScalarPhi {
			re.AddAt(i, -vd.JxW[qp]*r3.Dot(vd.GradScalarPhi[i][qp], flux))
		}
	}
}

func (h *NavierStokesHelper) ScalarVolumeJacobian(vd *VolumeData, comp int,
	scalarVectorJac, scalarUJac, scalarVJac, scalarPJac utils.Matrix) {
	h.DiffusionHelper.ScalarVolumeJacobian(vd, scalarVectorJac)
	for qp := 0; qp < vd.NPoints(); qp++ {
		var (
			jxw           = vd.JxW[qp]
			_, dFdU, dFdV = h.rhoVelCrossVel(h.USol[qp], h.VSol[qp], comp)
		)
		for i := range vd.ScalarPhi {
			gi := vd.GradScalarPhi[i][qp]
			for j := range vd.ScalarPhi {
				phi := vd.ScalarPhi[j][qp]
				scalarPJac.AddAt(i, j, -jxw*r3.Dot(gi, unit(comp, phi)))
				scalarUJac.AddAt(i, j, -jxw*phi*r3.Dot(gi, dFdU))
				scalarVJac.AddAt(i, j, -jxw*phi*r3.Dot(gi, dFdV))
			}
		}
	}
}

// PressureVolumeResidual is -(grad w, U) - (w, f) - (w, λ) and, with an
// enclosure multiplier λ, the constraint -∫p.
func (h *NavierStokesHelper) PressureVolumeResidual(vd *VolumeData, forcing Functor,
	pressureRe, globalRe utils.Vector) {
	var (
		state = h.TI.DetermineState()
	)
	for qp := 0; qp < vd.NPoints(); qp++ {
		var (
			jxw = vd.JxW[qp]
			f   = forcing.Evaluate(ElemQp(h.elem, qp, vd, vd.QPoints[qp]), state)
			vel = r3.Vec{X: h.USol[qp], Y: h.VSol[qp]}
		)
		for i := range vd.ScalarPhi {
			val := r3.Dot(vd.GradScalarPhi[i][qp], vel) + vd.ScalarPhi[i][qp]*f
			if h.Enclosure {
				val += vd.ScalarPhi[i][qp] * h.GlobalLM
			}
			pressureRe.AddAt(i, -jxw*val)
		}
		if h.Enclosure {
			globalRe.AddAt(0, -jxw*h.PSol[qp])
		}
	}
}

func (h *NavierStokesHelper) PressureVolumeJacobian(vd *VolumeData, pUJac, pVJac, pGlobalJac,
	globalPJac utils.Matrix) {
	for qp := 0; qp < vd.NPoints(); qp++ {
		jxw := vd.JxW[qp]
		for i := range vd.ScalarPhi {
			gi := vd.GradScalarPhi[i][qp]
			for j := range vd.ScalarPhi {
				pUJac.AddAt(i, j, -jxw*gi.X*vd.ScalarPhi[j][qp])
				pVJac.AddAt(i, j, -jxw*gi.Y*vd.ScalarPhi[j][qp])
			}
			if h.Enclosure {
				pGlobalJac.AddAt(i, 0, -jxw*vd.ScalarPhi[i][qp])
			}
		}
		if h.Enclosure {
			for j := range vd.ScalarPhi {
				globalPJac.AddAt(0, j, -jxw*vd.ScalarPhi[j][qp])
			}
		}
	}
}

func (h *NavierStokesHelper) PressureFaceResidual(fd *FaceData, pressureRe utils.Vector) {
	for qp := 0; qp < fd.NPoints(); qp++ {
		vdotn := r3.Dot(r3.Vec{X: h.LMUSol[qp], Y: h.LMVSol[qp]}, fd.Normals[qp])
		for i := range fd.ScalarPhi {
			pressureRe.AddAt(i, fd.JxW[qp]*vdotn*fd.ScalarPhi[i][qp])
		}
	}
}

func (h *NavierStokesHelper) PressureFaceJacobian(fd *FaceData, pLMUJac, pLMVJac utils.Matrix) {
	for qp := 0; qp < fd.NPoints(); qp++ {
		n := fd.Normals[qp]
		for i := range fd.ScalarPhi {
			wi := fd.JxW[qp] * fd.ScalarPhi[i][qp]
			for j := range fd.LMPhi {
				pLMUJac.AddAt(i, j, wi*fd.LMPhi[j][qp]*n.X)
				pLMVJac.AddAt(i, j, wi*fd.LMPhi[j][qp]*n.Y)
			}
		}
	}
}

// faceTerms adds <t_i, p e_c·n> and, when convect is set, <t_i, ρ Û Û_c·n>
// with the test basis t.
func (h *NavierStokesHelper) faceTerms(fd *FaceData, test [][]float64, comp int, convect bool,
	re utils.Vector) {
	for qp := 0; qp < fd.NPoints(); qp++ {
		var (
			n   = fd.Normals[qp]
			val = r3.Dot(unit(comp, h.PFace[qp]), n)
		)
		if convect {
			F, _, _ := h.rhoVelCrossVel(h.LMUSol[qp], h.LMVSol[qp], comp)
			val += r3.Dot(F, n)
		}
		for i := range test {
			re.AddAt(i, fd.JxW[qp]*test[i][qp]*val)
		}
	}
}

func (h *NavierStokesHelper) faceTermsJacobian(fd *FaceData, test [][]float64, comp int, convect bool,
	pJac, lmUJac, lmVJac utils.Matrix) {
	for qp := 0; qp < fd.NPoints(); qp++ {
		var (
			n             = fd.Normals[qp]
			_, dFdU, dFdV = h.rhoVelCrossVel(h.LMUSol[qp], h.LMVSol[qp], comp)
		)
		for i := range test {
			ti := fd.JxW[qp] * test[i][qp]
			if ti == 0 {
				continue
			}
			for j := range fd.ScalarPhi {
				pJac.AddAt(i, j, ti*r3.Dot(unit(comp, fd.ScalarPhi[j][qp]), n))
			}
			if !convect {
				continue
			}
			for j := range fd.LMPhi {
				lmUJac.AddAt(i, j, ti*fd.LMPhi[j][qp]*r3.Dot(dFdU, n))
				lmVJac.AddAt(i, j, ti*fd.LMPhi[j][qp]*r3.Dot(dFdV, n))
			}
		}
	}
}

func (h *NavierStokesHelper) ScalarFaceResidual(fd *FaceData, comp int, qSol []r3.Vec, uSol, lmSol []float64,
	re utils.Vector) {
	h.DiffusionHelper.ScalarFaceResidual(fd, qSol, uSol, lmSol, re)
	h.faceTerms(fd, fd.ScalarPhi, comp, true, re)
}

func (h *NavierStokesHelper) ScalarFaceJacobian(fd *FaceData, comp int, scalarVectorJac, scalarScalarJac,
	scalarLMJac, scalarPJac, scalarLMUJac, scalarLMVJac utils.Matrix) {
	h.DiffusionHelper.ScalarFaceJacobian(fd, scalarVectorJac, scalarScalarJac, scalarLMJac)
	h.faceTermsJacobian(fd, fd.ScalarPhi, comp, true, scalarPJac, scalarLMUJac, scalarLMVJac)
}

// LMFaceResidual drops the convective flux on faces without a neighbor, which
// leaves q + p + τ(u - û) = 0 as the outflow condition.
func (h *NavierStokesHelper) LMFaceResidual(fd *FaceData, comp int, hasNeighbor bool, qSol []r3.Vec,
	uSol, lmSol []float64, re utils.Vector) {
	h.DiffusionHelper.LMFaceResidual(fd, qSol, uSol, lmSol, re)
	h.faceTerms(fd, fd.LMPhi, comp, hasNeighbor, re)
}

func (h *NavierStokesHelper) LMFaceJacobian(fd *FaceData, comp int, hasNeighbor bool, lmVectorJac,
	lmScalarJac, lmLMJac, lmPJac, lmLMUJac, lmLMVJac utils.Matrix) {
	h.DiffusionHelper.LMFaceJacobian(fd, lmVectorJac, lmScalarJac, lmLMJac)
	h.faceTermsJacobian(fd, fd.LMPhi, comp, hasNeighbor, lmPJac, lmLMUJac, lmLMVJac)
}

// dirichletVelocity evaluates the two velocity functors at a face point.
func (h *NavierStokesHelper) dirichletVelocity(fd *FaceData, qp int, vel [2]Functor) r3.Vec {
	var (
		arg   = ElemSideQp(h.elem, fd.Side, qp, fd, fd.QPoints[qp])
		state = h.TI.DetermineState()
	)
	return r3.Vec{X: vel[0].Evaluate(arg, state), Y: vel[1].Evaluate(arg, state)}
}

func (h *NavierStokesHelper) PressureDirichletResidual(fd *FaceData, vel [2]Functor, pressureRe utils.Vector) {
	for qp := 0; qp < fd.NPoints(); qp++ {
		vdotn := r3.Dot(h.dirichletVelocity(fd, qp, vel), fd.Normals[qp])
		for i := range fd.ScalarPhi {
			pressureRe.AddAt(i, fd.JxW[qp]*vdotn*fd.ScalarPhi[i][qp])
		}
	}
}

func (h *NavierStokesHelper) ScalarDirichletResidual(fd *FaceData, comp int, qSol []r3.Vec, uSol []float64,
	vel [2]Functor, re utils.Vector) {
	h.DiffusionHelper.ScalarDirichletResidual(fd, qSol, uSol, vel[comp], re)
	for qp := 0; qp < fd.NPoints(); qp++ {
		var (
			n = fd.Normals[qp]
			g = h.dirichletVelocity(fd, qp, vel)
		)
		// pressure, then the advective flux of the boundary data
		val := r3.Dot(unit(comp, h.PFace[qp]), n) + h.Rho*r3.Dot(g, n)*component(g, comp)
		for i := range fd.ScalarPhi {
			re.AddAt(i, fd.JxW[qp]*fd.ScalarPhi[i][qp]*val)
		}
	}
}

func (h *NavierStokesHelper) ScalarDirichletJacobian(fd *FaceData, comp int, scalarVectorJac, scalarScalarJac,
	scalarPJac utils.Matrix) {
	h.DiffusionHelper.ScalarDirichletJacobian(fd, scalarVectorJac, scalarScalarJac)
	h.faceTermsJacobian(fd, fd.ScalarPhi, comp, false, scalarPJac, utils.Matrix{}, utils.Matrix{})
}
