package HDG

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/notargets/gohdg/utils"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestRhoVelCrossVel(tst *testing.T) {
	chk.PrintTitle("rho U U_c derivatives")
	h := NewNavierStokesHelper(ConstantProperty(1), 1.3, 1, false, nil)
	for comp := 0; comp < 2; comp++ {
		f := func(y, x []float64) {
			F, _, _ := h.rhoVelCrossVel(x[0], x[1], comp)
			y[0], y[1] = F.X, F.Y
		}
		for _, x := range [][]float64{{0.5, -2}, {3, 0.25}, {-1, -1}} {
			var (
				J             = mat.NewDense(2, 2, nil)
				F, dFdU, dFdV = h.rhoVelCrossVel(x[0], x[1], comp)
			)
			fd.Jacobian(J, f, x, &fd.JacobianSettings{Formula: fd.Central})
			chk.Float64(tst, "dFx/du", 1.e-7, dFdU.X, J.At(0, 0))
			chk.Float64(tst, "dFy/du", 1.e-7, dFdU.Y, J.At(1, 0))
			chk.Float64(tst, "dFx/dv", 1.e-7, dFdV.X, J.At(0, 1))
			chk.Float64(tst, "dFy/dv", 1.e-7, dFdV.Y, J.At(1, 1))
			chk.Float64(tst, "Fx", 1.e-14, F.X, 1.3*x[0]*x[comp])
		}
	}
}

// Compares the convective and pressure Jacobians of one element against
// central differences of the residuals, unknowns ordered [u0 u1 v0 v1 p0 p1].
func TestNavierStokesVolumeJacobian(t *testing.T) {
	var (
		l  = newLine1D(1, 1.)
		a  = l.NewAssembly()
		h  = NewNavierStokesHelper(ConstantProperty(0.1), 2., 1, true, nil)
		x0 = []float64{0.4, -0.9, 1.2, 0.3, -0.5, 0.7}
	)
	a.Reinit(0)
	vd := a.Volume()
	h.ReinitVolume(0, vd)
	zeroGrad := []r3.Vec{{}, {}}
	setState := func(x []float64) {
		c := utils.NewVector(6, x)
		h.USol = EvalScalar(vd.ScalarPhi, c, 0, h.USol)
		h.VSol = EvalScalar(vd.ScalarPhi, c, 2, h.VSol)
		h.PSol = EvalScalar(vd.ScalarPhi, c, 4, h.PSol)
	}
	for comp := 0; comp < 2; comp++ {
		f := func(y, x []float64) {
			setState(x)
			re := utils.NewVector(2)
			h.ScalarVolumeResidual(vd, comp, zeroGrad, ConstantFunctor(0), re)
			copy(y, re.Data())
		}
		var (
			Jfd = mat.NewDense(2, 6, nil)
			J   = utils.NewMatrix(2, 6)
			uq  = utils.NewMatrix(2, 2)
		)
		fd.Jacobian(Jfd, f, x0, &fd.JacobianSettings{Formula: fd.Central})
		setState(x0)
		h.ScalarVolumeJacobian(vd, comp, uq, J.View(0, 2, 0, 2), J.View(0, 2, 2, 4), J.View(0, 2, 4, 6))
		assert.True(t, mat.EqualApprox(Jfd, J.M, 1.e-7), "component %d\n%v\n%v", comp, mat.Formatted(Jfd), mat.Formatted(J.M))
	}
	{ // Mass conservation rows, the global multiplier column included
		h.GlobalLM = 0.6
		f := func(y, x []float64) {
			setState(x)
			pRe, gRe := utils.NewVector(2), utils.NewVector(1)
			h.PressureVolumeResidual(vd, ConstantFunctor(1), pRe, gRe)
			copy(y, pRe.Data())
			y[2] = gRe.AtVec(0)
		}
		var (
			Jfd = mat.NewDense(3, 6, nil)
			J   = utils.NewMatrix(3, 6)
			pG  = utils.NewMatrix(2, 1)
		)
		fd.Jacobian(Jfd, f, x0, &fd.JacobianSettings{Formula: fd.Central})
		setState(x0)
		h.PressureVolumeJacobian(vd, J.View(0, 2, 0, 2), J.View(0, 2, 2, 4), pG, J.View(2, 3, 4, 6))
		assert.True(t, mat.EqualApprox(Jfd, J.M, 1.e-7))
		// ∂R_p/∂λ = -(w_i, 1) = -h/2
		assert.InDeltaSlice(t, []float64{-0.5, -0.5}, pG.Data(), 1.e-14)
	}
}
