package HDG

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/notargets/gohdg/utils"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestDiffusionHelperVolume(tst *testing.T) {
	chk.PrintTitle("diffusion helper volume terms")
	var (
		l  = newLine1D(1, 2.)
		a  = l.NewAssembly()
		D  = 3.
		dh = NewDiffusionHelper(ConstantProperty(D), 1, nil)
	)
	a.Reinit(0)
	vd := a.Volume()
	dh.ReinitVolume(0, vd)
	{ // Flux mass matrix and divergence coupling
		qq, qu := utils.NewMatrix(2, 2), utils.NewMatrix(2, 2)
		dh.VectorVolumeJacobian(vd, qq, qu)
		// h/6 [2 1; 1 2] with h = 2
		chk.Float64(tst, "M00", 1.e-14, qq.At(0, 0), 2./3.)
		chk.Float64(tst, "M01", 1.e-14, qq.At(0, 1), 1./3.)
		chk.Float64(tst, "M11", 1.e-14, qq.At(1, 1), 2./3.)
		for j := 0; j < 2; j++ {
			chk.Float64(tst, "B0j", 1.e-14, qu.At(0, j), -0.5)
			chk.Float64(tst, "B1j", 1.e-14, qu.At(1, j), 0.5)
		}
	}
	{ // Scalar rows see the diffusivity
		uq := utils.NewMatrix(2, 2)
		dh.ScalarVolumeJacobian(vd, uq)
		for j := 0; j < 2; j++ {
			chk.Float64(tst, "C0j", 1.e-14, uq.At(0, j), -0.5*D)
			chk.Float64(tst, "C1j", 1.e-14, uq.At(1, j), 0.5*D)
		}
	}
	{ // The source enters with a minus sign, -(w, f) = -f h/2 per hat function
		re := utils.NewVector(2)
		qSol := []r3.Vec{{}, {}}
		dh.ScalarVolumeResidual(vd, qSol, ConstantFunctor(5), re)
		assert.InDeltaSlice(tst, []float64{-5, -5}, re.Data(), 1.e-13)
	}
}

func TestDiffusionHelperFace(tst *testing.T) {
	chk.PrintTitle("diffusion helper face terms")
	var (
		l   = newLine1D(1, 1.)
		a   = l.NewAssembly()
		D   = 2.
		tau = 4.
		dh  = NewDiffusionHelper(ConstantProperty(D), tau, nil)
	)
	a.ReinitFace(0, 0)
	fd := a.Face()
	dh.ReinitFace(0, fd)
	{ // Left side, n = -1, only the first basis function is alive
		var (
			uq, uu, ulm = utils.NewMatrix(2, 2), utils.NewMatrix(2, 2), utils.NewMatrix(2, 2)
		)
		dh.ScalarFaceJacobian(fd, uq, uu, ulm)
		chk.Float64(tst, "uq", 1.e-14, uq.At(0, 0), D)
		chk.Float64(tst, "uu", 1.e-14, uu.At(0, 0), tau)
		chk.Float64(tst, "ulm", 1.e-14, ulm.At(0, 0), -tau)
		assert.Equal(tst, 0., uu.At(1, 1))
		assert.Equal(tst, 0., ulm.At(0, 1))
	}
	{ // Vector face coupling to the trace, -<v·n, μ>
		qlm := utils.NewMatrix(2, 2)
		dh.VectorFaceJacobian(fd, qlm)
		chk.Float64(tst, "qlm", 1.e-14, qlm.At(0, 0), 1)
	}
	{ // Identity pins the trace of this side only
		jac, re := utils.NewMatrix(2, 2), utils.NewVector(2)
		dh.CreateIdentityJacobian(fd, fd.LMPhi, jac)
		dh.CreateIdentityResidual(fd, fd.LMPhi, []float64{0.25}, re)
		assert.Equal(tst, -1., jac.At(0, 0))
		assert.Equal(tst, 0., jac.At(1, 1))
		assert.InDeltaSlice(tst, []float64{-0.25, 0}, re.Data(), 1.e-15)
	}
	{ // Dirichlet data takes the place of the trace
		var (
			g      = ConstantFunctor(0.5)
			re, rv = utils.NewVector(2), utils.NewVector(2)
			qSol   = []r3.Vec{{X: 1}}
			uSol   = []float64{2}
		)
		dh.ScalarDirichletResidual(fd, qSol, uSol, g, re)
		// -D q·n + τ(u - g) = 2 + 6
		chk.Float64(tst, "dirichlet flux", 1.e-14, re.AtVec(0), 8)
		dh.VectorDirichletResidual(fd, g, rv)
		chk.Float64(tst, "dirichlet vector", 1.e-14, rv.AtVec(0), 0.5)
	}
}

// The diffusion forms are linear, so R(c) - R(0) must equal J c for any
// local state c.
func TestDiffusionHelperLinearity(t *testing.T) {
	var (
		l    = newLine1D(1, 1.5)
		a    = l.NewAssembly()
		dh   = NewDiffusionHelper(ConstantProperty(0.7), 2, nil)
		c    = utils.NewVector(6, []float64{0.3, -1.1, 0.8, 2.5, -0.4, 0.9}) // q0 q1 u0 u1 lm0 lm1
		q, u = utils.NewRange(0, 2), utils.NewRange(2, 4)
		lm   = utils.NewRange(4, 6)
	)
	residual := func(c utils.Vector) (r utils.Vector) {
		r = utils.NewVector(6)
		a.Reinit(0)
		vd := a.Volume()
		dh.ReinitVolume(0, vd)
		qSol := EvalVector(vd.VectorPhi, c, 0, nil)
		uSol := EvalScalar(vd.ScalarPhi, c, 2, nil)
		dh.VectorVolumeResidual(vd, qSol, uSol, r.View(0, 2))
		dh.ScalarVolumeResidual(vd, qSol, ConstantFunctor(0), r.View(2, 4))
		for side := 0; side < 2; side++ {
			a.ReinitFace(0, side)
			fd := a.Face()
			dh.ReinitFace(0, fd)
			qSol = EvalVector(fd.VectorPhi, c, 0, nil)
			uSol = EvalScalar(fd.ScalarPhi, c, 2, nil)
			lmSol := EvalScalar(fd.LMPhi, c, 4, nil)
			dh.VectorFaceResidual(fd, lmSol, r.View(0, 2))
			dh.ScalarFaceResidual(fd, qSol, uSol, lmSol, r.View(2, 4))
			dh.LMFaceResidual(fd, qSol, uSol, lmSol, r.View(4, 6))
		}
		return
	}
	J := utils.NewMatrix(6, 6)
	a.Reinit(0)
	dh.ReinitVolume(0, a.Volume())
	dh.VectorVolumeJacobian(a.Volume(), matView(J, q, q), matView(J, q, u))
	dh.ScalarVolumeJacobian(a.Volume(), matView(J, u, q))
	for side := 0; side < 2; side++ {
		a.ReinitFace(0, side)
		fd := a.Face()
		dh.ReinitFace(0, fd)
		dh.VectorFaceJacobian(fd, matView(J, q, lm))
		dh.ScalarFaceJacobian(fd, matView(J, u, q), matView(J, u, u), matView(J, u, lm))
		dh.LMFaceJacobian(fd, matView(J, lm, q), matView(J, lm, u), matView(J, lm, lm))
	}
	r := residual(c)
	assert.InDeltaSlice(t, J.MulVec(c).Data(), r.Data(), 1.e-12)
}
