package HDG

import (
	"fmt"
	"math"

	"github.com/notargets/gohdg/autodiff"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// FaceMap maps reference coordinates on [-1,1]^Dim to physical space.
type FaceMap interface {
	Dim() int
	Map(xi []autodiff.DualArray) [3]autodiff.DualArray
}

// LinearEdge is the straight edge from A (ξ = -1) to B (ξ = 1).
type LinearEdge struct {
	A, B r3.Vec
}

func (le LinearEdge) Dim() int { return 1 }

func (le LinearEdge) Map(xi []autodiff.DualArray) (x [3]autodiff.DualArray) {
	s := xi[0].AddScalar(1).MulScalar(0.5)
	for d := 0; d < 3; d++ {
		a, b := coord(le.A, d), coord(le.B, d)
		x[d] = s.MulScalar(autodiff.Real(b - a)).AddScalar(autodiff.Real(a))
	}
	return
}

// BilinearFace interpolates four corners given counterclockwise from (-1,-1).
type BilinearFace struct {
	Corners [4]r3.Vec
}

func (bf BilinearFace) Dim() int { return 2 }

func (bf BilinearFace) Map(xi []autodiff.DualArray) (x [3]autodiff.DualArray) {
	var (
		xm, xp = xi[0].ScalarSub(1), xi[0].AddScalar(1)
		ym, yp = xi[1].ScalarSub(1), xi[1].AddScalar(1)
		N      = [4]autodiff.DualArray{xm.Mul(ym), xp.Mul(ym), xp.Mul(yp), xm.Mul(yp)}
	)
	for d := 0; d < 3; d++ {
		x[d] = autodiff.Constant[autodiff.Real, autodiff.NumberArray[autodiff.Real]](0)
		for i, c := range bf.Corners {
			x[d] = x[d].Add(N[i].MulScalar(autodiff.Real(0.25 * coord(c, d))))
		}
	}
	return
}

func coord(v r3.Vec, d int) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

const (
	inverseMapMaxIter = 25
	inverseMapTol     = 1.e-12
)

// InverseMap finds the reference coordinates of x on face by Gauss-Newton,
// starting from xi0 (the reference centre when nil). The map Jacobian comes
// from seeding one dual direction per reference coordinate. Points off the
// face converge to their least squares projection.
func InverseMap(face FaceMap, x r3.Vec, xi0 []float64) (xi []float64, err error) {
	var (
		n     = face.Dim()
		r     = make([]float64, 3)
		J     = mat.NewDense(3, n, nil)
		JtJ   = mat.NewDense(n, n, nil)
		Jtr   = mat.NewVecDense(n, nil)
		delta = mat.NewVecDense(n, nil)
	)
	xi = make([]float64, n)
	copy(xi, xi0)
	for it := 0; it < inverseMapMaxIter; it++ {
		out := face.Map(autodiff.Seed(autodiff.Reals(xi)...))
		jac := autodiff.Jacobian(out[:], n)
		for d := 0; d < 3; d++ {
			r[d] = coord(x, d) - out[d].Float()
			for j := 0; j < n; j++ {
				J.Set(d, j, jac[d][j])
			}
		}
		JtJ.Mul(J.T(), J)
		Jtr.MulVec(J.T(), mat.NewVecDense(3, r))
		if e := delta.SolveVec(JtJ, Jtr); e != nil {
			err = fmt.Errorf("%w: degenerate map at %v: %v", ErrProjection, xi, e)
			return
		}
		floats.Add(xi, delta.RawVector().Data)
		if mat.Norm(delta, 2) < inverseMapTol*math.Max(1, floats.Norm(xi, 2)) {
			return
		}
	}
	err = fmt.Errorf("%w: no convergence for %v after %d iterations", ErrProjection, x, inverseMapMaxIter)
	return
}
