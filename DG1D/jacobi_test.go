package DG1D

import (
	"math"
	"testing"

	"github.com/notargets/gohdg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/combin"
)

// jacobiMoment is ∫ x^k (1-x)^α (1+x)^β over [-1,1], from the binomial
// expansion of x = 2u-1.
func jacobiMoment(k int, alpha, beta float64) (m float64) {
	for j := 0; j <= k; j++ {
		c := float64(combin.Binomial(k, j)) * math.Pow(2, float64(j)) * math.Pow(-1, float64(k-j))
		m += c * mathext.Beta(float64(j)+beta+1, alpha+1)
	}
	return m * math.Pow(2, alpha+beta+1)
}

func TestJacobiGQ(t *testing.T) {
	for _, ab := range [][2]float64{{0, 0}, {1, 1}, {0.3, 0.7}} {
		alpha, beta := ab[0], ab[1]
		for _, N := range []int{0, 1, 3, 5} {
			X, W := JacobiGQ(alpha, beta, N)
			require.Equal(t, N+1, X.Len())
			// Exact through degree 2N+1
			for k := 0; k <= 2*N+1; k++ {
				var s float64
				for i := 0; i < X.Len(); i++ {
					s += W.AtVec(i) * math.Pow(X.AtVec(i), float64(k))
				}
				assert.InDeltaf(t, jacobiMoment(k, alpha, beta), s, 1.e-9,
					"alpha=%g beta=%g N=%d k=%d", alpha, beta, N, k)
			}
			// The nodes are interior roots of P_{N+1}
			for i := 0; i < X.Len(); i++ {
				x := X.AtVec(i)
				assert.True(t, x > -1 && x < 1)
				assert.True(t, W.AtVec(i) > 0)
				if N > 0 {
					p := JacobiP(utils.NewVector(1, []float64{x}), alpha, beta, N+1)[0]
					assert.InDelta(t, 0., p, 1.e-10)
				}
			}
		}
	}
}

func TestJacobiGQAsymmetric(t *testing.T) {
	var (
		alpha, beta = 0.3, 0.7
	)
	// The nodes are the eigenvalues of the Jacobi matrix, so they sum to its
	// trace Σ (β²-α²)/(h(h+2)), h = 2k+α+β
	for _, N := range []int{1, 2, 4} {
		X, _ := JacobiGQ(alpha, beta, N)
		var sum, trace float64
		for k := 0; k <= N; k++ {
			h := 2*float64(k) + alpha + beta
			trace += (beta*beta - alpha*alpha) / (h * (h + 2))
			sum += X.AtVec(k)
		}
		assert.InDeltaf(t, trace, sum, 1.e-12, "N=%d", N)
	}
	X, _ := JacobiGQ(alpha, beta, 1)
	assert.InDelta(t, 0.16, X.AtVec(0)+X.AtVec(1), 1.e-12)
	// More weight toward x = 1 pulls the single node to the right
	X, W := JacobiGQ(alpha, beta, 0)
	assert.InDelta(t, 0.4/3., X.AtVec(0), 1.e-14)
	assert.InDelta(t, jacobiMoment(0, alpha, beta), W.AtVec(0), 1.e-12)
}

func TestJacobiGL(t *testing.T) {
	for _, N := range []int{1, 2, 5, 8} {
		R := JacobiGL(0, 0, N)
		require.Equal(t, N+1, R.Len())
		assert.Equal(t, -1., R.AtVec(0))
		assert.Equal(t, 1., R.AtVec(N))
		for i := 0; i <= N; i++ {
			// symmetric and increasing
			assert.InDelta(t, -R.AtVec(N-i), R.AtVec(i), 1.e-12)
			if i > 0 {
				assert.Greater(t, R.AtVec(i), R.AtVec(i-1))
			}
		}
		if N > 1 {
			// Interior Lobatto nodes are the zeros of P'_N
			for i := 1; i < N; i++ {
				dp := GradJacobiP(utils.NewVector(1, []float64{R.AtVec(i)}), 0, 0, N)[0]
				assert.InDelta(t, 0., dp, 1.e-10)
			}
		}
	}
	assert.InDeltaSlice(t, []float64{-1, 0, 1}, JacobiGL(0, 0, 2).Data(), 1.e-14)
}

func TestJacobiP(t *testing.T) {
	var (
		N    = 6
		X, W = JacobiGQ(0, 0, N+1)
	)
	{ // Orthonormal under the Legendre weight
		for i := 0; i <= N; i++ {
			pi := JacobiP(X, 0, 0, i)
			for j := 0; j <= N; j++ {
				pj := JacobiP(X, 0, 0, j)
				var s float64
				for q := range pi {
					s += W.AtVec(q) * pi[q] * pj[q]
				}
				want := 0.
				if i == j {
					want = 1
				}
				assert.InDeltaf(t, want, s, 1.e-12, "(P%d, P%d)", i, j)
			}
		}
	}
	{ // GradJacobiP against central differences
		var (
			h = 1.e-6
			r = utils.NewVector(3, []float64{-0.7, 0.1, 0.55})
		)
		for n := 0; n <= N; n++ {
			dp := GradJacobiP(r, 0.5, 1.5, n)
			for i := 0; i < r.Len(); i++ {
				x := r.AtVec(i)
				pp := JacobiP(utils.NewVector(1, []float64{x + h}), 0.5, 1.5, n)[0]
				pm := JacobiP(utils.NewVector(1, []float64{x - h}), 0.5, 1.5, n)[0]
				assert.InDelta(t, (pp-pm)/(2*h), dp[i], 1.e-6)
			}
		}
	}
	{ // The GLL Vandermonde is well conditioned and its gradient maps r to 1
		R := JacobiGL(0, 0, N)
		V := Vandermonde1D(N, R)
		Vr := GradVandermonde1D(R, N)
		nr, nc := V.Dims()
		assert.Equal(t, [2]int{N + 1, N + 1}, [2]int{nr, nc})
		Vinv, err := V.Inverse()
		require.NoError(t, err)
		Dr := Vr.Mul(Vinv)
		dr := Dr.Mul(utils.NewMatrix(N+1, 1, R.Data()))
		for i := 0; i <= N; i++ {
			assert.InDelta(t, 1., dr.At(i, 0), 1.e-10)
		}
	}
}
