package autodiff

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/num/dual"
	"gonum.org/v1/gonum/num/hyperdual"
)

func TestDualProductQuotient(t *testing.T) {
	samples := []float64{-3.5, -1, -0.25, 0.5, 1, 2.75, 10}
	for _, av := range samples {
		for _, bv := range samples {
			var (
				// a(x) = x*av, b(x) = x + bv at x = 1, so da = av and db = 1
				x = Variable(Real(1))
				a = x.MulScalar(Real(av))
				b = x.AddScalar(Real(bv))
			)
			if math.Abs(1+bv) < 1.e-3 {
				continue
			}
			prod := a.Mul(b)
			assert.InDelta(t, av*(1+bv), float64(prod.Value()), 1.e-12)
			assert.InDelta(t, av*(1+bv)+av*1, float64(prod.Derivatives()), 1.e-12)

			quot := a.Div(b)
			bb := 1 + bv
			assert.InDelta(t, av/bb, float64(quot.Value()), 1.e-12)
			assert.InDelta(t, av/bb-av*1/(bb*bb), float64(quot.Derivatives()), 1.e-12)
		}
	}
	{ // Scalar operands only scale the dual side
		x := NewDual(Real(2), Real(3))
		assert.Equal(t, Real(6), x.MulScalar(2).Derivatives())
		assert.Equal(t, Real(1.5), x.DivScalar(2).Derivatives())
		assert.Equal(t, Real(3), x.AddScalar(2).Derivatives())
		assert.Equal(t, Real(-3), x.ScalarSub(2).Derivatives())
		assert.Equal(t, Real(0), x.ScalarSub(2).Value())
		// d(4/x) = -4/x^2 dx
		assert.InDelta(t, -4./4.*3., float64(x.ScalarDiv(4).Derivatives()), 1.e-14)
		assert.InDelta(t, 2., float64(x.ScalarDiv(4).Value()), 1.e-14)
	}
}

func TestDualChainRule(t *testing.T) {
	type unary struct {
		name string
		f    func(DualReal) DualReal
		df   func(g float64) float64
		xs   []float64
	}
	var (
		inside   = []float64{-0.9, -0.6, -0.5, -0.3, -0.1}
		positive = []float64{0.1, 0.5, 1, 2.5}
		all      = []float64{-2, -0.7, 0.3, 1.1, 2}
	)
	cases := []unary{
		{"sqrt", DualReal.Sqrt, func(g float64) float64 { return 0.5 / math.Sqrt(g) }, positive},
		{"exp", DualReal.Exp, math.Exp, all},
		{"log", DualReal.Log, func(g float64) float64 { return 1 / g }, positive},
		{"log10", DualReal.Log10, func(g float64) float64 { return 1 / (g * math.Ln10) }, positive},
		{"sin", DualReal.Sin, math.Cos, all},
		{"cos", DualReal.Cos, func(g float64) float64 { return -math.Sin(g) }, all},
		{"tan", DualReal.Tan, func(g float64) float64 { return 1 / (math.Cos(g) * math.Cos(g)) }, inside},
		{"asin", DualReal.Asin, func(g float64) float64 { return 1 / math.Sqrt(1-g*g) }, inside},
		{"acos", DualReal.Acos, func(g float64) float64 { return -1 / math.Sqrt(1-g*g) }, inside},
		{"atan", DualReal.Atan, func(g float64) float64 { return 1 / (1 + g*g) }, all},
		{"sinh", DualReal.Sinh, math.Cosh, all},
		{"cosh", DualReal.Cosh, math.Sinh, all},
		{"tanh", DualReal.Tanh, func(g float64) float64 { return 1 - math.Tanh(g)*math.Tanh(g) }, all},
	}
	for _, c := range cases {
		for _, x0 := range c.xs {
			var (
				x  = Variable(Real(x0))
				g  = x.MulScalar(2).AddScalar(1)
				r  = c.f(g)
				gv = 2*x0 + 1
			)
			assert.InDeltaf(t, 2*c.df(gv), float64(r.Derivatives()), 1.e-9, "%s at x=%v", c.name, x0)
		}
	}
	{ // Non smooth functions
		assert.Equal(t, Real(-1), Variable(Real(-2)).Abs().Derivatives())
		assert.Equal(t, Real(1), Variable(Real(2)).Abs().Derivatives())
		assert.Equal(t, Real(0), Variable(Real(0)).Abs().Derivatives())
		assert.Equal(t, Real(1), Variable(Real(-1)).Fabs().Derivatives().Neg())
		assert.Equal(t, Real(0), Variable(Real(1.3)).Ceil().Derivatives())
		assert.Equal(t, Real(2), Variable(Real(1.3)).Ceil().Value())
		assert.Equal(t, Real(0), Variable(Real(1.3)).Floor().Derivatives())
		assert.Equal(t, Real(1), Variable(Real(1.3)).Floor().Value())
	}
	{ // Binary functions
		var (
			a = NewDual(Real(2), Real(1))
			b = NewDual(Real(3), Real(0.5))
		)
		p := a.Pow(b)
		assert.InDelta(t, 8., float64(p.Value()), 1.e-14)
		assert.InDelta(t, 8*(3*1/2.+0.5*math.Log(2)), float64(p.Derivatives()), 1.e-12)
		ps := a.PowScalar(3)
		assert.InDelta(t, 12., float64(ps.Derivatives()), 1.e-12)
		// negative base with a constant exponent stays finite
		neg := NewDual(Real(-2), Real(1)).Pow(Constant[Real, Real](2))
		assert.InDelta(t, -4., float64(neg.Derivatives()), 1.e-12)

		at := a.Atan2(b)
		assert.InDelta(t, math.Atan2(2, 3), float64(at.Value()), 1.e-14)
		assert.InDelta(t, (3*1-2*0.5)/13., float64(at.Derivatives()), 1.e-14)

		assert.Equal(t, b, a.Max(b))
		assert.Equal(t, a, a.Min(b))
		assert.Equal(t, Real(0.5), a.Max(b).Derivatives())

		fm := NewDual(Real(7), Real(1)).Fmod(b)
		assert.InDelta(t, 1., float64(fm.Value()), 1.e-14)
		assert.InDelta(t, 1-2*0.5, float64(fm.Derivatives()), 1.e-14)
	}
}

func TestDualComparisons(t *testing.T) {
	var (
		a = NewDual(Real(1.5), Real(10))
		b = NewDual(Real(1.5), Real(-3))
		c = NewDual(Real(2), Real(0))
	)
	assert.True(t, a.Equal(b))
	assert.False(t, a.NotEqual(b))
	assert.False(t, a.Less(b))
	assert.False(t, a.Greater(b))
	assert.True(t, a.LessEqual(b))
	assert.True(t, a.GreaterEqual(b))
	assert.True(t, a.Less(c))
	assert.True(t, c.Greater(a))
	assert.True(t, a.And(c))
	zero := NewDual(Real(0), Real(5))
	assert.False(t, zero.Truth())
	assert.False(t, zero.And(a))
	assert.True(t, zero.Or(a))
	{ // Logical not keeps the derivative slot in the same shape
		n := zero.Not()
		assert.Equal(t, Real(1), n.Value())
		assert.Equal(t, Real(0), n.Derivatives())
		assert.Equal(t, NewDual(Real(0), Real(1)), NewDual(Real(3), Real(0)).Not())
	}
	{
		n := a.Neg()
		assert.Equal(t, Real(-1.5), n.Value())
		assert.Equal(t, Real(-10), n.Derivatives())
	}
	assert.Equal(t, "(1.5,10)", a.String())
}

func fike[T Number[T]](x T) T {
	three := x.Const(3)
	return x.Exp().Div(x.Sin().Pow(three).Add(x.Cos().Pow(three)).Sqrt())
}

func TestDualAgainstGonum(t *testing.T) {
	{ // First derivative
		gonum := dual.Mul(
			dual.Exp(dual.Number{Real: 1.5, Emag: 1}),
			dual.Inv(dual.Sqrt(dual.Add(
				dual.PowReal(dual.Sin(dual.Number{Real: 1.5, Emag: 1}), 3),
				dual.PowReal(dual.Cos(dual.Number{Real: 1.5, Emag: 1}), 3)))))
		ours := fike(Variable(Real(1.5)))
		assert.InDelta(t, gonum.Real, float64(ours.Value()), 1.e-12)
		assert.InDelta(t, gonum.Emag, float64(ours.Derivatives()), 1.e-12)
		assert.InDelta(t, float64(fike(Real(1.5))), float64(ours.Value()), 1.e-14)
	}
	{ // Nested duals give the second derivative
		fn := func(x hyperdual.Number) hyperdual.Number {
			return hyperdual.Mul(
				hyperdual.Exp(x),
				hyperdual.Inv(hyperdual.Sqrt(
					hyperdual.Add(
						hyperdual.PowReal(hyperdual.Sin(x), 3),
						hyperdual.PowReal(hyperdual.Cos(x), 3)))))
		}
		gonum := fn(hyperdual.Number{Real: 1.5, E1mag: 1, E2mag: 1})
		x := NewDual(Variable(Real(1.5)), NewDual(Real(1), Real(0)))
		ours := fike(x)
		assert.InDelta(t, gonum.Real, float64(ours.Value().Value()), 1.e-12)
		assert.InDelta(t, gonum.E1mag, float64(ours.Value().Derivatives()), 1.e-12)
		assert.InDelta(t, gonum.E2mag, float64(ours.Derivatives().Value()), 1.e-12)
		assert.InDelta(t, gonum.E1E2mag, float64(ours.Derivatives().Derivatives()), 1.e-10)
	}
}

func TestDualPromotion(t *testing.T) {
	{ // The inner derivative survives promotion, the outer one starts at zero
		inner := NewDual(Real(2), Real(3))
		outer := Promote[Real, Real, DualReal](inner)
		assert.Equal(t, inner, outer.Value())
		assert.True(t, outer.Derivatives().IsZero())
	}
	{ // A Dual without derivatives mixes with one that has them
		var (
			x    = Seed(Real(1), Real(2), Real(3))
			bare = Constant[Real, NumberArray[Real]](5)
		)
		sum := x[1].Add(bare)
		assert.Equal(t, Real(7), sum.Value())
		assert.Equal(t, []Real{0, 1, 0}, sum.Derivatives().Slice())
		prod := bare.Mul(x[2])
		assert.Equal(t, []Real{0, 0, 5}, prod.Derivatives().Slice())
		assert.Equal(t, 0, bare.Sub(bare).Derivatives().Len())
	}
	{
		a := PromoteArray[Real, Real](ArrayOf[Real](1, 2))
		assert.Equal(t, Real(0), a.At(1).Derivatives())
		assert.Equal(t, []Real{1, 2}, Values(a).Slice())
	}
}

func TestLimits(t *testing.T) {
	assert.Equal(t, Real(math.Nextafter(1, 2)-1), Epsilon[Real]())
	eps := Epsilon[DualReal]()
	assert.Equal(t, Epsilon[Real](), eps.Value())
	assert.Equal(t, Real(0), eps.Derivatives())
	assert.Equal(t, Real(math.MaxFloat64), MaxValue[DualArray]().Value())
	assert.Equal(t, Real(-math.MaxFloat64), Lowest[Real]())
	assert.Equal(t, Real(0x1p-1022), SmallestNormal[Real]())
	assert.True(t, math.IsInf(Inf[DualReal]().Float(), 1))
	assert.True(t, math.IsNaN(NaN[Real]().Float()))
}

func TestDivisionByZeroPropagates(t *testing.T) {
	r := NewDual(Real(1), Real(1)).Div(NewDual(Real(0), Real(1)))
	assert.True(t, math.IsInf(r.Float(), 1))
	assert.True(t, math.IsNaN(float64(r.Derivatives())) || math.IsInf(float64(r.Derivatives()), 0))
}
