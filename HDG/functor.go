package HDG

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// QpArg locates a quadrature point. Side is -1 for volume points.
type QpArg struct {
	Elem, Side, Qp int
	QRule          QRule
	Point          r3.Vec
}

func ElemQp(elem, qp int, qr QRule, p r3.Vec) QpArg {
	return QpArg{Elem: elem, Side: -1, Qp: qp, QRule: qr, Point: p}
}

func ElemSideQp(elem, side, qp int, qr QRule, p r3.Vec) QpArg {
	return QpArg{Elem: elem, Side: side, Qp: qp, QRule: qr, Point: p}
}

type StateArg struct {
	Time  float64
	State int
}

type TimeState interface {
	DetermineState() StateArg
}

// SteadyState always evaluates at a fixed time, the current state.
type SteadyState struct {
	Time float64
}

func (s SteadyState) DetermineState() StateArg {
	return StateArg{Time: s.Time}
}

// Functor supplies source terms, Dirichlet values and body forces.
type Functor interface {
	Evaluate(QpArg, StateArg) float64
}

type ConstantFunctor float64

func (c ConstantFunctor) Evaluate(QpArg, StateArg) float64 { return float64(c) }

type FunctorFunc func(QpArg, StateArg) float64

func (f FunctorFunc) Evaluate(qa QpArg, sa StateArg) float64 { return f(qa, sa) }

// SpaceTimeFunctor adapts a plain f(t, x) function of time and position.
type SpaceTimeFunctor struct {
	F   func(t float64, x []float64) float64
	Dim int
}

func (s SpaceTimeFunctor) Evaluate(qa QpArg, sa StateArg) float64 {
	x := []float64{qa.Point.X, qa.Point.Y, qa.Point.Z}
	if s.Dim > 0 && s.Dim < 3 {
		x = x[:s.Dim]
	}
	return s.F(sa.Time, x)
}

// MaterialProperty is a coefficient evaluated at a point of an element.
type MaterialProperty interface {
	Value(elem int, x r3.Vec) float64
}

type ConstantProperty float64

func (c ConstantProperty) Value(int, r3.Vec) float64 { return float64(c) }

type PropertyFunc func(elem int, x r3.Vec) float64

func (f PropertyFunc) Value(elem int, x r3.Vec) float64 { return f(elem, x) }

// fill evaluates the property at every point into dst.
func fill(mp MaterialProperty, elem int, pts []r3.Vec, dst []float64) []float64 {
	dst = resize(dst, len(pts))
	for qp, x := range pts {
		dst[qp] = mp.Value(elem, x)
	}
	return dst
}
