package autodiff

import "fmt"

// Dual carries a value and the derivative of that value with respect to one
// or more independent directions. Dual values are immutable, every operation
// returns a new Dual.
type Dual[T Number[T], D Derivative[D, T]] struct {
	value T
	deriv D
}

// NewDual builds a Dual from a value and derivative pair.
func NewDual[T Number[T], D Derivative[D, T]](value T, deriv D) Dual[T, D] {
	return Dual[T, D]{value: value, deriv: deriv}
}

// Constant builds a Dual with a zero derivative.
func Constant[T Number[T], D Derivative[D, T]](value T) Dual[T, D] {
	return Dual[T, D]{value: value}
}

func (a Dual[T, D]) Value() T       { return a.value }
func (a Dual[T, D]) Derivatives() D { return a.deriv }

func (a *Dual[T, D]) SetValue(v T)       { a.value = v }
func (a *Dual[T, D]) SetDerivatives(d D) { a.deriv = d }

// Truth is decided by the value alone.
func (a Dual[T, D]) Truth() bool    { return a.value.Truth() }
func (a Dual[T, D]) Float() float64 { return a.value.Float() }

// Const satisfies Number, the result has a zero derivative.
func (a Dual[T, D]) Const(c float64) Dual[T, D] {
	var z T
	return Dual[T, D]{value: z.Const(c)}
}

func (a Dual[T, D]) IsZero() bool { return isZero(a.value) && isZero(a.deriv) }

func (a Dual[T, D]) String() string {
	return fmt.Sprintf("(%v,%v)", a.value, a.deriv)
}

func (a Dual[T, D]) Neg() Dual[T, D] {
	return Dual[T, D]{value: a.value.Neg(), deriv: a.deriv.Neg()}
}

// Not applies logical not to both parts. The derivative part carries no
// numerical meaning.
func (a Dual[T, D]) Not() Dual[T, D] {
	return Dual[T, D]{value: a.value.Not(), deriv: a.deriv.Not()}
}

func (a Dual[T, D]) Add(b Dual[T, D]) Dual[T, D] {
	return Dual[T, D]{value: a.value.Add(b.value), deriv: a.deriv.Add(b.deriv)}
}

func (a Dual[T, D]) Sub(b Dual[T, D]) Dual[T, D] {
	return Dual[T, D]{value: a.value.Sub(b.value), deriv: a.deriv.Sub(b.deriv)}
}

// Mul applies the product rule d(ab) = a db + da b.
func (a Dual[T, D]) Mul(b Dual[T, D]) Dual[T, D] {
	return Dual[T, D]{
		value: a.value.Mul(b.value),
		deriv: b.deriv.Scale(a.value).Add(a.deriv.Scale(b.value)),
	}
}

// Scale lets a Dual serve as the derivative type of an outer Dual.
func (a Dual[T, D]) Scale(b Dual[T, D]) Dual[T, D] { return a.Mul(b) }

// Div applies the quotient rule d(a/b) = da/b - a/(b*b) db.
func (a Dual[T, D]) Div(b Dual[T, D]) Dual[T, D] {
	var (
		one  = b.value.Const(1)
		binv = one.Div(b.value)
	)
	return Dual[T, D]{
		value: a.value.Div(b.value),
		deriv: a.deriv.Scale(binv).Sub(b.deriv.Scale(a.value.Mul(binv).Mul(binv))),
	}
}

// Mixed scalar operations. The scalar has no derivative, so only the Dual side
// contributes.
func (a Dual[T, D]) AddScalar(s T) Dual[T, D] {
	return Dual[T, D]{value: a.value.Add(s), deriv: a.deriv}
}

func (a Dual[T, D]) SubScalar(s T) Dual[T, D] {
	return Dual[T, D]{value: a.value.Sub(s), deriv: a.deriv}
}

func (a Dual[T, D]) MulScalar(s T) Dual[T, D] {
	return Dual[T, D]{value: a.value.Mul(s), deriv: a.deriv.Scale(s)}
}

func (a Dual[T, D]) DivScalar(s T) Dual[T, D] {
	return Dual[T, D]{value: a.value.Div(s), deriv: a.deriv.Scale(s.Const(1).Div(s))}
}

// ScalarSub returns s - a.
func (a Dual[T, D]) ScalarSub(s T) Dual[T, D] {
	return Dual[T, D]{value: s.Sub(a.value), deriv: a.deriv.Neg()}
}

// ScalarDiv returns s / a.
func (a Dual[T, D]) ScalarDiv(s T) Dual[T, D] {
	var (
		inv = a.value.Const(1).Div(a.value)
	)
	return Dual[T, D]{
		value: s.Mul(inv),
		deriv: a.deriv.Scale(s.Mul(inv).Mul(inv).Neg()),
	}
}

// Comparisons look at values only.
func (a Dual[T, D]) Less(b Dual[T, D]) bool         { return a.value.Less(b.value) }
func (a Dual[T, D]) LessEqual(b Dual[T, D]) bool    { return !b.value.Less(a.value) }
func (a Dual[T, D]) Greater(b Dual[T, D]) bool      { return b.value.Less(a.value) }
func (a Dual[T, D]) GreaterEqual(b Dual[T, D]) bool { return !a.value.Less(b.value) }
func (a Dual[T, D]) Equal(b Dual[T, D]) bool        { return a.value.Equal(b.value) }
func (a Dual[T, D]) NotEqual(b Dual[T, D]) bool     { return !a.value.Equal(b.value) }
func (a Dual[T, D]) And(b Dual[T, D]) bool          { return a.Truth() && b.Truth() }
func (a Dual[T, D]) Or(b Dual[T, D]) bool           { return a.Truth() || b.Truth() }

// Scalar comparisons, value only.
func (a Dual[T, D]) LessScalar(s T) bool    { return a.value.Less(s) }
func (a Dual[T, D]) GreaterScalar(s T) bool { return s.Less(a.value) }
func (a Dual[T, D]) EqualScalar(s T) bool   { return a.value.Equal(s) }
