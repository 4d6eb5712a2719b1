// Package autodiff implements forward mode automatic differentiation with a
// generic dual number type. The derivative slot of a Dual can be a plain Real
// (one direction), a NumberArray (many independent directions) or another Dual
// (nested, for second derivatives).
package autodiff

import "math"

// Field is the arithmetic every element type of a NumberArray provides.
type Field[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	Not() T
}

// Arith adds truthiness and ordering on top of Field. Ordering is always a
// single bool.
type Arith[T any] interface {
	Field[T]
	Truth() bool
	Less(T) bool
	Equal(T) bool
}

// Number is a scalar that can carry a value through the elementary functions.
type Number[T any] interface {
	Arith[T]
	Float() float64
	Const(float64) T

	Sqrt() T
	Exp() T
	Log() T
	Log10() T
	Sin() T
	Cos() T
	Tan() T
	Asin() T
	Acos() T
	Atan() T
	Sinh() T
	Cosh() T
	Tanh() T
	Abs() T
	Ceil() T
	Floor() T

	Pow(T) T
	Atan2(T) T
	Max(T) T
	Min(T) T
	Fmod(T) T
}

// Derivative is the storage for the derivative part of a Dual whose value has
// type T.
type Derivative[D any, T any] interface {
	Add(D) D
	Sub(D) D
	Neg() D
	Not() D
	Scale(T) D
}

// Real is the plain float64 scalar used at the bottom of every dual nesting.
type Real float64

func (r Real) Add(b Real) Real   { return r + b }
func (r Real) Sub(b Real) Real   { return r - b }
func (r Real) Mul(b Real) Real   { return r * b }
func (r Real) Div(b Real) Real   { return r / b }
func (r Real) Scale(b Real) Real { return r * b }
func (r Real) Neg() Real         { return -r }
func (r Real) Not() Real {
	if r == 0 {
		return 1
	}
	return 0
}
func (r Real) Truth() bool        { return r != 0 }
func (r Real) Less(b Real) bool   { return r < b }
func (r Real) Equal(b Real) bool  { return r == b }
func (r Real) Float() float64     { return float64(r) }
func (r Real) Const(c float64) Real { return Real(c) }

func (r Real) Sqrt() Real  { return Real(math.Sqrt(float64(r))) }
func (r Real) Exp() Real   { return Real(math.Exp(float64(r))) }
func (r Real) Log() Real   { return Real(math.Log(float64(r))) }
func (r Real) Log10() Real { return Real(math.Log10(float64(r))) }
func (r Real) Sin() Real   { return Real(math.Sin(float64(r))) }
func (r Real) Cos() Real   { return Real(math.Cos(float64(r))) }
func (r Real) Tan() Real   { return Real(math.Tan(float64(r))) }
func (r Real) Asin() Real  { return Real(math.Asin(float64(r))) }
func (r Real) Acos() Real  { return Real(math.Acos(float64(r))) }
func (r Real) Atan() Real  { return Real(math.Atan(float64(r))) }
func (r Real) Sinh() Real  { return Real(math.Sinh(float64(r))) }
func (r Real) Cosh() Real  { return Real(math.Cosh(float64(r))) }
func (r Real) Tanh() Real  { return Real(math.Tanh(float64(r))) }
func (r Real) Abs() Real   { return Real(math.Abs(float64(r))) }
func (r Real) Ceil() Real  { return Real(math.Ceil(float64(r))) }
func (r Real) Floor() Real { return Real(math.Floor(float64(r))) }

func (r Real) Pow(b Real) Real   { return Real(math.Pow(float64(r), float64(b))) }
func (r Real) Atan2(b Real) Real { return Real(math.Atan2(float64(r), float64(b))) }
func (r Real) Fmod(b Real) Real  { return Real(math.Mod(float64(r), float64(b))) }
func (r Real) Max(b Real) Real {
	if b > r {
		return b
	}
	return r
}
func (r Real) Min(b Real) Real {
	if b < r {
		return b
	}
	return r
}

// Reals converts a float64 slice, copying it.
func Reals(f []float64) (r []Real) {
	r = make([]Real, len(f))
	for i, v := range f {
		r[i] = Real(v)
	}
	return
}

func (r Real) IsZero() bool { return r == 0 }

// isZero reports whether v is known to be zero. Types without an IsZero method
// are never considered zero.
func isZero(v any) bool {
	if z, ok := v.(interface{ IsZero() bool }); ok {
		return z.IsZero()
	}
	return false
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
