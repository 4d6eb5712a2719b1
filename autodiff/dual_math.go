package autodiff

import "math"

// chain returns f(a) with derivative da*dfdx.
func (a Dual[T, D]) chain(f, dfdx T) Dual[T, D] {
	return Dual[T, D]{value: f, deriv: a.deriv.Scale(dfdx)}
}

func (a Dual[T, D]) Sqrt() Dual[T, D] {
	var (
		s   = a.value.Sqrt()
		one = s.Const(1)
	)
	return a.chain(s, one.Div(s.Add(s)))
}

func (a Dual[T, D]) Exp() Dual[T, D] {
	e := a.value.Exp()
	return a.chain(e, e)
}

func (a Dual[T, D]) Log() Dual[T, D] {
	return a.chain(a.value.Log(), a.value.Const(1).Div(a.value))
}

func (a Dual[T, D]) Log10() Dual[T, D] {
	return a.chain(a.value.Log10(), a.value.Const(1).Div(a.value.Mul(a.value.Const(math.Ln10))))
}

func (a Dual[T, D]) Sin() Dual[T, D] { return a.chain(a.value.Sin(), a.value.Cos()) }
func (a Dual[T, D]) Cos() Dual[T, D] { return a.chain(a.value.Cos(), a.value.Sin().Neg()) }

func (a Dual[T, D]) Tan() Dual[T, D] {
	t := a.value.Tan()
	return a.chain(t, t.Const(1).Add(t.Mul(t)))
}

func (a Dual[T, D]) Asin() Dual[T, D] {
	one := a.value.Const(1)
	return a.chain(a.value.Asin(), one.Div(one.Sub(a.value.Mul(a.value)).Sqrt()))
}

func (a Dual[T, D]) Acos() Dual[T, D] {
	one := a.value.Const(1)
	return a.chain(a.value.Acos(), one.Div(one.Sub(a.value.Mul(a.value)).Sqrt()).Neg())
}

func (a Dual[T, D]) Atan() Dual[T, D] {
	one := a.value.Const(1)
	return a.chain(a.value.Atan(), one.Div(one.Add(a.value.Mul(a.value))))
}

func (a Dual[T, D]) Sinh() Dual[T, D] { return a.chain(a.value.Sinh(), a.value.Cosh()) }
func (a Dual[T, D]) Cosh() Dual[T, D] { return a.chain(a.value.Cosh(), a.value.Sinh()) }

func (a Dual[T, D]) Tanh() Dual[T, D] {
	t := a.value.Tanh()
	return a.chain(t, t.Const(1).Sub(t.Mul(t)))
}

// Abs uses sign(v) = (v>0) - (v<0), so the derivative is zero at the kink.
func (a Dual[T, D]) Abs() Dual[T, D] {
	var (
		zero = a.value.Const(0)
		sign = boolToFloat(zero.Less(a.value)) - boolToFloat(a.value.Less(zero))
	)
	return a.chain(a.value.Abs(), a.value.Const(sign))
}

// Fabs is Abs.
func (a Dual[T, D]) Fabs() Dual[T, D] { return a.Abs() }

// Ceil and Floor are locally constant.
func (a Dual[T, D]) Ceil() Dual[T, D]  { return a.chain(a.value.Ceil(), a.value.Const(0)) }
func (a Dual[T, D]) Floor() Dual[T, D] { return a.chain(a.value.Floor(), a.value.Const(0)) }

// Pow is a^b with derivative a^b (b da/a + db log a).
func (a Dual[T, D]) Pow(b Dual[T, D]) Dual[T, D] {
	var (
		p     = a.value.Pow(b.value)
		deriv = a.deriv.Scale(b.value.Div(a.value))
	)
	// a constant exponent must not drag log(a) in, it is NaN for a < 0
	if !isZero(b.deriv) {
		deriv = deriv.Add(b.deriv.Scale(a.value.Log()))
	}
	return Dual[T, D]{value: p, deriv: deriv.Scale(p)}
}

// PowScalar is a^s for a constant exponent, no log term.
func (a Dual[T, D]) PowScalar(s T) Dual[T, D] {
	var (
		one = s.Const(1)
	)
	return a.chain(a.value.Pow(s), s.Mul(a.value.Pow(s.Sub(one))))
}

// ScalarPow is s^a for a constant base.
func (a Dual[T, D]) ScalarPow(s T) Dual[T, D] {
	p := s.Pow(a.value)
	return a.chain(p, p.Mul(s.Log()))
}

// Atan2 is atan2(a, b) with derivative (b da - a db)/(a*a + b*b).
func (a Dual[T, D]) Atan2(b Dual[T, D]) Dual[T, D] {
	var (
		one   = a.value.Const(1)
		denom = one.Div(a.value.Mul(a.value).Add(b.value.Mul(b.value)))
	)
	return Dual[T, D]{
		value: a.value.Atan2(b.value),
		deriv: a.deriv.Scale(b.value).Sub(b.deriv.Scale(a.value)).Scale(denom),
	}
}

// Max returns whichever operand has the larger value, derivative included.
func (a Dual[T, D]) Max(b Dual[T, D]) Dual[T, D] {
	if b.value.Less(a.value) {
		return a
	}
	return b
}

// Min returns whichever operand has the smaller value, derivative included.
func (a Dual[T, D]) Min(b Dual[T, D]) Dual[T, D] {
	if a.value.Less(b.value) {
		return a
	}
	return b
}

// Fmod is the floating remainder, derivative da - trunc(a/b) db.
func (a Dual[T, D]) Fmod(b Dual[T, D]) Dual[T, D] {
	var (
		q = math.Trunc(a.value.Div(b.value).Float())
	)
	return Dual[T, D]{
		value: a.value.Fmod(b.value),
		deriv: a.deriv.Sub(b.deriv.Scale(a.value.Const(q))),
	}
}
