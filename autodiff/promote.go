package autodiff

// DualReal is a single direction dual number.
type DualReal = Dual[Real, Real]

// DualArray carries one derivative slot per independent direction.
type DualArray = Dual[Real, NumberArray[Real]]

// Variable returns x seeded with a unit derivative.
func Variable[T interface {
	Number[T]
	Derivative[T, T]
}](x T) Dual[T, T] {
	return Dual[T, T]{value: x, deriv: x.Const(1)}
}

// Seed returns one Dual per value, value i carrying the i-th unit vector of
// length len(values) as derivative.
func Seed[T Number[T]](values ...T) (d []Dual[T, NumberArray[T]]) {
	var (
		n = len(values)
	)
	d = make([]Dual[T, NumberArray[T]], n)
	for i, v := range values {
		e := NewNumberArray(n, v.Const(0))
		e.data[i] = v.Const(1)
		d[i] = Dual[T, NumberArray[T]]{value: v, deriv: e}
	}
	return
}

// Promote lifts a Dual into an outer Dual. The inner derivative is carried
// through unchanged and the outer derivative starts at zero.
func Promote[T Number[T], D Derivative[D, T], D2 Derivative[D2, Dual[T, D]]](inner Dual[T, D]) Dual[Dual[T, D], D2] {
	return Dual[Dual[T, D], D2]{value: inner}
}

// PromoteArray converts a plain array to an array of constant Duals.
func PromoteArray[T Number[T], D Derivative[D, T]](a NumberArray[T]) NumberArray[Dual[T, D]] {
	return ConvertArray(a, func(x T) Dual[T, D] { return Dual[T, D]{value: x} })
}

// Values strips the derivatives off an array of Duals.
func Values[T Number[T], D Derivative[D, T]](a NumberArray[Dual[T, D]]) NumberArray[T] {
	return ConvertArray(a, func(x Dual[T, D]) T { return x.value })
}

// Jacobian extracts J[i][j] = d out_i / d x_j from multi-direction Duals. An
// output without derivatives gives a zero row.
func Jacobian[T Number[T]](outs []Dual[T, NumberArray[T]], n int) (J [][]float64) {
	J = make([][]float64, len(outs))
	for i, o := range outs {
		J[i] = make([]float64, n)
		for j := 0; j < o.deriv.Len() && j < n; j++ {
			J[i][j] = o.deriv.At(j).Float()
		}
	}
	return
}

// Gradient is the single row version of Jacobian.
func Gradient[T Number[T]](out Dual[T, NumberArray[T]], n int) []float64 {
	return Jacobian([]Dual[T, NumberArray[T]]{out}, n)[0]
}
