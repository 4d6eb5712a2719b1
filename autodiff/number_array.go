package autodiff

import (
	"fmt"
	"strings"
)

// NumberArray is a fixed length container with value semantics. The backing
// storage is never mutated once shared, every mutator works on a private copy.
//
// A NumberArray of length zero is the zero of every length: combining it with
// a non-empty array treats it as all zeros. This is how a Dual without
// derivatives mixes with a Dual that carries them. Combining two non-empty
// arrays of different lengths panics.
type NumberArray[T Field[T]] struct {
	data []T
}

// NewNumberArray returns an array of n copies of fill.
func NewNumberArray[T Field[T]](n int, fill T) (a NumberArray[T]) {
	a.data = make([]T, n)
	for i := range a.data {
		a.data[i] = fill
	}
	return
}

// ArrayOf copies vals into a new array.
func ArrayOf[T Field[T]](vals ...T) (a NumberArray[T]) {
	a.data = make([]T, len(vals))
	copy(a.data, vals)
	return
}

// ConvertArray builds a component-wise converted copy of src.
func ConvertArray[S Field[S], T Field[T]](src NumberArray[S], conv func(S) T) (a NumberArray[T]) {
	a.data = make([]T, len(src.data))
	for i, v := range src.data {
		a.data[i] = conv(v)
	}
	return
}

func (a NumberArray[T]) Len() int { return len(a.data) }

// At is unchecked beyond the Go bounds check, 0 <= i < Len() is the caller's
// obligation.
func (a NumberArray[T]) At(i int) T { return a.data[i] }

// Slice returns a copy of the contents.
func (a NumberArray[T]) Slice() (s []T) {
	s = make([]T, len(a.data))
	copy(s, a.data)
	return
}

// Set changes one slot. Changes receiver.
func (a *NumberArray[T]) Set(i int, v T) {
	a.own()
	a.data[i] = v
}

// AddAssign and friends are the compound assignments. Changes receiver.
func (a *NumberArray[T]) AddAssign(b NumberArray[T]) { *a = a.Add(b) }
func (a *NumberArray[T]) SubAssign(b NumberArray[T]) { *a = a.Sub(b) }
func (a *NumberArray[T]) MulAssign(b NumberArray[T]) { *a = a.Mul(b) }
func (a *NumberArray[T]) DivAssign(b NumberArray[T]) { *a = a.Div(b) }

func (a *NumberArray[T]) own() {
	d := make([]T, len(a.data))
	copy(d, a.data)
	a.data = d
}

func (a NumberArray[T]) IsZero() bool {
	for _, v := range a.data {
		if !isZero(v) {
			return false
		}
	}
	return true
}

func (a NumberArray[T]) String() string {
	var (
		sb strings.Builder
	)
	sb.WriteByte('{')
	for i, v := range a.data {
		if i != 0 {
			sb.WriteByte(',')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte('}')
	return sb.String()
}

// zip applies f pairwise. An empty operand is replaced by zeros of the other's
// length through the lhs and rhs closures.
func (a NumberArray[T]) zip(b NumberArray[T], f func(x, y T) T,
	lhsEmpty func(y T) T, rhsEmpty func(x T) T) (r NumberArray[T]) {
	switch {
	case len(a.data) == 0 && len(b.data) == 0:
		return
	case len(a.data) == 0:
		r.data = make([]T, len(b.data))
		for i, y := range b.data {
			r.data[i] = lhsEmpty(y)
		}
		return
	case len(b.data) == 0:
		r.data = make([]T, len(a.data))
		for i, x := range a.data {
			r.data[i] = rhsEmpty(x)
		}
		return
	case len(a.data) != len(b.data):
		panic(fmt.Errorf("NumberArray length mismatch: %d and %d", len(a.data), len(b.data)))
	}
	r.data = make([]T, len(a.data))
	for i := range a.data {
		r.data[i] = f(a.data[i], b.data[i])
	}
	return
}

func (a NumberArray[T]) each(f func(x T) T) (r NumberArray[T]) {
	if len(a.data) == 0 {
		return
	}
	r.data = make([]T, len(a.data))
	for i, x := range a.data {
		r.data[i] = f(x)
	}
	return
}

func (a NumberArray[T]) Add(b NumberArray[T]) NumberArray[T] {
	return a.zip(b, func(x, y T) T { return x.Add(y) },
		func(y T) T { return y }, func(x T) T { return x })
}

func (a NumberArray[T]) Sub(b NumberArray[T]) NumberArray[T] {
	return a.zip(b, func(x, y T) T { return x.Sub(y) },
		func(y T) T { return y.Neg() }, func(x T) T { return x })
}

func (a NumberArray[T]) Mul(b NumberArray[T]) NumberArray[T] {
	var z T
	return a.zip(b, func(x, y T) T { return x.Mul(y) },
		func(y T) T { return z.Mul(y) }, func(x T) T { return x.Mul(z) })
}

func (a NumberArray[T]) Div(b NumberArray[T]) NumberArray[T] {
	var z T
	return a.zip(b, func(x, y T) T { return x.Div(y) },
		func(y T) T { return z.Div(y) }, func(x T) T { return x.Div(z) })
}

func (a NumberArray[T]) Neg() NumberArray[T] { return a.each(func(x T) T { return x.Neg() }) }
func (a NumberArray[T]) Not() NumberArray[T] { return a.each(func(x T) T { return x.Not() }) }

// Scale multiplies every slot by s. It makes NumberArray a Derivative.
func (a NumberArray[T]) Scale(s T) NumberArray[T] {
	return a.each(func(x T) T { return x.Mul(s) })
}

// Broadcast scalar operations.
func (a NumberArray[T]) AddScalar(s T) NumberArray[T] { return a.each(func(x T) T { return x.Add(s) }) }
func (a NumberArray[T]) SubScalar(s T) NumberArray[T] { return a.each(func(x T) T { return x.Sub(s) }) }
func (a NumberArray[T]) MulScalar(s T) NumberArray[T] { return a.Scale(s) }
func (a NumberArray[T]) DivScalar(s T) NumberArray[T] { return a.each(func(x T) T { return x.Div(s) }) }

// ScalarSub returns s - a, ScalarDiv s / a.
func (a NumberArray[T]) ScalarSub(s T) NumberArray[T] { return a.each(func(x T) T { return s.Sub(x) }) }
func (a NumberArray[T]) ScalarDiv(s T) NumberArray[T] { return a.each(func(x T) T { return s.Div(x) }) }

// Sum reduces with the element's own Add. For nested arrays use SumEach.
func (a NumberArray[T]) Sum() (s T) {
	for i, x := range a.data {
		if i == 0 {
			s = x
			continue
		}
		s = s.Add(x)
	}
	return
}

// Dot is sum_i a_i*b_i.
func (a NumberArray[T]) Dot(b NumberArray[T]) T {
	return a.Mul(b).Sum()
}

// OuterProduct returns r[i][j] = a_i*b_j.
func OuterProduct[T Field[T]](a, b NumberArray[T]) (r NumberArray[NumberArray[T]]) {
	r.data = make([]NumberArray[T], len(a.data))
	for i, x := range a.data {
		r.data[i] = b.each(func(y T) T { return x.Mul(y) })
	}
	return
}

// SumEach reduces every inner array with its own Sum.
func SumEach[T Field[T]](a NumberArray[NumberArray[T]]) (r NumberArray[T]) {
	r.data = make([]T, len(a.data))
	for i, x := range a.data {
		r.data[i] = x.Sum()
	}
	return
}

// DotEach pairs the inner arrays of a and b and returns their dot products.
func DotEach[T Field[T]](a, b NumberArray[NumberArray[T]]) (r NumberArray[T]) {
	if len(a.data) != len(b.data) {
		panic(fmt.Errorf("NumberArray length mismatch: %d and %d", len(a.data), len(b.data)))
	}
	r.data = make([]T, len(a.data))
	for i := range a.data {
		r.data[i] = a.data[i].Dot(b.data[i])
	}
	return
}

// BoolArray is the element-wise result of comparing two NumberArrays.
type BoolArray []bool

func (b BoolArray) All() bool {
	for _, v := range b {
		if !v {
			return false
		}
	}
	return true
}

func (b BoolArray) Any() bool {
	for _, v := range b {
		if v {
			return true
		}
	}
	return false
}

func compareEach[T Arith[T]](a, b NumberArray[T], f func(x, y T) bool) (r BoolArray) {
	if len(a.data) != len(b.data) {
		panic(fmt.Errorf("NumberArray length mismatch: %d and %d", len(a.data), len(b.data)))
	}
	r = make(BoolArray, len(a.data))
	for i := range a.data {
		r[i] = f(a.data[i], b.data[i])
	}
	return
}

func LessEach[T Arith[T]](a, b NumberArray[T]) BoolArray {
	return compareEach(a, b, func(x, y T) bool { return x.Less(y) })
}

func LessEqualEach[T Arith[T]](a, b NumberArray[T]) BoolArray {
	return compareEach(a, b, func(x, y T) bool { return !y.Less(x) })
}

func GreaterEach[T Arith[T]](a, b NumberArray[T]) BoolArray {
	return compareEach(a, b, func(x, y T) bool { return y.Less(x) })
}

func GreaterEqualEach[T Arith[T]](a, b NumberArray[T]) BoolArray {
	return compareEach(a, b, func(x, y T) bool { return !x.Less(y) })
}

func EqualEach[T Arith[T]](a, b NumberArray[T]) BoolArray {
	return compareEach(a, b, func(x, y T) bool { return x.Equal(y) })
}

func NotEqualEach[T Arith[T]](a, b NumberArray[T]) BoolArray {
	return compareEach(a, b, func(x, y T) bool { return !x.Equal(y) })
}

func AndEach[T Arith[T]](a, b NumberArray[T]) BoolArray {
	return compareEach(a, b, func(x, y T) bool { return x.Truth() && y.Truth() })
}

func OrEach[T Arith[T]](a, b NumberArray[T]) BoolArray {
	return compareEach(a, b, func(x, y T) bool { return x.Truth() || y.Truth() })
}
