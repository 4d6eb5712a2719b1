package autodiff

import "math"

// Numeric limits of T. A Dual forwards to its value type, the derivative is
// zero.

func Epsilon[T Number[T]]() T {
	var z T
	return z.Const(math.Nextafter(1, 2) - 1)
}

func MaxValue[T Number[T]]() T {
	var z T
	return z.Const(math.MaxFloat64)
}

func Lowest[T Number[T]]() T {
	var z T
	return z.Const(-math.MaxFloat64)
}

func SmallestNormal[T Number[T]]() T {
	var z T
	return z.Const(0x1p-1022)
}

func Inf[T Number[T]]() T {
	var z T
	return z.Const(math.Inf(1))
}

func NaN[T Number[T]]() T {
	var z T
	return z.Const(math.NaN())
}
