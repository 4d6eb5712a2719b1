package utils

import (
	"gonum.org/v1/gonum/floats"
)

// Linspace fills v with evenly spaced values from min to max inclusive.
// Changes receiver
func (v Vector) Linspace(min, max float64) Vector {
	var (
		n = v.Len()
	)
	if n == 1 {
		v.V.SetVec(0, min)
		return v
	}
	d := make([]float64, n)
	floats.Span(d, min, max)
	for i, val := range d {
		v.V.SetVec(i, val)
	}
	return v
}

// ScatterAdd adds vals into v at the index list, v[ind[i]] += vals[i].
// Changes receiver
func (v Vector) ScatterAdd(ind Index, vals Vector) Vector {
	if len(ind) != vals.Len() {
		panic("scatter size mismatch")
	}
	for i, gi := range ind {
		v.V.SetVec(gi, v.V.AtVec(gi)+vals.V.AtVec(i))
	}
	return v
}

// Gather is the reverse of ScatterAdd, R[i] = v[ind[i]].
func (v Vector) Gather(ind Index) (R Vector) {
	R = NewVector(len(ind))
	for i, gi := range ind {
		R.V.SetVec(i, v.V.AtVec(gi))
	}
	return
}

func (v Vector) Norm() float64 {
	if v.V == nil {
		return 0
	}
	return floats.Norm(v.Data(), 2)
}

func (v Vector) NormInf() float64 {
	if v.V == nil {
		return 0
	}
	return floats.Norm(v.Data(), floatsInf)
}
