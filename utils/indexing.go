package utils

import "fmt"

// Index is a list of global degree of freedom numbers.
type Index []int

// NewRange is the half open range [rmin, rmax).
func NewRange(rmin, rmax int) (r Index) {
	r = make(Index, rmax-rmin)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

func (I Index) Add(val int) (r Index) {
	r = make(Index, len(I))
	for i, ival := range I {
		r[i] = val + ival
	}
	return r
}

// Concat appends the lists in order.
func Concat(lists ...Index) (r Index) {
	var n int
	for _, l := range lists {
		n += len(l)
	}
	r = make(Index, 0, n)
	for _, l := range lists {
		r = append(r, l...)
	}
	return
}

func (I Index) Max() (max int) {
	max = -1
	for _, val := range I {
		if val > max {
			max = val
		}
	}
	return
}

// CheckBounds returns an error naming the first entry outside [0, n).
func (I Index) CheckBounds(n int) (err error) {
	for i, val := range I {
		if val < 0 || val >= n {
			err = fmt.Errorf("dimension bounds error, index[%d] = %d, max = %d", i, val, n-1)
			return
		}
	}
	return
}
