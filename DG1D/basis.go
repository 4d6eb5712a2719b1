package DG1D

import (
	"fmt"

	"github.com/notargets/gohdg/utils"
)

// Basis1D is the nodal Lagrange basis of order N on the Gauss-Lobatto nodes
// R of [-1,1], with an N+2 point Gauss rule for integration.
type Basis1D struct {
	N, Np  int
	R      utils.Vector
	V      utils.Matrix
	Vinv   utils.Matrix
	RQ, WQ utils.Vector // quadrature points and weights
	// Phi[qp][j] and DPhi[qp][j] at the quadrature points
	Phi, DPhi utils.Matrix
}

func NewBasis1D(N int) (b *Basis1D) {
	var (
		err error
	)
	if N < 1 {
		panic(fmt.Errorf("polynomial order must be at least 1, have %d", N))
	}
	b = &Basis1D{
		N:  N,
		Np: N + 1,
		R:  JacobiGL(0, 0, N),
	}
	b.V = Vandermonde1D(N, b.R)
	if b.Vinv, err = b.V.Inverse(); err != nil {
		panic(err)
	}
	b.RQ, b.WQ = JacobiGQ(0, 0, N+1)
	b.Phi, b.DPhi = b.Evaluate(b.RQ)
	return
}

// Evaluate returns the basis functions and their r derivatives at the
// points r, one row per point.
func (b *Basis1D) Evaluate(r utils.Vector) (phi, dphi utils.Matrix) {
	phi = Vandermonde1D(b.N, r).Mul(b.Vinv)
	dphi = GradVandermonde1D(r, b.N).Mul(b.Vinv)
	return
}

// Dr is the nodal differentiation matrix.
func (b *Basis1D) Dr() utils.Matrix {
	return GradVandermonde1D(b.R, b.N).Mul(b.Vinv)
}
