package HDG

import (
	"fmt"
	"math"
	"sync"

	"github.com/notargets/gohdg/utils"
	"gonum.org/v1/gonum/mat"
)

// LMIncrementVector names the vector holding the last solved increment of the
// nonlinear (trace) system.
const LMIncrementVector = "lm_increment"

// System is the global state shared by all kernels. Adds from kernels are
// serialized by a mutex.
type System struct {
	Solution utils.Vector // nonlinear system: trace, pressure and global dofs
	Aux      utils.Vector // element interior fields
	Residual utils.Vector
	Jacobian utils.DOK
	vectors  map[string]utils.Vector
	primal2  float64 // squared norm of the local primal residuals
	mu       sync.Mutex
}

func NewSystem(d Discretization) (s *System) {
	var (
		nL = d.NumDofs(Nonlinear)
		nA = d.NumDofs(Aux)
	)
	s = &System{
		Solution: utils.NewVector(nL),
		Aux:      utils.NewVector(nA),
		Residual: utils.NewVector(nL),
		Jacobian: utils.NewDOK(nL, nL),
		vectors: map[string]utils.Vector{
			LMIncrementVector: utils.NewVector(nL),
		},
	}
	return
}

// Zero clears the residual and Jacobian before an assembly pass.
func (s *System) Zero() {
	s.Residual.Zero()
	s.Jacobian.Reset()
	s.primal2 = 0
}

func (s *System) Vector(name string) utils.Vector {
	v, ok := s.vectors[name]
	if !ok {
		panic(fmt.Errorf("no vector named %q in the system", name))
	}
	return v
}

func (s *System) AddResidual(idx utils.Index, re utils.Vector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Residual.ScatterAdd(idx, re)
}

func (s *System) AddJacobian(rows, cols utils.Index, jac utils.Matrix) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addJacobian(rows, cols, jac)
}

func (s *System) addJacobian(rows, cols utils.Index, jac utils.Matrix) {
	if err := s.Jacobian.ScatterAdd(rows, cols, jac); err != nil {
		panic(err)
	}
}

// AddCondensed adds one element's condensed blocks in a single critical section.
func (s *System) AddCondensed(idx utils.Index, jac utils.Matrix, re utils.Vector, primalNorm2 float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Residual.ScatterAdd(idx, re)
	s.addJacobian(idx, idx, jac)
	s.primal2 += primalNorm2
}

// AddToAux adds a recovered primal increment. Primal dofs are owned by one
// element so no lock is needed.
func (s *System) AddToAux(idx utils.Index, inc utils.Vector) {
	s.Aux.ScatterAdd(idx, inc)
}

// ResidualNorm is the l2 norm of the condensed residual together with the
// local primal residuals.
func (s *System) ResidualNorm() float64 {
	r := s.Residual.Norm()
	return math.Sqrt(r*r + s.primal2)
}

// SolveIncrement solves J Δ = -r with a dense LU factorization and stores Δ
// in the LMIncrementVector. linResidual is ||J Δ + r||.
func (s *System) SolveIncrement() (linResidual float64, err error) {
	var (
		n   = s.Residual.Len()
		J   = s.Jacobian.ToDense()
		lu  mat.LU
		rhs = s.Residual.Copy().Scale(-1)
		inc = s.vectors[LMIncrementVector]
	)
	if n == 0 {
		return
	}
	lu.Factorize(J.M)
	if cond := lu.Cond(); math.IsInf(cond, 1) || cond > 1.e16 {
		err = fmt.Errorf("global Jacobian is singular, condition number %g", cond)
		return
	}
	if err = lu.SolveVecTo(inc.V, false, rhs.V); err != nil {
		return
	}
	check := s.Jacobian.ToCSR().MulVec(inc).Add(s.Residual)
	linResidual = check.Norm()
	return
}

// ApplyIncrement adds the solved increment to the solution.
func (s *System) ApplyIncrement() {
	s.Solution.Add(s.vectors[LMIncrementVector])
}
