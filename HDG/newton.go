package HDG

import (
	"fmt"

	"github.com/notargets/gohdg/utils"
)

type NewtonSolver struct {
	Sys           *System
	Loop          *ElementLoop
	MaxIterations int
	AbsTolerance  float64
	RelTolerance  float64
	Verbose       bool
}

type NewtonResult struct {
	Iterations             int
	InitialNorm, FinalNorm float64
	Converged              bool
	LinearResidual         float64 // of the last linear solve
}

func NewNewtonSolver(sys *System, loop *ElementLoop, maxIterations int, absTol, relTol float64,
	verbose bool) *NewtonSolver {
	if maxIterations < 1 {
		maxIterations = 25
	}
	return &NewtonSolver{
		Sys:           sys,
		Loop:          loop,
		MaxIterations: maxIterations,
		AbsTolerance:  absTol,
		RelTolerance:  relTol,
		Verbose:       verbose,
	}
}

// Solve runs Newton iterations: assemble and condense, check the residual,
// solve for the trace increment, recover the primal increment at the current
// state, then update the trace solution.
func (ns *NewtonSolver) Solve() (res NewtonResult, err error) {
	for it := 0; ; it++ {
		ns.Sys.Zero()
		ns.Loop.ComputeResidualAndJacobian()
		norm := ns.Sys.ResidualNorm()
		if it == 0 {
			res.InitialNorm = norm
		}
		res.FinalNorm = norm
		res.Iterations = it
		if ns.Verbose {
			fmt.Printf("Newton iteration %3d, |R| = %12.6e\n", it, norm)
		}
		if utils.IsNan(norm) {
			err = fmt.Errorf("newton iteration %d: residual is NaN", it)
			return
		}
		if norm <= ns.AbsTolerance || norm <= ns.RelTolerance*res.InitialNorm {
			res.Converged = true
			return
		}
		if it == ns.MaxIterations {
			err = fmt.Errorf("newton did not converge in %d iterations, |R| = %g, |R0| = %g",
				it, norm, res.InitialNorm)
			return
		}
		if res.LinearResidual, err = ns.Sys.SolveIncrement(); err != nil {
			err = fmt.Errorf("newton iteration %d: %w", it, err)
			return
		}
		if ns.Verbose {
			fmt.Printf("    linear residual = %12.6e\n", res.LinearResidual)
		}
		ns.Loop.ComputePostLinearSolve()
		ns.Sys.ApplyIncrement()
	}
}
