package Diffusion1D

import (
	"fmt"
	"math"
	"time"

	"github.com/notargets/gohdg/DG1D"
	"github.com/notargets/gohdg/HDG"
	"github.com/notargets/gohdg/InputParameters"
	"github.com/notargets/gohdg/utils"
)

// Diffusion solves -d/dx(D du/dx) = f on a line with the hybridized
// discretization, every boundary carries a Dirichlet value.
type Diffusion struct {
	IP      *InputParameters.InputParameters
	D       *DG1D.HDG1D
	Physics *HDG.DiffusionPhysics
	Sys     *HDG.System
	Loop    *HDG.ElementLoop
	Result  HDG.NewtonResult
	verbose bool
}

func NewDiffusion(ip *InputParameters.InputParameters, verbose bool) (c *Diffusion, err error) {
	if ip.Physics != InputParameters.Diffusion {
		err = fmt.Errorf("diffusion model given %s physics", ip.Physics)
		return
	}
	if err = ip.Validate(); err != nil {
		return
	}
	c = &Diffusion{
		IP:      ip,
		D:       DG1D.NewHDG1D(ip.PolynomialOrder, ip.K, ip.XMin, ip.XMax),
		verbose: verbose,
	}
	if err = c.D.AddDiffusionVariables("q", "u", "lm"); err != nil {
		return
	}
	var (
		diff = HDG.ConstantProperty(ip.Diffusivity)
		bcs  []HDG.HybridizedBC
		cfg  = HDG.SolverConfig{ParallelDegree: ip.ParallelDegree}
	)
	c.Physics, err = HDG.NewDiffusionPhysics(c.D, "q", "u", "lm", diff, ip.Tau, c.functor(ip.Source), nil)
	if err != nil {
		return
	}
	for _, name := range ip.BCNames() {
		var (
			bc  *HDG.DiffusionDirichletBC
			bci = ip.BCs[name]
		)
		bc, err = HDG.NewDiffusionDirichletBC(c.D, "q", "u", "lm", diff, ip.Tau, c.functor(bci.Values[0]), nil,
			boundaryIDs(bci.Boundaries)...)
		if err != nil {
			err = fmt.Errorf("BC %s: %w", name, err)
			return
		}
		bcs = append(bcs, bc)
	}
	if cfg.Coupling, err = HDG.NewCoupling(ip.Coupling); err != nil {
		return
	}
	c.Sys = HDG.NewSystem(c.D)
	c.Loop, err = HDG.NewElementLoop(c.Sys, c.D, c.Physics, bcs, cfg)
	if verbose {
		fmt.Printf("Polynomial Degree N = %d (1 is linear), Num Elements K = %d, Num Trace Dofs = %d\n",
			ip.PolynomialOrder, ip.K, c.D.NumDofs(HDG.Nonlinear))
	}
	return
}

func (c *Diffusion) functor(fi InputParameters.FunctionInput) HDG.Functor {
	f := c.IP.Function(fi)
	return HDG.SpaceTimeFunctor{F: func(_ float64, x []float64) float64 { return f(x) }, Dim: 1}
}

func boundaryIDs(b []int) (ids []HDG.BoundaryID) {
	for _, id := range b {
		ids = append(ids, HDG.BoundaryID(id))
	}
	return
}

func (c *Diffusion) Solve() (res HDG.NewtonResult, err error) {
	start := time.Now()
	ns := HDG.NewNewtonSolver(c.Sys, c.Loop, c.IP.MaxIterations, c.IP.AbsTolerance, c.IP.RelTolerance, c.verbose)
	res, err = ns.Solve()
	c.Result = res
	if c.verbose {
		fmt.Printf("Newton: %d iterations, |R| %8.3e -> %8.3e, elapsed %v\n",
			res.Iterations, res.InitialNorm, res.FinalNorm, time.Since(start))
		fmt.Println(utils.GetMemUsage())
	}
	return
}

// Solution returns the node coordinates and the scalar values, element by
// element, ready for plotting.
func (c *Diffusion) Solution() (x, u []float64) {
	uVar, _ := c.D.Variable("u")
	for k := 0; k < c.D.NumElements(); k++ {
		x = append(x, c.D.NodeCoordinates(k)...)
		u = append(u, c.Sys.Aux.Gather(c.D.DofIndices(uVar, k)).Data()...)
	}
	return
}

// MaxError is the largest nodal error against the exact solution of the
// input, ok is false when there is none.
func (c *Diffusion) MaxError() (maxErr float64, ok bool) {
	if c.IP.Exact == nil {
		return
	}
	var (
		exact   = c.IP.Function(*c.IP.Exact)
		uVar, _ = c.D.Variable("u")
	)
	maxErr = c.D.MaxNodalError(c.Sys.Aux, uVar, func(x float64) float64 { return exact([]float64{x}) })
	return maxErr, true
}

// Flux returns the flux at both ends of the domain, the values an engineer
// checks a conduction solution against.
func (c *Diffusion) Flux() (left, right float64) {
	qVar, _ := c.D.Variable("q")
	q := c.Sys.Aux.Gather(c.D.DofIndices(qVar, 0)).Data()
	left = c.IP.Diffusivity * q[0]
	q = c.Sys.Aux.Gather(c.D.DofIndices(qVar, c.D.NumElements()-1)).Data()
	right = c.IP.Diffusivity * q[len(q)-1]
	return
}

func (c *Diffusion) Report() {
	fmt.Printf("%s: converged = %v after %d iterations\n", c.IP.Title, c.Result.Converged, c.Result.Iterations)
	if maxErr, ok := c.MaxError(); ok {
		fmt.Printf("Max nodal error = %8.3e, log10 = %6.2f\n", maxErr, math.Log10(maxErr+1.e-300))
	}
	left, right := c.Flux()
	fmt.Printf("Flux: left = %12.6f, right = %12.6f\n", left, right)
}
