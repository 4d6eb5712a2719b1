package NavierStokes2D

import (
	"fmt"
	"math"
	"time"

	"github.com/notargets/gohdg/DGQuad"
	"github.com/notargets/gohdg/HDG"
	"github.com/notargets/gohdg/InputParameters"
	"github.com/notargets/gohdg/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

var Names = HDG.NavierStokesNames{
	QU: "grad_u", U: "u", QV: "grad_v", V: "v",
	LMU: "lm_u", LMV: "lm_v", P: "p",
}

// NavierStokes solves steady incompressible flow on a box of quads. With
// EnclosureLM set a global multiplier pins the mean pressure to zero, which
// an enclosed flow needs.
type NavierStokes struct {
	IP      *InputParameters.InputParameters
	D       *DGQuad.HDGQuad
	Names   HDG.NavierStokesNames
	Physics *HDG.NavierStokesPhysics
	Sys     *HDG.System
	Loop    *HDG.ElementLoop
	Result  HDG.NewtonResult
	verbose bool

	// boundary velocity of each Dirichlet boundary id
	dirichlet map[HDG.BoundaryID][2]func(x []float64) float64
}

func NewNavierStokes(ip *InputParameters.InputParameters, verbose bool) (c *NavierStokes, err error) {
	if ip.Physics != InputParameters.NavierStokes {
		err = fmt.Errorf("navier-stokes model given %s physics", ip.Physics)
		return
	}
	if err = ip.Validate(); err != nil {
		return
	}
	c = &NavierStokes{
		IP:      ip,
		D:       DGQuad.NewHDGQuad(ip.PolynomialOrder, ip.NX, ip.NY, ip.XMin, ip.XMax, ip.YMin, ip.YMax),
		Names:   Names,
		verbose: verbose,

		dirichlet: make(map[HDG.BoundaryID][2]func(x []float64) float64),
	}
	if ip.EnclosureLM {
		c.Names.Global = "lambda"
	}
	if err = c.D.AddNavierStokesVariables(c.Names); err != nil {
		return
	}
	var (
		mu        = HDG.ConstantProperty(ip.Viscosity)
		bodyForce [2]HDG.Functor
		bcs       []HDG.HybridizedBC
		cfg       = HDG.SolverConfig{ParallelDegree: ip.ParallelDegree}
	)
	for i, f := range ip.BodyForce {
		bodyForce[i] = c.functor(f)
	}
	c.Physics, err = HDG.NewNavierStokesPhysics(c.D, c.Names, mu, ip.Density, ip.Tau, bodyForce,
		c.functor(ip.Source), nil)
	if err != nil {
		return
	}
	for _, name := range ip.BCNames() {
		var (
			bci = ip.BCs[name]
			ids = boundaryIDs(bci.Boundaries)
			bc  HDG.HybridizedBC
		)
		switch bci.Type {
		case InputParameters.Dirichlet:
			vel := [2]HDG.Functor{c.functor(bci.Values[0]), c.functor(bci.Values[1])}
			for _, id := range ids {
				c.dirichlet[id] = [2]func(x []float64) float64{ip.Function(bci.Values[0]), ip.Function(bci.Values[1])}
			}
			bc, err = HDG.NewNavierStokesVelocityDirichletBC(c.D, c.Names, mu, ip.Density, ip.Tau, vel, nil, ids...)
		case InputParameters.Outflow:
			bc, err = HDG.NewNavierStokesOutflowBC(c.D, c.Names, mu, ip.Density, ip.Tau, nil, ids...)
		}
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
	if c.Loop, err = HDG.NewElementLoop(c.Sys, c.D, c.Physics, bcs, cfg); err != nil {
		return
	}
	if verbose {
		fmt.Printf("Polynomial Degree N = %d, Mesh %d x %d, Re = %8.3f, Num Global Dofs = %d, Parallel Degree = %d\n",
			ip.PolynomialOrder, ip.NX, ip.NY, c.Reynolds(), c.D.NumDofs(HDG.Nonlinear), c.Loop.ParallelDegree())
	}
	return
}

func (c *NavierStokes) functor(fi InputParameters.FunctionInput) HDG.Functor {
	f := c.IP.Function(fi)
	return HDG.SpaceTimeFunctor{F: func(_ float64, x []float64) float64 { return f(x) }, Dim: 2}
}

func boundaryIDs(b []int) (ids []HDG.BoundaryID) {
	for _, id := range b {
		ids = append(ids, HDG.BoundaryID(id))
	}
	return
}

// Reynolds is based on the domain height and the largest Dirichlet speed
// found at the boundary value definitions.
func (c *NavierStokes) Reynolds() float64 {
	var speed float64
	for _, bci := range c.IP.BCs {
		for _, fi := range bci.Values {
			speed = math.Max(speed, math.Abs(fi.Value))
		}
	}
	return c.IP.Density * speed * (c.IP.YMax - c.IP.YMin) / c.IP.Viscosity
}

func (c *NavierStokes) Solve() (res HDG.NewtonResult, err error) {
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

func (c *NavierStokes) variable(name string) *HDG.Variable {
	v, err := c.D.Variable(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Velocity interpolates the velocity at (x, y).
func (c *NavierStokes) Velocity(x, y float64) (u, v float64) {
	u = c.D.Evaluate(c.Sys.Aux, c.variable(c.Names.U), x, y)
	v = c.D.Evaluate(c.Sys.Aux, c.variable(c.Names.V), x, y)
	return
}

func (c *NavierStokes) Pressure(x, y float64) float64 {
	return c.D.Evaluate(c.Sys.Solution, c.variable(c.Names.P), x, y)
}

func (c *NavierStokes) MeanPressure() float64 {
	return c.D.Integrate(c.Sys.Solution, c.variable(c.Names.P)) / ((c.IP.XMax - c.IP.XMin) * (c.IP.YMax - c.IP.YMin))
}

// DivergenceResidual is the largest net outflow over any element with the
// source and enclosure multiplier removed, using the trace velocity on
// internal and outflow sides and the imposed velocity on Dirichlet sides.
// The hybridized pressure equation drives it to zero element by element.
func (c *NavierStokes) DivergenceResidual() float64 {
	var (
		a        = c.D.NewAssembly()
		lmu, lmv = c.variable(c.Names.LMU), c.variable(c.Names.LMV)
		source   = c.IP.Function(c.IP.Source)
		glb      float64
		outflow  = make([]float64, c.D.NumElements())
	)
	if c.Names.Global != "" {
		glb = c.Sys.Solution.AtVec(c.D.DofIndices(c.variable(c.Names.Global), 0)[0])
	}
	for k := range outflow {
		a.Reinit(k)
		vd := a.Volume()
		for qp, w := range vd.JxW {
			pt := vd.QPoints[qp]
			outflow[k] -= w * (source([]float64{pt.X, pt.Y}) + glb)
		}
		for side := 0; side < c.D.NumSides(k); side++ {
			a.ReinitFace(k, side)
			var (
				fd     = a.Face()
				us     = HDG.EvalScalar(fd.LMPhi, c.Sys.Solution.Gather(c.D.DofIndices(lmu, k)), 0, nil)
				vs     = HDG.EvalScalar(fd.LMPhi, c.Sys.Solution.Gather(c.D.DofIndices(lmv, k)), 0, nil)
				vel, g = [2]func(x []float64) float64{}, false
			)
			for _, id := range c.D.BoundaryIDs(k, side) {
				if vel, g = c.dirichlet[id]; g {
					break
				}
			}
			for qp, w := range fd.JxW {
				U := r3.Vec{X: us[qp], Y: vs[qp]}
				if g {
					x := []float64{fd.QPoints[qp].X, fd.QPoints[qp].Y}
					U = r3.Vec{X: vel[0](x), Y: vel[1](x)}
				}
				outflow[k] += w * r3.Dot(U, fd.Normals[qp])
			}
		}
	}
	for i := range outflow {
		outflow[i] = math.Abs(outflow[i])
	}
	return floats.Max(outflow)
}

func (c *NavierStokes) Report() {
	fmt.Printf("%s: converged = %v after %d iterations\n", c.IP.Title, c.Result.Converged, c.Result.Iterations)
	xc, yc := 0.5*(c.IP.XMin+c.IP.XMax), 0.5*(c.IP.YMin+c.IP.YMax)
	u, v := c.Velocity(xc, yc)
	fmt.Printf("Velocity at the centre (%g,%g) = (%12.6f, %12.6f)\n", xc, yc, u, v)
	fmt.Printf("Mean pressure = %12.4e, max element divergence = %12.4e\n", c.MeanPressure(), c.DivergenceResidual())
}
