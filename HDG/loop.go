package HDG

import (
	"fmt"

	"github.com/notargets/gohdg/utils"
	"go.uber.org/multierr"
)

type Coupling uint8

const (
	FullCoupling Coupling = iota
	DiagonalCoupling
	CustomCoupling
)

func (c Coupling) String() string {
	return [...]string{"full", "diagonal", "custom"}[c]
}

func NewCoupling(label string) (c Coupling, err error) {
	switch label {
	case "", "full", "Full":
		c = FullCoupling
	case "diagonal", "Diagonal":
		c = DiagonalCoupling
	case "custom", "Custom":
		c = CustomCoupling
	default:
		err = fmt.Errorf("unknown coupling %q", label)
	}
	return
}

// SolverConfig is what the outer solver provides to the hybridized kernels.
type SolverConfig struct {
	Coupling       Coupling
	ParallelDegree int // < 1 uses one goroutine per CPU
}

// Validate collects every setup violation: non unit scaling factors,
// boundary conditions whose variables differ from the kernel's and less than
// full coupling.
func Validate(physics ElementPhysics, bcs []HybridizedBC, cfg SolverConfig) (err error) {
	var (
		kernelVars = make(map[string]bool)
	)
	for _, v := range physics.Variables() {
		kernelVars[v.Name] = true
		if v.Scaling != 1 {
			err = multierr.Append(err, configErr(physics.Name(), v.Name,
				fmt.Errorf("%w, got %g", ErrScalingFactor, v.Scaling)))
		}
	}
	for _, bc := range bcs {
		bcVars := make(map[string]bool)
		for _, v := range bc.Variables() {
			bcVars[v.Name] = true
			if !kernelVars[v.Name] {
				err = multierr.Append(err, configErr(bc.Name(), v.Name,
					fmt.Errorf("%w: not used by %s", ErrVariableMismatch, physics.Name())))
			}
		}
		for name := range kernelVars {
			if !bcVars[name] {
				err = multierr.Append(err, configErr(bc.Name(), name,
					fmt.Errorf("%w: missing from the boundary condition", ErrVariableMismatch)))
			}
		}
	}
	if cfg.Coupling != FullCoupling {
		err = multierr.Append(err, configErr(physics.Name(), "",
			fmt.Errorf("%w, got %s coupling", ErrCoupling, cfg.Coupling)))
	}
	return
}

// ElementLoop spreads the elements over ParallelDegree buckets, each bucket
// owning one kernel.
type ElementLoop struct {
	pm      *utils.PartitionMap
	kernels []*HybridizedKernel
}

func NewElementLoop(sys *System, disc Discretization, physics ElementPhysics, bcs []HybridizedBC,
	cfg SolverConfig) (el *ElementLoop, err error) {
	if err = Validate(physics, bcs, cfg); err != nil {
		return
	}
	el = &ElementLoop{
		pm: utils.NewPartitionMapFor(cfg.ParallelDegree, disc.NumElements()),
	}
	el.kernels = make([]*HybridizedKernel, el.pm.ParallelDegree)
	for bn := range el.kernels {
		el.kernels[bn] = NewHybridizedKernel(sys, disc, physics, bcs)
	}
	return
}

func (el *ElementLoop) ParallelDegree() int { return el.pm.ParallelDegree }

// Kernel returns the kernel of bucket bn.
func (el *ElementLoop) Kernel(bn int) *HybridizedKernel { return el.kernels[bn] }

func (el *ElementLoop) ComputeResidualAndJacobian() {
	el.pm.ForEachBucket(func(bn, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			el.kernels[bn].ComputeResidualAndJacobian(k)
		}
	})
}

func (el *ElementLoop) ComputePostLinearSolve() {
	el.pm.ForEachBucket(func(bn, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			el.kernels[bn].ComputePostLinearSolve(k)
		}
	})
}
