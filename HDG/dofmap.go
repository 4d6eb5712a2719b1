package HDG

import (
	"fmt"

	"github.com/notargets/gohdg/utils"
)

type SystemKind uint8

const (
	Nonlinear SystemKind = iota // solved for: trace, pressure and global multipliers
	Aux                         // recovered element interior fields
)

func (s SystemKind) String() string {
	switch s {
	case Nonlinear:
		return "nonlinear"
	case Aux:
		return "aux"
	}
	return "unknown"
}

type FieldKind uint8

const (
	VectorField FieldKind = iota
	ScalarField
	TraceField
	GlobalScalar
)

func (f FieldKind) String() string {
	return [...]string{"vector", "scalar", "trace", "global"}[f]
}

type Variable struct {
	Name    string
	Kind    FieldKind
	Sys     SystemKind
	Scaling float64
	offset  int
}

// TraceNumbering is supplied by the discretization, it numbers the trace
// dofs shared between neighboring elements.
type TraceNumbering interface {
	NumTraceDofs() int
	TraceDofs(elem int) []int
}

// DofMap numbers the variables of both systems. Vector and scalar fields are
// element blocked, trace fields follow the TraceNumbering and a global scalar
// owns a single dof.
type DofMap struct {
	K                  int
	NpVector, NpScalar int
	Trace              TraceNumbering
	vars               []*Variable
	byName             map[string]*Variable
	nDofs              [2]int
}

func NewDofMap(K, npVector, npScalar int, trace TraceNumbering) *DofMap {
	return &DofMap{
		K:        K,
		NpVector: npVector,
		NpScalar: npScalar,
		Trace:    trace,
		byName:   make(map[string]*Variable),
	}
}

func (dm *DofMap) AddVariable(name string, kind FieldKind, sys SystemKind) (v *Variable, err error) {
	if _, present := dm.byName[name]; present {
		err = fmt.Errorf("variable %q is already defined", name)
		return
	}
	v = &Variable{
		Name:    name,
		Kind:    kind,
		Sys:     sys,
		Scaling: 1,
		offset:  dm.nDofs[sys],
	}
	dm.nDofs[sys] += dm.size(kind)
	dm.vars = append(dm.vars, v)
	dm.byName[name] = v
	return
}

func (dm *DofMap) size(kind FieldKind) int {
	switch kind {
	case VectorField:
		return dm.K * dm.NpVector
	case ScalarField:
		return dm.K * dm.NpScalar
	case TraceField:
		return dm.Trace.NumTraceDofs()
	default:
		return 1
	}
}

func (dm *DofMap) Variable(name string) (v *Variable, err error) {
	var ok bool
	if v, ok = dm.byName[name]; !ok {
		err = fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	return
}

func (dm *DofMap) Variables() []*Variable { return dm.vars }

func (dm *DofMap) NumDofs(sys SystemKind) int { return dm.nDofs[sys] }

func (dm *DofMap) NumLocalDofs(v *Variable, elem int) int {
	switch v.Kind {
	case VectorField:
		return dm.NpVector
	case ScalarField:
		return dm.NpScalar
	case TraceField:
		return len(dm.Trace.TraceDofs(elem))
	default:
		return 1
	}
}

// DofIndices returns the global dofs of v on elem, numbered within v's system.
func (dm *DofMap) DofIndices(v *Variable, elem int) (I utils.Index) {
	switch v.Kind {
	case VectorField:
		I = utils.NewRange(0, dm.NpVector).Add(v.offset + elem*dm.NpVector)
	case ScalarField:
		I = utils.NewRange(0, dm.NpScalar).Add(v.offset + elem*dm.NpScalar)
	case TraceField:
		I = utils.Index(dm.Trace.TraceDofs(elem)).Add(v.offset)
	default:
		I = utils.Index{v.offset}
	}
	return
}
