package HDG

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedPhysics struct {
	ElementPhysics
	vars []*Variable
}

func (np namedPhysics) Name() string           { return "namedPhysics" }
func (np namedPhysics) Variables() []*Variable { return np.vars }

type namedBC struct {
	HybridizedBC
	vars []*Variable
}

func (nb namedBC) Name() string           { return "namedBC" }
func (nb namedBC) Variables() []*Variable { return nb.vars }

func TestValidate(t *testing.T) {
	var (
		u  = &Variable{Name: "u", Scaling: 1}
		q  = &Variable{Name: "q", Scaling: 1}
		lm = &Variable{Name: "lm", Scaling: 1}
		w  = &Variable{Name: "w", Scaling: 1}
	)
	{ // A consistent setup passes
		err := Validate(namedPhysics{vars: []*Variable{q, u, lm}},
			[]HybridizedBC{namedBC{vars: []*Variable{q, u, lm}}}, SolverConfig{})
		assert.NoError(t, err)
	}
	{ // Every violation is reported
		scaled := &Variable{Name: "u", Scaling: 2}
		err := Validate(namedPhysics{vars: []*Variable{q, scaled, lm}},
			[]HybridizedBC{namedBC{vars: []*Variable{q, scaled, w}}}, SolverConfig{Coupling: DiagonalCoupling})
		require.Error(t, err)
		errs := Errors(err)
		assert.Len(t, errs, 4)
		assert.True(t, errors.Is(err, ErrScalingFactor))
		assert.True(t, errors.Is(err, ErrVariableMismatch))
		assert.True(t, errors.Is(err, ErrCoupling))
		var ce *ConfigError
		require.True(t, errors.As(errs[1], &ce))
		assert.Equal(t, "namedBC", ce.Object)
		assert.Equal(t, "w", ce.Variable)
		assert.Contains(t, errs[2].Error(), `variable "lm"`)
	}
	{
		for label, want := range map[string]Coupling{"": FullCoupling, "full": FullCoupling,
			"Diagonal": DiagonalCoupling, "custom": CustomCoupling} {
			c, err := NewCoupling(label)
			assert.NoError(t, err)
			assert.Equal(t, want, c)
		}
		_, err := NewCoupling("partial")
		assert.Error(t, err)
	}
}

func TestDofMap(t *testing.T) {
	var (
		dm = NewDofMap(3, 2, 2, vertexTrace{3})
	)
	q, err := dm.AddVariable("q", VectorField, Aux)
	require.NoError(t, err)
	u, _ := dm.AddVariable("u", ScalarField, Aux)
	lm, _ := dm.AddVariable("lm", TraceField, Nonlinear)
	g, _ := dm.AddVariable("g", GlobalScalar, Nonlinear)
	_, err = dm.AddVariable("u", ScalarField, Aux)
	assert.Error(t, err)

	assert.Equal(t, 12, dm.NumDofs(Aux))
	assert.Equal(t, 5, dm.NumDofs(Nonlinear))
	assert.Equal(t, []int{2, 3}, []int(dm.DofIndices(q, 1)))
	assert.Equal(t, []int{8, 9}, []int(dm.DofIndices(u, 1)))
	assert.Equal(t, []int{2, 3}, []int(dm.DofIndices(lm, 2)))
	assert.Equal(t, []int{4}, []int(dm.DofIndices(g, 0)))
	assert.Equal(t, 1, dm.NumLocalDofs(g, 2))
	assert.Equal(t, 2, dm.NumLocalDofs(lm, 0))

	v, err := dm.Variable("lm")
	assert.NoError(t, err)
	assert.Same(t, lm, v)
	_, err = dm.Variable("p")
	assert.True(t, errors.Is(err, ErrUnknownVariable))
	assert.Equal(t, "trace", TraceField.String())
}
