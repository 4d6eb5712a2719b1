package NavierStokes2D

import (
	"testing"

	"github.com/notargets/gohdg/InputParameters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cavity = []byte(`
Title: Cavity
Physics: NavierStokes
PolynomialOrder: 2
NX: 3
NY: 3
Density: 1
Viscosity: 1
EnclosureLM: true
ParallelDegree: 2
BCs:
  Lid:
    Type: Dirichlet
    Boundaries: [2]
    Values: [{Value: 1}, {Value: 0}]
  Walls:
    Type: Dirichlet
    Boundaries: [0, 1, 3]
    Values: [{Value: 0}, {Value: 0}]
`)
	channel = []byte(`
Title: Channel
Physics: NavierStokes
PolynomialOrder: 2
NX: 4
NY: 2
XMax: 2
Viscosity: 0.5
BCs:
  Inflow:
    Type: Dirichlet
    Boundaries: [3]
    Values: [{Type: parabolic, Value: 1}, {Value: 0}]
  Walls:
    Type: Dirichlet
    Boundaries: [0, 2]
    Values: [{Value: 0}, {Value: 0}]
  Outflow:
    Type: Outflow
    Boundaries: [1]
`)
)

func newModel(t *testing.T, input []byte) *NavierStokes {
	ip := InputParameters.NewInputParameters()
	require.NoError(t, ip.Parse(input))
	c, err := NewNavierStokes(ip, true)
	require.NoError(t, err)
	return c
}

func TestCavity(t *testing.T) {
	c := newModel(t, cavity)
	assert.Equal(t, "lambda", c.Names.Global)
	assert.InDelta(t, 1., c.Reynolds(), 1.e-14)
	res, err := c.Solve()
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 0., c.MeanPressure(), 1.e-8)
	assert.Less(t, c.DivergenceResidual(), 1.e-8)
	u, _ := c.Velocity(0.5, 0.9)
	assert.Greater(t, u, 0.)
	// the lid pushes fluid into the downstream top corner
	assert.Greater(t, c.Pressure(0.95, 0.95), c.Pressure(0.05, 0.95))
	c.Report()
}

func TestChannel(t *testing.T) {
	c := newModel(t, channel)
	assert.Empty(t, c.Names.Global)
	res, err := c.Solve()
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Less(t, c.DivergenceResidual(), 1.e-8)
	{ // Flow runs down the channel, pushed by a falling pressure
		u, _ := c.Velocity(1, 0.5)
		assert.Greater(t, u, 0.5)
		uWall, _ := c.Velocity(1, 0.02)
		assert.Less(t, uWall, u)
		assert.Greater(t, c.Pressure(0.25, 0.5), c.Pressure(1.75, 0.5))
	}
}

func TestSetupErrors(t *testing.T) {
	ip := InputParameters.NewInputParameters()
	require.NoError(t, ip.Parse(cavity))
	ip.Physics = InputParameters.Diffusion
	_, err := NewNavierStokes(ip, false)
	assert.Error(t, err)

	ip = InputParameters.NewInputParameters()
	require.NoError(t, ip.Parse(channel))
	delete(ip.BCs, "Walls")
	_, err = NewNavierStokes(ip, false)
	assert.Error(t, err)
}
