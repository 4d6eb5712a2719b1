package HDG

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	ErrScalingFactor    = errors.New("hybridized variables must have a scaling factor of 1")
	ErrVariableMismatch = errors.New("boundary condition variables do not match the kernel variables")
	ErrCoupling         = errors.New("hybridization requires full coupling between the physics variables")
	ErrNotImplemented   = errors.New("not implemented")
	ErrUnknownVariable  = errors.New("unknown variable")
	ErrSingularBlock    = errors.New("singular local primal block")
	ErrProjection       = errors.New("inverse map did not converge")
)

// ConfigError names the object and variable responsible for a setup failure.
type ConfigError struct {
	Object   string
	Variable string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Variable == "" {
		return fmt.Sprintf("%s: %v", e.Object, e.Err)
	}
	return fmt.Sprintf("%s: variable %q: %v", e.Object, e.Variable, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErr(object, variable string, err error) error {
	return &ConfigError{Object: object, Variable: variable, Err: err}
}

// Errors splits an aggregated setup error into its parts.
func Errors(err error) []error {
	return multierr.Errors(err)
}
