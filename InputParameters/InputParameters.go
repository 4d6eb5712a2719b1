package InputParameters

import (
	"fmt"
	"io/ioutil"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ghodss/yaml"
	"github.com/notargets/gohdg/HDG"
	"go.uber.org/multierr"
)

// FunctionInput describes a source, exact solution or boundary value.
//
//	constant:  Value
//	sin:       Value sin(π x) [sin(π y)]
//	poly:      Σ Coeffs[i] x^i + Σ CoeffsY[i] y^i
//	parabolic: Value 4 (y - YMin)(YMax - y) / (YMax - YMin)², a channel inflow profile
type FunctionInput struct {
	Type    string    `json:"Type" toml:"Type"`
	Value   float64   `json:"Value" toml:"Value"`
	Coeffs  []float64 `json:"Coeffs" toml:"Coeffs"`
	CoeffsY []float64 `json:"CoeffsY" toml:"CoeffsY"`
}

// BCInput applies a condition to a list of boundary ids. A Dirichlet
// condition takes one value per solution component.
type BCInput struct {
	Type       string          `json:"Type" toml:"Type"` // Dirichlet or Outflow
	Boundaries []int           `json:"Boundaries" toml:"Boundaries"`
	Values     []FunctionInput `json:"Values" toml:"Values"`
}

// Parameters obtained from the YAML or TOML input file
type InputParameters struct {
	Title           string             `json:"Title" toml:"Title"`
	Physics         string             `json:"Physics" toml:"Physics"` // Diffusion or NavierStokes
	PolynomialOrder int                `json:"PolynomialOrder" toml:"PolynomialOrder"`
	K               int                `json:"K" toml:"K"`
	NX              int                `json:"NX" toml:"NX"`
	NY              int                `json:"NY" toml:"NY"`
	XMin            float64            `json:"XMin" toml:"XMin"`
	XMax            float64            `json:"XMax" toml:"XMax"`
	YMin            float64            `json:"YMin" toml:"YMin"`
	YMax            float64            `json:"YMax" toml:"YMax"`
	Tau             float64            `json:"Tau" toml:"Tau"`
	Diffusivity     float64            `json:"Diffusivity" toml:"Diffusivity"`
	Density         float64            `json:"Density" toml:"Density"`
	Viscosity       float64            `json:"Viscosity" toml:"Viscosity"`
	Source          FunctionInput      `json:"Source" toml:"Source"`
	BodyForce       []FunctionInput    `json:"BodyForce" toml:"BodyForce"`
	Exact           *FunctionInput     `json:"Exact" toml:"Exact"`
	BCs             map[string]BCInput `json:"BCs" toml:"BCs"` // keyed by a descriptive name
	MaxIterations   int                `json:"MaxIterations" toml:"MaxIterations"`
	AbsTolerance    float64            `json:"AbsTolerance" toml:"AbsTolerance"`
	RelTolerance    float64            `json:"RelTolerance" toml:"RelTolerance"`
	ParallelDegree  int                `json:"ParallelDegree" toml:"ParallelDegree"`
	EnclosureLM     bool               `json:"EnclosureLM" toml:"EnclosureLM"`
	Coupling        string             `json:"Coupling" toml:"Coupling"`
}

const (
	Diffusion    = "Diffusion"
	NavierStokes = "NavierStokes"
	Dirichlet    = "Dirichlet"
	Outflow      = "Outflow"
)

func NewInputParameters() *InputParameters {
	return &InputParameters{
		Physics:         Diffusion,
		PolynomialOrder: 1,
		XMax:            1,
		YMax:            1,
		Tau:             1,
		Diffusivity:     1,
		Density:         1,
		Viscosity:       1,
		MaxIterations:   25,
		AbsTolerance:    1.e-10,
		RelTolerance:    1.e-12,
		Coupling:        "full",
	}
}

// Parse reads YAML input over the current values.
func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// ParseTOML reads TOML input over the current values, unknown keys are an error.
func (ip *InputParameters) ParseTOML(data []byte) (err error) {
	var md toml.MetaData
	if md, err = toml.Decode(string(data), ip); err != nil {
		return
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		err = fmt.Errorf("unknown input keys: %v", undecoded)
	}
	return
}

// ReadFile parses a .toml file as TOML and anything else as YAML.
func ReadFile(fileName string) (ip *InputParameters, err error) {
	var data []byte
	if data, err = ioutil.ReadFile(fileName); err != nil {
		return
	}
	ip = NewInputParameters()
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".toml":
		err = ip.ParseTOML(data)
	default:
		err = ip.Parse(data)
	}
	if err != nil {
		err = fmt.Errorf("reading %s: %w", fileName, err)
	}
	return
}

func (ip *InputParameters) Dim() int {
	if ip.Physics == NavierStokes {
		return 2
	}
	return 1
}

// NumBoundaries is the number of boundary ids of the mesh the physics runs on.
func (ip *InputParameters) NumBoundaries() int {
	if ip.Dim() == 2 {
		return 4
	}
	return 2
}

// Validate reports every problem with the input at once.
func (ip *InputParameters) Validate() (err error) {
	add := func(format string, args ...interface{}) {
		err = multierr.Append(err, fmt.Errorf(format, args...))
	}
	switch ip.Physics {
	case Diffusion:
		if ip.K < 1 {
			add("K must be at least 1, got %d", ip.K)
		}
		if ip.Diffusivity <= 0 {
			add("Diffusivity must be positive, got %g", ip.Diffusivity)
		}
	case NavierStokes:
		if ip.NX < 1 || ip.NY < 1 {
			add("NX and NY must be at least 1, got %d x %d", ip.NX, ip.NY)
		}
		if ip.YMax <= ip.YMin {
			add("YMax must exceed YMin, got [%g,%g]", ip.YMin, ip.YMax)
		}
		if ip.Density <= 0 || ip.Viscosity <= 0 {
			add("Density and Viscosity must be positive, got %g and %g", ip.Density, ip.Viscosity)
		}
		if len(ip.BodyForce) > 2 {
			add("BodyForce takes at most 2 components, got %d", len(ip.BodyForce))
		}
	default:
		add("unknown Physics %q, use %s or %s", ip.Physics, Diffusion, NavierStokes)
	}
	if ip.PolynomialOrder < 1 {
		add("PolynomialOrder must be at least 1, got %d", ip.PolynomialOrder)
	}
	if ip.XMax <= ip.XMin {
		add("XMax must exceed XMin, got [%g,%g]", ip.XMin, ip.XMax)
	}
	if ip.Tau <= 0 {
		add("Tau must be positive, got %g", ip.Tau)
	}
	if _, e := HDG.NewCoupling(ip.Coupling); e != nil {
		err = multierr.Append(err, e)
	}
	err = multierr.Append(err, ip.Source.validate("Source"))
	for i, f := range ip.BodyForce {
		err = multierr.Append(err, f.validate(fmt.Sprintf("BodyForce[%d]", i)))
	}
	if ip.Exact != nil {
		err = multierr.Append(err, ip.Exact.validate("Exact"))
	}
	err = multierr.Append(err, ip.validateBCs())
	return
}

func (ip *InputParameters) validateBCs() (err error) {
	var (
		nb      = ip.NumBoundaries()
		covered = make([]string, nb)
	)
	for _, name := range ip.BCNames() {
		bc := ip.BCs[name]
		switch bc.Type {
		case Dirichlet:
			if len(bc.Values) != ip.Dim() {
				err = multierr.Append(err, fmt.Errorf("BC %s: %d values for %d components", name, len(bc.Values), ip.Dim()))
			}
			for i, f := range bc.Values {
				err = multierr.Append(err, f.validate(fmt.Sprintf("BC %s value %d", name, i)))
			}
		case Outflow:
			if ip.Physics != NavierStokes {
				err = multierr.Append(err, fmt.Errorf("BC %s: %s requires %s physics", name, Outflow, NavierStokes))
			}
		default:
			err = multierr.Append(err, fmt.Errorf("BC %s: unknown type %q", name, bc.Type))
		}
		for _, b := range bc.Boundaries {
			switch {
			case b < 0 || b >= nb:
				err = multierr.Append(err, fmt.Errorf("BC %s: boundary %d out of range [0,%d)", name, b, nb))
			case covered[b] != "":
				err = multierr.Append(err, fmt.Errorf("BC %s: boundary %d already set by %s", name, b, covered[b]))
			default:
				covered[b] = name
			}
		}
	}
	for b, name := range covered {
		if name == "" {
			err = multierr.Append(err, fmt.Errorf("boundary %d has no condition", b))
		}
	}
	return
}

func (ip *InputParameters) BCNames() (keys []string) {
	for k := range ip.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

func (fi FunctionInput) validate(what string) (err error) {
	switch fi.Type {
	case "", "constant", "sin", "poly", "parabolic":
	default:
		err = fmt.Errorf("%s: unknown function type %q", what, fi.Type)
	}
	return
}

// Function turns fi into a function of position, the y bounds of the domain
// scale the parabolic profile.
func (ip *InputParameters) Function(fi FunctionInput) func(x []float64) float64 {
	y := func(x []float64) float64 {
		if len(x) > 1 {
			return x[1]
		}
		return 0
	}
	switch fi.Type {
	case "sin":
		return func(x []float64) (f float64) {
			f = fi.Value
			for _, xx := range x {
				f *= math.Sin(math.Pi * xx)
			}
			return
		}
	case "poly":
		return func(x []float64) float64 {
			return horner(fi.Coeffs, x[0]) + horner(fi.CoeffsY, y(x))
		}
	case "parabolic":
		h := ip.YMax - ip.YMin
		return func(x []float64) float64 {
			yy := y(x)
			return fi.Value * 4 * (yy - ip.YMin) * (ip.YMax - yy) / (h * h)
		}
	default:
		return func([]float64) float64 { return fi.Value }
	}
}

func horner(c []float64, x float64) (val float64) {
	for i := len(c) - 1; i >= 0; i-- {
		val = val*x + c[i]
	}
	return
}

func (fi FunctionInput) String() string {
	switch fi.Type {
	case "poly":
		return fmt.Sprintf("poly%v%v", fi.Coeffs, fi.CoeffsY)
	case "", "constant":
		return fmt.Sprintf("%g", fi.Value)
	}
	return fmt.Sprintf("%s(%g)", fi.Type, fi.Value)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Physics\n", ip.Physics)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", ip.PolynomialOrder)
	if ip.Dim() == 1 {
		fmt.Printf("[%d]\t\t\t\t= K\n", ip.K)
		fmt.Printf("[%g,%g]\t\t\t= Domain\n", ip.XMin, ip.XMax)
		fmt.Printf("%8.5f\t\t= Diffusivity\n", ip.Diffusivity)
	} else {
		fmt.Printf("[%d x %d]\t\t\t= NX x NY\n", ip.NX, ip.NY)
		fmt.Printf("[%g,%g]x[%g,%g]\t= Domain\n", ip.XMin, ip.XMax, ip.YMin, ip.YMax)
		fmt.Printf("%8.5f\t\t= Density\n", ip.Density)
		fmt.Printf("%8.5f\t\t= Viscosity\n", ip.Viscosity)
		fmt.Printf("%v\t\t\t= Enclosure LM\n", ip.EnclosureLM)
	}
	fmt.Printf("%8.5f\t\t= Tau\n", ip.Tau)
	fmt.Printf("%s\t\t\t= Source\n", ip.Source)
	fmt.Printf("[%d]\t\t\t\t= Max Iterations\n", ip.MaxIterations)
	fmt.Printf("%8.2e, %8.2e\t= Abs, Rel Tolerance\n", ip.AbsTolerance, ip.RelTolerance)
	for _, key := range ip.BCNames() {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
