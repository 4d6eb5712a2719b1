/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"image/color"
	"os"

	utils2 "github.com/notargets/avs/utils"
	"github.com/notargets/gohdg/InputParameters"
	"github.com/notargets/gohdg/model_problems/NavierStokes2D"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Model2D struct {
	ICFile     string
	NX, NY, N  int
	Graph      bool
	PlotPoints int
	overrides  map[string]bool
}

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional steady incompressible Navier-Stokes",
	Long: `
Solves steady incompressible flow on a box of quadrilaterals. Without an
input file the unit lid driven cavity at Re = 1 is solved,

gohdg 2D -I channel.yaml -g`,
	Run: func(cmd *cobra.Command, args []string) {
		defer startProfile().Stop()
		m2d := &Model2D{overrides: make(map[string]bool)}
		m2d.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		m2d.NX, _ = cmd.Flags().GetInt("nx")
		m2d.NY, _ = cmd.Flags().GetInt("ny")
		m2d.N, _ = cmd.Flags().GetInt("n")
		m2d.Graph, _ = cmd.Flags().GetBool("graph")
		m2d.PlotPoints, _ = cmd.Flags().GetInt("plotPoints")
		for _, name := range []string{"nx", "ny", "n"} {
			m2d.overrides[name] = cmd.Flags().Changed(name)
		}
		if err := Run2D(m2d, viper.GetBool("verbose")); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML or TOML (.toml) file for input parameters like:\n\t- Physics\n\t- Viscosity\n\t- BCs")
	TwoDCmd.Flags().Int("nx", 4, "number of elements along x")
	TwoDCmd.Flags().Int("ny", 4, "number of elements along y")
	TwoDCmd.Flags().IntP("n", "n", 2, "polynomial degree")
	TwoDCmd.Flags().BoolP("graph", "g", false, "display the u velocity profile across the middle of the box when done")
	TwoDCmd.Flags().IntP("plotPoints", "s", 50, "number of points along the plotted profile")
}

// DefaultInput2D is the unit lid driven cavity.
func DefaultInput2D(NX, NY, N int) (ip *InputParameters.InputParameters) {
	ip = InputParameters.NewInputParameters()
	ip.Title = "Lid driven cavity"
	ip.Physics = InputParameters.NavierStokes
	ip.NX, ip.NY, ip.PolynomialOrder = NX, NY, N
	ip.EnclosureLM = true
	ip.BCs = map[string]InputParameters.BCInput{
		"Lid": {
			Type:       InputParameters.Dirichlet,
			Boundaries: []int{2},
			Values:     []InputParameters.FunctionInput{{Value: 1}, {Value: 0}},
		},
		"Walls": {
			Type:       InputParameters.Dirichlet,
			Boundaries: []int{0, 1, 3},
			Values:     []InputParameters.FunctionInput{{Value: 0}, {Value: 0}},
		},
	}
	return
}

func (m2d *Model2D) Input() (ip *InputParameters.InputParameters, err error) {
	if len(m2d.ICFile) == 0 {
		return DefaultInput2D(m2d.NX, m2d.NY, m2d.N), nil
	}
	if ip, err = InputParameters.ReadFile(m2d.ICFile); err != nil {
		return
	}
	if m2d.overrides["nx"] {
		ip.NX = m2d.NX
	}
	if m2d.overrides["ny"] {
		ip.NY = m2d.NY
	}
	if m2d.overrides["n"] {
		ip.PolynomialOrder = m2d.N
	}
	return
}

func Run2D(m2d *Model2D, verbose bool) (err error) {
	var (
		ip *InputParameters.InputParameters
		c  *NavierStokes2D.NavierStokes
	)
	if ip, err = m2d.Input(); err != nil {
		return
	}
	if verbose {
		ip.Print()
	}
	if c, err = NavierStokes2D.NewNavierStokes(ip, verbose); err != nil {
		return
	}
	if _, err = c.Solve(); err != nil {
		return
	}
	c.Report()
	if m2d.Graph {
		plotLines(map[color.RGBA][]float32{utils2.RED: velocityProfile(c, m2d.PlotPoints)})
	}
	return
}

// velocityProfile samples u along the vertical line through the middle of
// the box, plotted as u against y.
func velocityProfile(c *NavierStokes2D.NavierStokes, n int) (line []float32) {
	if n < 2 {
		n = 2
	}
	var (
		ip = c.IP
		xc = 0.5 * (ip.XMin + ip.XMax)
		dy = (ip.YMax - ip.YMin) / float64(n-1)
	)
	for i := 0; i+1 < n; i++ {
		y0, y1 := ip.YMin+float64(i)*dy, ip.YMin+float64(i+1)*dy
		u0, _ := c.Velocity(xc, y0)
		u1, _ := c.Velocity(xc, y1)
		line = append(line, float32(u0), float32(y0), float32(u1), float32(y1))
	}
	return
}
