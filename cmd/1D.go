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
	"math"
	"os"

	utils2 "github.com/notargets/avs/utils"
	"github.com/notargets/gohdg/InputParameters"
	"github.com/notargets/gohdg/model_problems/Diffusion1D"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One dimensional steady diffusion",
	Long: `
Solves -d/dx(D du/dx) = f with Dirichlet ends. Without an input file the
sine problem u = sin(πx) on [0,1] is solved,

gohdg 1D -k 16 -n 3 -g`,
	Run: func(cmd *cobra.Command, args []string) {
		defer startProfile().Stop()
		m1d := &Model1D{}
		m1d.InputFile, _ = cmd.Flags().GetString("inputFile")
		m1d.K, _ = cmd.Flags().GetInt("k")
		m1d.N, _ = cmd.Flags().GetInt("n")
		m1d.Graph, _ = cmd.Flags().GetBool("graph")
		m1d.overrideK = cmd.Flags().Changed("k")
		m1d.overrideN = cmd.Flags().Changed("n")
		if err := Run1D(m1d, viper.GetBool("verbose")); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	OneDCmd.Flags().StringP("inputFile", "I", "", "YAML or TOML (.toml) input parameters file")
	OneDCmd.Flags().IntP("k", "k", 8, "Number of elements in model")
	OneDCmd.Flags().IntP("n", "n", 3, "polynomial degree")
	OneDCmd.Flags().BoolP("graph", "g", false, "display the solution when done")
}

type Model1D struct {
	InputFile            string
	K, N                 int // Number of elements, Polynomial Degree
	Graph                bool
	overrideK, overrideN bool
}

// DefaultInput1D is the sine problem -u'' = π² sin(πx), u(0) = u(1) = 0.
func DefaultInput1D(K, N int) (ip *InputParameters.InputParameters) {
	ip = InputParameters.NewInputParameters()
	ip.Title = "Sine diffusion"
	ip.K, ip.PolynomialOrder = K, N
	ip.Source = InputParameters.FunctionInput{Type: "sin", Value: math.Pi * math.Pi}
	ip.Exact = &InputParameters.FunctionInput{Type: "sin", Value: 1}
	ip.BCs = map[string]InputParameters.BCInput{
		"Ends": {
			Type:       InputParameters.Dirichlet,
			Boundaries: []int{0, 1},
			Values:     []InputParameters.FunctionInput{{Value: 0}},
		},
	}
	return
}

func (m1d *Model1D) Input() (ip *InputParameters.InputParameters, err error) {
	if len(m1d.InputFile) == 0 {
		return DefaultInput1D(m1d.K, m1d.N), nil
	}
	if ip, err = InputParameters.ReadFile(m1d.InputFile); err != nil {
		return
	}
	if m1d.overrideK {
		ip.K = m1d.K
	}
	if m1d.overrideN {
		ip.PolynomialOrder = m1d.N
	}
	return
}

func Run1D(m1d *Model1D, verbose bool) (err error) {
	var (
		ip *InputParameters.InputParameters
		c  *Diffusion1D.Diffusion
	)
	if ip, err = m1d.Input(); err != nil {
		return
	}
	if verbose {
		ip.Print()
	}
	if c, err = Diffusion1D.NewDiffusion(ip, verbose); err != nil {
		return
	}
	if _, err = c.Solve(); err != nil {
		return
	}
	c.Report()
	if m1d.Graph {
		x, u := c.Solution()
		plotLines(map[color.RGBA][]float32{utils2.RED: elementSegments(x, u, ip.PolynomialOrder+1)})
	}
	return
}

// elementSegments joins consecutive nodes of each element, np nodes apiece.
func elementSegments(x, u []float64, np int) (line []float32) {
	for i := 0; i+1 < len(x); i++ {
		if (i+1)%np == 0 {
			continue
		}
		line = append(line, float32(x[i]), float32(u[i]), float32(x[i+1]), float32(u[i+1]))
	}
	return
}
