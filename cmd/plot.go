package cmd

import (
	"image/color"
	"math"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

// plotLines draws line segments given as x1,y1,x2,y2 runs and holds the
// window open.
func plotLines(lines map[color.RGBA][]float32) {
	var (
		xMin, xMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
		yMin, yMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	)
	for _, line := range lines {
		xMin, xMax, yMin, yMax = getMinMax(line, xMin, xMax, yMin, yMax)
	}
	// pad so flat lines stay visible
	padX, padY := 0.05*(xMax-xMin)+1.e-3, 0.05*(yMax-yMin)+1.e-3
	ch := chart2d.NewChart2D(xMin-padX, xMax+padX, yMin-padY, yMax+padY,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	for col, line := range lines {
		ch.AddLine(line, col)
	}
	for {
	}
}

func getMinMax(line []float32, xMin, xMax, yMin, yMax float32) (float32, float32, float32, float32) {
	for i := 0; i+1 < len(line); i += 2 {
		x, y := line[i], line[i+1]
		if x < xMin {
			xMin = x
		}
		if x > xMax {
			xMax = x
		}
		if y < yMin {
			yMin = y
		}
		if y > yMax {
			yMax = y
		}
	}
	return xMin, xMax, yMin, yMax
}
