package DGQuad

import (
	"fmt"

	"github.com/notargets/gohdg/HDG"
	"gonum.org/v1/gonum/spatial/r3"
)

// Side numbering, also used as the boundary ids of the box.
const (
	Bottom = iota
	Right
	Top
	Left
)

// QuadMesh is an NX by NY grid of axis aligned quads on [X0,X1]x[Y0,Y1].
// Element (i, j) is numbered i + j NX. Horizontal edges come first, then
// vertical ones, each oriented along +x or +y.
type QuadMesh struct {
	NX, NY         int
	X0, X1, Y0, Y1 float64
	HX, HY         float64
}

func NewQuadMesh(nx, ny int, x0, x1, y0, y1 float64) *QuadMesh {
	if nx < 1 || ny < 1 || x1 <= x0 || y1 <= y0 {
		panic(fmt.Errorf("bad quad mesh: %d x %d on [%g,%g]x[%g,%g]", nx, ny, x0, x1, y0, y1))
	}
	return &QuadMesh{
		NX: nx, NY: ny,
		X0: x0, X1: x1, Y0: y0, Y1: y1,
		HX: (x1 - x0) / float64(nx),
		HY: (y1 - y0) / float64(ny),
	}
}

func (qm *QuadMesh) ij(elem int) (i, j int) { return elem % qm.NX, elem / qm.NX }

func (qm *QuadMesh) Dim() int              { return 2 }
func (qm *QuadMesh) NumElements() int      { return qm.NX * qm.NY }
func (qm *QuadMesh) NumSides(elem int) int { return 4 }

func (qm *QuadMesh) Neighbor(elem, side int) (neighbor int, ok bool) {
	i, j := qm.ij(elem)
	switch side {
	case Bottom:
		j--
	case Right:
		i++
	case Top:
		j++
	case Left:
		i--
	}
	if i < 0 || j < 0 || i >= qm.NX || j >= qm.NY {
		return -1, false
	}
	return i + j*qm.NX, true
}

func (qm *QuadMesh) BoundaryIDs(elem, side int) []HDG.BoundaryID {
	if _, ok := qm.Neighbor(elem, side); ok {
		return nil
	}
	return []HDG.BoundaryID{HDG.BoundaryID(side)}
}

func (qm *QuadMesh) NumEdges() int {
	return qm.NX*(qm.NY+1) + (qm.NX+1)*qm.NY
}

// Edge returns the global edge of a side.
func (qm *QuadMesh) Edge(elem, side int) int {
	var (
		i, j = qm.ij(elem)
		nh   = qm.NX * (qm.NY + 1)
	)
	switch side {
	case Bottom:
		return i + j*qm.NX
	case Top:
		return i + (j+1)*qm.NX
	case Left:
		return nh + i + j*(qm.NX+1)
	default:
		return nh + i + 1 + j*(qm.NX+1)
	}
}

// Corner returns the lower left corner of elem.
func (qm *QuadMesh) Corner(elem int) (x0, y0 float64) {
	i, j := qm.ij(elem)
	return qm.X0 + float64(i)*qm.HX, qm.Y0 + float64(j)*qm.HY
}

// EdgeEnds returns the start and end of a side in the edge orientation.
func (qm *QuadMesh) EdgeEnds(elem, side int) (a, b r3.Vec) {
	var (
		x0, y0 = qm.Corner(elem)
		x1, y1 = x0 + qm.HX, y0 + qm.HY
	)
	switch side {
	case Bottom:
		return r3.Vec{X: x0, Y: y0}, r3.Vec{X: x1, Y: y0}
	case Right:
		return r3.Vec{X: x1, Y: y0}, r3.Vec{X: x1, Y: y1}
	case Top:
		return r3.Vec{X: x0, Y: y1}, r3.Vec{X: x1, Y: y1}
	default:
		return r3.Vec{X: x0, Y: y0}, r3.Vec{X: x0, Y: y1}
	}
}

// Locate returns the element holding (x, y) and the reference coordinates
// of the point in it.
func (qm *QuadMesh) Locate(x, y float64) (elem int, r, s float64) {
	clamp := func(v, n int) int {
		if v < 0 {
			return 0
		}
		if v >= n {
			return n - 1
		}
		return v
	}
	i := clamp(int((x-qm.X0)/qm.HX), qm.NX)
	j := clamp(int((y-qm.Y0)/qm.HY), qm.NY)
	elem = i + j*qm.NX
	x0, y0 := qm.Corner(elem)
	r = 2*(x-x0)/qm.HX - 1
	s = 2*(y-y0)/qm.HY - 1
	return
}

var sideNormals = [4]r3.Vec{{Y: -1}, {X: 1}, {Y: 1}, {X: -1}}
