package DG1D

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/notargets/gohdg/HDG"
	"github.com/notargets/gohdg/utils"
)

// Boundary ids of the two ends of the interval.
const (
	Left  HDG.BoundaryID = 0
	Right HDG.BoundaryID = 1
)

// Mesh1D is a line of K elements. Side 0 of an element is at its first
// vertex, side 1 at its second. EToE and EToF are -1 on the boundary.
type Mesh1D struct {
	VX         utils.Vector
	EToV       [][2]int
	EToE, EToF [][2]int
}

// SimpleMesh1D splits [xmin, xmax] into K equal elements.
func SimpleMesh1D(xmin, xmax float64, K int) (VX utils.Vector, EToV [][2]int) {
	VX = utils.NewVector(K + 1).Linspace(xmin, xmax)
	EToV = make([][2]int, K)
	for k := range EToV {
		EToV[k] = [2]int{k, k + 1}
	}
	return
}

func NewMesh1D(VX utils.Vector, EToV [][2]int) (m *Mesh1D) {
	m = &Mesh1D{
		VX:   VX,
		EToV: EToV,
	}
	m.connect()
	return
}

// connect matches element faces through their shared vertex, FToF = FToV FToVᵀ
// has a 1 off the diagonal for each connected face pair.
func (m *Mesh1D) connect() {
	var (
		NFaces     = 2
		K          = len(m.EToV)
		Nv         = m.VX.Len()
		TotalFaces = NFaces * K
		FToV       = sparse.NewDOK(TotalFaces, Nv)
		FToF       = sparse.NewCSR(TotalFaces, TotalFaces, nil, nil, nil)
	)
	for k, verts := range m.EToV {
		for face := 0; face < NFaces; face++ {
			FToV.Set(k*NFaces+face, verts[face], 1)
		}
	}
	csr := FToV.ToCSR()
	FToF.Mul(csr, csr.T())
	m.EToE = make([][2]int, K)
	m.EToF = make([][2]int, K)
	for k := range m.EToE {
		m.EToE[k] = [2]int{-1, -1}
		m.EToF[k] = [2]int{-1, -1}
	}
	FToF.DoNonZero(func(i, j int, v float64) {
		if i == j || v != 1 {
			return
		}
		m.EToE[i/NFaces][i%NFaces] = j / NFaces
		m.EToF[i/NFaces][i%NFaces] = j % NFaces
	})
}

func (m *Mesh1D) Dim() int              { return 1 }
func (m *Mesh1D) NumElements() int      { return len(m.EToV) }
func (m *Mesh1D) NumSides(elem int) int { return 2 }

func (m *Mesh1D) Neighbor(elem, side int) (neighbor int, ok bool) {
	neighbor = m.EToE[elem][side]
	return neighbor, neighbor >= 0
}

func (m *Mesh1D) BoundaryIDs(elem, side int) []HDG.BoundaryID {
	if m.EToE[elem][side] >= 0 {
		return nil
	}
	if side == 0 {
		return []HDG.BoundaryID{Left}
	}
	return []HDG.BoundaryID{Right}
}

// Bounds returns the vertex coordinates of elem.
func (m *Mesh1D) Bounds(elem int) (x0, x1 float64) {
	return m.VX.AtVec(m.EToV[elem][0]), m.VX.AtVec(m.EToV[elem][1])
}

// NumTraceDofs and TraceDofs number one trace dof per vertex.
func (m *Mesh1D) NumTraceDofs() int { return m.VX.Len() }

func (m *Mesh1D) TraceDofs(elem int) []int {
	return []int{m.EToV[elem][0], m.EToV[elem][1]}
}

func (m *Mesh1D) String() string {
	return fmt.Sprintf("Mesh1D: %d elements on [%g, %g]", m.NumElements(), m.VX.Min(), m.VX.Max())
}
