// Package geom holds the axis-aligned box math used by the layout builder.
// Coordinates follow the detector's normalized image space: x grows right,
// y grows down.
package geom

// Placement tolerances. These are part of the scoring contract: changing any
// of them changes which cards cluster into which structure.
const (
	// AdjacentEpsilon batches chain-expansion candidates whose distance is
	// within this much of the round minimum.
	AdjacentEpsilon = 1e-3
	// SideOverlapTolerance is how far two boxes may overlap along the
	// placement axis and still count as "beside" rather than stacked.
	SideOverlapTolerance = 2e-3
	// MinPerpOverlapRatio is the minimum perpendicular overlap, as a fraction
	// of the smaller box's perpendicular size, for two boxes to be neighbors.
	MinPerpOverlapRatio = 0.20
	// MaxSideGapRatio is the maximum gap along the placement axis, as a
	// fraction of the larger box's size on that axis.
	MaxSideGapRatio = 0.50
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Box is an axis-aligned rectangle with derived center and size.
type Box struct {
	X1, Y1, X2, Y2 float64
	CX, CY         float64
	W, H           float64
}

func NewBox(x1, y1, x2, y2 float64) Box {
	return Box{
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		CX: (x1 + x2) / 2, CY: (y1 + y2) / 2,
		W: x2 - x1, H: y2 - y1,
	}
}

// OverlapAxis returns the length of the 1-D intersection of a and b projected
// onto the given axis, floored at 0.
func OverlapAxis(a, b Box, axis Axis) float64 {
	var lo, hi float64
	if axis == AxisX {
		lo = maxf(a.X1, b.X1)
		hi = minf(a.X2, b.X2)
	} else {
		lo = maxf(a.Y1, b.Y1)
		hi = minf(a.Y2, b.Y2)
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
