package workspace

// Limits is the axis-aligned safety box, in meters in the arm base frame.
// It is configuration, not runtime state: construct once, pass by value.
type Limits struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// DefaultLimits returns the SO-100 table workspace.
func DefaultLimits() Limits {
	return Limits{
		XMin: 0.10, XMax: 0.25,
		YMin: -0.12, YMax: 0.12,
		ZMin: 0.05, ZMax: 0.20,
	}
}

// Contains reports whether (x, y, z) lies inside the box, boundaries included.
func (l Limits) Contains(x, y, z float64) bool {
	return l.XMin <= x && x <= l.XMax &&
		l.YMin <= y && y <= l.YMax &&
		l.ZMin <= z && z <= l.ZMax
}

// ContainsPoint reports whether p lies inside the box.
func (l Limits) ContainsPoint(p Point) bool {
	return l.Contains(p.X, p.Y, p.Z)
}

// ContainsPlanar reports whether (x, y) lies inside the box footprint,
// ignoring height. Used when filtering table-surface detections whose z is
// pinned below the reachable band.
func (l Limits) ContainsPlanar(x, y float64) bool {
	return l.XMin <= x && x <= l.XMax &&
		l.YMin <= y && y <= l.YMax
}
