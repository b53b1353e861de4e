package kinematics

import "errors"

var (
	// ErrDegenerate is returned for geometry the solver cannot work with
	// (zero-length links, or a zero-radius target inside a nonzero inner
	// boundary). Callers must treat this as fatal for the waypoint.
	ErrDegenerate = errors.New("degenerate arm geometry")

	// ErrOutOfReach is returned in strict mode for any target outside the
	// reachable annulus, and in permissive mode for targets beyond the
	// overreach ratio.
	ErrOutOfReach = errors.New("target out of reach")
)
