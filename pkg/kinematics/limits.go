package kinematics

import "math"

// SO-100 mechanical constants, from the URDF joint definitions.
const (
	// Link zero-offset geometry: rise/run of each link's mounting offset,
	// meters. The actuator zero does not coincide with the geometric link
	// axis, so solved angles are shifted by atan2(rise, run).
	shoulderZeroRise = 0.028
	shoulderZeroRun  = 0.11257
	elbowZeroRise    = 0.0052
	elbowZeroRun     = 0.1349

	// Hardware range limits in the actuator frame, radians.
	ShoulderMinRad = -0.1
	ShoulderMaxRad = 3.45
	ElbowMinRad    = -0.2
	ElbowMaxRad    = math.Pi
)
