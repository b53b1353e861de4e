// Package kinematics solves inverse kinematics for the SO-100 2-link planar
// arm. It is the single IK implementation in the repository: the planner, the
// demo and the HTTP API all resolve poses through it.
//
// All computation is pure and side-effect free; a Solver is safe to share
// between goroutines.
package kinematics

import "math"

// JointAngles is a full 6-joint pose in the actuator reporting convention,
// degrees. Field order matches the SO-100 bus order.
type JointAngles struct {
	ShoulderPan  float64 `json:"shoulder_pan"`
	ShoulderLift float64 `json:"shoulder_lift"`
	ElbowFlex    float64 `json:"elbow_flex"`
	WristFlex    float64 `json:"wrist_flex"`
	WristRoll    float64 `json:"wrist_roll"`
	Gripper      float64 `json:"gripper"`
}

// Mode selects how the solver treats targets outside the reachable annulus.
type Mode int

const (
	// ModePermissive radially rescales out-of-reach targets onto the reach
	// boundary so trajectory generation can proceed for edge targets.
	// Targets further than MaxOverreach times the outer boundary are still
	// rejected, so a wildly bad detection is not silently pulled in.
	ModePermissive Mode = iota

	// ModeStrict rejects any target outside the reachable annulus with
	// ErrOutOfReach.
	ModeStrict
)

// Config holds solver parameters.
type Config struct {
	L1 float64 // first link length (m)
	L2 float64 // second link length (m)

	Mode Mode

	// MaxOverreach is the permissive-mode rejection ratio: targets with
	// r > MaxOverreach*(L1+L2) return ErrOutOfReach instead of being
	// rescaled. Ignored in strict mode.
	MaxOverreach float64

	// PitchTrim is added to the derived wrist pitch, degrees.
	PitchTrim float64

	// WristRoll and Gripper are passed through to every solved pose.
	WristRoll float64
	Gripper   float64
}

// DefaultConfig returns the SO-100 link lengths with permissive clamping.
func DefaultConfig() Config {
	return Config{
		L1:           0.1159,
		L2:           0.1350,
		Mode:         ModePermissive,
		MaxOverreach: 2.0,
	}
}

// Solver computes joint angles for planar targets in the arm base frame.
type Solver struct {
	cfg Config

	// Mechanical zero offsets: the angles the link geometry reports when the
	// shoulder and elbow actuators read zero.
	shoulderZero float64
	elbowZero    float64
}

// NewSolver creates a solver for the given configuration.
func NewSolver(cfg Config) *Solver {
	shoulderZero := math.Atan2(shoulderZeroRise, shoulderZeroRun)
	return &Solver{
		cfg:          cfg,
		shoulderZero: shoulderZero,
		elbowZero:    math.Atan2(elbowZeroRise, elbowZeroRun) + shoulderZero,
	}
}

// Config returns the solver configuration.
func (s *Solver) Config() Config {
	return s.cfg
}

// MaxReach returns the outer boundary of the reachable annulus.
func (s *Solver) MaxReach() float64 {
	return s.cfg.L1 + s.cfg.L2
}

// MinReach returns the inner boundary of the reachable annulus.
func (s *Solver) MinReach() float64 {
	return math.Abs(s.cfg.L1 - s.cfg.L2)
}

// Solve computes the joint pose that places the end effector at (x, y) in the
// arm base frame. The shoulder and elbow are solved geometrically, the wrist
// pitch is derived so the end effector stays level in any configuration, and
// wrist roll and gripper come from the configured defaults.
//
// Returns ErrDegenerate for zero-length links and ErrOutOfReach per Mode.
func (s *Solver) Solve(x, y float64) (JointAngles, error) {
	l1, l2 := s.cfg.L1, s.cfg.L2
	if l1 <= 0 || l2 <= 0 {
		return JointAngles{}, ErrDegenerate
	}

	r := math.Hypot(x, y)
	rMax := l1 + l2
	rMin := math.Abs(l1 - l2)

	switch s.cfg.Mode {
	case ModeStrict:
		if r > rMax || r < rMin {
			return JointAngles{}, ErrOutOfReach
		}
	default:
		if s.cfg.MaxOverreach > 0 && r > s.cfg.MaxOverreach*rMax {
			return JointAngles{}, ErrOutOfReach
		}
		if r > rMax {
			scale := rMax / r
			x, y, r = x*scale, y*scale, rMax
		}
		if r < rMin {
			if r == 0 {
				// No direction to rescale along.
				return JointAngles{}, ErrDegenerate
			}
			scale := rMin / r
			x, y, r = x*scale, y*scale, rMin
		}
	}

	// Law of cosines for the elbow, single elbow-up configuration.
	cosTheta2 := -(r*r - l1*l1 - l2*l2) / (2 * l1 * l2)
	cosTheta2 = clamp(cosTheta2, -1, 1)
	theta2 := math.Pi - math.Acos(cosTheta2)

	// Shoulder: bearing to target plus the geometric offset of the elbow.
	theta1 := math.Atan2(y, x) + math.Atan2(l2*math.Sin(theta2), l1+l2*math.Cos(theta2))

	// Map into the actuator reporting convention: zero offsets, hardware
	// range clamps, then the degree remap the firmware expects.
	shoulder := clamp(theta1+s.shoulderZero, ShoulderMinRad, ShoulderMaxRad)
	elbow := clamp(theta2+s.elbowZero, ElbowMinRad, ElbowMaxRad)

	shoulderDeg := 90 - degrees(shoulder)
	elbowDeg := degrees(elbow) - 90

	ja := JointAngles{
		ShoulderPan:  degrees(math.Atan2(y, x)),
		ShoulderLift: shoulderDeg,
		ElbowFlex:    elbowDeg,
		WristRoll:    s.cfg.WristRoll,
		Gripper:      s.cfg.Gripper,
	}
	// Keep the end effector level regardless of arm configuration.
	ja.WristFlex = -ja.ShoulderLift - ja.ElbowFlex + s.cfg.PitchTrim

	return ja, nil
}

// Forward computes the planar end-effector position from a solved pose.
// It exactly inverts Solve for poses within the hardware range limits;
// clamped poses cannot be inverted.
func (s *Solver) Forward(ja JointAngles) (x, y float64) {
	l1, l2 := s.cfg.L1, s.cfg.L2

	theta1 := radians(90-ja.ShoulderLift) - s.shoulderZero
	theta2 := radians(ja.ElbowFlex+90) - s.elbowZero

	r := math.Sqrt(l1*l1 + l2*l2 + 2*l1*l2*math.Cos(theta2))
	bearing := theta1 - math.Atan2(l2*math.Sin(theta2), l1+l2*math.Cos(theta2))

	return r * math.Cos(bearing), r * math.Sin(bearing)
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
