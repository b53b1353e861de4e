package planner

import (
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/echorobotics/go-so100/pkg/kinematics"
	"github.com/echorobotics/go-so100/pkg/workspace"
)

// Waypoint is one timed target pose within a trajectory.
type Waypoint struct {
	Phase    Phase                  `json:"phase"`
	Position workspace.Point        `json:"position"`
	Duration time.Duration          `json:"duration"`
	Joints   kinematics.JointAngles `json:"joints"`
}

// Status is the lifecycle state of one trajectory.
type Status int

const (
	StatusRequested Status = iota
	StatusDetecting
	StatusTargetSelected
	StatusWaypointsSynthesized
	StatusIKResolved
	StatusValidated
	StatusSmoothed
	StatusReady
	StatusAborted
)

var statusNames = map[Status]string{
	StatusRequested:            "requested",
	StatusDetecting:            "detecting",
	StatusTargetSelected:       "target_selected",
	StatusWaypointsSynthesized: "waypoints_synthesized",
	StatusIKResolved:           "ik_resolved",
	StatusValidated:            "validated",
	StatusSmoothed:             "smoothed",
	StatusReady:                "ready_for_execution",
	StatusAborted:              "aborted",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Trajectory is an ordered sequence of exactly NumPhases waypoints for one
// push maneuver. Created once per push cycle, consumed exactly once by an
// external executor, never mutated after reaching StatusReady.
type Trajectory struct {
	ID        uuid.UUID       `json:"id"`
	Target    workspace.Point `json:"target"`
	PushAngle float64         `json:"push_angle"` // radians, 0 = +x
	Waypoints []Waypoint      `json:"waypoints"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

func newTrajectory(target workspace.Point, pushAngle float64) *Trajectory {
	return &Trajectory{
		ID:        uuid.New(),
		Target:    target,
		PushAngle: pushAngle,
		Status:    StatusRequested,
		CreatedAt: time.Now(),
	}
}

// TotalDuration returns the summed waypoint durations.
func (t *Trajectory) TotalDuration() time.Duration {
	var total time.Duration
	for _, wp := range t.Waypoints {
		total += wp.Duration
	}
	return total
}

// PathLength returns the summed 3D distance along the waypoint positions.
func (t *Trajectory) PathLength() float64 {
	if len(t.Waypoints) < 2 {
		return 0
	}
	segments := make([]float64, len(t.Waypoints)-1)
	for i := 1; i < len(t.Waypoints); i++ {
		segments[i-1] = t.Waypoints[i].Position.Dist(t.Waypoints[i-1].Position)
	}
	return floats.Sum(segments)
}

// Ready reports whether the trajectory reached StatusReady.
func (t *Trajectory) Ready() bool {
	return t.Status == StatusReady
}
