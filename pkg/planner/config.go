package planner

import (
	"time"

	"github.com/echorobotics/go-so100/pkg/workspace"
)

// Config holds the push maneuver geometry and timing.
type Config struct {
	// Push geometry (meters).
	PushDistance     float64 // how far the object is displaced
	ApproachOffset   float64 // standoff before contact
	PreContactOffset float64 // final standoff before touching

	// Fixed z-levels (meters).
	ApproachHeight float64 // hovering near the object
	ContactHeight  float64 // touching the object
	SafeHeight     float64 // traveling clear of it

	// Neutral start/end position in the arm base frame. Height is SafeHeight.
	HomeX float64
	HomeY float64

	// Smoothing.
	MaxSpeed    float64       // m/s, converts travel distance into duration
	MinDuration time.Duration // duration floor for interior waypoints

	// Authored per-phase durations, replaced by smoothing for interior
	// waypoints.
	PhaseDurations map[Phase]time.Duration
}

// DefaultConfig returns the tuned SO-100 push parameters. The offsets and
// heights are chosen so the arm decelerates before contact and clears the
// object before retreating.
func DefaultConfig() Config {
	return Config{
		PushDistance:     0.05,
		ApproachOffset:   0.03,
		PreContactOffset: 0.01,

		ApproachHeight: 0.12,
		ContactHeight:  0.08,
		SafeHeight:     0.15,

		HomeX: 0.15,
		HomeY: 0.0,

		MaxSpeed:    0.1,
		MinDuration: 500 * time.Millisecond,

		PhaseDurations: map[Phase]time.Duration{
			PhaseStart:       2 * time.Second,
			PhaseAboveBottle: 2 * time.Second,
			PhaseApproach:    1500 * time.Millisecond,
			PhasePreContact:  time.Second,
			PhaseContact:     500 * time.Millisecond,
			PhasePushThrough: 2 * time.Second,
			PhaseRetract:     1500 * time.Millisecond,
			PhaseReturnHome:  3 * time.Second,
		},
	}
}

// Home returns the neutral start/end position.
func (c Config) Home() workspace.Point {
	return workspace.Point{X: c.HomeX, Y: c.HomeY, Z: c.SafeHeight}
}
