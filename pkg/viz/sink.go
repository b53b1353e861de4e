// Package viz renders trajectories for offline inspection. It never
// participates in planning correctness: production builds use NopSink.
package viz

import "github.com/echorobotics/go-so100/pkg/planner"

// Sink receives completed trajectories for diagnostic rendering.
type Sink interface {
	Render(t *planner.Trajectory) error
}

// NopSink discards trajectories. The default in headless builds.
type NopSink struct{}

// Render does nothing.
func (NopSink) Render(*planner.Trajectory) error {
	return nil
}
