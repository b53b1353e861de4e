package planner

import "errors"

var (
	// ErrNoTarget is returned when no detection survives the world-frame
	// workspace filter. The caller retries on the next detection cycle.
	ErrNoTarget = errors.New("no valid target in workspace")

	// ErrIK is returned when a waypoint's inverse kinematics resolution is
	// degenerate. The whole attempt is discarded; no partial trajectory is
	// ever produced.
	ErrIK = errors.New("waypoint ik resolution failed")

	// ErrOutOfBounds is returned when any synthesized waypoint fails the
	// post-hoc workspace re-check. The abort is atomic.
	ErrOutOfBounds = errors.New("waypoint outside workspace limits")
)
