// Package planner turns camera detections into validated push trajectories
// for the SO-100 arm.
//
// A planning cycle is synchronous and side-effect free over immutable inputs:
// one frame's detections and the calibration loaded at construction. A
// trajectory is all-valid or not produced at all, so the arm is never handed
// a sequence containing an unreachable pose.
package planner

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/echorobotics/go-so100/internal/log"
	"github.com/echorobotics/go-so100/pkg/detection"
	"github.com/echorobotics/go-so100/pkg/kinematics"
	"github.com/echorobotics/go-so100/pkg/transform"
	"github.com/echorobotics/go-so100/pkg/workspace"
)

// Selector picks one target from the workspace-filtered candidates.
type Selector func(candidates []detection.Object) detection.Object

// NearestTarget selects the candidate closest to the arm origin. This is the
// default policy.
func NearestTarget(candidates []detection.Object) detection.Object {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.World.Radial() < best.World.Radial() {
			best = c
		}
	}
	return best
}

// Executor receives a completed trajectory. It is solely responsible for
// closed-loop joint tracking; the planner never issues actuator commands.
type Executor interface {
	Execute(ctx context.Context, t *Trajectory) error
}

// Planner orchestrates target selection, waypoint synthesis, per-waypoint
// inverse kinematics, workspace validation and smoothing.
type Planner struct {
	cfg    Config
	solver *kinematics.Solver
	tf     *transform.Transformer
	limits workspace.Limits

	// Selector overrides the target selection policy. Defaults to
	// NearestTarget.
	Selector Selector
}

// New creates a planner. The transformer and its calibration are fixed for
// the planner's lifetime; recalibrating means constructing a fresh planner.
func New(cfg Config, solver *kinematics.Solver, tf *transform.Transformer, limits workspace.Limits) *Planner {
	return &Planner{
		cfg:      cfg,
		solver:   solver,
		tf:       tf,
		limits:   limits,
		Selector: NearestTarget,
	}
}

// Limits returns the workspace safety box the planner validates against.
func (p *Planner) Limits() workspace.Limits {
	return p.limits
}

// FindTargets resolves each detection's pixel center into the arm base frame
// and keeps those inside the workspace footprint. Resolved world coordinates
// are filled in on the returned copies.
func (p *Planner) FindTargets(objects []detection.Object) []detection.Object {
	var targets []detection.Object
	for _, o := range objects {
		px, py := o.Center()
		o.World = p.tf.ToWorld(px, py)
		// Detections sit on the table surface, below the commanded height
		// band, so only the footprint is checked here. Full 3D validation
		// happens on the synthesized waypoints.
		if p.limits.ContainsPlanar(o.World.X, o.World.Y) {
			targets = append(targets, o)
		}
	}
	return targets
}

// GeneratePushTrajectory synthesizes the eight-phase push maneuver around
// target, resolves every waypoint through inverse kinematics and re-validates
// all world positions against the workspace limits. pushAngle is in radians,
// 0 = +x.
//
// On any failure the whole attempt is aborted: the returned trajectory is nil
// and the error is ErrIK or ErrOutOfBounds.
func (p *Planner) GeneratePushTrajectory(target workspace.Point, pushAngle float64) (*Trajectory, error) {
	traj := newTrajectory(target, pushAngle)
	traj.Status = StatusWaypointsSynthesized
	traj.Waypoints = p.synthesize(target, pushAngle)

	for i := range traj.Waypoints {
		wp := &traj.Waypoints[i]
		ja, err := p.solver.Solve(wp.Position.X, wp.Position.Y)
		if err != nil {
			traj.Status = StatusAborted
			return nil, fmt.Errorf("%w: %s: %w", ErrIK, wp.Phase, err)
		}
		wp.Joints = ja
	}
	traj.Status = StatusIKResolved

	for _, wp := range traj.Waypoints {
		if !p.limits.ContainsPoint(wp.Position) {
			traj.Status = StatusAborted
			return nil, fmt.Errorf("%w: %s at (%.3f, %.3f, %.3f)",
				ErrOutOfBounds, wp.Phase, wp.Position.X, wp.Position.Y, wp.Position.Z)
		}
	}
	traj.Status = StatusValidated

	return traj, nil
}

// synthesize lays out the eight phase positions around the target.
func (p *Planner) synthesize(target workspace.Point, pushAngle float64) []Waypoint {
	dirX := math.Cos(pushAngle)
	dirY := math.Sin(pushAngle)
	home := p.cfg.Home()

	positions := map[Phase]workspace.Point{
		PhaseStart: home,
		PhaseAboveBottle: {
			X: target.X, Y: target.Y, Z: p.cfg.ApproachHeight,
		},
		PhaseApproach: {
			X: target.X - dirX*p.cfg.ApproachOffset,
			Y: target.Y - dirY*p.cfg.ApproachOffset,
			Z: p.cfg.ContactHeight,
		},
		PhasePreContact: {
			X: target.X - dirX*p.cfg.PreContactOffset,
			Y: target.Y - dirY*p.cfg.PreContactOffset,
			Z: p.cfg.ContactHeight,
		},
		PhaseContact: {
			X: target.X, Y: target.Y, Z: p.cfg.ContactHeight,
		},
		PhasePushThrough: {
			X: target.X + dirX*p.cfg.PushDistance,
			Y: target.Y + dirY*p.cfg.PushDistance,
			Z: p.cfg.ContactHeight,
		},
		PhaseRetract: {
			X: target.X + dirX*p.cfg.PushDistance,
			Y: target.Y + dirY*p.cfg.PushDistance,
			Z: p.cfg.ApproachHeight,
		},
		PhaseReturnHome: home,
	}

	waypoints := make([]Waypoint, 0, NumPhases)
	for _, phase := range Phases() {
		waypoints = append(waypoints, Waypoint{
			Phase:    phase,
			Position: positions[phase],
			Duration: p.cfg.PhaseDurations[phase],
		})
	}
	return waypoints
}

// Smooth recomputes interior waypoint durations proportionally to travel
// distance: max(minDuration, max(distPrev, distNext)/maxSpeed). Endpoint
// durations are untouched. The authored durations are hand-picked per phase;
// this prevents velocity spikes when a phase travels further than authored.
func (p *Planner) Smooth(traj *Trajectory) {
	for i := 1; i < len(traj.Waypoints)-1; i++ {
		prev := traj.Waypoints[i-1].Position
		curr := traj.Waypoints[i].Position
		next := traj.Waypoints[i+1].Position

		dist := math.Max(curr.Dist(prev), curr.Dist(next))
		d := time.Duration(dist / p.cfg.MaxSpeed * float64(time.Second))
		if d < p.cfg.MinDuration {
			d = p.cfg.MinDuration
		}
		traj.Waypoints[i].Duration = d
	}
	traj.Status = StatusSmoothed
}

// Plan runs the full pipeline for one detection cycle: workspace filter,
// target selection, synthesis, IK resolution, validation and smoothing. The
// returned trajectory is ReadyForExecution; on failure it returns nil with a
// distinguishable reason (ErrNoTarget, ErrIK, ErrOutOfBounds).
func (p *Planner) Plan(objects []detection.Object, pushAngle float64) (*Trajectory, error) {
	candidates := p.FindTargets(objects)
	if len(candidates) == 0 {
		return nil, ErrNoTarget
	}

	target := p.Selector(candidates)
	log.Debug("target selected",
		"class", target.Class,
		"confidence", target.Confidence,
		"x", target.World.X,
		"y", target.World.Y)

	traj, err := p.GeneratePushTrajectory(target.World, pushAngle)
	if err != nil {
		return nil, err
	}

	p.Smooth(traj)
	traj.Status = StatusReady

	log.Info("trajectory ready",
		"id", traj.ID,
		"waypoints", len(traj.Waypoints),
		"path_m", traj.PathLength(),
		"duration", traj.TotalDuration())
	return traj, nil
}
