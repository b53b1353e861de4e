// Push - autonomous detect→plan→hand-off loop
//
// Reads JPEG frames from a source, detects pushable objects, plans a push
// trajectory and hands it to the executor. One trajectory is in flight at a
// time; the loop does not re-plan while the executor is busy.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/echorobotics/go-so100/internal/config"
	"github.com/echorobotics/go-so100/internal/log"
	"github.com/echorobotics/go-so100/pkg/calib"
	"github.com/echorobotics/go-so100/pkg/detection"
	"github.com/echorobotics/go-so100/pkg/kinematics"
	"github.com/echorobotics/go-so100/pkg/planner"
	"github.com/echorobotics/go-so100/pkg/transform"
	"github.com/echorobotics/go-so100/pkg/viz"
	"github.com/echorobotics/go-so100/pkg/workspace"
)

// FrameSource produces one JPEG frame per call. The camera transport lives
// outside this module; a file source is enough to drive the pipeline.
type FrameSource interface {
	Frame() ([]byte, error)
}

// fileSource re-reads a JPEG from disk each cycle.
type fileSource struct {
	path string
}

func (f *fileSource) Frame() ([]byte, error) {
	return os.ReadFile(f.path)
}

// dryRunExecutor logs each waypoint at its scheduled time instead of driving
// the arm. Stands in for the external execution collaborator.
type dryRunExecutor struct {
	table kinematics.CalibrationTable
}

func (e *dryRunExecutor) Execute(ctx context.Context, t *planner.Trajectory) error {
	log.Info("executing trajectory", "id", t.ID, "duration", t.TotalDuration())
	for i, wp := range t.Waypoints {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wp.Duration):
		}
		cmd := e.table.ApplyAll(wp.Joints)
		log.Info("waypoint reached",
			"step", i+1,
			"phase", wp.Phase,
			"lift", fmt.Sprintf("%.1f", cmd.ShoulderLift),
			"flex", fmt.Sprintf("%.1f", cmd.ElbowFlex))
	}
	return nil
}

func main() {
	var (
		framePath = flag.String("frame", "", "JPEG file to use as the camera frame (required)")
		pushAngle = flag.Float64("angle", 0, "push direction (radians, 0 = +x)")
		interval  = flag.Duration("interval", 2*time.Second, "detection cycle interval")
		plotDir   = flag.String("plots", "", "render diagnostic plots into this directory")
	)
	flag.Parse()
	log.Init("")

	if *framePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: push -frame frame.jpg [-angle 0] [-plots plots/]")
		os.Exit(1)
	}

	rec, err := calib.Load(config.CalibPath())
	if err != nil {
		log.Warn("camera calibration unavailable, using fallback transform", "err", err)
	}
	tf := transform.New(transform.DefaultConfig(), rec)
	if hrec, err := calib.LoadHomography(config.HomographyPath()); err == nil {
		tf.SetHomography(hrec)
	}
	log.Info("coordinate transform ready", "strategy", tf.Strategy())

	yoloCfg := detection.DefaultYOLOConfig()
	yoloCfg.ModelPath = config.ModelPath()
	detector, err := detection.NewYOLO(yoloCfg)
	if err != nil {
		log.Error("detector init failed", "err", err)
		os.Exit(1)
	}
	defer detector.Close()

	limits := workspace.DefaultLimits()
	p := planner.New(planner.DefaultConfig(), kinematics.NewSolver(kinematics.DefaultConfig()), tf, limits)

	var sink viz.Sink = viz.NopSink{}
	if *plotDir != "" {
		sink = viz.NewPlotSink(*plotDir, limits)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	source := &fileSource{path: *framePath}
	executor := &dryRunExecutor{table: kinematics.DefaultCalibrationTable()}

	run(ctx, source, detector, p, executor, sink, *pushAngle, *interval)
}

func run(ctx context.Context, source FrameSource, detector detection.Detector, p *planner.Planner,
	executor planner.Executor, sink viz.Sink, pushAngle float64, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		frame, err := source.Frame()
		if err != nil {
			log.Error("frame capture failed", "err", err)
			continue
		}

		objects, err := detector.Detect(frame)
		if err != nil {
			log.Error("detection failed", "err", err)
			continue
		}
		objects = detection.Filter(objects, detection.DefaultAllowlist, detection.DefaultMinConfidence)

		traj, err := p.Plan(objects, pushAngle)
		switch {
		case errors.Is(err, planner.ErrNoTarget):
			log.Debug("no target this cycle")
			continue
		case err != nil:
			log.Warn("plan aborted", "reason", err)
			continue
		}

		if err := sink.Render(traj); err != nil {
			log.Warn("diagnostics render failed", "err", err)
		}

		// One trajectory in flight: the loop blocks until the executor is
		// done rather than planning against a moving arm.
		if err := executor.Execute(ctx, traj); err != nil {
			log.Error("execution failed", "id", traj.ID, "err", err)
		}
	}
}
