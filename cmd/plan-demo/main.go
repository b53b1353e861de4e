// Plan demo - offline push-trajectory generation
//
// Plans a push maneuver for a synthetic bottle position, smooths it and
// renders the diagnostic plots. No camera or arm required.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/echorobotics/go-so100/internal/config"
	"github.com/echorobotics/go-so100/internal/log"
	"github.com/echorobotics/go-so100/pkg/calib"
	"github.com/echorobotics/go-so100/pkg/kinematics"
	"github.com/echorobotics/go-so100/pkg/planner"
	"github.com/echorobotics/go-so100/pkg/transform"
	"github.com/echorobotics/go-so100/pkg/viz"
	"github.com/echorobotics/go-so100/pkg/workspace"
)

func main() {
	var (
		targetX   = flag.Float64("x", 0.18, "target x in the arm base frame (m)")
		targetY   = flag.Float64("y", 0.05, "target y in the arm base frame (m)")
		pushAngle = flag.Float64("angle", 0, "push direction (radians, 0 = +x)")
		outDir    = flag.String("out", "plots", "directory for rendered plots")
	)
	flag.Parse()
	log.Init("")

	fmt.Println("🦾 SO-100 push trajectory demo")
	fmt.Println("==============================")

	// Calibration is optional here: the demo takes a world-frame target
	// directly, the transformer is only reported for completeness.
	rec, err := calib.Load(config.CalibPath())
	if err != nil {
		log.Warn("no camera calibration, transform runs in fallback mode", "err", err)
	}
	tf := transform.New(transform.DefaultConfig(), rec)

	solver := kinematics.NewSolver(kinematics.DefaultConfig())
	limits := workspace.DefaultLimits()
	p := planner.New(planner.DefaultConfig(), solver, tf, limits)

	target := workspace.Point{X: *targetX, Y: *targetY}
	fmt.Printf("Target: (%.3f, %.3f)  push angle: %.2f rad  strategy: %s\n\n",
		target.X, target.Y, *pushAngle, tf.Strategy())

	traj, err := p.GeneratePushTrajectory(target, *pushAngle)
	if err != nil {
		fmt.Printf("❌ no trajectory: %v\n", err)
		os.Exit(1)
	}
	p.Smooth(traj)

	for i, wp := range traj.Waypoints {
		fmt.Printf("%d. %-13s (%.3f, %.3f, %.3f)  %6s  lift=%6.1f° flex=%6.1f° wrist=%6.1f°\n",
			i+1, wp.Phase,
			wp.Position.X, wp.Position.Y, wp.Position.Z,
			wp.Duration.Round(10*time.Millisecond),
			wp.Joints.ShoulderLift, wp.Joints.ElbowFlex, wp.Joints.WristFlex)
	}
	fmt.Printf("\nPath %.3f m, total %s\n", traj.PathLength(), traj.TotalDuration())

	sink := viz.NewPlotSink(*outDir, limits)
	if err := sink.Render(traj); err != nil {
		log.Error("render failed", "err", err)
		os.Exit(1)
	}
	fmt.Printf("📊 Plots written to %s/\n", *outDir)
}
