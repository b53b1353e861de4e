// Plan server - HTTP planning API
//
// Accepts detections over HTTP and returns validated push trajectories.
// Useful for driving the planner from an external detection process.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/echorobotics/go-so100/internal/config"
	"github.com/echorobotics/go-so100/internal/log"
	"github.com/echorobotics/go-so100/pkg/calib"
	"github.com/echorobotics/go-so100/pkg/kinematics"
	"github.com/echorobotics/go-so100/pkg/planner"
	"github.com/echorobotics/go-so100/pkg/transform"
	"github.com/echorobotics/go-so100/pkg/web"
	"github.com/echorobotics/go-so100/pkg/workspace"
)

func main() {
	log.Init("")

	rec, err := calib.Load(config.CalibPath())
	if err != nil {
		log.Warn("camera calibration unavailable, using fallback transform", "err", err)
	}
	tf := transform.New(transform.DefaultConfig(), rec)
	if hrec, err := calib.LoadHomography(config.HomographyPath()); err == nil {
		tf.SetHomography(hrec)
		log.Info("workspace homography loaded", "points", len(hrec.ReferencePoints))
	}

	p := planner.New(
		planner.DefaultConfig(),
		kinematics.NewSolver(kinematics.DefaultConfig()),
		tf,
		workspace.DefaultLimits(),
	)

	server := web.NewServer(":"+config.Port(), p, tf)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			log.Error("shutdown failed", "err", err)
		}
	}()

	if err := server.Listen(); err != nil {
		log.Error("server failed", "err", err)
		os.Exit(1)
	}
}
