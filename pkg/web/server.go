// Package web exposes the planner over a small HTTP API: submit one frame's
// detections, get back a validated trajectory. Request/response diagnostics
// only; execution stays with the external controller.
package web

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/echorobotics/go-so100/internal/log"
	"github.com/echorobotics/go-so100/pkg/detection"
	"github.com/echorobotics/go-so100/pkg/planner"
	"github.com/echorobotics/go-so100/pkg/transform"
	"github.com/echorobotics/go-so100/pkg/workspace"
)

// State describes the planner setup for the state endpoint.
type State struct {
	Calibrated    bool             `json:"calibrated"`
	HasHomography bool             `json:"has_homography"`
	Strategy      string           `json:"strategy"`
	Limits        workspace.Limits `json:"limits"`
	Planned       int              `json:"planned"`
	Aborted       int              `json:"aborted"`
}

// PlanRequest is one frame's detections plus the desired push direction.
type PlanRequest struct {
	Detections []DetectionJSON `json:"detections"`
	PushAngle  float64         `json:"push_angle"` // radians, 0 = +x
}

// DetectionJSON mirrors detection.Object for the wire.
type DetectionJSON struct {
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	X2         float64 `json:"x2"`
	Y2         float64 `json:"y2"`
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// Server serves the planning API.
type Server struct {
	app     *fiber.App
	addr    string
	planner *planner.Planner
	tf      *transform.Transformer

	mu      sync.RWMutex
	last    *planner.Trajectory
	planned int
	aborted int
}

// NewServer creates the API server on addr (e.g. ":8090").
func NewServer(addr string, p *planner.Planner, tf *transform.Transformer) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
		addr:    addr,
		planner: p,
		tf:      tf,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	s.app.Get("/api/state", s.handleState)
	s.app.Post("/api/plan", s.handlePlan)
	s.app.Get("/api/trajectory/last", s.handleLast)
}

func (s *Server) handleState(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.JSON(State{
		Calibrated:    s.tf.Calibrated(),
		HasHomography: s.tf.HasHomography(),
		Strategy:      s.tf.Strategy(),
		Limits:        s.planner.Limits(),
		Planned:       s.planned,
		Aborted:       s.aborted,
	})
}

func (s *Server) handlePlan(c *fiber.Ctx) error {
	var req PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	objects := make([]detection.Object, 0, len(req.Detections))
	for _, d := range req.Detections {
		objects = append(objects, detection.Object{
			X1: d.X1, Y1: d.Y1, X2: d.X2, Y2: d.Y2,
			Class:      d.Class,
			Confidence: d.Confidence,
		})
	}
	objects = detection.Filter(objects, detection.DefaultAllowlist, detection.DefaultMinConfidence)

	traj, err := s.planner.Plan(objects, req.PushAngle)
	if err != nil {
		s.mu.Lock()
		s.aborted++
		s.mu.Unlock()

		status := fiber.StatusUnprocessableEntity
		if errors.Is(err, planner.ErrNoTarget) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	s.mu.Lock()
	s.last = traj
	s.planned++
	s.mu.Unlock()

	return c.JSON(traj)
}

func (s *Server) handleLast(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no trajectory planned yet"})
	}
	return c.JSON(s.last)
}

// Listen blocks serving the API.
func (s *Server) Listen() error {
	log.Info("planning API listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
