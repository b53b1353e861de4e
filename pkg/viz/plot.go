package viz

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/echorobotics/go-so100/pkg/planner"
	"github.com/echorobotics/go-so100/pkg/workspace"
)

// PlotSink renders each trajectory as two PNG files: a top-down x-y view with
// the workspace box overlaid, and an x-z side profile showing the height
// phases.
type PlotSink struct {
	// OutputDir receives the rendered files. Created on first render.
	OutputDir string

	// Limits is drawn as a dashed box on the top-down view.
	Limits workspace.Limits
}

// NewPlotSink creates a renderer writing into outputDir.
func NewPlotSink(outputDir string, limits workspace.Limits) *PlotSink {
	return &PlotSink{OutputDir: outputDir, Limits: limits}
}

// Render writes <id>_top.png and <id>_profile.png.
func (s *PlotSink) Render(t *planner.Trajectory) error {
	if len(t.Waypoints) == 0 {
		return nil
	}
	if err := os.MkdirAll(s.OutputDir, 0755); err != nil {
		return fmt.Errorf("create plot dir: %w", err)
	}

	if err := s.renderTop(t); err != nil {
		return err
	}
	return s.renderProfile(t)
}

func (s *PlotSink) renderTop(t *planner.Trajectory) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Push trajectory %s — top view", shortID(t))
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	path := make(plotter.XYs, len(t.Waypoints))
	for i, wp := range t.Waypoints {
		path[i].X = wp.Position.X
		path[i].Y = wp.Position.Y
	}

	line, points, err := plotter.NewLinePoints(path)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{B: 255, A: 255}
	points.Color = color.RGBA{R: 255, A: 255}
	p.Add(line, points)
	p.Legend.Add("waypoints", line)

	// Workspace box, dashed.
	box := plotter.XYs{
		{X: s.Limits.XMin, Y: s.Limits.YMin},
		{X: s.Limits.XMax, Y: s.Limits.YMin},
		{X: s.Limits.XMax, Y: s.Limits.YMax},
		{X: s.Limits.XMin, Y: s.Limits.YMax},
		{X: s.Limits.XMin, Y: s.Limits.YMin},
	}
	boxLine, err := plotter.NewLine(box)
	if err != nil {
		return err
	}
	boxLine.Color = color.RGBA{G: 160, A: 255}
	boxLine.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(boxLine)
	p.Legend.Add("workspace", boxLine)

	s.labelPhases(p, path, t)

	out := filepath.Join(s.OutputDir, shortID(t)+"_top.png")
	return p.Save(6*vg.Inch, 6*vg.Inch, out)
}

func (s *PlotSink) renderProfile(t *planner.Trajectory) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Push trajectory %s — side profile", shortID(t))
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Z (m)"

	path := make(plotter.XYs, len(t.Waypoints))
	for i, wp := range t.Waypoints {
		path[i].X = wp.Position.X
		path[i].Y = wp.Position.Z
	}

	line, points, err := plotter.NewLinePoints(path)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{B: 255, A: 255}
	points.Color = color.RGBA{R: 255, A: 255}
	p.Add(line, points)

	s.labelPhases(p, path, t)

	out := filepath.Join(s.OutputDir, shortID(t)+"_profile.png")
	return p.Save(6*vg.Inch, 4*vg.Inch, out)
}

func (s *PlotSink) labelPhases(p *plot.Plot, path plotter.XYs, t *planner.Trajectory) {
	labels := plotter.XYLabels{
		XYs:    path,
		Labels: make([]string, len(t.Waypoints)),
	}
	for i, wp := range t.Waypoints {
		labels.Labels[i] = fmt.Sprintf("%d:%s", i+1, wp.Phase)
	}
	if l, err := plotter.NewLabels(labels); err == nil {
		p.Add(l)
	}
}

func shortID(t *planner.Trajectory) string {
	id := t.ID.String()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
