// Package transform converts camera pixel coordinates into arm-frame world
// coordinates and back.
//
// Two interchangeable resolution strategies sit behind one interface,
// selected by data availability: a pinhole projection that assumes the target
// lies on the table plane at a known camera height, and a planar homography
// fit empirically from workspace reference points. A third fixed-scale linear
// fallback keeps the pipeline running when no calibration is loaded at all.
package transform

import (
	"math"

	"github.com/echorobotics/go-so100/pkg/calib"
	"github.com/echorobotics/go-so100/pkg/workspace"
)

// Config holds the camera-to-workspace geometry.
type Config struct {
	// CameraHeight is the camera's height above the table plane, meters.
	// Fixes the pinhole depth plane.
	CameraHeight float64

	// SurfaceZ is the table height in the arm base frame, meters. Every
	// resolved world point has its z pinned here.
	SurfaceZ float64

	// AxisScale maps normalized camera-plane meters into arm-frame meters.
	// Absorbs the camera pose relative to the arm base; measured, not derived.
	AxisScale float64

	// BaseOffsetX and BaseOffsetY shift the camera principal axis into the
	// arm base frame, meters.
	BaseOffsetX float64
	BaseOffsetY float64

	// Fallback parameters for the uncalibrated linear approximation.
	FallbackRefU  float64 // pixel u of the workspace center
	FallbackRefV  float64 // pixel v of the workspace center
	FallbackScale float64 // meters per pixel
}

// DefaultConfig returns the measured SO-100 table setup for a 640x480 camera.
func DefaultConfig() Config {
	return Config{
		CameraHeight:  0.75,
		SurfaceZ:      0.0,
		AxisScale:     0.3,
		BaseOffsetX:   0.15,
		BaseOffsetY:   0.0,
		FallbackRefU:  320,
		FallbackRefV:  240,
		FallbackScale: 0.0003,
	}
}

// Transformer resolves pixel coordinates into the arm base frame. The
// calibration and homography records are fixed at construction; changing
// calibration means constructing a fresh Transformer so no single trajectory
// mixes old and new data.
type Transformer struct {
	cfg        Config
	record     *calib.CalibrationRecord
	homography *calib.HomographyRecord

	// Cached intrinsics, valid when calibrated.
	fx, fy, cx, cy float64
	calibrated     bool
}

// New creates a Transformer. record may be nil: absence of calibration is a
// supported degraded mode, never an error.
func New(cfg Config, record *calib.CalibrationRecord) *Transformer {
	t := &Transformer{cfg: cfg, record: record}
	if record != nil {
		t.fx, t.fy, t.cx, t.cy = record.Intrinsics()
		t.calibrated = t.fx > 0 && t.fy > 0
	}
	return t
}

// Calibrated reports whether a usable CalibrationRecord is loaded.
func (t *Transformer) Calibrated() bool {
	return t.calibrated
}

// SetHomography installs a fitted workspace homography. Call before handing
// the Transformer to a planner; the record is read-only afterwards.
func (t *Transformer) SetHomography(rec *calib.HomographyRecord) {
	t.homography = rec
}

// HasHomography reports whether a workspace homography is loaded.
func (t *Transformer) HasHomography() bool {
	return t.homography != nil
}

// Strategy names the resolution path ToWorld currently takes.
func (t *Transformer) Strategy() string {
	switch {
	case t.homography != nil:
		return "homography"
	case t.calibrated:
		return "pinhole"
	default:
		return "fallback"
	}
}

// Undistort removes lens distortion from a pixel coordinate using the
// standard 5-coefficient model. Returns the input unchanged when
// uncalibrated.
func (t *Transformer) Undistort(px, py float64) (float64, float64) {
	if !t.calibrated {
		return px, py
	}
	k1, k2, p1, p2, k3 := t.record.Distortion()
	if k1 == 0 && k2 == 0 && p1 == 0 && p2 == 0 && k3 == 0 {
		return px, py
	}

	// Normalize, then iteratively compensate radial and tangential terms.
	xd := (px - t.cx) / t.fx
	yd := (py - t.cy) / t.fy
	x, y := xd, yd
	for i := 0; i < undistortIterations; i++ {
		r2 := x*x + y*y
		radial := 1 + r2*(k1+r2*(k2+r2*k3))
		dx := 2*p1*x*y + p2*(r2+2*x*x)
		dy := p1*(r2+2*y*y) + 2*p2*x*y
		x = (xd - dx) / radial
		y = (yd - dy) / radial
	}
	return x*t.fx + t.cx, y*t.fy + t.cy
}

const undistortIterations = 10

// PixelToWorld resolves a pixel location into the arm base frame using the
// pinhole projection with the configured table depth plane. The returned z is
// pinned to the table surface. When uncalibrated it applies the fixed-scale
// linear fallback instead of failing, so detection degrades gracefully.
func (t *Transformer) PixelToWorld(px, py float64) workspace.Point {
	if !t.calibrated {
		return workspace.Point{
			X: t.cfg.BaseOffsetX + (px-t.cfg.FallbackRefU)*t.cfg.FallbackScale,
			Y: (py - t.cfg.FallbackRefV) * t.cfg.FallbackScale,
			Z: t.cfg.SurfaceZ,
		}
	}

	u, v := t.Undistort(px, py)
	xn := (u - t.cx) / t.fx
	yn := (v - t.cy) / t.fy

	depth := t.cfg.CameraHeight - t.cfg.SurfaceZ
	return workspace.Point{
		X: t.cfg.BaseOffsetX + xn*depth*t.cfg.AxisScale,
		Y: t.cfg.BaseOffsetY + yn*depth*t.cfg.AxisScale,
		Z: t.cfg.SurfaceZ,
	}
}

// WorldToPixel projects an arm-frame point back into pixel coordinates.
// Diagnostics and overlay only; distortion is not re-applied, so the result
// pairs with Undistort output rather than raw sensor pixels.
func (t *Transformer) WorldToPixel(p workspace.Point) (float64, float64) {
	if !t.calibrated {
		return (p.X-t.cfg.BaseOffsetX)/t.cfg.FallbackScale + t.cfg.FallbackRefU,
			p.Y/t.cfg.FallbackScale + t.cfg.FallbackRefV
	}

	depth := t.cfg.CameraHeight - t.cfg.SurfaceZ
	xn := (p.X - t.cfg.BaseOffsetX) / (depth * t.cfg.AxisScale)
	yn := (p.Y - t.cfg.BaseOffsetY) / (depth * t.cfg.AxisScale)

	return xn*t.fx + t.cx, yn*t.fy + t.cy
}

// PixelToWorldHomography resolves a pixel location through the fitted
// workspace homography when one is loaded. The homography is empirically fit
// rather than assumed, so it is the more accurate strategy; without one this
// delegates to PixelToWorld.
func (t *Transformer) PixelToWorldHomography(px, py float64) workspace.Point {
	if t.homography == nil {
		return t.PixelToWorld(px, py)
	}

	h := t.homography.Matrix
	w := h[2][0]*px + h[2][1]*py + h[2][2]
	if math.Abs(w) < 1e-12 {
		return t.PixelToWorld(px, py)
	}
	return workspace.Point{
		X: (h[0][0]*px + h[0][1]*py + h[0][2]) / w,
		Y: (h[1][0]*px + h[1][1]*py + h[1][2]) / w,
		Z: t.cfg.SurfaceZ,
	}
}

// ToWorld resolves a pixel location using the most accurate strategy the
// loaded data supports: homography, then pinhole, then the linear fallback.
// This is the entry point the planner uses.
func (t *Transformer) ToWorld(px, py float64) workspace.Point {
	return t.PixelToWorldHomography(px, py)
}
