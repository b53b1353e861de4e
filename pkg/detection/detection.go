// Package detection provides camera-frame object detection for the push
// pipeline. The detector is a black box producing pixel-space bounding boxes;
// world-coordinate resolution happens downstream in the planner.
package detection

import (
	"strings"

	"github.com/echorobotics/go-so100/pkg/workspace"
)

// Object is one detected object in a camera frame. Ephemeral: produced fresh
// each detection cycle and never persisted.
type Object struct {
	// Pixel-space bounding box corners.
	X1, Y1, X2, Y2 float64

	Class      string  // detector class label, e.g. "bottle"
	Confidence float64 // detection confidence, 0-1

	// World is the resolved arm-frame position. Zero until the planner runs
	// the object through the coordinate transform.
	World workspace.Point
}

// Center returns the pixel center of the bounding box.
func (o Object) Center() (px, py float64) {
	return (o.X1 + o.X2) / 2, (o.Y1 + o.Y2) / 2
}

// Width returns the bounding box width in pixels.
func (o Object) Width() float64 {
	return o.X2 - o.X1
}

// Height returns the bounding box height in pixels.
func (o Object) Height() float64 {
	return o.Y2 - o.Y1
}

// Detector is the interface for object detection backends.
type Detector interface {
	// Detect finds objects in the JPEG image.
	Detect(jpeg []byte) ([]Object, error)

	// Close releases resources.
	Close() error
}

// DefaultAllowlist matches the pushable object classes.
var DefaultAllowlist = []string{"bottle", "cup", "can"}

// DefaultMinConfidence is the pipeline confidence floor.
const DefaultMinConfidence = 0.3

// Filter keeps objects whose class matches the allow-list (case-insensitive
// substring match, so "wine glass" never matches but "bottle" variants do)
// with confidence at or above minConfidence.
func Filter(objects []Object, allowlist []string, minConfidence float64) []Object {
	var kept []Object
	for _, o := range objects {
		if o.Confidence < minConfidence {
			continue
		}
		class := strings.ToLower(o.Class)
		for _, allowed := range allowlist {
			if strings.Contains(class, strings.ToLower(allowed)) {
				kept = append(kept, o)
				break
			}
		}
	}
	return kept
}
