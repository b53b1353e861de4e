package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/echorobotics/go-so100/pkg/calib"
)

func tableCorrespondences() []calib.Correspondence {
	// Four workspace corners measured with markers.
	return []calib.Correspondence{
		{PixelX: 100, PixelY: 100, WorldX: 0.10, WorldY: -0.10},
		{PixelX: 500, PixelY: 100, WorldX: 0.25, WorldY: -0.10},
		{PixelX: 500, PixelY: 400, WorldX: 0.25, WorldY: 0.10},
		{PixelX: 100, PixelY: 400, WorldX: 0.10, WorldY: 0.10},
	}
}

func TestFitWorkspaceHomography_TooFewPoints(t *testing.T) {
	tf := New(DefaultConfig(), nil)

	_, err := tf.FitWorkspaceHomography(tableCorrespondences()[:3])
	if !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("err = %v, want ErrInsufficientPoints", err)
	}
	if tf.HasHomography() {
		t.Error("failed fit must not install a homography")
	}
}

func TestFitWorkspaceHomography_MapsReferencePoints(t *testing.T) {
	tf := New(DefaultConfig(), nil)

	rec, err := tf.FitWorkspaceHomography(tableCorrespondences())
	if err != nil {
		t.Fatalf("FitWorkspaceHomography: %v", err)
	}
	if !tf.HasHomography() {
		t.Fatal("homography not installed after fit")
	}
	if tf.Strategy() != "homography" {
		t.Errorf("Strategy() = %q, want homography", tf.Strategy())
	}
	if len(rec.ReferencePoints) != 4 {
		t.Errorf("record keeps %d reference points, want 4", len(rec.ReferencePoints))
	}

	for _, c := range tableCorrespondences() {
		got := tf.PixelToWorldHomography(c.PixelX, c.PixelY)
		if math.Abs(got.X-c.WorldX) > 1e-6 || math.Abs(got.Y-c.WorldY) > 1e-6 {
			t.Errorf("homography (%v, %v) = (%v, %v), want (%v, %v)",
				c.PixelX, c.PixelY, got.X, got.Y, c.WorldX, c.WorldY)
		}
	}

	// The fit above is affine, so the frame center interpolates linearly.
	center := tf.PixelToWorldHomography(300, 250)
	if math.Abs(center.X-0.175) > 1e-6 || math.Abs(center.Y-0.0) > 1e-6 {
		t.Errorf("center = (%v, %v), want (0.175, 0)", center.X, center.Y)
	}
}

func TestFitWorkspaceHomography_FivePointOverdetermined(t *testing.T) {
	tf := New(DefaultConfig(), nil)

	points := append(tableCorrespondences(), calib.Correspondence{
		PixelX: 300, PixelY: 250, WorldX: 0.175, WorldY: 0.0,
	})
	if _, err := tf.FitWorkspaceHomography(points); err != nil {
		t.Fatalf("overdetermined fit: %v", err)
	}

	got := tf.PixelToWorldHomography(100, 100)
	if math.Abs(got.X-0.10) > 1e-6 || math.Abs(got.Y+0.10) > 1e-6 {
		t.Errorf("corner = (%v, %v), want (0.10, -0.10)", got.X, got.Y)
	}
}

func TestPixelToWorldHomography_DelegatesWithoutRecord(t *testing.T) {
	tf := New(DefaultConfig(), nil)

	// No homography loaded: same answer as the fallback pinhole path.
	direct := tf.PixelToWorld(420, 240)
	via := tf.PixelToWorldHomography(420, 240)
	if direct != via {
		t.Errorf("delegation mismatch: %+v vs %+v", direct, via)
	}
}

func TestSetHomography_LoadedRecord(t *testing.T) {
	tf := New(DefaultConfig(), nil)

	fitTf := New(DefaultConfig(), nil)
	rec, err := fitTf.FitWorkspaceHomography(tableCorrespondences())
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	// Simulates loading a persisted record at startup.
	tf.SetHomography(rec)
	got := tf.ToWorld(500, 400)
	if math.Abs(got.X-0.25) > 1e-6 || math.Abs(got.Y-0.10) > 1e-6 {
		t.Errorf("ToWorld via loaded record = (%v, %v), want (0.25, 0.10)", got.X, got.Y)
	}
}
