package calib

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
)

func testRecord() *CalibrationRecord {
	return &CalibrationRecord{
		CameraMatrix: [3][3]float64{
			{600, 0, 320},
			{0, 600, 240},
			{0, 0, 1},
		},
		DistortionCoeffs:  []float64{-0.12, 0.03, 0.001, -0.0005, 0.002},
		ReprojectionError: 0.42,
		CalibrationDate:   "2026-08-01",
		PatternSize:       [2]int{9, 6},
		SquareSize:        0.025,
	}
}

func TestCalibration_SaveLoad(t *testing.T) {
	rec := testRecord()
	path := filepath.Join(t.TempDir(), "nested", "camera_params.json")

	if err := rec.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	fx, fy, cx, cy := loaded.Intrinsics()
	if fx != 600 || fy != 600 || cx != 320 || cy != 240 {
		t.Errorf("Intrinsics = (%v, %v, %v, %v)", fx, fy, cx, cy)
	}
	if loaded.ReprojectionError != rec.ReprojectionError {
		t.Errorf("ReprojectionError = %v, want %v", loaded.ReprojectionError, rec.ReprojectionError)
	}
	if loaded.PatternSize != rec.PatternSize {
		t.Errorf("PatternSize = %v, want %v", loaded.PatternSize, rec.PatternSize)
	}
}

func TestCalibration_LoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Load of missing file succeeded")
	}
}

func TestCalibration_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CalibrationRecord)
		wantOK bool
	}{
		{"valid", func(r *CalibrationRecord) {}, true},
		{"no distortion", func(r *CalibrationRecord) { r.DistortionCoeffs = nil }, true},
		{"four coefficients", func(r *CalibrationRecord) { r.DistortionCoeffs = r.DistortionCoeffs[:4] }, true},
		{"zero fx", func(r *CalibrationRecord) { r.CameraMatrix[0][0] = 0 }, false},
		{"negative fy", func(r *CalibrationRecord) { r.CameraMatrix[1][1] = -600 }, false},
		{"two coefficients", func(r *CalibrationRecord) { r.DistortionCoeffs = r.DistortionCoeffs[:2] }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord()
			tt.mutate(rec)
			err := rec.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("Validate failed: %v", err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Fatal("Validate accepted a bad record")
				}
				if !errors.Is(err, ErrInvalidRecord) {
					t.Errorf("error %v is not ErrInvalidRecord", err)
				}
			}
		})
	}
}

func TestCalibration_DistortionPadding(t *testing.T) {
	rec := testRecord()
	rec.DistortionCoeffs = []float64{-0.12, 0.03, 0.001, -0.0005}

	k1, k2, p1, p2, k3 := rec.Distortion()
	if k1 != -0.12 || k2 != 0.03 || p1 != 0.001 || p2 != -0.0005 {
		t.Errorf("Distortion = (%v, %v, %v, %v, %v)", k1, k2, p1, p2, k3)
	}
	if k3 != 0 {
		t.Errorf("missing k3 = %v, want 0", k3)
	}
}

func TestHomography_SaveLoad(t *testing.T) {
	rec := &HomographyRecord{
		Matrix: [3][3]float64{
			{0.0005, 0, 0.15},
			{0, 0.0005, -0.12},
			{0, 0, 1},
		},
		ReferencePoints: []Correspondence{
			{PixelX: 100, PixelY: 100, WorldX: 0.20, WorldY: -0.07},
			{PixelX: 540, PixelY: 100, WorldX: 0.42, WorldY: -0.07},
			{PixelX: 540, PixelY: 380, WorldX: 0.42, WorldY: 0.07},
			{PixelX: 100, PixelY: 380, WorldX: 0.20, WorldY: 0.07},
		},
		FitDate: "2026-08-01",
	}
	path := filepath.Join(t.TempDir(), "workspace_calibration.json")

	if err := rec.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := LoadHomography(path)
	if err != nil {
		t.Fatalf("LoadHomography failed: %v", err)
	}

	if len(loaded.ReferencePoints) != 4 {
		t.Fatalf("got %d reference points, want 4", len(loaded.ReferencePoints))
	}
	m := loaded.Mat()
	if r, c := m.Dims(); r != 3 || c != 3 {
		t.Fatalf("Mat dims = %dx%d", r, c)
	}
	if math.Abs(m.At(0, 2)-0.15) > 1e-12 {
		t.Errorf("Mat()[0][2] = %v, want 0.15", m.At(0, 2))
	}
}
