// Package calib loads and persists camera calibration artifacts.
//
// Two record types are handled: the intrinsic CalibrationRecord produced by
// the chessboard calibration procedure, and the optional HomographyRecord
// produced by fitting known workspace reference points. Both are plain JSON
// files, read once at construction and treated as read-only afterwards.
package calib

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// CalibrationRecord holds the output of the camera calibration procedure.
// Immutable once loaded.
type CalibrationRecord struct {
	CameraMatrix      [3][3]float64 `json:"camera_matrix"`
	DistortionCoeffs  []float64     `json:"distortion_coeffs"`
	ReprojectionError float64       `json:"reprojection_error"`
	CalibrationDate   string        `json:"calibration_date"`
	PatternSize       [2]int        `json:"pattern_size"`
	SquareSize        float64       `json:"square_size"`
}

// Intrinsics returns the pinhole parameters fx, fy, cx, cy.
func (r *CalibrationRecord) Intrinsics() (fx, fy, cx, cy float64) {
	return r.CameraMatrix[0][0], r.CameraMatrix[1][1],
		r.CameraMatrix[0][2], r.CameraMatrix[1][2]
}

// Mat returns the camera matrix as a 3x3 gonum dense matrix.
func (r *CalibrationRecord) Mat() *mat.Dense {
	m := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, r.CameraMatrix[i][j])
		}
	}
	return m
}

// Distortion returns the lens distortion coefficients k1, k2, p1, p2, k3.
// Missing trailing coefficients are zero.
func (r *CalibrationRecord) Distortion() (k1, k2, p1, p2, k3 float64) {
	c := make([]float64, 5)
	copy(c, r.DistortionCoeffs)
	return c[0], c[1], c[2], c[3], c[4]
}

// Validate checks the record for the fields the transform needs.
func (r *CalibrationRecord) Validate() error {
	fx, fy, _, _ := r.Intrinsics()
	if fx <= 0 || fy <= 0 {
		return fmt.Errorf("%w: focal lengths fx=%v fy=%v", ErrInvalidRecord, fx, fy)
	}
	if n := len(r.DistortionCoeffs); n != 0 && n < 4 {
		return fmt.Errorf("%w: %d distortion coefficients (want 0, 4 or 5)", ErrInvalidRecord, n)
	}
	return nil
}

// Load reads a CalibrationRecord from a JSON file.
func Load(path string) (*CalibrationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calibration: %w", err)
	}

	var rec CalibrationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse calibration %s: %w", path, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save writes the record as indented JSON, creating parent directories.
func (r *CalibrationRecord) Save(path string) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return writeJSON(path, r)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
