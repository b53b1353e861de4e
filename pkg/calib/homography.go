package calib

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// Correspondence pairs a pixel location with its measured world position on
// the table plane. Collected by placing markers at known arm-frame positions.
type Correspondence struct {
	PixelX float64 `json:"pixel_x"`
	PixelY float64 `json:"pixel_y"`
	WorldX float64 `json:"world_x"`
	WorldY float64 `json:"world_y"`
}

// HomographyRecord is a persisted planar homography from pixel coordinates to
// the table plane, together with the reference points it was fit from.
type HomographyRecord struct {
	Matrix          [3][3]float64    `json:"homography_matrix"`
	ReferencePoints []Correspondence `json:"reference_points"`
	FitDate         string           `json:"fit_date"`
}

// Mat returns the homography as a 3x3 gonum dense matrix.
func (r *HomographyRecord) Mat() *mat.Dense {
	m := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, r.Matrix[i][j])
		}
	}
	return m
}

// LoadHomography reads a HomographyRecord from a JSON file.
func LoadHomography(path string) (*HomographyRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read homography: %w", err)
	}

	var rec HomographyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse homography %s: %w", path, err)
	}
	return &rec, nil
}

// Save writes the record as indented JSON, creating parent directories.
func (r *HomographyRecord) Save(path string) error {
	return writeJSON(path, r)
}
