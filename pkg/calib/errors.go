package calib

import "errors"

var (
	// ErrInvalidRecord is returned when a calibration file is structurally
	// valid JSON but geometrically unusable.
	ErrInvalidRecord = errors.New("invalid calibration record")
)
