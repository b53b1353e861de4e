package transform

import "errors"

var (
	// ErrInsufficientPoints is returned when fewer than MinCorrespondences
	// reference pairs are supplied for a homography fit.
	ErrInsufficientPoints = errors.New("not enough reference points for homography")

	// ErrFitFailed is returned when the DLT system is rank-deficient, for
	// example when all reference points are collinear.
	ErrFitFailed = errors.New("homography fit failed")
)
