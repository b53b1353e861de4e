// Package config provides environment configuration helpers for go-so100 commands.
package config

import "os"

// Default file locations, relative to the working directory.
const (
	DefaultCalibPath      = "config/camera_params.json"
	DefaultHomographyPath = "config/workspace_calibration.json"
	DefaultModelPath      = "models/yolov8n.onnx"
	DefaultPort           = "8090"
)

// CalibPath returns the camera calibration file path from CAMERA_PARAMS.
func CalibPath() string {
	if p := os.Getenv("CAMERA_PARAMS"); p != "" {
		return p
	}
	return DefaultCalibPath
}

// HomographyPath returns the workspace homography file path from WORKSPACE_CALIBRATION.
func HomographyPath() string {
	if p := os.Getenv("WORKSPACE_CALIBRATION"); p != "" {
		return p
	}
	return DefaultHomographyPath
}

// ModelPath returns the detector model path from MODEL_PATH.
func ModelPath() string {
	if p := os.Getenv("MODEL_PATH"); p != "" {
		return p
	}
	return DefaultModelPath
}

// Port returns the HTTP API port from PORT.
func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return DefaultPort
}
