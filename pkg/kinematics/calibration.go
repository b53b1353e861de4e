package kinematics

// JointCalibration maps a raw actuator reading into the calibrated frame:
// calibrated = (raw - Offset) * Scale.
type JointCalibration struct {
	Offset float64
	Scale  float64
}

// CalibrationTable holds per-joint calibration coefficients keyed by joint
// name. Joints without an entry pass through unchanged.
type CalibrationTable map[string]JointCalibration

// DefaultCalibrationTable returns the measured SO-100 coefficients.
func DefaultCalibrationTable() CalibrationTable {
	return CalibrationTable{
		"shoulder_pan":  {Offset: 6.0, Scale: 1.0},
		"shoulder_lift": {Offset: 2.0, Scale: 0.97},
		"elbow_flex":    {Offset: 0.0, Scale: 1.05},
		"wrist_flex":    {Offset: 0.0, Scale: 0.94},
		"wrist_roll":    {Offset: 0.0, Scale: 0.5},
		"gripper":       {Offset: 0.0, Scale: 1.0},
	}
}

// Apply converts a raw reading for the named joint into the calibrated frame.
func (t CalibrationTable) Apply(joint string, raw float64) float64 {
	c, ok := t[joint]
	if !ok {
		return raw
	}
	return (raw - c.Offset) * c.Scale
}

// Unapply converts a calibrated value back into a raw actuator command.
func (t CalibrationTable) Unapply(joint string, calibrated float64) float64 {
	c, ok := t[joint]
	if !ok || c.Scale == 0 {
		return calibrated
	}
	return calibrated/c.Scale + c.Offset
}

// ApplyAll converts a full raw pose into the calibrated frame.
func (t CalibrationTable) ApplyAll(raw JointAngles) JointAngles {
	return JointAngles{
		ShoulderPan:  t.Apply("shoulder_pan", raw.ShoulderPan),
		ShoulderLift: t.Apply("shoulder_lift", raw.ShoulderLift),
		ElbowFlex:    t.Apply("elbow_flex", raw.ElbowFlex),
		WristFlex:    t.Apply("wrist_flex", raw.WristFlex),
		WristRoll:    t.Apply("wrist_roll", raw.WristRoll),
		Gripper:      t.Apply("gripper", raw.Gripper),
	}
}
