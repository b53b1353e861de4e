package kinematics

import (
	"math"
	"testing"
)

func TestCalibrationTable_RoundTrip(t *testing.T) {
	table := DefaultCalibrationTable()

	joints := []string{"shoulder_pan", "shoulder_lift", "elbow_flex", "wrist_flex", "wrist_roll", "gripper"}
	for _, joint := range joints {
		t.Run(joint, func(t *testing.T) {
			raw := 42.5
			calibrated := table.Apply(joint, raw)
			back := table.Unapply(joint, calibrated)
			if math.Abs(back-raw) > 1e-9 {
				t.Errorf("Unapply(Apply(%v)) = %v", raw, back)
			}
		})
	}
}

func TestCalibrationTable_UnknownJointPassesThrough(t *testing.T) {
	table := DefaultCalibrationTable()
	if got := table.Apply("tail", 10.0); got != 10.0 {
		t.Errorf("Apply(tail, 10) = %v, want 10", got)
	}
}

func TestCalibrationTable_ApplyAll(t *testing.T) {
	table := DefaultCalibrationTable()
	raw := JointAngles{ShoulderPan: 16.0, ShoulderLift: 12.0, ElbowFlex: 10.0}

	got := table.ApplyAll(raw)
	if math.Abs(got.ShoulderPan-10.0) > 1e-9 { // (16 - 6) * 1.0
		t.Errorf("ShoulderPan = %v, want 10", got.ShoulderPan)
	}
	if math.Abs(got.ShoulderLift-9.7) > 1e-9 { // (12 - 2) * 0.97
		t.Errorf("ShoulderLift = %v, want 9.7", got.ShoulderLift)
	}
	if math.Abs(got.ElbowFlex-10.5) > 1e-9 { // 10 * 1.05
		t.Errorf("ElbowFlex = %v, want 10.5", got.ElbowFlex)
	}
}
