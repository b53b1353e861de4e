package detection

import (
	"errors"
	"testing"
)

func TestFilter(t *testing.T) {
	objects := []Object{
		{Class: "bottle", Confidence: 0.9},
		{Class: "Bottle", Confidence: 0.5},
		{Class: "water bottle", Confidence: 0.6},
		{Class: "bottle", Confidence: 0.2}, // below floor
		{Class: "person", Confidence: 0.95},
		{Class: "cup", Confidence: 0.31},
		{Class: "toucan", Confidence: 0.8}, // "can" substring
	}

	kept := Filter(objects, DefaultAllowlist, DefaultMinConfidence)
	if len(kept) != 5 {
		t.Fatalf("Filter kept %d objects, want 5", len(kept))
	}
	for _, o := range kept {
		if o.Confidence < DefaultMinConfidence {
			t.Errorf("kept %q at confidence %v below floor", o.Class, o.Confidence)
		}
		if o.Class == "person" {
			t.Error("kept object outside allow-list")
		}
	}
}

func TestFilter_Empty(t *testing.T) {
	if got := Filter(nil, DefaultAllowlist, DefaultMinConfidence); got != nil {
		t.Errorf("Filter(nil) = %v, want nil", got)
	}
	objects := []Object{{Class: "bottle", Confidence: 0.9}}
	if got := Filter(objects, nil, 0); got != nil {
		t.Errorf("empty allow-list kept %v", got)
	}
}

func TestMockDetector(t *testing.T) {
	m := &MockDetector{Objects: []Object{{Class: "bottle", Confidence: 0.9}}}

	got, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(got) != 1 || got[0].Class != "bottle" {
		t.Errorf("Detect = %+v", got)
	}

	m.Err = errors.New("camera gone")
	if _, err := m.Detect(nil); err == nil {
		t.Error("Detect ignored the configured error")
	}
	if m.Calls != 2 {
		t.Errorf("Calls = %d, want 2", m.Calls)
	}
}

func TestObject_Center(t *testing.T) {
	o := Object{X1: 100, Y1: 200, X2: 180, Y2: 260}

	px, py := o.Center()
	if px != 140 || py != 230 {
		t.Errorf("Center = (%v, %v), want (140, 230)", px, py)
	}
	if o.Width() != 80 {
		t.Errorf("Width = %v, want 80", o.Width())
	}
	if o.Height() != 60 {
		t.Errorf("Height = %v, want 60", o.Height())
	}
}
