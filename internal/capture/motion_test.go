package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestMotionMeter_FirstFrameIsBaseline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that allocates Mats")
	}

	m := NewMotionMeter(1.0)
	defer m.Close()

	frame := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer frame.Close()

	active, percent := m.Measure(&frame)
	if active || percent != 0 {
		t.Errorf("first frame: active=%v percent=%f, want false/0", active, percent)
	}
}

func TestMotionMeter_StaticSceneIsQuiet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that allocates Mats")
	}

	m := NewMotionMeter(1.0)
	defer m.Close()

	frame := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer frame.Close()

	m.Measure(&frame)
	active, percent := m.Measure(&frame)
	if active {
		t.Errorf("identical frames reported activity (%f%%)", percent)
	}
}

func TestMotionMeter_SceneChangeIsActive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that allocates Mats")
	}

	m := NewMotionMeter(1.0)
	defer m.Close()

	dark := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 120, 160, gocv.MatTypeCV8UC3)
	defer dark.Close()
	bright := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 120, 160, gocv.MatTypeCV8UC3)
	defer bright.Close()

	m.Measure(&dark)
	active, percent := m.Measure(&bright)
	if !active {
		t.Errorf("full scene change not detected (%f%%)", percent)
	}
	if percent < 50 {
		t.Errorf("change percent = %f, want most of the frame", percent)
	}
}

func TestMotionMeter_NilAndEmptyFrames(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that allocates Mats")
	}

	m := NewMotionMeter(1.0)
	defer m.Close()

	if active, _ := m.Measure(nil); active {
		t.Error("nil frame must not report activity")
	}

	empty := gocv.NewMat()
	defer empty.Close()
	if active, _ := m.Measure(&empty); active {
		t.Error("empty frame must not report activity")
	}
}

func TestMotionMeter_Reset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that allocates Mats")
	}

	m := NewMotionMeter(1.0)
	defer m.Close()

	dark := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 120, 160, gocv.MatTypeCV8UC3)
	defer dark.Close()
	bright := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 120, 160, gocv.MatTypeCV8UC3)
	defer bright.Close()

	m.Measure(&dark)
	m.Reset()

	// After a reset the next frame becomes the new baseline.
	active, _ := m.Measure(&bright)
	if active {
		t.Error("first frame after Reset must establish a new baseline")
	}
}
