package detector

import (
	"errors"
	"math"
	"testing"

	"gocv.io/x/gocv"
)

const epsilon = 1e-9

func TestDist2D(t *testing.T) {
	t.Run("ignores depth", func(t *testing.T) {
		a := Point3D{X: 0, Y: 0, Z: 0}
		b := Point3D{X: 3, Y: 4, Z: 100}

		if got := Dist2D(a, b); math.Abs(got-5.0) > epsilon {
			t.Errorf("Dist2D() = %f, want 5.0", got)
		}
	})

	t.Run("zero for identical points", func(t *testing.T) {
		p := Point3D{X: 0.5, Y: 0.5, Z: 0.1}
		if got := Dist2D(p, p); got != 0 {
			t.Errorf("Dist2D() = %f, want 0", got)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Point3D{X: 0.2, Y: 0.7}
		b := Point3D{X: 0.9, Y: 0.1}
		if Dist2D(a, b) != Dist2D(b, a) {
			t.Error("Dist2D should be symmetric")
		}
	})
}

func TestHandLandmarks_Mirror(t *testing.T) {
	hand := OpenPalmLandmarks()
	origX := hand.Points[IndexTip].X
	origY := hand.Points[IndexTip].Y

	hand.Mirror()

	if got := hand.Points[IndexTip].X; math.Abs(got-(1.0-origX)) > epsilon {
		t.Errorf("mirrored X = %f, want %f", got, 1.0-origX)
	}
	if hand.Points[IndexTip].Y != origY {
		t.Error("Mirror must not change Y")
	}

	// Mirroring twice restores the original
	hand.Mirror()
	if math.Abs(hand.Points[IndexTip].X-origX) > epsilon {
		t.Error("double mirror should restore original X")
	}
}

func TestFixtureGeometry(t *testing.T) {
	// The synthetic poses must land on the correct side of the classifier
	// thresholds (far > 0.4, near < 0.25, pinch < 0.06).
	t.Run("pinch has coincident thumb and index tips", func(t *testing.T) {
		hand := PinchLandmarks()
		d := Dist2D(hand.Points[ThumbTip], hand.Points[IndexTip])
		if d >= 0.06 {
			t.Errorf("thumb-index distance = %f, want < 0.06", d)
		}
	})

	t.Run("open palm has all fingertips far from wrist", func(t *testing.T) {
		hand := OpenPalmLandmarks()
		wrist := hand.Points[Wrist]
		for _, tip := range []int{IndexTip, MiddleTip, RingTip} {
			if d := Dist2D(hand.Points[tip], wrist); d <= 0.45 {
				t.Errorf("landmark %d distance = %f, want > 0.45", tip, d)
			}
		}
	})

	t.Run("pointing has only the index extended", func(t *testing.T) {
		hand := PointingLandmarks()
		wrist := hand.Points[Wrist]
		if d := Dist2D(hand.Points[IndexTip], wrist); d <= 0.4 {
			t.Errorf("index distance = %f, want > 0.4", d)
		}
		for _, tip := range []int{MiddleTip, RingTip, PinkyTip} {
			if d := Dist2D(hand.Points[tip], wrist); d >= 0.25 {
				t.Errorf("landmark %d distance = %f, want < 0.25", tip, d)
			}
		}
	})

	t.Run("fist has all fingertips near wrist without pinching", func(t *testing.T) {
		hand := FistLandmarks()
		wrist := hand.Points[Wrist]
		for _, tip := range []int{IndexTip, MiddleTip, RingTip, PinkyTip} {
			if d := Dist2D(hand.Points[tip], wrist); d >= 0.25 {
				t.Errorf("landmark %d distance = %f, want < 0.25", tip, d)
			}
		}
		if d := Dist2D(hand.Points[ThumbTip], hand.Points[IndexTip]); d < 0.06 {
			t.Errorf("fist must not read as a pinch, thumb-index distance = %f", d)
		}
	})
}

func TestMockDetector(t *testing.T) {
	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{OpenPalmLandmarks()})

		frame := gocv.NewMat()
		defer frame.Close()

		hands, err := mock.Detect(&frame)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("len(hands) = %d, want 1", len(hands))
		}
		if hands[0].Handedness != "Right" {
			t.Errorf("Handedness = %q, want %q", hands[0].Handedness, "Right")
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()
		wantErr := errors.New("detector offline")
		mock.SetError(wantErr)

		frame := gocv.NewMat()
		defer frame.Close()

		if _, err := mock.Detect(&frame); !errors.Is(err, wantErr) {
			t.Errorf("Detect() error = %v, want %v", err, wantErr)
		}
	})

	t.Run("no hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		frame := gocv.NewMat()
		defer frame.Close()

		hands, err := mock.Detect(&frame)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if len(hands) != 0 {
			t.Errorf("len(hands) = %d, want 0", len(hands))
		}
	})
}
