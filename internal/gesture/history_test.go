package gesture

import (
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

// handAtX returns a hand whose wrist X encodes an identity for assertions.
func handAtX(x float64) detector.HandLandmarks {
	var hand detector.HandLandmarks
	hand.Points[detector.Wrist] = detector.Point3D{X: x, Y: 0.5}
	return hand
}

func TestHistory_LatestPrevious(t *testing.T) {
	h := NewHistory(5)

	if _, ok := h.Latest(); ok {
		t.Error("Latest() on empty history should report not ok")
	}
	if _, ok := h.Previous(); ok {
		t.Error("Previous() on empty history should report not ok")
	}

	h.Push(handAtX(0.1))
	if _, ok := h.Previous(); ok {
		t.Error("Previous() with one frame should report not ok")
	}

	h.Push(handAtX(0.2))

	latest, ok := h.Latest()
	if !ok || latest.Points[detector.Wrist].X != 0.2 {
		t.Errorf("Latest() = %f, want 0.2", latest.Points[detector.Wrist].X)
	}

	prev, ok := h.Previous()
	if !ok || prev.Points[detector.Wrist].X != 0.1 {
		t.Errorf("Previous() = %f, want 0.1", prev.Points[detector.Wrist].X)
	}
}

func TestHistory_Eviction(t *testing.T) {
	const capacity = 5
	h := NewHistory(capacity)

	// Push capacity+1 frames; the first must be gone.
	for i := 0; i <= capacity; i++ {
		h.Push(handAtX(float64(i)))
	}

	if h.Len() != capacity {
		t.Errorf("Len() = %d, want %d", h.Len(), capacity)
	}

	frames := h.Frames()
	if len(frames) != capacity {
		t.Fatalf("len(Frames()) = %d, want %d", len(frames), capacity)
	}
	if frames[0].Points[detector.Wrist].X != 1.0 {
		t.Errorf("oldest frame X = %f, want 1.0 (frame 0 evicted)",
			frames[0].Points[detector.Wrist].X)
	}
	if frames[capacity-1].Points[detector.Wrist].X != float64(capacity) {
		t.Errorf("newest frame X = %f, want %d",
			frames[capacity-1].Points[detector.Wrist].X, capacity)
	}

	// Latest/Previous track the ring across the wrap point.
	latest, _ := h.Latest()
	prev, _ := h.Previous()
	if latest.Points[detector.Wrist].X != float64(capacity) {
		t.Errorf("Latest() = %f, want %d", latest.Points[detector.Wrist].X, capacity)
	}
	if prev.Points[detector.Wrist].X != float64(capacity-1) {
		t.Errorf("Previous() = %f, want %d", prev.Points[detector.Wrist].X, capacity-1)
	}
}

func TestHistory_Reset(t *testing.T) {
	h := NewHistory(3)
	h.Push(handAtX(0.1))
	h.Push(handAtX(0.2))

	h.Reset()

	if h.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", h.Len())
	}
	if _, ok := h.Latest(); ok {
		t.Error("Latest() after Reset should report not ok")
	}
}

func TestHistory_MinimumCapacity(t *testing.T) {
	// Finite differencing needs two frames; smaller capacities are bumped.
	h := NewHistory(1)
	if h.Cap() < 2 {
		t.Errorf("Cap() = %d, want >= 2", h.Cap())
	}
}
