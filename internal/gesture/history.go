package gesture

import "github.com/ayusman/mudra/internal/detector"

// History is a fixed-capacity ring buffer of landmark frames. The newest two
// frames feed finite-difference deltas; older frames are kept for the debug
// feed. Oldest frames are evicted first once the buffer is full.
type History struct {
	frames []detector.HandLandmarks
	head   int // index of the next write slot
	size   int
}

// NewHistory creates a History holding at most capacity frames.
func NewHistory(capacity int) *History {
	if capacity < 2 {
		capacity = 2
	}
	return &History{
		frames: make([]detector.HandLandmarks, capacity),
	}
}

// Push appends a frame, evicting the oldest if the buffer is full.
func (h *History) Push(frame detector.HandLandmarks) {
	h.frames[h.head] = frame
	h.head = (h.head + 1) % len(h.frames)
	if h.size < len(h.frames) {
		h.size++
	}
}

// Latest returns the most recently pushed frame.
func (h *History) Latest() (detector.HandLandmarks, bool) {
	if h.size == 0 {
		return detector.HandLandmarks{}, false
	}
	idx := (h.head - 1 + len(h.frames)) % len(h.frames)
	return h.frames[idx], true
}

// Previous returns the frame pushed before the latest one.
func (h *History) Previous() (detector.HandLandmarks, bool) {
	if h.size < 2 {
		return detector.HandLandmarks{}, false
	}
	idx := (h.head - 2 + len(h.frames)) % len(h.frames)
	return h.frames[idx], true
}

// Len returns the number of frames currently buffered.
func (h *History) Len() int {
	return h.size
}

// Cap returns the buffer capacity.
func (h *History) Cap() int {
	return len(h.frames)
}

// Frames returns the buffered frames ordered oldest to newest.
func (h *History) Frames() []detector.HandLandmarks {
	out := make([]detector.HandLandmarks, 0, h.size)
	start := (h.head - h.size + len(h.frames)) % len(h.frames)
	for i := 0; i < h.size; i++ {
		out = append(out, h.frames[(start+i)%len(h.frames)])
	}
	return out
}

// Reset empties the buffer.
func (h *History) Reset() {
	h.head = 0
	h.size = 0
}
