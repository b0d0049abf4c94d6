// Package detector provides hand detection interfaces and types for gesture-driven
// camera control.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a detected landmark position. X and Y are normalized image
// coordinates in [0,1]; Z is relative depth from the monocular estimate.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Dist2D returns the planar Euclidean distance between two landmarks, ignoring
// depth. Monocular Z estimates are too noisy for threshold comparisons, so all
// pose predicates work in the image plane.
func Dist2D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Mirror flips the landmarks horizontally in place (x -> 1-x) so a front-facing
// camera behaves like a mirror: moving the hand right moves the detected points
// right on screen.
func (h *HandLandmarks) Mirror() {
	for i := range h.Points {
		h.Points[i].X = 1.0 - h.Points[i].X
	}
}
