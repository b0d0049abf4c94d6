package interact

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// Config holds the controller's tuning. Distances and deltas are in the
// detector's normalized units; angles in radians per unit delta.
type Config struct {
	// DwellThreshold is the sustained hover needed to lock a target.
	DwellThreshold time.Duration

	// TransitionDuration is the easing time for gesture-driven pose changes.
	TransitionDuration time.Duration

	// FollowDuration is the easing time for the per-frame focus follow.
	FollowDuration time.Duration

	// DollyGain scales pinch depth deltas into dolly steps. The step is
	// multiplied by the current camera distance so zooming feels constant at
	// any range.
	DollyGain float64

	// PanGain scales fist deltas into screen-aligned translation, also
	// distance-multiplied.
	PanGain float64

	// RotateGain scales palm horizontal deltas into orbit angle.
	RotateGain float64

	// MinDistance keeps the dolly from pushing through the scene origin.
	MinDistance float64

	// FOVBaseline is the resting field of view in degrees.
	FOVBaseline float64

	// FOVWarpGain scales |delta.z| during a pinch into a FOV perturbation.
	FOVWarpGain float64

	// FOVRelax is the per-tick proportional decay of the FOV back to baseline.
	FOVRelax float64

	// DisqualifyPinchZ releases focus when a pinch zooms out harder than this.
	DisqualifyPinchZ float64

	// DisqualifyVelocity releases focus when a pan moves faster than this.
	DisqualifyVelocity float64

	// FocusTimeRate is the simulation rate while a target is focused.
	FocusTimeRate float64

	// FollowOffset is the camera's offset from a focused target.
	FollowOffset r3.Vec

	// ClearFocusOnHandLoss releases focus when hand tracking drops. Off by
	// default: monocular tracking drops out often enough that releasing the
	// lock on every dropout makes it useless.
	ClearFocusOnHandLoss bool
}

// DefaultConfig returns the tuning used in production.
func DefaultConfig() Config {
	return Config{
		DwellThreshold:     1200 * time.Millisecond,
		TransitionDuration: 150 * time.Millisecond,
		FollowDuration:     250 * time.Millisecond,
		DollyGain:          6.0,
		PanGain:            2.0,
		RotateGain:         4.0,
		MinDistance:        1.0,
		FOVBaseline:        60,
		FOVWarpGain:        250,
		FOVRelax:           0.2,
		DisqualifyPinchZ:   0.015,
		DisqualifyVelocity: 0.05,
		FocusTimeRate:      0.02,
		FollowOffset:       r3.Vec{Y: 1.2, Z: 3.5},
	}
}
