package scene

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// Rig is an eased camera. Callers hand it pose targets with a duration; the
// rig interpolates toward them on its own Update ticks, so per-frame gesture
// noise never produces visible stepping. A new Animate call replaces any
// in-flight transition. Single-goroutine, like the rest of the frame loop.
type Rig struct {
	current   Pose
	start     Pose
	target    Pose
	elapsed   time.Duration
	duration  time.Duration
	animating bool
}

// NewRig creates a Rig at the given initial pose.
func NewRig(initial Pose) *Rig {
	return &Rig{current: initial}
}

// Pose returns the camera's current interpolated pose.
func (r *Rig) Pose() Pose {
	return r.current
}

// Target returns the pose the rig is moving toward. While idle this is the
// current pose.
func (r *Rig) Target() Pose {
	if r.animating {
		return r.target
	}
	return r.current
}

// Distance returns the camera's current distance from the scene origin.
func (r *Rig) Distance() float64 {
	return distance(r.current.Position)
}

// Animate starts an eased transition to the target pose over the given
// duration, replacing any transition in flight. A non-positive duration snaps
// immediately.
func (r *Rig) Animate(target Pose, d time.Duration) {
	if d <= 0 {
		r.current = target
		r.animating = false
		return
	}
	r.start = r.current
	r.target = target
	r.elapsed = 0
	r.duration = d
	r.animating = true
}

// Update advances the in-flight transition by dt.
func (r *Rig) Update(dt time.Duration) {
	if !r.animating {
		return
	}

	r.elapsed += dt
	if r.elapsed >= r.duration {
		r.current = r.target
		r.animating = false
		return
	}

	t := smoothstep(float64(r.elapsed) / float64(r.duration))
	r.current = Pose{
		Position: lerpVec(r.start.Position, r.target.Position, t),
		LookAt:   lerpVec(r.start.LookAt, r.target.LookAt, t),
		FOV:      r.start.FOV + (r.target.FOV-r.start.FOV)*t,
	}
}

// Animating reports whether a transition is in flight.
func (r *Rig) Animating() bool {
	return r.animating
}

// smoothstep maps t in [0,1] onto the 3t^2-2t^3 easing curve.
func smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func lerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
