package interact

import (
	"math"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// applyCamera translates one gesture event into a camera pose request. While a
// target is focused the free gestures are suppressed and the camera follows
// the target instead.
func (c *Controller) applyCamera(ev gesture.Event) {
	if c.state == StateFocused {
		c.followFocused()
		return
	}

	switch ev.Type {
	case gesture.LabelPinch:
		c.dolly(ev.Delta.Z)
	case gesture.LabelPan:
		c.pan(ev.Delta.X, ev.Delta.Y)
	case gesture.LabelRotate:
		c.orbit(ev.Delta.X)
	default:
		// Point drives selection only; None leaves the camera alone. Either
		// way any pinch warp on the FOV bleeds back to baseline.
		c.relaxFOV()
	}
}

// dolly moves the camera along the view axis. The step is multiplicative in
// the current distance, so a fixed hand motion reads as the same zoom fraction
// at any range. |dz| also perturbs the FOV for a warp cue.
func (c *Controller) dolly(dz float64) {
	pose := c.rig.Target()

	scale := 1 + dz*c.config.DollyGain
	if scale < 0.5 {
		scale = 0.5
	} else if scale > 1.5 {
		scale = 1.5
	}

	pos := r3.Scale(scale, pose.Position)
	if dist := r3.Norm(pos); dist < c.config.MinDistance && dist > 0 {
		pos = r3.Scale(c.config.MinDistance/dist, pos)
	}

	fov := c.config.FOVBaseline + math.Abs(dz)*c.config.FOVWarpGain

	c.rig.Animate(scene.Pose{
		Position: pos,
		LookAt:   r3.Vec{},
		FOV:      fov,
	}, c.config.TransitionDuration)
}

// pan translates the camera and its look-at in screen-aligned X/Y, scaled by
// the current distance.
func (c *Controller) pan(dx, dy float64) {
	pose := c.rig.Target()
	right, up := screenBasis(pose)

	s := c.rig.Distance() * c.config.PanGain
	// Image y grows downward; pushing the fist up drags the scene up.
	offset := r3.Add(r3.Scale(-dx*s, right), r3.Scale(dy*s, up))

	c.rig.Animate(scene.Pose{
		Position: r3.Add(pose.Position, offset),
		LookAt:   r3.Add(pose.LookAt, offset),
		FOV:      pose.FOV,
	}, c.config.TransitionDuration)
}

// orbit swings the camera around the vertical axis through the origin,
// re-aiming at the origin each step.
func (c *Controller) orbit(dx float64) {
	pose := c.rig.Target()
	angle := dx * c.config.RotateGain

	sin, cos := math.Sincos(angle)
	p := pose.Position
	rotated := r3.Vec{
		X: p.X*cos + p.Z*sin,
		Y: p.Y,
		Z: -p.X*sin + p.Z*cos,
	}

	c.rig.Animate(scene.Pose{
		Position: rotated,
		LookAt:   r3.Vec{},
		FOV:      pose.FOV,
	}, c.config.TransitionDuration)
}

// followFocused eases the camera toward a fixed offset from the focused
// target, independent of the gesture pipeline.
func (c *Controller) followFocused() {
	pos := r3.Add(c.focused.Position, c.config.FollowOffset)

	c.rig.Animate(scene.Pose{
		Position: pos,
		LookAt:   c.focused.Position,
		FOV:      c.config.FOVBaseline,
	}, c.config.FollowDuration)
}

// relaxFOV decays any pinch warp back toward the baseline field of view.
func (c *Controller) relaxFOV() {
	pose := c.rig.Target()
	diff := c.config.FOVBaseline - pose.FOV
	if math.Abs(diff) < 0.01 {
		return
	}

	pose.FOV += diff * c.config.FOVRelax
	c.rig.Animate(pose, c.config.TransitionDuration)
}

// screenBasis returns the camera's right and up vectors.
func screenBasis(pose scene.Pose) (right, up r3.Vec) {
	forward := r3.Unit(r3.Sub(pose.LookAt, pose.Position))

	worldUp := r3.Vec{Y: 1}
	if math.Abs(r3.Dot(forward, worldUp)) > 0.999 {
		worldUp = r3.Vec{Z: 1}
	}

	right = r3.Unit(r3.Cross(forward, worldUp))
	up = r3.Cross(right, forward)
	return right, up
}
