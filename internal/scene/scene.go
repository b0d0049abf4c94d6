// Package scene provides the camera and picking collaborators for the
// interaction controller: an eased camera rig, a sphere raycaster over
// selectable targets, and a dilatable simulation clock.
package scene

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a camera pose target: position, look-at point and vertical field of
// view in degrees. Poses are values; mutating a copy never affects the rig.
type Pose struct {
	Position r3.Vec  `json:"position"`
	LookAt   r3.Vec  `json:"look_at"`
	FOV      float64 `json:"fov"`
}

// Pointer is a screen-space pointer in normalized [0,1] coordinates with the
// origin at the top left, matching the detector's image space.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Target is a selectable object in the scene, picked by sphere intersection.
type Target struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Position r3.Vec  `json:"position"`
	Radius   float64 `json:"radius"`
}

// NewTarget creates a Target with a generated ID.
func NewTarget(name string, position r3.Vec, radius float64) Target {
	return Target{
		ID:       uuid.NewString(),
		Name:     name,
		Position: position,
		Radius:   radius,
	}
}

// distance returns the Euclidean norm of v.
func distance(v r3.Vec) float64 {
	return r3.Norm(v)
}
