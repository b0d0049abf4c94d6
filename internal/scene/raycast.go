package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SphereRaycaster picks selectable targets by casting a ray from the camera
// through a normalized screen point against each target's bounding sphere.
// It also tracks the set of highlighted (outlined) targets for the renderer.
type SphereRaycaster struct {
	rig         *Rig
	targets     []Target
	highlighted map[string]bool
}

// NewSphereRaycaster creates a raycaster over the given targets, picking from
// the rig's current pose.
func NewSphereRaycaster(rig *Rig, targets []Target) *SphereRaycaster {
	return &SphereRaycaster{
		rig:         rig,
		targets:     targets,
		highlighted: make(map[string]bool),
	}
}

// Targets returns the selectable targets.
func (rc *SphereRaycaster) Targets() []Target {
	return rc.targets
}

// Lookup returns the target with the given ID.
func (rc *SphereRaycaster) Lookup(id string) (Target, bool) {
	for _, t := range rc.targets {
		if t.ID == id {
			return t, true
		}
	}
	return Target{}, false
}

// Pick returns the nearest target intersected by the ray through the pointer,
// if any.
func (rc *SphereRaycaster) Pick(pointer Pointer) (Target, bool) {
	pose := rc.rig.Pose()
	origin := pose.Position
	dir := rayDirection(pose, pointer)

	best := math.Inf(1)
	var hit Target
	found := false

	for _, target := range rc.targets {
		t, ok := intersectSphere(origin, dir, target.Position, target.Radius)
		if ok && t < best {
			best = t
			hit = target
			found = true
		}
	}

	return hit, found
}

// Highlight replaces the highlight set with the given target IDs.
func (rc *SphereRaycaster) Highlight(ids ...string) {
	clear(rc.highlighted)
	for _, id := range ids {
		rc.highlighted[id] = true
	}
}

// Highlighted reports whether the target with the given ID is highlighted.
func (rc *SphereRaycaster) Highlighted(id string) bool {
	return rc.highlighted[id]
}

// rayDirection builds a unit view ray through the pointer from the camera
// basis. The pointer is top-left-origin normalized screen space; a unit aspect
// ratio is assumed (the front-end letterboxes to square).
func rayDirection(pose Pose, pointer Pointer) r3.Vec {
	forward := r3.Unit(r3.Sub(pose.LookAt, pose.Position))

	up := r3.Vec{Y: 1}
	// Degenerate when looking straight up or down.
	if math.Abs(r3.Dot(forward, up)) > 0.999 {
		up = r3.Vec{Z: 1}
	}

	right := r3.Unit(r3.Cross(forward, up))
	trueUp := r3.Cross(right, forward)

	tanHalf := math.Tan(pose.FOV * math.Pi / 360.0)
	px := (pointer.X - 0.5) * 2 * tanHalf
	py := (0.5 - pointer.Y) * 2 * tanHalf

	dir := r3.Add(forward, r3.Add(r3.Scale(px, right), r3.Scale(py, trueUp)))
	return r3.Unit(dir)
}

// intersectSphere returns the nearest positive ray parameter at which the ray
// origin+t*dir enters the sphere, or false if it misses.
func intersectSphere(origin, dir, center r3.Vec, radius float64) (float64, bool) {
	oc := r3.Sub(origin, center)
	b := r3.Dot(oc, dir)
	c := r3.Dot(oc, oc) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq // origin inside the sphere
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
