// Package interact maps classified gestures to camera motion and runs the
// pointer dwell/lock selection state machine.
package interact

import (
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/scene"
)

// CameraRig is the camera collaborator. The controller issues pose targets
// with a transition duration; the rig owns the interpolation.
type CameraRig interface {
	Pose() scene.Pose
	Target() scene.Pose
	Distance() float64
	Animate(pose scene.Pose, d time.Duration)
}

// Raycaster resolves a screen pointer to the nearest selectable target and
// maintains the renderer's highlight set.
type Raycaster interface {
	Pick(pointer scene.Pointer) (scene.Target, bool)
	Highlight(ids ...string)
}

// TimeScaler dilates the wider simulation while a target is focused.
type TimeScaler interface {
	SetRate(rate float64)
}

// ExitOrigin identifies what triggered leaving the focused state.
type ExitOrigin string

const (
	// ExitOriginUI is an explicit exit action from the presentation layer.
	ExitOriginUI ExitOrigin = "ui"
	// ExitOriginGesture is an automatic disqualifier: a strong zoom-out pinch
	// or a high-velocity pan while focused.
	ExitOriginGesture ExitOrigin = "gesture"
	// ExitOriginHandLoss is losing hand tracking with ClearFocusOnHandLoss set.
	ExitOriginHandLoss ExitOrigin = "hand-loss"
)

// Notifier receives the controller's discrete UI events.
type Notifier interface {
	// GestureChanged fires when the classified label changes.
	GestureChanged(label gesture.Label)
	// ShowTooltip fires when a target starts being hovered, with the
	// screen-space anchor for the tooltip.
	ShowTooltip(target scene.Target, anchor scene.Pointer)
	// HideTooltip fires when the hover clears.
	HideTooltip()
	// ShowPanel fires when a target is focused.
	ShowPanel(target scene.Target)
	// HidePanel fires when focus is released.
	HidePanel()
	// FocusExited reports what released the focus.
	FocusExited(origin ExitOrigin)
}

// State is the selection machine state.
type State string

const (
	// StateIdle means no target is under the pointer.
	StateIdle State = "idle"
	// StateHovering means a target is under the pointer and dwell is accruing.
	StateHovering State = "hovering"
	// StateFocused means a target is locked as the camera subject.
	StateFocused State = "focused"
)
