package interact

import (
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/scene"
)

// Controller runs once per rendered frame. It owns the selection state machine
// and the gesture-to-camera policy; the rig, raycaster, clock and notifier are
// injected collaborators. All state is mutated from the frame loop only.
type Controller struct {
	config   Config
	rig      CameraRig
	ray      Raycaster
	clock    TimeScaler
	notifier Notifier

	state     State
	hovered   scene.Target
	dwell     time.Duration
	focused   scene.Target
	lastLabel gesture.Label
}

// NewController creates a Controller with the given collaborators.
func NewController(config Config, rig CameraRig, ray Raycaster, clock TimeScaler, notifier Notifier) *Controller {
	return &Controller{
		config:    config,
		rig:       rig,
		ray:       ray,
		clock:     clock,
		notifier:  notifier,
		state:     StateIdle,
		lastLabel: gesture.LabelNone,
	}
}

// SetConfig replaces the tuning parameters. Selection state is preserved; the
// new thresholds apply from the next tick.
func (c *Controller) SetConfig(config Config) {
	c.config = config
}

// State returns the current selection state.
func (c *Controller) State() State {
	return c.state
}

// FocusedTarget returns the locked target while focused.
func (c *Controller) FocusedTarget() (scene.Target, bool) {
	if c.state != StateFocused {
		return scene.Target{}, false
	}
	return c.focused, true
}

// HoveredTarget returns the target under the pointer while hovering.
func (c *Controller) HoveredTarget() (scene.Target, bool) {
	if c.state != StateHovering {
		return scene.Target{}, false
	}
	return c.hovered, true
}

// DwellProgress returns hover progress toward the dwell threshold in [0,1].
func (c *Controller) DwellProgress() float64 {
	if c.state != StateHovering || c.config.DwellThreshold <= 0 {
		return 0
	}
	p := float64(c.dwell) / float64(c.config.DwellThreshold)
	if p > 1 {
		p = 1
	}
	return p
}

// Tick advances the controller by one rendered frame. The event is the latest
// classification (carried over unchanged on frames without a fresh detection),
// the pointer is the index fingertip in screen space, and handVisible is the
// raw presence signal from the detector.
func (c *Controller) Tick(dt time.Duration, ev gesture.Event, pointer scene.Pointer, handVisible bool) {
	if ev.Type != c.lastLabel {
		c.lastLabel = ev.Type
		c.notifier.GestureChanged(ev.Type)
	}

	if !handVisible {
		// The only cancellation signal: hovering always clears, focus only
		// under the configured policy.
		c.clearHover()
		if c.state == StateFocused && c.config.ClearFocusOnHandLoss {
			c.exitFocus(ExitOriginHandLoss)
		}
		if c.state == StateFocused {
			c.followFocused()
		} else {
			c.relaxFOV()
		}
		return
	}

	c.updateSelection(dt, ev, pointer)
	c.applyCamera(ev)
}

// ExitFocus releases the focused target on behalf of the presentation layer.
func (c *Controller) ExitFocus() {
	if c.state == StateFocused {
		c.exitFocus(ExitOriginUI)
	}
}

// updateSelection runs the Idle/Hovering/Focused transitions for one tick.
func (c *Controller) updateSelection(dt time.Duration, ev gesture.Event, pointer scene.Pointer) {
	switch c.state {
	case StateIdle, StateHovering:
		hit, ok := c.ray.Pick(pointer)
		if !ok {
			c.clearHover()
			return
		}

		if c.state != StateHovering || hit.ID != c.hovered.ID {
			// New target under the pointer: restart the dwell timer.
			c.state = StateHovering
			c.hovered = hit
			c.dwell = 0
			c.ray.Highlight(hit.ID)
			c.notifier.ShowTooltip(hit, pointer)
		} else {
			c.dwell += dt
		}

		// Point is an immediate confirm; dwell reaching the threshold counts.
		if ev.Type == gesture.LabelPoint || c.dwell >= c.config.DwellThreshold {
			c.enterFocus(hit)
		}

	case StateFocused:
		// A ray miss never clears an established lock; only an explicit exit
		// or a disqualifying get-away gesture does.
		if ev.Type == gesture.LabelPinch && ev.Delta.Z > c.config.DisqualifyPinchZ {
			c.exitFocus(ExitOriginGesture)
			return
		}
		if ev.Type == gesture.LabelPan && ev.Velocity > c.config.DisqualifyVelocity {
			c.exitFocus(ExitOriginGesture)
			return
		}
	}
}

func (c *Controller) enterFocus(target scene.Target) {
	c.state = StateFocused
	c.focused = target
	c.dwell = 0

	c.notifier.HideTooltip()
	c.notifier.ShowPanel(target)
	c.ray.Highlight(target.ID)
	c.clock.SetRate(c.config.FocusTimeRate)
	c.followFocused()
}

func (c *Controller) exitFocus(origin ExitOrigin) {
	c.state = StateIdle
	c.focused = scene.Target{}

	c.clock.SetRate(1.0)
	c.ray.Highlight()
	c.notifier.HidePanel()
	c.notifier.FocusExited(origin)
}

func (c *Controller) clearHover() {
	if c.state != StateHovering {
		return
	}
	c.state = StateIdle
	c.hovered = scene.Target{}
	c.dwell = 0
	c.ray.Highlight()
	c.notifier.HideTooltip()
}
