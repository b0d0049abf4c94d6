package interact

import (
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// stubRig records pose requests without interpolating.
type stubRig struct {
	pose       scene.Pose
	animations []animation
}

type animation struct {
	pose scene.Pose
	d    time.Duration
}

func (r *stubRig) Pose() scene.Pose { return r.pose }

func (r *stubRig) Target() scene.Pose {
	if len(r.animations) > 0 {
		return r.animations[len(r.animations)-1].pose
	}
	return r.pose
}

func (r *stubRig) Distance() float64 { return r3.Norm(r.pose.Position) }

func (r *stubRig) Animate(pose scene.Pose, d time.Duration) {
	r.animations = append(r.animations, animation{pose, d})
}

func (r *stubRig) last() (animation, bool) {
	if len(r.animations) == 0 {
		return animation{}, false
	}
	return r.animations[len(r.animations)-1], true
}

// stubRay returns a fixed pick result.
type stubRay struct {
	hit        scene.Target
	ok         bool
	highlights [][]string
}

func (s *stubRay) Pick(scene.Pointer) (scene.Target, bool) { return s.hit, s.ok }

func (s *stubRay) Highlight(ids ...string) { s.highlights = append(s.highlights, ids) }

// stubClock records rate changes.
type stubClock struct {
	rates []float64
}

func (s *stubClock) SetRate(rate float64) { s.rates = append(s.rates, rate) }

func (s *stubClock) current() float64 {
	if len(s.rates) == 0 {
		return 1.0
	}
	return s.rates[len(s.rates)-1]
}

// recordingNotifier captures every outbound notification.
type recordingNotifier struct {
	labels   []gesture.Label
	tooltips []string // target names; "" marks a hide
	panels   []string
	exits    []ExitOrigin
}

func (n *recordingNotifier) GestureChanged(label gesture.Label) { n.labels = append(n.labels, label) }

func (n *recordingNotifier) ShowTooltip(target scene.Target, _ scene.Pointer) {
	n.tooltips = append(n.tooltips, target.Name)
}

func (n *recordingNotifier) HideTooltip() { n.tooltips = append(n.tooltips, "") }

func (n *recordingNotifier) ShowPanel(target scene.Target) { n.panels = append(n.panels, target.Name) }

func (n *recordingNotifier) HidePanel() { n.panels = append(n.panels, "") }

func (n *recordingNotifier) FocusExited(origin ExitOrigin) { n.exits = append(n.exits, origin) }

type fixture struct {
	ctl   *Controller
	rig   *stubRig
	ray   *stubRay
	clock *stubClock
	note  *recordingNotifier
}

func newFixture(config Config) *fixture {
	rig := &stubRig{pose: scene.Pose{Position: r3.Vec{Z: 5}, FOV: config.FOVBaseline}}
	ray := &stubRay{}
	clock := &stubClock{}
	note := &recordingNotifier{}
	return &fixture{
		ctl:   NewController(config, rig, ray, clock, note),
		rig:   rig,
		ray:   ray,
		clock: clock,
		note:  note,
	}
}

func neutral() gesture.Event { return gesture.Event{Type: gesture.LabelNone} }

func pointerAt(x, y float64) scene.Pointer { return scene.Pointer{X: x, Y: y} }

const tick = 16 * time.Millisecond

func TestController_DwellSelectsTarget(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("exactly the threshold focuses", func(t *testing.T) {
		f := newFixture(cfg)
		f.ray.hit = scene.NewTarget("orb", r3.Vec{}, 1)
		f.ray.ok = true

		// Entry tick starts the dwell at zero.
		f.ctl.Tick(tick, neutral(), pointerAt(0.5, 0.5), true)
		if f.ctl.State() != StateHovering {
			t.Fatalf("State() = %q, want %q", f.ctl.State(), StateHovering)
		}

		f.ctl.Tick(cfg.DwellThreshold-time.Millisecond, neutral(), pointerAt(0.5, 0.5), true)
		if f.ctl.State() != StateHovering {
			t.Fatal("one millisecond short of the threshold must not focus")
		}

		f.ctl.Tick(time.Millisecond, neutral(), pointerAt(0.5, 0.5), true)
		if f.ctl.State() != StateFocused {
			t.Fatalf("State() = %q, want %q at the dwell threshold", f.ctl.State(), StateFocused)
		}

		if f.clock.current() != cfg.FocusTimeRate {
			t.Errorf("simulation rate = %f, want %f", f.clock.current(), cfg.FocusTimeRate)
		}
		if len(f.note.panels) == 0 || f.note.panels[len(f.note.panels)-1] != "orb" {
			t.Error("focusing must show the detail panel for the target")
		}
	})

	t.Run("switching targets resets the dwell", func(t *testing.T) {
		f := newFixture(cfg)
		a := scene.NewTarget("a", r3.Vec{}, 1)
		b := scene.NewTarget("b", r3.Vec{X: 3}, 1)

		f.ray.hit, f.ray.ok = a, true
		f.ctl.Tick(tick, neutral(), pointerAt(0.5, 0.5), true)
		f.ctl.Tick(cfg.DwellThreshold-time.Millisecond, neutral(), pointerAt(0.5, 0.5), true)

		// Pointer slides onto b just before a would have locked.
		f.ray.hit = b
		f.ctl.Tick(tick, neutral(), pointerAt(0.6, 0.5), true)
		if f.ctl.State() != StateHovering {
			t.Fatalf("State() = %q, want %q", f.ctl.State(), StateHovering)
		}
		if got, _ := f.ctl.HoveredTarget(); got.ID != b.ID {
			t.Errorf("hovered = %q, want %q", got.Name, b.Name)
		}

		f.ctl.Tick(cfg.DwellThreshold-time.Millisecond, neutral(), pointerAt(0.6, 0.5), true)
		if f.ctl.State() == StateFocused {
			t.Error("dwell must restart when the hovered target changes")
		}
	})
}

func TestController_PointConfirmsImmediately(t *testing.T) {
	f := newFixture(DefaultConfig())
	f.ray.hit = scene.NewTarget("orb", r3.Vec{}, 1)
	f.ray.ok = true

	f.ctl.Tick(tick, gesture.Event{Type: gesture.LabelPoint}, pointerAt(0.5, 0.5), true)

	if f.ctl.State() != StateFocused {
		t.Fatalf("State() = %q, want %q after a single point frame", f.ctl.State(), StateFocused)
	}
}

func TestController_HoverClears(t *testing.T) {
	f := newFixture(DefaultConfig())
	f.ray.hit = scene.NewTarget("orb", r3.Vec{}, 1)
	f.ray.ok = true

	f.ctl.Tick(tick, neutral(), pointerAt(0.5, 0.5), true)

	f.ray.ok = false
	f.ctl.Tick(tick, neutral(), pointerAt(0.1, 0.1), true)

	if f.ctl.State() != StateIdle {
		t.Fatalf("State() = %q, want %q after the ray misses", f.ctl.State(), StateIdle)
	}
	if f.note.tooltips[len(f.note.tooltips)-1] != "" {
		t.Error("clearing hover must hide the tooltip")
	}
	if last := f.ray.highlights[len(f.ray.highlights)-1]; len(last) != 0 {
		t.Error("clearing hover must clear the highlight set")
	}
}

func TestController_FocusPersistence(t *testing.T) {
	t.Run("ray miss does not release focus", func(t *testing.T) {
		f := newFixture(DefaultConfig())
		f.ray.hit = scene.NewTarget("orb", r3.Vec{}, 1)
		f.ray.ok = true
		f.ctl.Tick(tick, gesture.Event{Type: gesture.LabelPoint}, pointerAt(0.5, 0.5), true)

		f.ray.ok = false
		for i := 0; i < 30; i++ {
			f.ctl.Tick(tick, neutral(), pointerAt(0.0, 0.0), true)
		}

		if f.ctl.State() != StateFocused {
			t.Errorf("State() = %q, want %q", f.ctl.State(), StateFocused)
		}
	})

	t.Run("hand loss keeps focus by default", func(t *testing.T) {
		f := newFixture(DefaultConfig())
		f.ray.hit = scene.NewTarget("orb", r3.Vec{}, 1)
		f.ray.ok = true
		f.ctl.Tick(tick, gesture.Event{Type: gesture.LabelPoint}, pointerAt(0.5, 0.5), true)

		f.ctl.Tick(tick, neutral(), scene.Pointer{}, false)

		if f.ctl.State() != StateFocused {
			t.Errorf("State() = %q, want %q", f.ctl.State(), StateFocused)
		}
	})

	t.Run("hand loss releases focus when configured", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ClearFocusOnHandLoss = true
		f := newFixture(cfg)
		f.ray.hit = scene.NewTarget("orb", r3.Vec{}, 1)
		f.ray.ok = true
		f.ctl.Tick(tick, gesture.Event{Type: gesture.LabelPoint}, pointerAt(0.5, 0.5), true)

		f.ctl.Tick(tick, neutral(), scene.Pointer{}, false)

		if f.ctl.State() != StateIdle {
			t.Fatalf("State() = %q, want %q", f.ctl.State(), StateIdle)
		}
		if f.note.exits[len(f.note.exits)-1] != ExitOriginHandLoss {
			t.Errorf("exit origin = %q, want %q", f.note.exits[len(f.note.exits)-1], ExitOriginHandLoss)
		}
	})

	t.Run("hand loss clears hovering", func(t *testing.T) {
		f := newFixture(DefaultConfig())
		f.ray.hit = scene.NewTarget("orb", r3.Vec{}, 1)
		f.ray.ok = true
		f.ctl.Tick(tick, neutral(), pointerAt(0.5, 0.5), true)

		f.ctl.Tick(tick, neutral(), scene.Pointer{}, false)

		if f.ctl.State() != StateIdle {
			t.Errorf("State() = %q, want %q", f.ctl.State(), StateIdle)
		}
	})
}

func TestController_Disqualifiers(t *testing.T) {
	focus := func(f *fixture) {
		f.ray.hit = scene.NewTarget("orb", r3.Vec{}, 1)
		f.ray.ok = true
		f.ctl.Tick(tick, gesture.Event{Type: gesture.LabelPoint}, pointerAt(0.5, 0.5), true)
		if f.ctl.State() != StateFocused {
			panic("fixture failed to focus")
		}
	}

	t.Run("strong zoom-out pinch releases", func(t *testing.T) {
		f := newFixture(DefaultConfig())
		focus(f)

		ev := gesture.Event{
			Type:  gesture.LabelPinch,
			Delta: detector.Point3D{Z: 0.02},
		}
		f.ctl.Tick(tick, ev, pointerAt(0.5, 0.5), true)

		if f.ctl.State() != StateIdle {
			t.Fatalf("State() = %q, want %q", f.ctl.State(), StateIdle)
		}
		if f.note.exits[len(f.note.exits)-1] != ExitOriginGesture {
			t.Errorf("exit origin = %q, want %q", f.note.exits[len(f.note.exits)-1], ExitOriginGesture)
		}
		if f.clock.current() != 1.0 {
			t.Errorf("simulation rate = %f, want 1.0 after release", f.clock.current())
		}
	})

	t.Run("zoom-in pinch does not release", func(t *testing.T) {
		f := newFixture(DefaultConfig())
		focus(f)

		ev := gesture.Event{
			Type:  gesture.LabelPinch,
			Delta: detector.Point3D{Z: -0.02},
		}
		f.ctl.Tick(tick, ev, pointerAt(0.5, 0.5), true)

		if f.ctl.State() != StateFocused {
			t.Errorf("State() = %q, want %q", f.ctl.State(), StateFocused)
		}
	})

	t.Run("fast pan releases", func(t *testing.T) {
		f := newFixture(DefaultConfig())
		focus(f)

		ev := gesture.Event{Type: gesture.LabelPan, Velocity: 0.08}
		f.ctl.Tick(tick, ev, pointerAt(0.5, 0.5), true)

		if f.ctl.State() != StateIdle {
			t.Errorf("State() = %q, want %q", f.ctl.State(), StateIdle)
		}
	})

	t.Run("slow pan does not release", func(t *testing.T) {
		f := newFixture(DefaultConfig())
		focus(f)

		ev := gesture.Event{Type: gesture.LabelPan, Velocity: 0.01}
		f.ctl.Tick(tick, ev, pointerAt(0.5, 0.5), true)

		if f.ctl.State() != StateFocused {
			t.Errorf("State() = %q, want %q", f.ctl.State(), StateFocused)
		}
	})
}

func TestController_ExitFocusFromUI(t *testing.T) {
	f := newFixture(DefaultConfig())
	f.ray.hit = scene.NewTarget("orb", r3.Vec{}, 1)
	f.ray.ok = true
	f.ctl.Tick(tick, gesture.Event{Type: gesture.LabelPoint}, pointerAt(0.5, 0.5), true)

	f.ctl.ExitFocus()

	if f.ctl.State() != StateIdle {
		t.Fatalf("State() = %q, want %q", f.ctl.State(), StateIdle)
	}
	if f.note.exits[len(f.note.exits)-1] != ExitOriginUI {
		t.Errorf("exit origin = %q, want %q", f.note.exits[len(f.note.exits)-1], ExitOriginUI)
	}

	// Exiting twice is a no-op.
	f.ctl.ExitFocus()
	if len(f.note.exits) != 1 {
		t.Errorf("len(exits) = %d, want 1", len(f.note.exits))
	}
}

func TestController_GestureChangedFiresOnTransitions(t *testing.T) {
	f := newFixture(DefaultConfig())

	f.ctl.Tick(tick, gesture.Event{Type: gesture.LabelRotate}, pointerAt(0.5, 0.5), true)
	f.ctl.Tick(tick, gesture.Event{Type: gesture.LabelRotate}, pointerAt(0.5, 0.5), true)
	f.ctl.Tick(tick, neutral(), pointerAt(0.5, 0.5), true)

	want := []gesture.Label{gesture.LabelRotate, gesture.LabelNone}
	if len(f.note.labels) != len(want) {
		t.Fatalf("len(labels) = %d, want %d", len(f.note.labels), len(want))
	}
	for i := range want {
		if f.note.labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, f.note.labels[i], want[i])
		}
	}
}

func TestController_DwellProgress(t *testing.T) {
	cfg := DefaultConfig()
	f := newFixture(cfg)
	f.ray.hit = scene.NewTarget("orb", r3.Vec{}, 1)
	f.ray.ok = true

	if f.ctl.DwellProgress() != 0 {
		t.Errorf("DwellProgress() = %f, want 0 while idle", f.ctl.DwellProgress())
	}

	f.ctl.Tick(tick, neutral(), pointerAt(0.5, 0.5), true)
	f.ctl.Tick(cfg.DwellThreshold/2, neutral(), pointerAt(0.5, 0.5), true)

	if got := f.ctl.DwellProgress(); got < 0.49 || got > 0.51 {
		t.Errorf("DwellProgress() = %f, want ~0.5", got)
	}
}
