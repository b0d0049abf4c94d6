// Package app wires the capture, detection, classification, and interaction
// pieces into the running pipeline.
package app

import (
	"log"
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/interact"
	"github.com/ayusman/mudra/internal/scene"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// RenderFPS is the fixed rate of the interaction/render tick. The render
	// tick never blocks on detection.
	RenderFPS = 30
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64
	Targets      []scene.Target
	Gesture      gesture.Config
	Interact     interact.Config
	Notifier     interact.Notifier
}

// App is the main application that orchestrates gesture detection and camera
// control.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	controller *interact.Controller
	rig        *scene.Rig
	ray        *scene.SphereRaycaster
	clock      *scene.Clock

	enabled     bool
	mu          sync.RWMutex
	stopCh      chan struct{}
	profileCh   chan *store.Profile
	exitFocusCh chan struct{}

	lastLabel gesture.Label
	lastState interact.State
	lastFocus string
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	rig := scene.NewRig(scene.Pose{
		Position: r3.Vec{Z: 5},
		FOV:      config.Interact.FOVBaseline,
	})
	ray := scene.NewSphereRaycaster(rig, config.Targets)
	clock := scene.NewClock()

	a := &App{
		config:      config,
		camera:      capture.NewCamera(config.CameraID),
		motion:      capture.NewMotionDetector(motionThreshold),
		classifier:  gesture.NewClassifier(config.Gesture),
		rig:         rig,
		ray:         ray,
		clock:       clock,
		profileCh:   make(chan *store.Profile, 1),
		exitFocusCh: make(chan struct{}, 1),
		lastLabel:   gesture.LabelNone,
		lastState:   interact.StateIdle,
	}
	a.controller = interact.NewController(config.Interact, rig, ray, clock, config.Notifier)

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture control.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture control is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// ApplyProfile reconfigures the classifier and controller from a stored
// interaction profile. While the pipeline runs the swap is handed to its
// goroutine so classifier and controller are never touched concurrently.
// Gesture history and selection state survive the swap.
func (a *App) ApplyProfile(p *store.Profile) {
	a.mu.RLock()
	running := a.stopCh != nil
	a.mu.RUnlock()

	if !running {
		a.applyProfile(p)
		return
	}

	select {
	case a.profileCh <- p:
	default:
		// A pending profile is superseded by this one.
		select {
		case <-a.profileCh:
		default:
		}
		a.profileCh <- p
	}
}

// applyProfile performs the swap. Called from the pipeline goroutine, or
// directly while the pipeline is stopped.
func (a *App) applyProfile(p *store.Profile) {
	a.mu.Lock()
	gc := a.config.Gesture
	gc.SmoothingAlpha = p.SmoothingAlpha
	a.config.Gesture = gc

	ic := a.config.Interact
	ic.DwellThreshold = time.Duration(p.DwellMs) * time.Millisecond
	ic.DollyGain = p.DollyGain
	ic.PanGain = p.PanGain
	ic.RotateGain = p.RotateGain
	ic.ClearFocusOnHandLoss = p.ClearFocusOnHandLoss
	a.config.Interact = ic
	a.mu.Unlock()

	a.classifier.SetConfig(gc)
	a.controller.SetConfig(ic)

	log.Printf("Applied interaction profile %q", p.Name)
}

// LoadActiveProfile applies the active profile from the store, if any.
func (a *App) LoadActiveProfile() error {
	if a.config.Store == nil {
		return nil
	}

	p, err := a.config.Store.Profiles().GetActive()
	if err != nil {
		if err == store.ErrNotFound {
			return nil
		}
		return err
	}

	a.ApplyProfile(p)
	return nil
}

// Start begins the pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(capture.IdleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the hand detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Classifier returns the gesture classifier. Like the controller it must
// only be driven from the pipeline goroutine.
func (a *App) Classifier() *gesture.Classifier {
	return a.classifier
}

// Rig returns the camera rig.
func (a *App) Rig() *scene.Rig {
	return a.rig
}

// Controller returns the interaction controller. It must only be driven from
// the pipeline goroutine; other goroutines should use LastLabel and LastState.
func (a *App) Controller() *interact.Controller {
	return a.controller
}

// ExitFocus requests a UI-originated focus release. The release happens on
// the next render tick so the controller is only ever driven from the
// pipeline goroutine.
func (a *App) ExitFocus() {
	select {
	case a.exitFocusCh <- struct{}{}:
	default:
	}
}

// LastLabel returns the most recently classified gesture label.
func (a *App) LastLabel() gesture.Label {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastLabel
}

// LastState returns the most recent selection state.
func (a *App) LastState() interact.State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastState
}

// LastFocus returns the name of the focused target, or "" when none.
func (a *App) LastFocus() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastFocus
}

func (a *App) recordTick(label gesture.Label, state interact.State, focus string) {
	a.mu.Lock()
	a.lastLabel = label
	a.lastState = state
	a.lastFocus = focus
	a.mu.Unlock()
}
