// Package gesture classifies per-frame hand landmarks into discrete camera
// control gestures with smoothed motion deltas.
package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Label identifies the discrete gesture recognized on a frame.
type Label string

const (
	// LabelNone means no hand is visible or no predicate matched.
	LabelNone Label = "none"
	// LabelPinch is thumb tip touching index tip; drives dolly/zoom.
	LabelPinch Label = "pinch"
	// LabelPan is a closed fist; drives screen-aligned translation.
	LabelPan Label = "pan"
	// LabelRotate is an open palm; drives orbiting around the origin.
	LabelRotate Label = "rotate"
	// LabelPoint is an extended index finger; drives selection only.
	LabelPoint Label = "point"
)

// Event is the per-frame classification result. Delta is the smoothed motion of
// the gesture's anchor landmark; Velocity is the raw 2-D wrist speed, reported
// regardless of label so consumers can apply their own hysteresis.
type Event struct {
	Type     Label            `json:"type"`
	Delta    detector.Point3D `json:"delta"`
	Velocity float64          `json:"velocity"`
}

// Config holds the classifier thresholds. All distance thresholds compare 2-D
// image-plane distances in normalized coordinates.
type Config struct {
	// HistorySize is the number of frames kept for finite differencing.
	HistorySize int

	// FarThreshold is the wrist distance beyond which a finger reads as extended.
	FarThreshold float64

	// NearThreshold is the wrist distance under which a finger reads as curled.
	NearThreshold float64

	// PinchThreshold is the maximum thumb-index tip distance for a pinch.
	PinchThreshold float64

	// SmoothingAlpha is the exponential smoothing weight for new deltas.
	SmoothingAlpha float64
}

// DefaultConfig returns the tuning used in production.
func DefaultConfig() Config {
	return Config{
		HistorySize:    10,
		FarThreshold:   0.4,
		NearThreshold:  0.25,
		PinchThreshold: 0.06,
		SmoothingAlpha: 0.5,
	}
}

// rule pairs a label with its geometric predicate. Rules are evaluated in
// declaration order and the first match wins.
type rule struct {
	label Label
	match func(*detector.HandLandmarks) bool
}

// Classifier turns landmark frames into gesture events. It owns the frame
// history and the smoothed delta for one tracked hand; construct one instance
// per hand. Not safe for concurrent use.
type Classifier struct {
	config   Config
	history  *History
	smoothed detector.Point3D
	rules    []rule
}

// NewClassifier creates a Classifier with the given config.
func NewClassifier(config Config) *Classifier {
	if config.HistorySize <= 0 {
		config.HistorySize = DefaultConfig().HistorySize
	}
	c := &Classifier{
		config:  config,
		history: NewHistory(config.HistorySize),
	}

	// Ordered cascade. Point goes first so a deliberate extended-index pose
	// cannot read as pan or rotate; pinch precedes the whole-hand poses because
	// the remaining fingers may sit anywhere between curled and extended
	// mid-pinch.
	c.rules = []rule{
		{LabelPoint, c.isPoint},
		{LabelPinch, c.isPinch},
		{LabelPan, c.isFist},
		{LabelRotate, c.isOpenPalm},
	}

	return c
}

// SetConfig replaces the tuning parameters. The frame history keeps its
// current capacity and contents; thresholds and smoothing apply from the next
// frame.
func (c *Classifier) SetConfig(config Config) {
	if config.HistorySize <= 0 {
		config.HistorySize = DefaultConfig().HistorySize
	}
	c.config = config
}

// Process classifies the hands detected on one frame. A nil or empty slice
// means no hand is visible: nothing is pushed and the history resets, so a
// later re-acquire can never difference across the gap. The smoothed delta is
// left untouched; the returned None event alone releases any in-progress
// manipulation, and smoothing resumes from the held value once frames return.
// With multiple hands only the first is used.
func (c *Classifier) Process(hands []detector.HandLandmarks) Event {
	if len(hands) == 0 {
		c.history.Reset()
		return Event{Type: LabelNone}
	}

	hand := &hands[0]
	c.history.Push(*hand)

	velocity := c.wristVelocity()

	label := LabelNone
	for _, r := range c.rules {
		if r.match(hand) {
			label = r.label
			break
		}
	}

	switch label {
	case LabelPinch:
		c.smooth(c.frameDelta(detector.IndexTip))
		return Event{Type: label, Delta: c.smoothed, Velocity: velocity}
	case LabelPan, LabelRotate:
		c.smooth(c.frameDelta(detector.Wrist))
		return Event{Type: label, Delta: c.smoothed, Velocity: velocity}
	default:
		// Point is a discrete trigger, not a continuous manipulation.
		return Event{Type: label, Velocity: velocity}
	}
}

// SmoothedDelta returns the current smoothed motion vector.
func (c *Classifier) SmoothedDelta() detector.Point3D {
	return c.smoothed
}

// History returns the classifier's frame history.
func (c *Classifier) History() *History {
	return c.history
}

// isPoint reports an extended index finger with middle and ring curled.
func (c *Classifier) isPoint(hand *detector.HandLandmarks) bool {
	wrist := hand.Points[detector.Wrist]
	return detector.Dist2D(hand.Points[detector.IndexTip], wrist) > c.config.FarThreshold &&
		detector.Dist2D(hand.Points[detector.MiddleTip], wrist) < c.config.NearThreshold &&
		detector.Dist2D(hand.Points[detector.RingTip], wrist) < c.config.NearThreshold
}

// isPinch reports thumb tip and index tip touching.
func (c *Classifier) isPinch(hand *detector.HandLandmarks) bool {
	return detector.Dist2D(hand.Points[detector.ThumbTip], hand.Points[detector.IndexTip]) < c.config.PinchThreshold
}

// isFist reports all four fingertips curled against the wrist. The pinky is
// checked like the others, landmark 20 against the near threshold.
func (c *Classifier) isFist(hand *detector.HandLandmarks) bool {
	wrist := hand.Points[detector.Wrist]
	return detector.Dist2D(hand.Points[detector.IndexTip], wrist) < c.config.NearThreshold &&
		detector.Dist2D(hand.Points[detector.MiddleTip], wrist) < c.config.NearThreshold &&
		detector.Dist2D(hand.Points[detector.RingTip], wrist) < c.config.NearThreshold &&
		detector.Dist2D(hand.Points[detector.PinkyTip], wrist) < c.config.NearThreshold
}

// isOpenPalm reports index, middle and ring all extended.
func (c *Classifier) isOpenPalm(hand *detector.HandLandmarks) bool {
	wrist := hand.Points[detector.Wrist]
	return detector.Dist2D(hand.Points[detector.IndexTip], wrist) > c.config.FarThreshold &&
		detector.Dist2D(hand.Points[detector.MiddleTip], wrist) > c.config.FarThreshold &&
		detector.Dist2D(hand.Points[detector.RingTip], wrist) > c.config.FarThreshold
}

// frameDelta returns the latest-minus-previous position of one landmark, or
// zero when fewer than two frames are buffered.
func (c *Classifier) frameDelta(landmark int) detector.Point3D {
	latest, ok := c.history.Latest()
	if !ok {
		return detector.Point3D{}
	}
	prev, ok := c.history.Previous()
	if !ok {
		return detector.Point3D{}
	}
	return detector.Point3D{
		X: latest.Points[landmark].X - prev.Points[landmark].X,
		Y: latest.Points[landmark].Y - prev.Points[landmark].Y,
		Z: latest.Points[landmark].Z - prev.Points[landmark].Z,
	}
}

// wristVelocity returns the 2-D magnitude of the wrist's finite difference.
func (c *Classifier) wristVelocity() float64 {
	d := c.frameDelta(detector.Wrist)
	return math.Sqrt(d.X*d.X + d.Y*d.Y)
}

// smooth folds a raw delta into the persistent smoothed vector.
func (c *Classifier) smooth(raw detector.Point3D) {
	a := c.config.SmoothingAlpha
	c.smoothed.X = c.smoothed.X*(1-a) + raw.X*a
	c.smoothed.Y = c.smoothed.Y*(1-a) + raw.Y*a
	c.smoothed.Z = c.smoothed.Z*(1-a) + raw.Z*a
}
