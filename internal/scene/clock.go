package scene

import "time"

// Clock holds the simulation's time-dilation rate. The interaction controller
// drops the rate to near zero while a target is focused and restores it on
// release; the render loop scales its simulation steps through Scale.
type Clock struct {
	rate float64
}

// NewClock creates a Clock running at normal rate.
func NewClock() *Clock {
	return &Clock{rate: 1.0}
}

// SetRate sets the simulation rate. 1.0 is real time; values are clamped at 0.
func (c *Clock) SetRate(rate float64) {
	if rate < 0 {
		rate = 0
	}
	c.rate = rate
}

// Rate returns the current simulation rate.
func (c *Clock) Rate() float64 {
	return c.rate
}

// Scale returns dt scaled by the current rate.
func (c *Clock) Scale(dt time.Duration) time.Duration {
	return time.Duration(float64(dt) * c.rate)
}
