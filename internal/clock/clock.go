package clock

import (
	"sync"
	"time"
)

// TimeSource reports the current time as whole seconds. Successive readings
// are expected to be non-decreasing.
type TimeSource interface {
	CurrentTime() uint64
}

type SystemClock struct{}

func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (c *SystemClock) CurrentTime() uint64 {
	return uint64(time.Now().Unix())
}

// ManualClock only moves when told to. Used by tests and simulations.
type ManualClock struct {
	mu  sync.RWMutex
	now uint64
}

func NewManualClock(start uint64) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) CurrentTime() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by the given number of seconds and returns
// the new time.
func (c *ManualClock) Advance(seconds uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += seconds
	return c.now
}

// Set moves the clock to an absolute time. Moving backwards is allowed so
// tests can exercise a misbehaving source.
func (c *ManualClock) Set(now uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
