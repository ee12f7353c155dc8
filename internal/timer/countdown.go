// Package timer provides the quiz countdown.
package timer

import (
	"sync"
	"time"
)

// TickSource starts a tick stream. stop releases it.
type TickSource func(interval time.Duration) (ticks <-chan time.Time, stop func())

func wallClock(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

type Option func(*Countdown)

// WithInterval changes the tick period. The default is one second.
func WithInterval(d time.Duration) Option {
	return func(c *Countdown) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTicker replaces the tick source. A nil source disables the background
// loop; the owner then drives the countdown through Tick.
func WithTicker(src TickSource) Option {
	return func(c *Countdown) { c.source = src }
}

// Countdown counts whole seconds down to zero and calls onZero exactly once
// when it gets there. It is not persisted.
type Countdown struct {
	mu       sync.Mutex
	initial  int
	left     int
	running  bool
	fired    bool
	onZero   func()
	interval time.Duration
	source   TickSource
	quit     chan struct{}
}

func New(seconds int, onZero func(), opts ...Option) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	c := &Countdown{
		initial:  seconds,
		left:     seconds,
		onZero:   onZero,
		interval: time.Second,
		source:   wallClock,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running || c.left == 0 {
		return
	}
	c.running = true
	if c.source == nil {
		return
	}
	ticks, stop := c.source(c.interval)
	quit := make(chan struct{})
	c.quit = quit
	go c.loop(ticks, stop, quit)
}

func (c *Countdown) loop(ticks <-chan time.Time, stop func(), quit chan struct{}) {
	defer stop()
	for {
		select {
		case <-quit:
			return
		case <-ticks:
			c.Tick()
		}
	}
}

// Tick advances the countdown by one second while it is running.
func (c *Countdown) Tick() {
	c.mu.Lock()
	if !c.running || c.left == 0 {
		c.mu.Unlock()
		return
	}
	c.left--
	fire := false
	if c.left == 0 {
		c.haltLocked()
		fire = !c.fired
		c.fired = true
	}
	cb := c.onZero
	c.mu.Unlock()

	if fire && cb != nil {
		cb()
	}
}

func (c *Countdown) Pause() {
	c.mu.Lock()
	c.haltLocked()
	c.mu.Unlock()
}

// Stop halts the countdown. Start resumes it from the time left.
func (c *Countdown) Stop() { c.Pause() }

// Reset stops the countdown and rearms it at seconds.
func (c *Countdown) Reset(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	c.mu.Lock()
	c.haltLocked()
	c.initial = seconds
	c.left = seconds
	c.fired = false
	c.mu.Unlock()
}

// Restart rearms the countdown at its last initial value and starts it.
func (c *Countdown) Restart() {
	c.mu.Lock()
	initial := c.initial
	c.mu.Unlock()

	c.Reset(initial)
	c.Start()
}

func (c *Countdown) TimeLeft() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left
}

func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Countdown) haltLocked() {
	c.running = false
	if c.quit != nil {
		close(c.quit)
		c.quit = nil
	}
}
