// Package timer implements a pausable countdown.
package timer

import (
	"context"
	"errors"
	"sync"
	"time"
)

type State int

const (
	Idle State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidState    = errors.New("operation not allowed in current state")
)

// Countdown counts down from a fixed duration. It is safe for concurrent
// use.
type Countdown struct {
	mu       sync.Mutex
	now      func() time.Time
	total    time.Duration
	left     time.Duration // remaining at the last pause or start
	resumed  time.Time     // when the current running stretch began
	state    State
	finished chan struct{}
}

// New returns an idle countdown of d. now may be nil to use the wall clock.
func New(d time.Duration, now func() time.Time) (*Countdown, error) {
	if d <= 0 {
		return nil, ErrInvalidDuration
	}
	if now == nil {
		now = time.Now
	}
	return &Countdown{
		now:      now,
		total:    d,
		left:     d,
		finished: make(chan struct{}),
	}, nil
}

func (c *Countdown) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Idle {
		return ErrInvalidState
	}
	c.state = Running
	c.resumed = c.now()
	return nil
}

func (c *Countdown) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance()
	if c.state != Running {
		return ErrInvalidState
	}
	c.left -= c.now().Sub(c.resumed)
	c.state = Paused
	return nil
}

func (c *Countdown) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Paused {
		return ErrInvalidState
	}
	c.state = Running
	c.resumed = c.now()
	return nil
}

// Reset returns to idle with the full duration.
func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Finished {
		c.finished = make(chan struct{})
	}
	c.left = c.total
	c.state = Idle
}

func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance()
	return c.remaining()
}

func (c *Countdown) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance()
	return c.state
}

// Done is closed when the countdown reaches zero. Finishing is observed by
// Remaining, State or Run.
func (c *Countdown) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished
}

// Run starts the countdown if idle and calls onTick with the remaining
// time every tick until it finishes or ctx is cancelled. tick must be
// positive.
func (c *Countdown) Run(ctx context.Context, tick time.Duration, onTick func(time.Duration)) error {
	if tick <= 0 {
		return ErrInvalidDuration
	}
	if c.State() == Idle {
		if err := c.Start(); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		left := c.Remaining()
		if onTick != nil {
			onTick(left)
		}
		if left <= 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Countdown) remaining() time.Duration {
	switch c.state {
	case Running:
		return max(c.left-c.now().Sub(c.resumed), 0)
	case Finished:
		return 0
	default:
		return c.left
	}
}

// advance moves a running countdown that has hit zero to Finished.
func (c *Countdown) advance() {
	if c.state != Running || c.remaining() > 0 {
		return
	}
	c.state = Finished
	c.left = 0
	close(c.finished)
}
