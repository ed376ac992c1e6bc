package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func TestCountdownLifecycle(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	c, err := New(time.Minute, clk.Now)
	require.NoError(t, err)
	assert.Equal(t, Idle, c.State())
	assert.ErrorIs(t, c.Pause(), ErrInvalidState)

	require.NoError(t, c.Start())
	clk.Advance(20 * time.Second)
	assert.Equal(t, 40*time.Second, c.Remaining())

	require.NoError(t, c.Pause())
	clk.Advance(time.Hour)
	assert.Equal(t, 40*time.Second, c.Remaining())
	assert.Equal(t, Paused, c.State())

	require.NoError(t, c.Resume())
	clk.Advance(40 * time.Second)
	assert.Equal(t, time.Duration(0), c.Remaining())
	assert.Equal(t, Finished, c.State())

	select {
	case <-c.Done():
	default:
		t.Fatal("Done() should be closed after finishing")
	}

	c.Reset()
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, time.Minute, c.Remaining())
	select {
	case <-c.Done():
		t.Fatal("Done() should be open after Reset")
	default:
	}
}

func TestNewRejectsNonPositive(t *testing.T) {
	_, err := New(0, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestRunFinishes(t *testing.T) {
	c, err := New(30*time.Millisecond, nil)
	require.NoError(t, err)

	var ticks int
	err = c.Run(context.Background(), 5*time.Millisecond, func(time.Duration) { ticks++ })
	require.NoError(t, err)
	assert.Equal(t, Finished, c.State())
	assert.Greater(t, ticks, 1)
}

func TestRunRejectsNonPositiveTick(t *testing.T) {
	c, err := New(time.Second, nil)
	require.NoError(t, err)

	for _, tick := range []time.Duration{0, -time.Millisecond} {
		assert.ErrorIs(t, c.Run(context.Background(), tick, nil), ErrInvalidDuration)
	}
	assert.Equal(t, Idle, c.State())
}

func TestRunCancelled(t *testing.T) {
	c, err := New(time.Hour, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = c.Run(ctx, 5*time.Millisecond, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Running, c.State())
}
