package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ now time.Duration }

func (c *fakeClock) advance(d time.Duration) { c.now += d }
func (c *fakeClock) read() time.Duration { return c.now }

func TestFrameStatsInterval(t *testing.T) {
	clock := &fakeClock{}
	s := &frameStats{now: clock.read, interval: time.Second}
	s.reset(clock.read())

	for i := 0; i < 9; i++ {
		clock.advance(100 * time.Millisecond)
		assert.False(t, s.frame(), "frame %d", i)
	}
	assert.Equal(t, 9, s.frames)

	clock.advance(100 * time.Millisecond)
	assert.True(t, s.frame())
	assert.Equal(t, 0, s.frames)
	assert.Equal(t, clock.now, s.windowStart)
}

func TestFrameStatsMinMax(t *testing.T) {
	clock := &fakeClock{}
	s := &frameStats{now: clock.read, interval: time.Minute}
	s.reset(clock.read())

	for _, d := range []time.Duration{16, 40, 8, 20} {
		clock.advance(d * time.Millisecond)
		s.frame()
	}
	assert.Equal(t, 8*time.Millisecond, s.min)
	assert.Equal(t, 40*time.Millisecond, s.max)
	assert.Equal(t, 84*time.Millisecond, s.total)
}

func TestNewFrameStatsUsesMonotonicClock(t *testing.T) {
	s := newFrameStats(time.Hour)
	assert.False(t, s.frame())
	assert.GreaterOrEqual(t, s.max, time.Duration(0))
}
