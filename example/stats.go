package main

import (
	"log/slog"
	"time"

	"github.com/loov/hrtime"
)

// frameStats logs frame time statistics once per interval.
type frameStats struct {
	now      func() time.Duration
	interval time.Duration

	windowStart time.Duration
	frameStart  time.Duration
	frames      int
	total       time.Duration
	min, max    time.Duration
}

func newFrameStats(interval time.Duration) *frameStats {
	s := &frameStats{now: hrtime.Now, interval: interval}
	s.reset(s.now())
	return s
}

func (s *frameStats) reset(now time.Duration) {
	s.windowStart = now
	s.frameStart = now
	s.frames = 0
	s.total = 0
	s.min = 0
	s.max = 0
}

// frame records the end of a frame. It reports whether the interval
// elapsed and the statistics were logged.
func (s *frameStats) frame() bool {
	now := s.now()
	d := now - s.frameStart
	s.frameStart = now

	if s.frames == 0 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	s.frames++
	s.total += d

	elapsed := now - s.windowStart
	if elapsed < s.interval {
		return false
	}

	slog.Debug("frame stats",
		"frames", s.frames,
		"fps", float64(s.frames)/elapsed.Seconds(),
		"avg", s.total/time.Duration(s.frames),
		"min", s.min,
		"max", s.max,
	)
	s.reset(now)
	return true
}
