// Package media provides a clock-driven stand-in for the streaming
// media element. It loads sources, advances a playback position in
// real time, and delivers the same lifecycle notifications a real
// element would: metadata ready, time advanced, ended.
package media

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/nufluxx/spinbox/internal/domain/track"
)

// Handler receives lifecycle notifications from the element.
type Handler interface {
	MetadataReady(durationSeconds float64)
	TimeAdvanced(positionSeconds float64)
	Ended()
}

// Config holds element configuration.
type Config struct {
	DefaultDurationSec float64       // Duration used when a track carries no advisory duration
	Tick               time.Duration // Interval between time-advanced notifications
}

// Sim is the simulated media element. Notifications are delivered
// without holding the element lock, so a handler may call back into
// the element freely.
type Sim struct {
	mu sync.Mutex

	handler  Handler
	config   Config
	current  track.Track
	duration float64
	position float64
	volume   float64
	playing  bool

	tickCancel func()
}

// NewSim creates a new simulated element.
func NewSim(cfg Config) *Sim {
	if cfg.DefaultDurationSec <= 0 {
		cfg.DefaultDurationSec = 180
	}
	if cfg.Tick <= 0 {
		cfg.Tick = 200 * time.Millisecond
	}
	return &Sim{config: cfg, volume: 1.0}
}

// SetHandler installs the notification handler.
func (s *Sim) SetHandler(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

// Load replaces the current source. Metadata becomes available
// asynchronously, as with a real streaming element.
func (s *Sim) Load(t track.Track) {
	s.mu.Lock()
	s.stopTickLocked()
	s.current = t
	s.duration = t.DurationSeconds
	if s.duration <= 0 || math.IsNaN(s.duration) || math.IsInf(s.duration, 0) {
		s.duration = s.config.DefaultDurationSec
	}
	s.position = 0
	s.playing = false
	h, d := s.handler, s.duration
	s.mu.Unlock()

	if h != nil {
		go h.MetadataReady(d)
	}
}

// Play starts advancing the playback clock.
func (s *Sim) Play(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playing {
		return nil
	}
	s.playing = true
	s.startTickLocked()
	return nil
}

// Pause stops the playback clock in place.
func (s *Sim) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.playing = false
	s.stopTickLocked()
}

// Seek moves the playback position, clamped to the track bounds.
func (s *Sim) Seek(seconds float64) {
	s.mu.Lock()
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	if seconds > s.duration {
		seconds = s.duration
	}
	s.position = seconds
	h, pos := s.handler, s.position
	s.mu.Unlock()

	if h != nil {
		go h.TimeAdvanced(pos)
	}
}

// SetVolume stores the output volume.
func (s *Sim) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = v
}

// Current returns the loaded track.
func (s *Sim) Current() track.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Position returns the current playback position in seconds.
func (s *Sim) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Duration returns the current source duration in seconds.
func (s *Sim) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// Close stops the playback clock.
func (s *Sim) Close() {
	s.Pause()
}

// startTickLocked starts the playback clock goroutine. Must be called
// with the lock held.
func (s *Sim) startTickLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	s.tickCancel = cancel
	step := s.config.Tick.Seconds()

	go func() {
		ticker := time.NewTicker(s.config.Tick)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if s.advance(step) {
					return
				}
			}
		}
	}()
}

// stopTickLocked cancels the playback clock. Must be called with the
// lock held.
func (s *Sim) stopTickLocked() {
	if s.tickCancel != nil {
		s.tickCancel()
		s.tickCancel = nil
	}
}

// advance moves the clock forward by step seconds and delivers
// notifications outside the lock. Returns true once the track ends.
func (s *Sim) advance(step float64) bool {
	s.mu.Lock()
	if !s.playing {
		s.mu.Unlock()
		return true
	}

	s.position += step
	ended := s.position >= s.duration
	if ended {
		s.position = s.duration
		s.playing = false
		s.stopTickLocked()
	}
	h, pos := s.handler, s.position
	s.mu.Unlock()

	if h != nil {
		h.TimeAdvanced(pos)
		if ended {
			h.Ended()
		}
	}
	return ended
}
