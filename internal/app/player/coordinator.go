package player

import (
	"context"
	"math"
	"sync"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/nufluxx/spinbox/internal/domain/playlist"
	"github.com/nufluxx/spinbox/internal/domain/track"
	"github.com/nufluxx/spinbox/internal/infra/metrics"
)

// Coordinator binds one playlist to one media element. It owns the
// mutable current index; the playlist itself is immutable for the
// session. Commands and element notifications may arrive on any
// goroutine and are serialized by the mutex, so an arbitrary
// interleaving of user input and playback events stays consistent.
type Coordinator struct {
	mu sync.Mutex

	id       string // session id, diagnostics only
	list     *playlist.Playlist
	current  int
	element  Element
	bindings Bindings

	state    State
	duration float64 // authoritative, from MetadataReady
	position float64
	volume   float64

	ctx    context.Context
	cancel context.CancelFunc
}

// Snapshot is a point-in-time view of the coordinator for the control
// surface.
type Snapshot struct {
	State           string       `json:"state"`
	Index           int          `json:"index"`
	TrackCount      int          `json:"track_count"`
	Track           *track.Track `json:"track,omitempty"`
	Title           string       `json:"title,omitempty"`
	DurationSeconds float64      `json:"duration_seconds"`
	PositionSeconds float64      `json:"position_seconds"`
	Progress        float64      `json:"progress"`
	Volume          float64      `json:"volume"`
}

// NewCoordinator creates a coordinator bound to the given element and
// view bindings. No playlist is attached yet; every command is a no-op
// until AttachPlaylist is called.
func NewCoordinator(element Element, bindings Bindings) *Coordinator {
	bindings.logMissing()

	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		id:       uuid.NewString(),
		list:     playlist.New(nil),
		element:  element,
		bindings: bindings,
		state:    StateIdle,
		volume:   1.0,
		ctx:      ctx,
		cancel:   cancel,
	}
	zlog.Debug().Msgf("player: coordinator created: session=%s", c.id)
	return c
}

// AttachPlaylist installs the resolved playlist and loads its first
// track without starting playback. Discovery completes before the
// first command, so this runs exactly once per session.
func (c *Coordinator) AttachPlaylist(p *playlist.Playlist) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.list = p
	zlog.Info().Msgf("player: playlist attached: session=%s tracks=%d", c.id, p.Len())
	c.selectTrackLocked(0, false)
}

// SelectTrack makes track i current, wrapping the index in both
// directions, and optionally requests playback. A rejected playback
// start (autoplay policy) is logged, never surfaced.
func (c *Coordinator) SelectTrack(i int, autoplay bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	metrics.CommandsTotal.WithLabelValues("select_track").Inc()
	c.selectTrackLocked(i, autoplay)
}

// Next advances to the following track and plays it.
func (c *Coordinator) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()

	metrics.CommandsTotal.WithLabelValues("next").Inc()
	c.selectTrackLocked(c.current+1, true)
}

// Previous retreats to the preceding track and plays it.
func (c *Coordinator) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()

	metrics.CommandsTotal.WithLabelValues("previous").Inc()
	c.selectTrackLocked(c.current-1, true)
}

// Play requests playback of the current track.
func (c *Coordinator) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.list.IsEmpty() {
		return
	}
	metrics.CommandsTotal.WithLabelValues("play").Inc()
	c.requestPlayLocked()
}

// Pause halts playback.
func (c *Coordinator) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.list.IsEmpty() {
		return
	}
	metrics.CommandsTotal.WithLabelValues("pause").Inc()
	c.element.Pause()
	c.state = StatePaused
}

// SetVolume forwards a volume in [0, 1] to the element; out-of-range
// values are clamped.
func (c *Coordinator) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.list.IsEmpty() {
		return
	}
	metrics.CommandsTotal.WithLabelValues("set_volume").Inc()
	c.volume = clamp01(v)
	c.element.SetVolume(c.volume)
}

// SeekTo moves playback to fraction of the current duration. An
// unknown or non-finite duration is treated as zero.
func (c *Coordinator) SeekTo(fraction float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.list.IsEmpty() {
		return
	}
	metrics.CommandsTotal.WithLabelValues("seek").Inc()

	d := c.duration
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		d = 0
	}
	c.element.Seek(clamp01(fraction) * d)
}

// MetadataReady stores the authoritative duration and updates the
// duration display.
func (c *Coordinator) MetadataReady(durationSeconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if math.IsNaN(durationSeconds) || math.IsInf(durationSeconds, 0) || durationSeconds < 0 {
		durationSeconds = 0
	}
	c.duration = durationSeconds
	c.emitDurationLocked()
}

// TimeAdvanced updates the position display and progress fraction. The
// fraction divides by max(duration, 1) so an unknown duration yields 0
// rather than NaN.
func (c *Coordinator) TimeAdvanced(positionSeconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if math.IsNaN(positionSeconds) || math.IsInf(positionSeconds, 0) || positionSeconds < 0 {
		positionSeconds = 0
	}
	c.position = positionSeconds

	if c.bindings.PositionText != nil {
		c.bindings.PositionText(FormatTime(positionSeconds))
	}
	if c.bindings.ProgressFraction != nil {
		c.bindings.ProgressFraction(c.progressLocked())
	}
}

// Ended advances to the next track; after the last track playback
// wraps to the first and keeps going.
func (c *Coordinator) Ended() {
	c.mu.Lock()
	defer c.mu.Unlock()

	metrics.TracksEndedTotal.Inc()
	zlog.Debug().Msgf("player: track ended: session=%s index=%d", c.id, c.current)
	c.selectTrackLocked(c.current+1, true)
}

// CurrentIndex returns the current track index.
func (c *Coordinator) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// GetState returns the current playback state.
func (c *Coordinator) GetState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// GetSnapshot returns a point-in-time status view.
func (c *Coordinator) GetSnapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		State:           c.state.String(),
		Index:           c.current,
		TrackCount:      c.list.Len(),
		DurationSeconds: c.duration,
		PositionSeconds: c.position,
		Progress:        c.progressLocked(),
		Volume:          c.volume,
	}
	if !c.list.IsEmpty() {
		t := c.list.Get(c.current)
		s.Track = &t
		s.Title = t.DisplayTitle()
	}
	return s
}

// Close releases the coordinator's context.
func (c *Coordinator) Close() {
	c.cancel()
}

// selectTrackLocked implements track selection. Must be called with
// the lock held.
func (c *Coordinator) selectTrackLocked(i int, autoplay bool) {
	if c.list.IsEmpty() {
		zlog.Debug().Msg("player: command ignored, no playlist attached yet")
		return
	}

	c.current = c.list.Normalize(i)
	t := c.list.Get(c.current)

	// Duration becomes authoritative again once the new source's
	// metadata arrives.
	c.duration = 0
	c.position = 0

	c.element.Load(t)
	c.state = StatePaused

	if c.bindings.TitleChanged != nil {
		c.bindings.TitleChanged(t.DisplayTitle())
	}
	c.emitDurationLocked()
	if c.bindings.PositionText != nil {
		c.bindings.PositionText(FormatTime(0))
	}
	if c.bindings.ProgressFraction != nil {
		c.bindings.ProgressFraction(0)
	}

	zlog.Info().Msgf("player: track selected: index=%d title=%s autoplay=%t", c.current, t.DisplayTitle(), autoplay)

	if autoplay {
		c.requestPlayLocked()
	}
}

// requestPlayLocked asks the element to start playback. A rejection
// leaves the state paused; playback resumes on the next explicit
// user-initiated command.
func (c *Coordinator) requestPlayLocked() {
	if err := c.element.Play(c.ctx); err != nil {
		metrics.AutoplayRejectionsTotal.Inc()
		zlog.Warn().Msgf("player: playback start rejected: index=%d error=%v", c.current, err)
		c.state = StatePaused
		return
	}
	c.state = StatePlaying
}

func (c *Coordinator) emitDurationLocked() {
	if c.bindings.DurationText != nil {
		c.bindings.DurationText(FormatTime(c.duration))
	}
}

// progressLocked computes position/max(duration, 1) clamped to [0, 1].
func (c *Coordinator) progressLocked() float64 {
	return clamp01(c.position / math.Max(c.duration, 1))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
