package player

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nufluxx/spinbox/internal/domain/playlist"
	"github.com/nufluxx/spinbox/internal/domain/track"
)

// fakeElement records every call the coordinator makes.
type fakeElement struct {
	loaded     []track.Track
	playCalls  int
	pauseCalls int
	seeks      []float64
	volumes    []float64
	playErr    error
}

func (f *fakeElement) Load(t track.Track) { f.loaded = append(f.loaded, t) }

func (f *fakeElement) Play(ctx context.Context) error {
	f.playCalls++
	return f.playErr
}

func (f *fakeElement) Pause()              { f.pauseCalls++ }
func (f *fakeElement) Seek(s float64)      { f.seeks = append(f.seeks, s) }
func (f *fakeElement) SetVolume(v float64) { f.volumes = append(f.volumes, v) }

// recorder captures view updates.
type recorder struct {
	titles    []string
	durations []string
	positions []string
	fractions []float64
}

func (r *recorder) bindings() Bindings {
	return Bindings{
		TitleChanged:     func(s string) { r.titles = append(r.titles, s) },
		DurationText:     func(s string) { r.durations = append(r.durations, s) },
		PositionText:     func(s string) { r.positions = append(r.positions, s) },
		ProgressFraction: func(f float64) { r.fractions = append(r.fractions, f) },
	}
}

func newTestCoordinator(n int) (*Coordinator, *fakeElement, *recorder) {
	el := &fakeElement{}
	rec := &recorder{}
	c := NewCoordinator(el, rec.bindings())

	tracks := make([]track.Track, n)
	for i := range tracks {
		tracks[i] = track.Track{
			Title: "Track " + string(rune('A'+i)),
			URL:   "assets/music/" + string(rune('a'+i)) + ".mp3",
		}
	}
	if n > 0 {
		c.AttachPlaylist(playlist.New(tracks))
	}
	return c, el, rec
}

func TestCoordinator_SelectTrack_Wraps(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		expected int
	}{
		{name: "zero", index: 0, expected: 0},
		{name: "minus one wraps to last", index: -1, expected: 2},
		{name: "length wraps to zero", index: 3, expected: 0},
		{name: "length plus one", index: 4, expected: 1},
		{name: "large positive", index: 3000002, expected: 2},
		{name: "large negative", index: -3000001, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, el, _ := newTestCoordinator(3)

			c.SelectTrack(tt.index, false)

			assert.Equal(t, tt.expected, c.CurrentIndex())
			last := el.loaded[len(el.loaded)-1]
			assert.Equal(t, "assets/music/"+string(rune('a'+tt.expected))+".mp3", last.URL)
		})
	}
}

func TestCoordinator_AttachPlaylist_LoadsFirstWithoutAutoplay(t *testing.T) {
	c, el, rec := newTestCoordinator(3)

	assert.Equal(t, 0, c.CurrentIndex())
	assert.Equal(t, StatePaused, c.GetState())
	assert.Equal(t, 0, el.playCalls)
	require.NotEmpty(t, rec.titles)
	assert.Equal(t, "Track A", rec.titles[len(rec.titles)-1])
}

func TestCoordinator_Ended_WrapsToFirst(t *testing.T) {
	c, el, _ := newTestCoordinator(3)

	c.SelectTrack(2, false)
	require.Equal(t, 2, c.CurrentIndex())

	c.Ended()

	assert.Equal(t, 0, c.CurrentIndex(), "last track ending wraps to the first")
	assert.Equal(t, StatePlaying, c.GetState(), "wraparound keeps playing")
	assert.Equal(t, 1, el.playCalls)
}

func TestCoordinator_NextPrevious(t *testing.T) {
	c, el, _ := newTestCoordinator(3)

	c.Next()
	assert.Equal(t, 1, c.CurrentIndex())
	c.Previous()
	assert.Equal(t, 0, c.CurrentIndex())
	c.Previous()
	assert.Equal(t, 2, c.CurrentIndex(), "previous from the first wraps to the last")
	assert.Equal(t, 3, el.playCalls, "next/previous always request playback")
}

func TestCoordinator_AutoplayRejectionStaysPaused(t *testing.T) {
	c, el, _ := newTestCoordinator(2)
	el.playErr = errors.New("play() blocked pending user gesture")

	c.Next()

	assert.Equal(t, 1, c.CurrentIndex(), "index still advances on rejection")
	assert.Equal(t, StatePaused, c.GetState())

	// The next explicit command succeeds once the policy allows it.
	el.playErr = nil
	c.Play()
	assert.Equal(t, StatePlaying, c.GetState())
}

func TestCoordinator_PlayPause(t *testing.T) {
	c, el, _ := newTestCoordinator(1)

	c.Play()
	assert.Equal(t, StatePlaying, c.GetState())
	c.Pause()
	assert.Equal(t, StatePaused, c.GetState())
	assert.Equal(t, 1, el.pauseCalls)
}

func TestCoordinator_EmptyPlaylistCommandsAreNoOps(t *testing.T) {
	el := &fakeElement{}
	c := NewCoordinator(el, Bindings{})

	c.SelectTrack(5, true)
	c.Next()
	c.Previous()
	c.Play()
	c.Pause()
	c.SetVolume(0.5)
	c.SeekTo(0.5)
	c.Ended()

	assert.Empty(t, el.loaded)
	assert.Equal(t, 0, el.playCalls)
	assert.Equal(t, StateIdle, c.GetState())
}

func TestCoordinator_MetadataAndTimeDisplay(t *testing.T) {
	c, _, rec := newTestCoordinator(1)

	c.MetadataReady(125.9)
	require.NotEmpty(t, rec.durations)
	assert.Equal(t, "2:05", rec.durations[len(rec.durations)-1])

	c.TimeAdvanced(60)
	require.NotEmpty(t, rec.positions)
	assert.Equal(t, "1:00", rec.positions[len(rec.positions)-1])
	assert.InDelta(t, 60/125.9, rec.fractions[len(rec.fractions)-1], 0.001)
}

func TestCoordinator_ProgressWithUnknownDuration(t *testing.T) {
	c, _, rec := newTestCoordinator(1)

	// No metadata yet: duration unknown, fraction must be finite.
	c.TimeAdvanced(0)
	require.NotEmpty(t, rec.fractions)
	assert.Equal(t, 0.0, rec.fractions[len(rec.fractions)-1])

	c.TimeAdvanced(30)
	f := rec.fractions[len(rec.fractions)-1]
	assert.GreaterOrEqual(t, f, 0.0)
	assert.LessOrEqual(t, f, 1.0)
}

func TestCoordinator_SeekTo(t *testing.T) {
	c, el, _ := newTestCoordinator(1)

	// Unknown duration is treated as zero
	c.SeekTo(0.5)
	require.Len(t, el.seeks, 1)
	assert.Equal(t, 0.0, el.seeks[0])

	c.MetadataReady(200)
	c.SeekTo(0.5)
	assert.Equal(t, 100.0, el.seeks[1])

	// Fraction clamps into [0, 1]
	c.SeekTo(2)
	assert.Equal(t, 200.0, el.seeks[2])
	c.SeekTo(-1)
	assert.Equal(t, 0.0, el.seeks[3])
}

func TestCoordinator_SetVolumeClamps(t *testing.T) {
	c, el, _ := newTestCoordinator(1)

	c.SetVolume(0.3)
	c.SetVolume(1.7)
	c.SetVolume(-0.2)

	require.Len(t, el.volumes, 3)
	assert.Equal(t, 0.3, el.volumes[0])
	assert.Equal(t, 1.0, el.volumes[1])
	assert.Equal(t, 0.0, el.volumes[2])
}

func TestCoordinator_NilBindingsDoNotPanic(t *testing.T) {
	el := &fakeElement{}
	c := NewCoordinator(el, Bindings{})
	c.AttachPlaylist(playlist.New([]track.Track{{URL: "a.mp3"}}))

	c.MetadataReady(100)
	c.TimeAdvanced(10)
	c.Ended()

	assert.Equal(t, 0, c.CurrentIndex())
}

func TestCoordinator_Snapshot(t *testing.T) {
	c, _, _ := newTestCoordinator(3)

	c.SelectTrack(1, false)
	c.MetadataReady(180)
	c.TimeAdvanced(90)

	s := c.GetSnapshot()
	assert.Equal(t, "paused", s.State)
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, 3, s.TrackCount)
	require.NotNil(t, s.Track)
	assert.Equal(t, "Track B", s.Title)
	assert.Equal(t, 180.0, s.DurationSeconds)
	assert.Equal(t, 90.0, s.PositionSeconds)
	assert.InDelta(t, 0.5, s.Progress, 0.001)
}
