// Package playlist provides the Playlist domain entity.
package playlist

import "github.com/nufluxx/spinbox/internal/domain/track"

// Playlist represents an ordered sequence of tracks. It is created once
// by discovery and never mutated afterwards; the playback coordinator
// only moves a cursor over it.
type Playlist struct {
	Tracks []track.Track
}

// New creates a playlist from the given tracks.
func New(tracks []track.Track) *Playlist {
	return &Playlist{Tracks: tracks}
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.Tracks)
}

// IsEmpty returns true if the playlist has no tracks.
func (p *Playlist) IsEmpty() bool {
	return len(p.Tracks) == 0
}

// Normalize maps an arbitrary integer index onto [0, Len) with
// wraparound in both directions: Len wraps to 0, -1 wraps to Len-1.
// Returns 0 for an empty playlist.
func (p *Playlist) Normalize(i int) int {
	n := len(p.Tracks)
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// Get returns the track at the normalized index.
func (p *Playlist) Get(i int) track.Track {
	return p.Tracks[p.Normalize(i)]
}

// TotalDuration returns the sum of the advisory durations in seconds.
// Tracks with unknown duration contribute zero.
func (p *Playlist) TotalDuration() float64 {
	var total float64
	for _, t := range p.Tracks {
		total += t.DurationSeconds
	}
	return total
}
