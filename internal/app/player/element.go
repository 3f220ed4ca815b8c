package player

import (
	"context"

	"github.com/nufluxx/spinbox/internal/domain/track"
)

// Element is the abstraction over the streaming media primitive. The
// decode/playback engine behind it is a black box; the coordinator
// only loads sources, issues transport commands, and reacts to the
// notifications delivered through Handler.
type Element interface {
	// Load replaces the element's current source. Playback does not
	// start; a MetadataReady notification follows asynchronously.
	Load(t track.Track)

	// Play requests playback start. The request can be rejected by the
	// host (e.g. autoplay policy); rejection is an error here and a
	// logged non-event for the coordinator.
	Play(ctx context.Context) error

	// Pause halts playback without unloading the source.
	Pause()

	// Seek moves the playback position, in seconds.
	Seek(seconds float64)

	// SetVolume sets the output volume in [0, 1].
	SetVolume(v float64)
}

// Handler receives the element's lifecycle notifications. Delivery may
// happen on any goroutine; the coordinator serializes internally.
type Handler interface {
	// MetadataReady reports the authoritative duration once a loaded
	// source's metadata is available.
	MetadataReady(durationSeconds float64)

	// TimeAdvanced reports the current playback position.
	TimeAdvanced(positionSeconds float64)

	// Ended reports that the current source played to completion.
	Ended()
}
