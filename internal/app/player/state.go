// Package player provides the playback coordinator: it owns the
// current-track cursor over an immutable playlist and keeps view
// bindings in sync with an asynchronous media element.
package player

// State represents the playback state.
type State int

const (
	StateIdle    State = iota // Nothing loaded (no playlist attached yet)
	StatePlaying              // Track is playing
	StatePaused               // Track is loaded but not playing
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}
