package player

import (
	"fmt"
	"math"

	zlog "github.com/rs/zerolog/log"
)

// Bindings enumerates the optional view-layer callbacks the coordinator
// produces. Each callback may be nil; a missing binding degrades that
// one display feature and is reported once at startup.
type Bindings struct {
	TitleChanged     func(text string)
	DurationText     func(text string)
	PositionText     func(text string)
	ProgressFraction func(fraction float64)
}

// logMissing reports absent bindings at startup.
func (b Bindings) logMissing() {
	if b.TitleChanged == nil {
		zlog.Warn().Msg("player: title binding missing; track titles will not be displayed")
	}
	if b.DurationText == nil {
		zlog.Warn().Msg("player: duration binding missing; durations will not be displayed")
	}
	if b.PositionText == nil {
		zlog.Warn().Msg("player: position binding missing; positions will not be displayed")
	}
	if b.ProgressFraction == nil {
		zlog.Warn().Msg("player: progress binding missing; the progress bar will not move")
	}
}

// FormatTime renders a duration in seconds as "m:ss" with unpadded
// minutes and zero-padded seconds, truncating both components.
// Non-finite or negative values render as "0:00".
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
