// Package metrics exposes Prometheus metrics for the player.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Playback metrics
var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinbox_player_commands_total",
			Help: "Total number of player commands processed",
		},
		[]string{"command"},
	)

	AutoplayRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spinbox_player_autoplay_rejections_total",
			Help: "Total number of playback-start requests rejected by the element",
		},
	)

	TracksEndedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spinbox_player_tracks_ended_total",
			Help: "Total number of tracks that played to completion",
		},
	)
)

// Discovery metrics
var (
	DiscoveryResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinbox_discovery_resolutions_total",
			Help: "Playlist resolutions by winning source",
		},
		[]string{"source"},
	)

	DiscoverySourceFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinbox_discovery_source_failures_total",
			Help: "Discovery source failures by source",
		},
		[]string{"source"},
	)
)
