// Package main provides the player entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/nufluxx/spinbox/internal/api/httpapi"
	"github.com/nufluxx/spinbox/internal/app/discovery"
	"github.com/nufluxx/spinbox/internal/app/player"
	"github.com/nufluxx/spinbox/internal/infra/config"
	"github.com/nufluxx/spinbox/internal/infra/logger"
	"github.com/nufluxx/spinbox/internal/infra/media"
)

var (
	app        = kingpin.New("spinbox", "spinbox playlist player")
	configPath = app.Flag("config", "Path to config file").Default("config/player.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()
	baseURL    = app.Flag("base-url", "Base URL the media is served from (overrides config)").String()
	local      = app.Flag("local", "Treat the context as local-filesystem (skips discovery requests)").Bool()

	// list-sources command
	listSourcesCmd = app.Command("list-sources", "List supported discovery source types and exit")
)

func init() {
	// start command (default) - no need to store the command
	app.Command("start", "Start the player (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if command == listSourcesCmd.FullCommand() {
		printSources()
		return
	}

	// Initialize logger
	loggerConfig := logger.Config{
		Output: "stdout",
		Level:  "info",
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Load config
	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Player error: %v", err)
		os.Exit(1)
	}
}

// run executes the main player logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx := context.Background()

	// Build the discovery chain
	chain, err := discovery.NewChainFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to create discovery chain: %w", err)
	}

	base := cfg.Discovery.BaseURL
	if *baseURL != "" {
		base = *baseURL
	}
	env := discovery.EnvironmentFromBaseURL(base)
	if *local {
		env.Networked = false
	}

	// Resolve the playlist once at startup; resolution completes before
	// the first coordinator command.
	pl := chain.Resolve(ctx, env)
	for i, t := range pl.Tracks {
		zlog.Info().Msgf("playlist: %2d. %s (%s)", i+1, t.DisplayTitle(), t.URL)
	}

	// Wire the element, coordinator and control surface
	element := media.NewSim(media.Config{
		DefaultDurationSec: cfg.Player.DefaultDurationSec,
		Tick:               time.Duration(cfg.Player.TickMs) * time.Millisecond,
	})
	defer element.Close()

	hub := httpapi.NewHub()
	coord := player.NewCoordinator(element, combineBindings(hub.Bindings(), consoleBindings()))
	defer coord.Close()
	element.SetHandler(coord)

	coord.AttachPlaylist(pl)
	coord.SetVolume(cfg.Player.Volume)

	api := httpapi.New(coord, hub)
	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: h2c.NewHandler(api.Router(), &http2.Server{}),
	}

	serverErrCh := make(chan error, 1)
	go func() {
		zlog.Info().Msgf("Starting control server: addr=%s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coord.Pause()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	zlog.Info().Msg("Player stopped")
	return nil
}

// consoleBindings logs view updates; the per-tick position updates go
// to debug to keep the console readable.
func consoleBindings() player.Bindings {
	return player.Bindings{
		TitleChanged: func(text string) {
			zlog.Info().Msgf("now playing: %s", text)
		},
		DurationText: func(text string) {
			zlog.Info().Msgf("duration: %s", text)
		},
		PositionText: func(text string) {
			zlog.Debug().Msgf("position: %s", text)
		},
		ProgressFraction: func(fraction float64) {
			zlog.Debug().Msgf("progress: %.3f", fraction)
		},
	}
}

// combineBindings fans each view update out to both binding sets.
func combineBindings(a, b player.Bindings) player.Bindings {
	return player.Bindings{
		TitleChanged: func(text string) {
			a.TitleChanged(text)
			b.TitleChanged(text)
		},
		DurationText: func(text string) {
			a.DurationText(text)
			b.DurationText(text)
		},
		PositionText: func(text string) {
			a.PositionText(text)
			b.PositionText(text)
		},
		ProgressFraction: func(fraction float64) {
			a.ProgressFraction(fraction)
			b.ProgressFraction(fraction)
		},
	}
}

// printSources prints supported discovery source types.
func printSources() {
	fmt.Println("Supported discovery sources:")
	fmt.Println("  manifest - fetch a JSON playlist manifest from a well-known path")
	fmt.Println("  probe    - existence-check conventional filenames (track1.mp3 ...)")
	fmt.Println("  demo     - fixed single-track fallback, always succeeds")
}
