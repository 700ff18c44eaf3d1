package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/highscore"
	"github.com/plus3/blockfall/internal/log"
)

func main() {
	configPath := flag.String("config", "", "TOML settings file; overrides -preset.")
	preset := flag.String("preset", config.DefaultPreset, "Board preset to play on.")
	seed := flag.Uint64("seed", 0, "Fix the piece sequence (0 picks one from the clock).")
	scorePath := flag.String("highscore", "", "Best-score file (default under the user config dir).")
	logPath := flag.String("log", "", "Write logs to this file.")
	logLevel := flag.String("log-level", "info", "debug, info, warn, error or none.")
	mute := flag.Bool("mute", false, "Disable sound.")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.New(logOut, log.LevelFromString(*logLevel))

	settings, err := config.Resolve(*configPath, *preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		settings.Seed, settings.HasSeed = *seed, true
	}
	if !settings.HasSeed {
		settings.Seed = uint64(time.Now().UnixNano())
	}

	store, err := highscore.Open(*scorePath)
	if err != nil {
		logger.Warnf("high score disabled: %v", err)
	}

	ui, err := newTerminalUI(logger, !*mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before printing a crash.
	defer func() {
		if r := recover(); r != nil {
			ui.close()
			fmt.Fprintf(os.Stderr, "blockfall crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	opts := []engine.Option{
		engine.WithRandom(engine.NewRandomSource(settings.Seed)),
		engine.WithLogger(logger),
		engine.WithLockHandler(ui.onLock),
		engine.WithPhaseHandler(ui.onPhase),
	}
	if store != nil {
		opts = append(opts, engine.WithHighScores(store))
	}

	game, err := engine.New(settings.Engine, opts...)
	if err != nil {
		ui.close()
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}
	logger.Infof("seed %d, preset %s", settings.Seed, *preset)

	ui.run(game)
	game.Stop()
	ui.close()
}
