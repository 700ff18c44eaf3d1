package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/highscore"
	"github.com/plus3/blockfall/internal/log"
)

func main() {
	configPath := flag.String("config", "", "TOML settings file; overrides -preset.")
	preset := flag.String("preset", config.DefaultPreset, "Board preset to play on.")
	seed := flag.Uint64("seed", 0, "Fix the piece sequence (0 picks one from the clock).")
	scorePath := flag.String("highscore", "", "Best-score file (default under the user config dir).")
	logLevel := flag.String("log-level", "info", "debug, info, warn, error or none.")
	inspector := flag.Bool("inspector", true, "Show the ImGui engine inspector (toggle with F1).")
	flag.Parse()

	logger := log.New(os.Stderr, log.LevelFromString(*logLevel))

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

	g := newGame(settings.Engine)

	opts := []engine.Option{
		engine.WithRandom(engine.NewRandomSource(settings.Seed)),
		engine.WithLogger(logger),
		engine.WithLockHandler(g.onLock),
		engine.WithPhaseHandler(g.onPhase),
	}
	store, err := highscore.Open(*scorePath)
	if err != nil {
		logger.Warnf("high score disabled: %v", err)
	} else {
		opts = append(opts, engine.WithHighScores(store))
	}

	game, err := engine.New(settings.Engine, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}
	g.engine = game
	logger.Infof("seed %d, preset %s", settings.Seed, *preset)

	g.backend = debugui_ebiten.NewImguiBackend("blockfall", windowWidth, windowHeight)
	g.inspector = debugui.NewInspector(game, 120)
	if !*inspector {
		g.inspector.Toggle()
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		logger.Errorf("run: %v", err)
		os.Exit(1)
	}
	game.Stop()
}
