package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/internal/log"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	maxGames := flag.Int("games", 0, "Stop after this many games (0 means run for -duration).")
	preset := flag.String("preset", config.DefaultPreset, "Board preset to play on.")
	seed := flag.Uint64("seed", 1, "Seed for pieces and the input script.")
	moves := flag.Int("moves", 3, "Maximum random commands between ticks.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	logLevel := flag.String("log-level", "warn", "debug, info, warn, error or none.")
	flag.Parse()

	logger := log.New(os.Stderr, log.LevelFromString(*logLevel))
	logger.Infof("starting engine soak...")

	cfg, err := config.Preset(*preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load preset: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	report := &Report{
		Duration:       *duration,
		Preset:         *preset,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	if err := run(ctx, cfg, *seed, *moves, *maxGames, logger, report); err != nil {
		fmt.Fprintf(os.Stderr, "Soak failed: %v\n", err)
		os.Exit(1)
	}
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n\n--- Engine Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")
}

var commands = [...]engine.Command{engine.MoveLeft, engine.MoveRight, engine.SoftDrop, engine.Rotate}

// run plays games back to back on a virtual clock, feeding random commands
// between ticks, until ctx expires or maxGames games have ended.
func run(ctx context.Context, cfg engine.Config, seed uint64, moves, maxGames int, logger *log.Logger, report *Report) error {
	sched := engine.NewManualScheduler()
	script := rand.New(rand.NewPCG(seed, seed+1))

	var scores []int
	game, err := engine.New(cfg,
		engine.WithScheduler(sched),
		engine.WithRandom(engine.NewRandomSource(seed)),
		engine.WithLogger(logger),
		engine.WithLockHandler(func(ev engine.LockEvent) {
			report.Locks++
			if ev.Cleared > 0 {
				report.Clears[min(ev.Cleared, 4)-1]++
			}
		}),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	game.StartOrRestart()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		for n := script.IntN(moves + 1); n > 0; n-- {
			game.HandleCommand(commands[script.IntN(len(commands))])
		}

		tickStart := time.Now()
		fired := sched.FireNext()
		report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))

		s := game.Snapshot()
		if s.Phase != engine.GameOver {
			if !fired {
				return fmt.Errorf("engine stalled in phase %s", s.Phase)
			}
			continue
		}
		scores = append(scores, s.Score)
		report.TotalLines += s.Lines
		logger.Debugf("game %d over: score %d, lines %d", len(scores), s.Score, s.Lines)
		if maxGames > 0 && len(scores) >= maxGames {
			break
		}
		game.StartOrRestart()
	}

	report.TotalTime = time.Since(start)
	report.VirtualTime = sched.Now()
	report.Games = len(scores)
	report.Score = summarize(scores)
	report.Pipeline = game.Stats()
	report.Spawns = game.SpawnCounts()
	report.TickTime.Finalize()
	return nil
}
