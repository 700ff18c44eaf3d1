// Package engine runs a single falling-block game session: spawning, timed
// descent, locking, line clears, scoring and the Idle/Playing/GameOver phases.
//
// All state lives behind one mutex. Player commands and timer ticks both take
// it, so a move can never interleave with a descent. Notifications to lock and
// phase handlers are buffered and delivered after the mutex is released.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/internal/log"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/shape"
)

// HighScoreStore persists the best score across sessions.
type HighScoreStore interface {
	Load() (int, error)
	Save(score int) error
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithRandom sets the piece randomizer. Defaults to a time-seeded uniform source.
func WithRandom(src RandomSource) Option {
	return func(e *Engine) { e.random = src }
}

// WithScheduler sets the timer used for automatic descent. Defaults to RealScheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithHighScores sets the persisted best-score store.
func WithHighScores(store HighScoreStore) Option {
	return func(e *Engine) { e.store = store }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithLockHandler registers fn to run after every lock.
func WithLockHandler(fn func(LockEvent)) Option {
	return func(e *Engine) { e.onLock = append(e.onLock, fn) }
}

// WithPhaseHandler registers fn to run after every phase transition.
func WithPhaseHandler(fn func(Phase)) Option {
	return func(e *Engine) { e.onPhase = append(e.onPhase, fn) }
}

// Engine owns one game session.
type Engine struct {
	mu sync.Mutex

	cfg      Config
	scoring  *scoring
	pipeline *pipeline
	random   RandomSource
	sched    Scheduler
	store    HighScoreStore
	logger   *log.Logger
	onLock   []func(LockEvent)
	onPhase  []func(Phase)

	board        board.Board
	active       *piece.Piece
	next         shape.Kind
	score        int
	lines        int
	highScore    int
	fallInterval time.Duration
	phase        Phase

	timer       Timer
	generation  uint64
	spawnCounts *intmap.Map[shape.Kind, int]
}

// New validates cfg and returns an Idle engine. The high score is read from
// the store once here; a failing store reads as zero.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := board.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	e := &Engine{
		cfg:     cfg,
		scoring: newScoring(cfg),
		pipeline: newPipeline(
			spawnStage{},
			gravityStage{},
			lockStage{},
			lineClearStage{},
			scoringStage{},
		),
		board:        b,
		fallInterval: cfg.InitialFallInterval,
		phase:        Idle,
		spawnCounts:  intmap.New[shape.Kind, int](shape.Count),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Discard()
	}
	if e.random == nil {
		e.random = NewRandomSource(uint64(time.Now().UnixNano()))
	}
	if e.sched == nil {
		e.sched = RealScheduler{}
	}

	if e.store != nil {
		best, err := e.store.Load()
		if err != nil {
			e.logger.Warnf("loading high score: %v", err)
			best = 0
		}
		e.highScore = max(best, 0)
	}
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// StartOrRestart begins a fresh game from Idle or GameOver, or restarts one
// in progress. Any pending descent tick is cancelled first.
func (e *Engine) StartOrRestart() {
	cmds := newCommands()

	e.mu.Lock()
	e.cancelTimer()

	e.board, _ = board.New(e.cfg.Width, e.cfg.Height)
	e.active = nil
	e.score = 0
	e.lines = 0
	e.fallInterval = e.cfg.InitialFallInterval
	e.next = e.random.NextKind()
	e.setPhase(Playing, cmds)
	e.logger.Infof("game started on %dx%d board", e.cfg.Width, e.cfg.Height)

	e.spawn(cmds)
	if e.phase == Playing {
		e.schedule()
	}
	e.mu.Unlock()

	cmds.Flush(e)
}

// Stop cancels the descent timer and returns the engine to Idle. The board
// stays as it was for display.
func (e *Engine) Stop() {
	cmds := newCommands()

	e.mu.Lock()
	e.cancelTimer()
	e.active = nil
	e.setPhase(Idle, cmds)
	e.mu.Unlock()

	cmds.Flush(e)
}

// HandleCommand applies one player input. It is a no-op outside Playing and
// while no piece is falling. Illegal moves are dropped silently.
func (e *Engine) HandleCommand(cmd Command) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Playing || e.active == nil {
		e.logger.Debugf("ignoring %s in phase %s", cmd, e.phase)
		return
	}

	var (
		next piece.Piece
		ok   bool
	)
	switch cmd {
	case MoveLeft:
		next, ok = piece.TryMove(*e.active, e.board, -1)
	case MoveRight:
		next, ok = piece.TryMove(*e.active, e.board, 1)
	case SoftDrop:
		next, ok = piece.TrySoftDrop(*e.active, e.board)
	case Rotate:
		next, ok = piece.TryRotate(*e.active, e.board)
	default:
		e.logger.Debugf("unknown command %s", cmd)
		return
	}

	if !ok {
		e.logger.Debugf("%s rejected for %s", cmd, e.active)
		return
	}
	e.active = &next
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		Board:        e.board,
		Next:         e.next,
		Score:        e.score,
		Lines:        e.lines,
		Level:        e.lines/e.cfg.LinesPerLevel + 1,
		HighScore:    max(e.highScore, e.score),
		FallInterval: e.fallInterval,
		Phase:        e.phase,
	}
	if e.active != nil {
		active := *e.active
		s.Active = &active
	}
	return s
}

// Stats reports timing for each stage of the descent tick.
func (e *Engine) Stats() PipelineStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pipeline.snapshot()
}

// SpawnCounts returns how many pieces of each kind have spawned since the
// engine was built.
func (e *Engine) SpawnCounts() map[shape.Kind]int {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[shape.Kind]int, shape.Count)
	for _, k := range shape.Kinds {
		if n, ok := e.spawnCounts.Get(k); ok {
			out[k] = n
		}
	}
	return out
}

// tick is the descent timer callback. gen guards against ticks scheduled
// before the most recent restart or stop.
func (e *Engine) tick(gen uint64) {
	cmds := newCommands()

	e.mu.Lock()
	if gen != e.generation || e.phase != Playing {
		e.mu.Unlock()
		return
	}
	e.timer = nil

	e.pipeline.run(&tickFrame{engine: e, commands: cmds})
	if e.phase == Playing {
		e.schedule()
	}
	e.mu.Unlock()

	cmds.Flush(e)
}

// schedule arms the descent timer. Callers hold e.mu.
func (e *Engine) schedule() {
	gen := e.generation
	e.timer = e.sched.AfterFunc(e.fallInterval, func() { e.tick(gen) })
}

// cancelTimer stops any pending tick and invalidates ticks already in
// flight. Callers hold e.mu.
func (e *Engine) cancelTimer() {
	e.generation++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// spawn brings the queued kind into play, or ends the game when it does not
// fit at row 0. Callers hold e.mu.
func (e *Engine) spawn(cmds *commands) {
	kind := e.next
	col := e.cfg.SpawnCol()

	if !e.board.IsValidPlacement(kind, 0, board.Point{Row: 0, Col: col}) {
		e.logger.Infof("%s cannot spawn at column %d, game over with score %d", kind, col, e.score)
		e.active = nil
		e.cancelTimer()
		e.setPhase(GameOver, cmds)
		return
	}

	p := piece.Spawn(kind, col)
	e.active = &p
	e.next = e.random.NextKind()

	n, _ := e.spawnCounts.Get(kind)
	e.spawnCounts.Put(kind, n+1)
	e.logger.Debugf("spawned %s, next %s", p, e.next)
}

// recordHighScore raises the best score and queues a write when the current
// score beats it. Callers hold e.mu.
func (e *Engine) recordHighScore(cmds *commands) {
	if e.score <= e.highScore {
		return
	}
	e.highScore = e.score
	if e.store != nil {
		cmds.Save(e.score)
	}
}

// setPhase records a transition and queues it for phase handlers.
// Callers hold e.mu.
func (e *Engine) setPhase(p Phase, cmds *commands) {
	if e.phase == p {
		return
	}
	e.logger.Infof("phase %s -> %s", e.phase, p)
	e.phase = p
	cmds.Phase(p)
}
