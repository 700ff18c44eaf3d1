package engine

// commands buffers notifications produced while the engine mutex is held.
// Flush delivers them after the mutex is released so handlers may call back
// into the engine.
type commands struct {
	locks  []LockEvent
	phases []Phase
	saves  []int
}

func newCommands() *commands {
	return &commands{}
}

// Lock queues a lock event for every lock handler.
func (c *commands) Lock(ev LockEvent) {
	c.locks = append(c.locks, ev)
}

// Phase queues a phase change for every phase handler.
func (c *commands) Phase(p Phase) {
	c.phases = append(c.phases, p)
}

// Save queues a high score write.
func (c *commands) Save(score int) {
	c.saves = append(c.saves, score)
}

// Flush runs queued work in order: high score writes, lock events, then
// phase changes, and resets the buffer.
func (c *commands) Flush(e *Engine) {
	for _, score := range c.saves {
		if e.store == nil {
			break
		}
		if err := e.store.Save(score); err != nil {
			e.logger.Warnf("saving high score %d: %v", score, err)
		}
	}

	for _, ev := range c.locks {
		for _, fn := range e.onLock {
			fn(ev)
		}
	}

	for _, p := range c.phases {
		for _, fn := range e.onPhase {
			fn(p)
		}
	}

	c.locks = c.locks[:0]
	c.phases = c.phases[:0]
	c.saves = c.saves[:0]
}
