// Package agent runs the read-decide-write loop that drives the kernel
// from a turn feed.
package agent

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/brewer/internal/feed"
	"github.com/cory-johannsen/brewer/internal/game/ai"
	"github.com/cory-johannsen/brewer/internal/game/recipe"
)

// TurnReader yields decoded turns; io.EOF ends the session.
type TurnReader interface {
	ReadTurn() (*recipe.Turn, error)
}

// ActionWriter emits one action line.
type ActionWriter interface {
	WriteAction(action fmt.Stringer) error
}

// Agent answers every turn read from its feed with exactly one action.
//
// Agent implements server.Service. Start blocks until the feed is exhausted,
// Stop is called, or a fatal error occurs.
type Agent struct {
	reader  TurnReader
	writer  ActionWriter
	kernel  *ai.Kernel
	logger  *zap.Logger
	turns   atomic.Int64
	stopped atomic.Bool
}

// New constructs an Agent.
//
// Precondition: all arguments must be non-nil.
func New(reader TurnReader, writer ActionWriter, kernel *ai.Kernel, logger *zap.Logger) *Agent {
	if reader == nil || writer == nil || kernel == nil || logger == nil {
		panic("agent.New: reader, writer, kernel and logger must not be nil")
	}
	return &Agent{
		reader: reader,
		writer: writer,
		kernel: kernel,
		logger: logger,
	}
}

// Turns returns the number of turns answered so far.
func (a *Agent) Turns() int64 { return a.turns.Load() }

// Start runs the loop.
//
// Postcondition: returns nil when the feed ends cleanly between turns or
// after Stop; otherwise returns the wrapped read or write error.
func (a *Agent) Start() error {
	for !a.stopped.Load() {
		turn, err := a.reader.ReadTurn()
		if errors.Is(err, io.EOF) {
			a.logger.Info("feed closed",
				zap.Int64("turns", a.turns.Load()),
			)
			return nil
		}
		if err != nil {
			return fmt.Errorf("agent: reading turn %d: %w", a.turns.Load()+1, err)
		}
		if err := a.Step(turn); err != nil {
			return err
		}
	}
	return nil
}

// Step decides and writes the action for a single turn.
func (a *Agent) Step(turn *recipe.Turn) error {
	n := a.turns.Add(1)
	start := time.Now()
	decision := a.kernel.Decide(turn)

	fields := []zap.Field{
		zap.Int64("turn", n),
		zap.Stringer("action", decision.Action),
		zap.Stringer("inventory", turn.Me.Inventory),
		zap.Int("potions", len(turn.Catalog.Potions)),
		zap.Int("spells", len(turn.Catalog.Spells)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if decision.Target != nil {
		fields = append(fields, zap.Int("target", decision.Target.ID))
	}
	a.logger.Debug("turn decided", fields...)

	if err := a.writer.WriteAction(decision.Action); err != nil {
		return fmt.Errorf("agent: turn %d: %w", n, err)
	}
	return nil
}

// Stop ends the loop after the turn in progress.
func (a *Agent) Stop() {
	a.stopped.Store(true)
}

var (
	_ TurnReader   = (*feed.Reader)(nil)
	_ ActionWriter = (*feed.Writer)(nil)
)
