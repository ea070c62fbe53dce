// Package runner executes accepted requests off the UI goroutine and reports
// back through the event channel.
package runner

import (
	"context"
	"sync"

	"github.com/asynkron/codexterm/internal/events"
	"github.com/asynkron/codexterm/internal/execclient"
	"github.com/asynkron/codexterm/internal/logx"
	"github.com/asynkron/codexterm/internal/session"
)

// Runner hands requests to an Executor and emits RunStarted/RunSettled.
type Runner struct {
	executor execclient.Executor
	events   chan<- events.Event

	wg sync.WaitGroup
}

// New constructs a Runner.
func New(executor execclient.Executor, events chan<- events.Event) *Runner {
	return &Runner{
		executor: executor,
		events:   events,
	}
}

// Start executes req in the background. The settled event is delivered
// unless ctx is canceled first, so a run never silently loses its result.
func (r *Runner) Start(ctx context.Context, sessionID string, req execclient.Request) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		log := logx.WithRun(logx.WithSession(logx.Ctx(ctx), sessionID), req.ID())
		log.Info("run started", "bytes", len(req.Code()))
		r.emit(events.RunStarted{SessionID: sessionID, RunID: req.ID()})

		result := r.executor.Execute(ctx, req)
		log.Info("run settled", "result", session.ResultName(result))

		settled := events.RunSettled{SessionID: sessionID, RunID: req.ID(), Result: result}
		select {
		case r.events <- settled:
		case <-ctx.Done():
			log.Warn("run result dropped", "err", ctx.Err())
		}
	}()
}

// Status posts a status line if there is room in the channel.
func (r *Runner) Status(message string) {
	r.emit(events.StatusMessage{Message: message})
}

// Wait blocks until every started run has delivered or dropped its result.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) emit(ev events.Event) {
	if r.events == nil {
		return
	}
	select {
	case r.events <- ev:
	default:
		// Drop if channel is full; only RunSettled must get through.
	}
}
