package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"pkt.systems/pslog"

	"github.com/asynkron/codexterm/internal/auth"
	"github.com/asynkron/codexterm/internal/config"
	"github.com/asynkron/codexterm/internal/events"
	"github.com/asynkron/codexterm/internal/lessons"
	"github.com/asynkron/codexterm/internal/logx"
	"github.com/asynkron/codexterm/internal/runner"
	"github.com/asynkron/codexterm/internal/session"
	"github.com/asynkron/codexterm/internal/ui"
)

// tuiSession describes one interactive view. Navigator is nil for the
// playground. A nil auth is derived from the configured token.
type tuiSession struct {
	kind        session.Kind
	starterCode string
	navigator   *lessons.Navigator
	auth        *auth.State
	status      []string
}

// runTUI owns the terminal for the lifetime of one session. Logs go to the
// configured file because stdout and stderr belong to the UI.
func runTUI(ctx context.Context, cfg config.Config, view tuiSession) error {
	logger, closer, err := logx.NewFileLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = closer.Close() }()
	ctx = pslog.ContextWithLogger(ctx, logger)

	sess, err := session.New(view.kind, view.starterCode)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	log := logx.WithSession(logger, sess.ID)
	log.Info("session started", "kind", string(sess.Kind), "endpoint", cfg.Execute.URL)

	eventCh := make(chan events.Event, 64)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	run := runner.New(newRemoteExecutor(cfg), eventCh)
	for _, msg := range view.status {
		run.Status(msg)
	}

	authState := view.auth
	if authState == nil {
		authState = auth.NewState(cfg.LoggedIn())
	}

	model := ui.New(ui.Options{
		Context:    ctx,
		Session:    sess,
		Dispatcher: run,
		Auth:       authState,
		Navigator:  view.navigator,
		Events:     eventCh,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := program.Run()

	cancel()
	run.Wait()
	close(eventCh)
	log.Info("session ended")

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("ui: %w", runErr)
	}
	return nil
}
