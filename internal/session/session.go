package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/asynkron/codexterm/internal/execclient"
	"github.com/asynkron/codexterm/internal/logx"
	"github.com/asynkron/codexterm/internal/terminal"
)

// Kind names the view a session belongs to.
type Kind string

const (
	KindPlayground Kind = "playground"
	KindLesson     Kind = "lesson"
)

// Session is one editor + output log + run state tuple, scoped to a single
// playground or lesson view. Nothing in it is shared with other sessions or
// persisted after teardown.
type Session struct {
	ID         string
	Kind       Kind
	Created    time.Time
	Buffer     *Buffer
	Controller *Controller
}

// New creates a fresh session with the buffer seeded from starterCode.
func New(kind Kind, starterCode string) (*Session, error) {
	id, err := generateID()
	if err != nil {
		return nil, err
	}

	buf := &Buffer{}
	buf.SetCode(starterCode)

	return &Session{
		ID:         id,
		Kind:       kind,
		Created:    time.Now(),
		Buffer:     buf,
		Controller: NewController(),
	}, nil
}

// Submit hands the current buffer contents to the controller. ok is false when
// a run is already in flight.
func (s *Session) Submit() (execclient.Request, bool) {
	return s.Controller.Submit(s.Buffer.Code())
}

// Run performs a whole run synchronously: submit, execute, resolve. It
// returns the resulting output log, or ok=false if a run was already in
// flight.
func (s *Session) Run(ctx context.Context, executor execclient.Executor) ([]terminal.Entry, bool) {
	log := logx.WithSession(logx.Ctx(ctx), s.ID)

	req, ok := s.Submit()
	if !ok {
		log.Debug("run refused", "reason", "already running")
		return nil, false
	}
	log = logx.WithRun(log, req.ID())
	log.Info("run started", "kind", string(s.Kind), "bytes", len(req.Code()))

	result := executor.Execute(ctx, req)
	s.Controller.Resolve(req.ID(), result)

	entries := s.Controller.Entries()
	log.Info("run finished", "result", ResultName(result), "lines", len(entries)-1)
	return entries, true
}

func generateID() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	timestamp := time.Now().UTC().Format("20060102150405")
	return fmt.Sprintf("%s%s", timestamp, hex.EncodeToString(buf[:])), nil
}
