// Package backend serves the execution endpoint that the client talks to:
// POST /execute with {"code"} answered by {"output"} or {"error"}.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/asynkron/codexterm/internal/execclient"
	"github.com/asynkron/codexterm/internal/logx"
	"pkt.systems/pslog"
)

const (
	maxRequestBytes = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server answers execution requests with an Executor, normally an
// execclient.LocalExecutor.
type Server struct {
	executor execclient.Executor
}

// NewServer constructs a Server.
func NewServer(executor execclient.Executor) *Server {
	return &Server{executor: executor}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/execute", s.handleExecute)
	return withRequestLogging(mux)
}

type executeRequest struct {
	Code string `json:"code"`
}

type executeResponse struct {
	Output *string `json:"output,omitempty"`
	Error  *string `json:"error,omitempty"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body executeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	req := execclient.NewRequest(body.Code)
	result := s.executor.Execute(r.Context(), req)
	log := logx.WithRun(pslog.Ctx(r.Context()), req.ID())

	switch res := result.(type) {
	case execclient.Success:
		output := res.Output
		writeJSON(w, http.StatusOK, executeResponse{Output: &output})
	case execclient.BackendError:
		message := res.Message
		writeJSON(w, http.StatusOK, executeResponse{Error: &message})
	case execclient.TransportError:
		log.Warn("execute failed", "err", res.Err)
		writeError(w, http.StatusInternalServerError, res.Message)
	default:
		writeError(w, http.StatusInternalServerError, "unrecognised execution result")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, executeResponse{Error: &message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// ListenAndServe starts an HTTP server and shuts it down on context cancellation.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	logger := pslog.Ctx(ctx)
	server := &http.Server{
		Addr:     addr,
		Handler:  handler,
		ErrorLog: pslog.LogLoggerWithLevel(logger, pslog.ErrorLevel),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
