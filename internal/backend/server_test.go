package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asynkron/codexterm/internal/execclient"
)

func fakeExecutor(result execclient.Result) execclient.Executor {
	return execclient.ExecutorFunc(func(ctx context.Context, req execclient.Request) execclient.Result {
		return result
	})
}

func TestExecuteRoundTripsThroughClient(t *testing.T) {
	var seen string
	exec := execclient.ExecutorFunc(func(ctx context.Context, req execclient.Request) execclient.Result {
		seen = req.Code()
		return execclient.Success{Output: "hi\n"}
	})
	srv := httptest.NewServer(NewServer(exec).Handler())
	defer srv.Close()

	res := execclient.New(execclient.Config{Endpoint: srv.URL + "/execute"}).Execute(context.Background(), execclient.NewRequest("print('hi')"))
	if seen != "print('hi')" {
		t.Fatalf("executor saw %q", seen)
	}
	if success, ok := res.(execclient.Success); !ok || success.Output != "hi\n" {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestExecuteBackendErrorIsReturnedWithOK(t *testing.T) {
	srv := httptest.NewServer(NewServer(fakeExecutor(execclient.BackendError{Message: "Traceback"})).Handler())
	defer srv.Close()

	res := execclient.New(execclient.Config{Endpoint: srv.URL + "/execute"}).Execute(context.Background(), execclient.NewRequest("x"))
	if backendErr, ok := res.(execclient.BackendError); !ok || backendErr.Message != "Traceback" {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestExecuteEmptyOutputIsPresent(t *testing.T) {
	h := NewServer(fakeExecutor(execclient.Success{Output: ""})).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/execute", strings.NewReader(`{"code":""}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"output":""}` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestExecuteRejectsInvalidJSON(t *testing.T) {
	h := NewServer(fakeExecutor(execclient.Success{})).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/execute", strings.NewReader(`{`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Fatalf("expected error body, got %q", rec.Body.String())
	}
}

func TestExecuteRejectsGet(t *testing.T) {
	h := NewServer(fakeExecutor(execclient.Success{})).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/execute", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestExecuteTransportFailureIsServerError(t *testing.T) {
	h := NewServer(fakeExecutor(execclient.TransportError{Message: "Failed to start python3"})).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/execute", strings.NewReader(`{"code":"1"}`)))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
