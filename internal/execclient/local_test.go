package execclient

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalExecutorCapturesStdout(t *testing.T) {
	l := NewLocal(LocalConfig{Command: "sh"})
	res := l.Execute(context.Background(), NewRequest("echo one\necho two\n"))
	success, ok := res.(Success)
	if !ok {
		t.Fatalf("expected Success, got %#v", res)
	}
	if success.Output != "one\ntwo\n" {
		t.Fatalf("unexpected output %q", success.Output)
	}
}

func TestLocalExecutorStderrIsBackendError(t *testing.T) {
	l := NewLocal(LocalConfig{Command: "sh"})
	res := l.Execute(context.Background(), NewRequest("echo oops >&2\n"))
	backendErr, ok := res.(BackendError)
	if !ok {
		t.Fatalf("expected BackendError, got %#v", res)
	}
	if strings.TrimSpace(backendErr.Message) != "oops" {
		t.Fatalf("unexpected message %q", backendErr.Message)
	}
}

func TestLocalExecutorExitCodeWithoutStderr(t *testing.T) {
	l := NewLocal(LocalConfig{Command: "sh"})
	res := l.Execute(context.Background(), NewRequest("exit 3\n"))
	backendErr, ok := res.(BackendError)
	if !ok {
		t.Fatalf("expected BackendError, got %#v", res)
	}
	if !strings.Contains(backendErr.Message, "code 3") {
		t.Fatalf("expected exit code in message, got %q", backendErr.Message)
	}
}

func TestLocalExecutorRunsInWorkdir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("here\n"), 0o600); err != nil {
		t.Fatalf("write marker: %v", err)
	}
	l := NewLocal(LocalConfig{Command: "sh", Workdir: dir})
	res := l.Execute(context.Background(), NewRequest("cat marker.txt\n"))
	success, ok := res.(Success)
	if !ok {
		t.Fatalf("expected Success, got %#v", res)
	}
	if success.Output != "here\n" {
		t.Fatalf("unexpected output %q", success.Output)
	}
}

func TestLocalExecutorMissingInterpreter(t *testing.T) {
	l := NewLocal(LocalConfig{Command: "codexterm-no-such-interpreter"})
	res := l.Execute(context.Background(), NewRequest("print(1)"))
	transportErr, ok := res.(TransportError)
	if !ok {
		t.Fatalf("expected TransportError, got %#v", res)
	}
	if transportErr.Err == nil {
		t.Fatalf("expected cause")
	}
}

func TestLocalExecutorDefaults(t *testing.T) {
	l := NewLocal(LocalConfig{})
	if l.Command() != "python3 -" {
		t.Fatalf("unexpected default command %q", l.Command())
	}
	custom := NewLocal(LocalConfig{Command: "node", Args: []string{"-"}})
	if custom.Command() != "node -" {
		t.Fatalf("unexpected custom command %q", custom.Command())
	}
}
