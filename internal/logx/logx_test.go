package logx

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/pslog"
)

func TestWithSessionAndRunAddFields(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	log := WithRun(WithSession(logger, "s1"), "r1")
	log.Info("hello")

	entry := capture.firstEntry(t)
	if entry["session"] != "s1" {
		t.Fatalf("expected session field, got %+v", entry)
	}
	if entry["run"] != "r1" {
		t.Fatalf("expected run field, got %+v", entry)
	}
}

func TestWithSessionSkipsEmptyID(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	WithRun(WithSession(logger, ""), "").Info("hello")

	entry := capture.firstEntry(t)
	if _, ok := entry["session"]; ok {
		t.Fatalf("did not expect session field, got %+v", entry)
	}
	if _, ok := entry["run"]; ok {
		t.Fatalf("did not expect run field, got %+v", entry)
	}
}

func TestNewFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "codexterm.log")
	logger, closer, err := NewFileLogger(path, "debug")
	if err != nil {
		t.Fatalf("new file logger: %v", err)
	}
	logger.Info("first line")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "first line") {
		t.Fatalf("expected log line in file, got %q", string(data))
	}
}

func TestNewFileLoggerWithoutPathDiscards(t *testing.T) {
	logger, closer, err := NewFileLogger("", "info")
	if err != nil {
		t.Fatalf("new file logger: %v", err)
	}
	logger.Info("dropped")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) firstEntry(t *testing.T) map[string]any {
	t.Helper()
	data := c.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		idx = len(data)
	}
	line := bytes.TrimSpace(data[:idx])
	entry := map[string]any{}
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("parse log entry: %v", err)
	}
	return entry
}
