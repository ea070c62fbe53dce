package execclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/asynkron/codexterm/internal/logx"
)

// DefaultInterpreter runs code read from stdin.
var DefaultInterpreter = []string{"python3", "-"}

// LocalConfig configures a LocalExecutor.
type LocalConfig struct {
	// Command is the interpreter binary.
	// Default: python3
	Command string

	// Args are passed to Command. When Command is empty the default "-"
	// argument is used so the interpreter reads the program from stdin.
	Args []string

	// Workdir is the working directory for the interpreter process.
	Workdir string
}

// LocalExecutor runs code through an interpreter process on this machine.
// Code is written to the interpreter's stdin; anything written to stderr, or a
// non-zero exit, is reported as a BackendError.
type LocalExecutor struct {
	command string
	args    []string
	workdir string
}

// NewLocal creates a LocalExecutor with defaults applied.
func NewLocal(cfg LocalConfig) *LocalExecutor {
	command := cfg.Command
	args := append([]string(nil), cfg.Args...)
	if command == "" {
		command = DefaultInterpreter[0]
		if len(args) == 0 {
			args = append(args, DefaultInterpreter[1:]...)
		}
	}
	return &LocalExecutor{command: command, args: args, workdir: cfg.Workdir}
}

// Command returns the interpreter invocation as a single string.
func (l *LocalExecutor) Command() string {
	return strings.TrimSpace(l.command + " " + strings.Join(l.args, " "))
}

// Execute runs the interpreter once and waits for it to exit.
func (l *LocalExecutor) Execute(ctx context.Context, req Request) Result {
	log := logx.WithRun(logx.Ctx(ctx), req.ID()).With("command", l.command)

	cmd := exec.CommandContext(ctx, l.command, l.args...)
	cmd.Dir = l.workdir
	cmd.Stdin = strings.NewReader(req.Code())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Warn("interpreter interrupted", "err", ctxErr)
		return TransportError{Message: fmt.Sprintf("Execution interrupted: %v", ctxErr), Err: ctxErr}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			log.Warn("interpreter failed to start", "err", err)
			return TransportError{Message: fmt.Sprintf("Failed to start %s: %v", l.command, err), Err: err}
		}
		if stderr.Len() > 0 {
			return BackendError{Message: stderr.String()}
		}
		return BackendError{Message: fmt.Sprintf("%s exited with code %d", l.command, exitErr.ExitCode())}
	}
	if stderr.Len() > 0 {
		return BackendError{Message: stderr.String()}
	}
	return Success{Output: stdout.String()}
}

var _ Executor = (*LocalExecutor)(nil)
