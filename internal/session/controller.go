// Package session implements the interactive execution session: the source
// buffer, the output log, and the Idle/Running controller that ties a run's
// request to its result.
package session

import (
	"sync"

	"github.com/asynkron/codexterm/internal/execclient"
	"github.com/asynkron/codexterm/internal/terminal"
)

// ExecutingMarker is the system entry every run starts with.
const ExecutingMarker = "$ Executing Python code..."

// State is the controller's run state.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Controller owns the run state, the output log and terminal visibility.
// At most one request is in flight; submissions while Running are refused,
// not queued. There is no cancel: a run ends only when its result arrives.
type Controller struct {
	mu              sync.Mutex
	state           State
	inflight        string
	log             terminal.OutputLog
	terminalVisible bool
}

// NewController returns an Idle controller with the terminal shown.
func NewController() *Controller {
	return &Controller{terminalVisible: true}
}

// Submit starts a run for code. The output log is reset to the executing
// marker and the terminal is forced visible. ok is false, and nothing
// changes, when a run is already in flight.
func (c *Controller) Submit(code string) (req execclient.Request, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Running {
		return execclient.Request{}, false
	}
	req = execclient.NewRequest(code)
	c.state = Running
	c.inflight = req.ID()
	c.terminalVisible = true
	c.log.Reset(ExecutingMarker)
	return req, true
}

// Resolve appends the entries for result and returns to Idle. Results for
// anything other than the in-flight request are ignored and reported false.
func (c *Controller) Resolve(requestID string, result execclient.Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Running || requestID == "" || requestID != c.inflight {
		return false
	}
	c.log.Append(EntriesFor(result)...)
	c.state = Idle
	c.inflight = ""
	return true
}

// ToggleTerminal flips terminal visibility. It never touches the log.
func (c *Controller) ToggleTerminal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.terminalVisible = !c.terminalVisible
}

// State returns the current run state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Executing reports whether a run is in flight.
func (c *Controller) Executing() bool {
	return c.State() == Running
}

// InFlight returns the ID of the running request, or "" when Idle.
func (c *Controller) InFlight() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight
}

// TerminalVisible reports whether the terminal panel is shown.
func (c *Controller) TerminalVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.terminalVisible
}

// Entries returns a copy of the output log.
func (c *Controller) Entries() []terminal.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.Entries()
}

// EntriesFor maps a result to the output entries it produces.
func EntriesFor(result execclient.Result) []terminal.Entry {
	switch r := result.(type) {
	case execclient.Success:
		return terminal.OutputLines(r.Output)
	case execclient.BackendError:
		return []terminal.Entry{terminal.Error(r.Message)}
	case execclient.TransportError:
		return []terminal.Entry{terminal.Error(r.Message)}
	default:
		return []terminal.Entry{terminal.Error("unrecognised execution result")}
	}
}

// ResultName is a short label for logging.
func ResultName(result execclient.Result) string {
	switch result.(type) {
	case execclient.Success:
		return "success"
	case execclient.BackendError:
		return "backend_error"
	case execclient.TransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}
