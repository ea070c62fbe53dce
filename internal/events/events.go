// Package events defines the messages background work sends to the UI.
package events

import "github.com/asynkron/codexterm/internal/execclient"

// Event is delivered to the UI over a channel.
type Event interface{ isEvent() }

// RunStarted is emitted once an accepted request has been handed to the
// executor.
type RunStarted struct {
	SessionID string
	RunID     string
}

// RunSettled carries the result for a request.
type RunSettled struct {
	SessionID string
	RunID     string
	Result    execclient.Result
}

// StatusMessage is a one-line note for the status bar.
type StatusMessage struct {
	Message string
}

func (RunStarted) isEvent()    {}
func (RunSettled) isEvent()    {}
func (StatusMessage) isEvent() {}
