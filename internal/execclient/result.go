package execclient

import "github.com/google/uuid"

// Request is the immutable snapshot submitted for execution. Later edits to
// the source buffer never reach an already constructed Request.
type Request struct {
	id   string
	code string
}

// NewRequest captures code under a fresh request ID.
func NewRequest(code string) Request {
	return Request{id: uuid.NewString(), code: code}
}

// ID identifies the request for logging and result matching.
func (r Request) ID() string { return r.id }

// Code returns the submitted source text.
func (r Request) Code() string { return r.code }

// Result is the outcome of a single execution. It is always exactly one of
// Success, BackendError or TransportError.
type Result interface{ isResult() }

// Success carries the program's standard output. Output may span many lines.
type Success struct {
	Output string
}

// BackendError is a failure reported by the execution service, usually a
// syntax or runtime error in the submitted code.
type BackendError struct {
	Message string
}

// TransportError means the service could not be reached or answered with
// something unusable. Message is meant for the user; Err keeps the cause.
type TransportError struct {
	Message string
	Err     error
}

func (Success) isResult()        {}
func (BackendError) isResult()   {}
func (TransportError) isResult() {}
