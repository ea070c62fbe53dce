// Package execclient submits source text to an execution service and folds
// every outcome, including transport failures, into a Result value.
package execclient

import "context"

// Executor runs one request to completion. Implementations never return Go
// errors; all failures are reported through the Result.
type Executor interface {
	Execute(ctx context.Context, req Request) Result
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, req Request) Result

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, req Request) Result {
	return f(ctx, req)
}
