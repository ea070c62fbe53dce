// Package auth carries the signed-in flag as an explicit capability instead of
// ambient global state.
package auth

import (
	"errors"
	"sync"
)

// SignInPrompt is shown when a signed-out user opens course content.
const SignInPrompt = "Please log in to access the course content."

// ErrSignInRequired is returned by Require for a signed-out user.
var ErrSignInRequired = errors.New("sign in required")

// Capability is the read-only view handed to components that only need to
// know whether the user is signed in.
type Capability interface {
	LoggedIn() bool
}

// State is the single writable holder of the signed-in flag. Set is the only
// mutator.
type State struct {
	mu       sync.RWMutex
	loggedIn bool
}

// NewState returns a State with the initial flag.
func NewState(loggedIn bool) *State {
	return &State{loggedIn: loggedIn}
}

// LoggedIn reports the current flag.
func (s *State) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// Set changes the flag.
func (s *State) Set(loggedIn bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = loggedIn
}

// Require returns ErrSignInRequired unless the capability reports a signed-in
// user. A nil capability counts as signed out.
func Require(c Capability) error {
	if c == nil || !c.LoggedIn() {
		return ErrSignInRequired
	}
	return nil
}

var _ Capability = (*State)(nil)
