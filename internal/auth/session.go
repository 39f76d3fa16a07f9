// Package auth gates the admin views behind a passcode session and notifies
// listeners when the signed-in state changes.
package auth

import (
	"errors"
	"sync"
)

// ErrBadPasscode indicates a failed sign-in attempt.
var ErrBadPasscode = errors.New("incorrect passcode")

// Verifier checks a passcode against its authority (the settings table).
type Verifier func(passcode string) (bool, error)

// Session holds the current admin sign-in state. State changes are pushed on
// the Changes channel, latest-wins, so the UI can always re-render from the
// newest state without queueing stale transitions.
type Session struct {
	mu       sync.Mutex
	verify   Verifier
	signedIn bool
	changes  chan bool
}

func NewSession(verify Verifier) *Session {
	return &Session{
		verify:  verify,
		changes: make(chan bool, 1),
	}
}

// Changes delivers the signed-in state after each transition.
func (s *Session) Changes() <-chan bool {
	return s.changes
}

func (s *Session) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signedIn
}

// SignIn verifies the passcode and opens the session.
func (s *Session) SignIn(passcode string) error {
	ok, err := s.verify(passcode)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBadPasscode
	}
	s.setState(true)
	return nil
}

// SignOut closes the session. Signing out twice is a no-op.
func (s *Session) SignOut() {
	s.setState(false)
}

func (s *Session) setState(signedIn bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signedIn == signedIn {
		return
	}
	s.signedIn = signedIn
	select {
	case <-s.changes:
	default:
	}
	s.changes <- signedIn
}
