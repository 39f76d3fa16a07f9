package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedVerifier(want string) Verifier {
	return func(passcode string) (bool, error) {
		return passcode == want, nil
	}
}

func TestSignInSignOut(t *testing.T) {
	s := NewSession(fixedVerifier("1234"))
	assert.False(t, s.SignedIn())

	require.NoError(t, s.SignIn("1234"))
	assert.True(t, s.SignedIn())

	s.SignOut()
	assert.False(t, s.SignedIn())
}

func TestSignInBadPasscode(t *testing.T) {
	s := NewSession(fixedVerifier("1234"))
	err := s.SignIn("0000")
	assert.ErrorIs(t, err, ErrBadPasscode)
	assert.False(t, s.SignedIn())
}

func TestSignInVerifierError(t *testing.T) {
	boom := errors.New("settings unavailable")
	s := NewSession(func(string) (bool, error) { return false, boom })
	err := s.SignIn("1234")
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.SignedIn())
}

func TestChangesNotify(t *testing.T) {
	s := NewSession(fixedVerifier("1234"))
	require.NoError(t, s.SignIn("1234"))

	select {
	case signedIn := <-s.Changes():
		assert.True(t, signedIn)
	default:
		t.Fatal("expected a pending state change")
	}

	s.SignOut()
	select {
	case signedIn := <-s.Changes():
		assert.False(t, signedIn)
	default:
		t.Fatal("expected a pending state change")
	}
}

func TestChangesCoalesce(t *testing.T) {
	s := NewSession(fixedVerifier("1234"))
	require.NoError(t, s.SignIn("1234"))
	s.SignOut() // unread sign-in is replaced

	signedIn := <-s.Changes()
	assert.False(t, signedIn)
}

func TestSignOutTwiceNoPendingChange(t *testing.T) {
	s := NewSession(fixedVerifier("1234"))
	s.SignOut()
	select {
	case <-s.Changes():
		t.Fatal("no-op sign-out should not push a change")
	default:
	}
}
