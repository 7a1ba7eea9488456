package auth

import (
	"testing"

	"github.com/alexdoe/folio/pkg/errors"
	"go.uber.org/zap"
)

func newTestGate() *Gate {
	return NewGate(NewStaticChecker("open-sesame"), zap.NewNop())
}

func TestLoginCorrectSecret(t *testing.T) {
	gate := newTestGate()

	token, err := gate.Login("open-sesame")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Error("expected a session token")
	}

	state := gate.State()
	if !state.Authenticated || !state.Editing {
		t.Errorf("both flags should flip in one call, got %+v", state)
	}
	if !gate.Authorized(token) {
		t.Error("token should authorize")
	}
}

func TestLoginWrongSecret(t *testing.T) {
	gate := newTestGate()

	_, err := gate.Login("guess")
	if err == nil {
		t.Fatal("expected auth error")
	}
	if _, ok := err.(*errors.AuthError); !ok {
		t.Fatalf("expected *errors.AuthError, got %T", err)
	}

	state := gate.State()
	if state.Authenticated || state.Editing {
		t.Errorf("failed login must change neither flag, got %+v", state)
	}
}

func TestLogoutResetsEverything(t *testing.T) {
	gate := newTestGate()

	token, err := gate.Login("open-sesame")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	gate.Logout()

	state := gate.State()
	if state.Authenticated || state.Editing {
		t.Errorf("logout must reset both flags, got %+v", state)
	}
	if gate.Authorized(token) {
		t.Error("token should be revoked after logout")
	}
}

func TestSetEditingRequiresAuthentication(t *testing.T) {
	gate := newTestGate()

	gate.SetEditing(true)
	if gate.State().Editing {
		t.Error("editing must not flip while unauthenticated")
	}

	if _, err := gate.Login("open-sesame"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	gate.SetEditing(false)
	state := gate.State()
	if !state.Authenticated || state.Editing {
		t.Errorf("expected authenticated with editing off, got %+v", state)
	}
}

func TestAuthorizedRejectsUnknownToken(t *testing.T) {
	gate := newTestGate()

	if _, err := gate.Login("open-sesame"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if gate.Authorized("") || gate.Authorized("bogus") {
		t.Error("unknown tokens must not authorize")
	}
}
