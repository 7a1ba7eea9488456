package auth

import (
	"crypto/subtle"
	"sync"

	"github.com/alexdoe/folio/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CredentialChecker verifies the owner's edit secret. Pluggable so a real
// deployment can swap in an external auth provider without touching the
// HTTP layer.
type CredentialChecker interface {
	Verify(secret string) bool
}

// StaticChecker compares against a secret fixed at startup. This is NOT a
// security boundary, and is documented as such: anyone with access to the
// deployment's configuration can read the secret. It only gates the editing
// UI for a single-owner portfolio.
type StaticChecker struct {
	secret string
}

func NewStaticChecker(secret string) *StaticChecker {
	return &StaticChecker{secret: secret}
}

func (c *StaticChecker) Verify(secret string) bool {
	return subtle.ConstantTimeCompare([]byte(c.secret), []byte(secret)) == 1
}

// State is the edit-mode flag pair exposed to the view layer.
type State struct {
	Authenticated bool `json:"authenticated"`
	Editing       bool `json:"editing"`
}

// Gate holds the authenticated/editing flag pair and the session tokens that
// authorize mutating API calls.
type Gate struct {
	checker CredentialChecker
	logger  *zap.Logger

	mu            sync.RWMutex
	authenticated bool
	editing       bool
	tokens        map[string]struct{}
}

func NewGate(checker CredentialChecker, logger *zap.Logger) *Gate {
	return &Gate{
		checker: checker,
		logger:  logger,
		tokens:  make(map[string]struct{}),
	}
}

// Login verifies the secret. On a match both flags flip on in the same call
// and a session token is minted; on a mismatch nothing changes.
func (g *Gate) Login(secret string) (string, error) {
	if !g.checker.Verify(secret) {
		g.logger.Warn("Edit login rejected")
		return "", errors.NewAuthError("incorrect password")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.authenticated = true
	g.editing = true
	token := uuid.NewString()
	g.tokens[token] = struct{}{}

	g.logger.Info("Edit mode unlocked")
	return token, nil
}

// Logout resets both flags and revokes every session token unconditionally.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.authenticated = false
	g.editing = false
	g.tokens = make(map[string]struct{})

	g.logger.Info("Edit mode locked")
}

// SetEditing toggles the editing flag without touching authentication. Only
// meaningful while authenticated.
func (g *Gate) SetEditing(editing bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.authenticated {
		return
	}
	g.editing = editing
}

// Authorized reports whether token belongs to a live edit session.
func (g *Gate) Authorized(token string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if token == "" || !g.authenticated {
		return false
	}
	_, ok := g.tokens[token]
	return ok
}

func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return State{
		Authenticated: g.authenticated,
		Editing:       g.editing,
	}
}
