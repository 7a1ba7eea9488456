package httpapi

import (
	"net/http"

	"github.com/alexdoe/folio/internal/service/auth"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	State auth.State `json:"state"`
}

// handleLogin verifies the edit password and mints a bearer token. Both
// session flags flip on in the same call.
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	token, err := h.gate.Login(req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Token: token,
		State: h.gate.State(),
	})
}

func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.gate.Logout()
	respondJSON(w, http.StatusOK, h.gate.State())
}

func (h *Handlers) handleSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.gate.State())
}

func (h *Handlers) handleSetEditing(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Editing bool `json:"editing"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.gate.SetEditing(body.Editing)
	respondJSON(w, http.StatusOK, h.gate.State())
}
