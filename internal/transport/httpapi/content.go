package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexdoe/folio/internal/constants"
	"github.com/alexdoe/folio/internal/domain"
	"github.com/alexdoe/folio/pkg/errors"
)

func (h *Handlers) handleGetContent(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.content.Snapshot())
}

// handleGetShared returns the shared snapshot at id without touching the
// owner's content. The route is public, so it must stay read-only: a viewer
// following a share link sees the shared document, nothing more.
func (h *Handlers) handleGetShared(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, h.logger, errors.NewValidationError("missing snapshot id", "id", id))
		return
	}

	shared, err := h.sync.Shared(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, shared)
}

// handleApplyShared replaces the owner's content with the shared snapshot at
// id. Gated behind the edit session; a failed fetch leaves the current
// content untouched.
func (h *Handlers) handleApplyShared(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, h.logger, errors.NewValidationError("missing snapshot id", "id", id))
		return
	}

	if err := h.sync.LoadShared(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.content.Snapshot())
}

func (h *Handlers) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if err := decodeBody(r, &profile); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.content.SetProfile(r.Context(), profile); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.content.Snapshot().Profile)
}

func (h *Handlers) handlePutAbout(w http.ResponseWriter, r *http.Request) {
	var about domain.AboutContent
	if err := decodeBody(r, &about); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.content.SetAbout(r.Context(), about); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.content.Snapshot().About)
}

func (h *Handlers) handleAddProject(w http.ResponseWriter, r *http.Request) {
	var project domain.Project
	if err := decodeBody(r, &project); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.content.AddProject(r.Context(), project); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.content.Snapshot().Projects)
}

func (h *Handlers) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var project domain.Project
	if err := decodeBody(r, &project); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.content.UpdateProject(r.Context(), index, project); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.content.Snapshot().Projects)
}

func (h *Handlers) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.content.DeleteProject(r.Context(), index); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.content.Snapshot().Projects)
}

func (h *Handlers) handleMoveProject(w http.ResponseWriter, r *http.Request) {
	from, err := pathIndex(r, "index")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var body struct {
		To int `json:"to"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.content.MoveProject(r.Context(), from, body.To); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.content.Snapshot().Projects)
}

func (h *Handlers) handleAddSkillCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.SkillCategory
	if err := decodeBody(r, &category); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.content.AddSkillCategory(r.Context(), category); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.content.Snapshot().Skills)
}

func (h *Handlers) handleUpdateSkillCategory(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var category domain.SkillCategory
	if err := decodeBody(r, &category); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.content.UpdateSkillCategory(r.Context(), index, category); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.content.Snapshot().Skills)
}

func (h *Handlers) handleDeleteSkillCategory(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.content.DeleteSkillCategory(r.Context(), index); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.content.Snapshot().Skills)
}

func (h *Handlers) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var body struct {
		Skill string `json:"skill"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.content.AddSkill(r.Context(), index, body.Skill); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.content.Snapshot().Skills)
}

func (h *Handlers) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	item, err := pathIndex(r, "item")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.content.DeleteSkill(r.Context(), index, item); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.content.Snapshot().Skills)
}

// handleExport streams the full content document as a download.
func (h *Handlers) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.content.Export()
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio-data.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleImport validates and applies a previously exported document. The
// current content survives untouched when the upload is rejected.
func (h *Handlers) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, constants.HTTPConfig.MaxImportBytes))
	if err != nil {
		respondError(w, h.logger, errors.NewParseError("failed to read import body", "import", err))
		return
	}

	if err := h.content.Import(r.Context(), data); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.content.Snapshot())
}

func decodeBody(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return errors.NewParseError("malformed request body", "request", err)
	}
	return nil
}
