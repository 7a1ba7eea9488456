package httpapi

import (
	"net/http"
	"strconv"

	"github.com/alexdoe/folio/internal/constants"
	"github.com/alexdoe/folio/internal/service/archive"
	"github.com/alexdoe/folio/pkg/errors"
)

// handleSync pushes the current content to the blob store. Creates the blob
// on the first sync, updates the same blob after. Concurrent invocations are
// rejected with a conflict.
func (h *Handlers) handleSync(w http.ResponseWriter, r *http.Request) {
	result, err := h.sync.SyncNow(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleUpload forwards a multipart image to the image host and returns the
// hosted URL.
func (h *Handlers) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.HTTPConfig.MaxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, h.logger, errors.NewValidationError("missing image file", "image", err.Error()))
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), header.Filename, file)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// handleMetadata scrapes Open Graph metadata from a live project page and
// returns a prefilled project draft.
func (h *Handlers) handleMetadata(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}

	draft, err := h.fetcher.Fetch(r.Context(), body.URL)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

func (h *Handlers) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		respondJSON(w, http.StatusOK, []archive.Snapshot{})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, h.logger, errors.NewValidationError("limit must be an integer", "limit", raw))
			return
		}
		limit = parsed
	}

	list, err := h.snapshots.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if list == nil {
		list = []archive.Snapshot{}
	}
	respondJSON(w, http.StatusOK, list)
}
