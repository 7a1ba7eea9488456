package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/alexdoe/folio/internal/service/archive"
	"github.com/alexdoe/folio/internal/service/auth"
	"github.com/alexdoe/folio/internal/service/content"
	"github.com/alexdoe/folio/internal/service/metafetch"
	remotesync "github.com/alexdoe/folio/internal/service/sync"
	"github.com/alexdoe/folio/internal/service/upload"
	"github.com/alexdoe/folio/pkg/errors"
)

// SnapshotLister is the slice of the archive service the API needs. Kept as
// an interface because archival is optional and may be absent entirely.
type SnapshotLister interface {
	Recent(ctx context.Context, limit int) ([]archive.Snapshot, error)
}

// Handlers bundles the services behind the REST surface.
type Handlers struct {
	content   *content.Service
	sync      *remotesync.Service
	gate      *auth.Gate
	uploader  *upload.Uploader
	fetcher   *metafetch.Fetcher
	snapshots SnapshotLister
	hub       http.Handler
	logger    *zap.Logger
}

func NewHandlers(
	contentSvc *content.Service,
	syncSvc *remotesync.Service,
	gate *auth.Gate,
	uploader *upload.Uploader,
	fetcher *metafetch.Fetcher,
	snapshots SnapshotLister,
	hub http.Handler,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		content:   contentSvc,
		sync:      syncSvc,
		gate:      gate,
		uploader:  uploader,
		fetcher:   fetcher,
		snapshots: snapshots,
		hub:       hub,
		logger:    logger,
	}
}

func (h *Handlers) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/content", h.handleGetContent)
		r.Get("/content/shared/{id}", h.handleGetShared)
		r.Get("/export", h.handleExport)

		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
		r.Get("/session", h.handleSession)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)

			r.Put("/session/editing", h.handleSetEditing)

			r.Put("/profile", h.handlePutProfile)
			r.Put("/about", h.handlePutAbout)

			r.Post("/projects", h.handleAddProject)
			r.Put("/projects/{index}", h.handleUpdateProject)
			r.Delete("/projects/{index}", h.handleDeleteProject)
			r.Post("/projects/{index}/move", h.handleMoveProject)

			r.Post("/skills", h.handleAddSkillCategory)
			r.Put("/skills/{index}", h.handleUpdateSkillCategory)
			r.Delete("/skills/{index}", h.handleDeleteSkillCategory)
			r.Post("/skills/{index}/items", h.handleAddSkill)
			r.Delete("/skills/{index}/items/{item}", h.handleDeleteSkill)

			r.Post("/content/shared/{id}", h.handleApplyShared)
			r.Post("/import", h.handleImport)
			r.Post("/sync", h.handleSync)
			r.Post("/upload", h.handleUpload)
			r.Post("/metadata", h.handleMetadata)
			r.Get("/snapshots", h.handleSnapshots)
		})
	})

	if h.hub != nil {
		r.Get("/ws", h.hub.ServeHTTP)
	}

	return r
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireAuth guards every mutating route with the bearer token minted at
// login.
func (h *Handlers) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if !h.gate.Authorized(token) {
			respondError(w, h.logger, errors.NewAuthError("edit session required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func pathIndex(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError("index must be an integer", name, raw)
	}
	return idx, nil
}
