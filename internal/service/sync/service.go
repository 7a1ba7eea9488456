package sync

import (
	"context"
	"sync/atomic"

	"github.com/alexdoe/folio/internal/constants"
	"github.com/alexdoe/folio/internal/domain"
	"github.com/alexdoe/folio/internal/service/content"
	"github.com/alexdoe/folio/internal/store"
	"github.com/alexdoe/folio/pkg/errors"
	"go.uber.org/zap"
)

// Recorder archives successful syncs. Implemented by the snapshot archive;
// nil when the archive is disabled.
type Recorder interface {
	Record(ctx context.Context, blobID string, payload []byte) error
}

// Result is what the owner gets back from a sync: the blob identifier and
// the shareable link embedding it.
type Result struct {
	ID       string `json:"id"`
	ShareURL string `json:"shareUrl"`
}

// Service implements the remote link flow: push the current content to the
// blob store (create on first sync, update after) and load shared snapshots
// by identifier. A failure anywhere leaves both the local content and the
// stored identifier exactly as they were; nothing is retried.
type Service struct {
	contentSvc *content.Service
	repo       *store.ContentRepository
	client     *BlobClient
	recorder   Recorder
	publicURL  string
	logger     *zap.Logger

	inFlight atomic.Bool
}

func NewService(contentSvc *content.Service, repo *store.ContentRepository, client *BlobClient, recorder Recorder, publicURL string, logger *zap.Logger) *Service {
	return &Service{
		contentSvc: contentSvc,
		repo:       repo,
		client:     client,
		recorder:   recorder,
		publicURL:  publicURL,
		logger:     logger,
	}
}

// SyncNow pushes the current content to the blob store. The first successful
// sync creates a blob and stores its identifier; later syncs update that
// same blob. Only one sync may be in flight at a time.
func (s *Service) SyncNow(ctx context.Context) (*Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, errors.NewSyncError("a sync is already in progress", "sync", nil)
	}
	defer s.inFlight.Store(false)

	snapshot := s.contentSvc.Snapshot()

	id, err := s.repo.SyncID(ctx)
	if err != nil {
		return nil, err
	}

	if id == "" {
		id, err = s.client.Create(ctx, snapshot)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SetSyncID(ctx, id); err != nil {
			// The blob exists remotely but the identifier was lost; the next
			// sync will create a fresh blob.
			s.logger.Error("Failed to store sync id", zap.String("id", id), zap.Error(err))
			return nil, err
		}
		s.logger.Info("Remote blob created", zap.String("id", id))
	} else {
		if err := s.client.Update(ctx, id, snapshot); err != nil {
			return nil, err
		}
		s.logger.Info("Remote blob updated", zap.String("id", id))
	}

	s.archive(ctx, id, snapshot)

	return &Result{
		ID:       id,
		ShareURL: s.ShareURL(id),
	}, nil
}

// Shared fetches the blob at id without touching the local content. This is
// the viewer path behind a share link: anyone may read a shared snapshot,
// only the owner may adopt one.
func (s *Service) Shared(ctx context.Context, id string) (*domain.Content, error) {
	if id == "" {
		return nil, errors.NewValidationError("share identifier must not be empty", "id", id)
	}

	fetched, err := s.client.Fetch(ctx, id)
	if err != nil {
		s.logger.Warn("Shared content fetch failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Debug("Shared content fetched", zap.String("id", id))
	return fetched, nil
}

// LoadShared fetches the blob at id and replaces the local content with it.
// On any failure the local content keeps its previous value.
func (s *Service) LoadShared(ctx context.Context, id string) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		return errors.NewSyncError("a sync is already in progress", "load", nil)
	}
	defer s.inFlight.Store(false)

	if id == "" {
		return errors.NewValidationError("share identifier must not be empty", "id", id)
	}

	fetched, err := s.client.Fetch(ctx, id)
	if err != nil {
		s.logger.Warn("Shared content load failed, keeping current content",
			zap.String("id", id),
			zap.Error(err),
		)
		return err
	}

	if err := s.contentSvc.Replace(ctx, fetched); err != nil {
		return err
	}

	s.logger.Info("Shared content loaded", zap.String("id", id))
	return nil
}

// ShareURL renders the shareable link for a blob identifier, e.g.
// https://example.dev/#live=<id>.
func (s *Service) ShareURL(id string) string {
	return s.publicURL + "/" + constants.ShareFragment + id
}

func (s *Service) archive(ctx context.Context, id string, snapshot *domain.Content) {
	if s.recorder == nil {
		return
	}

	payload, err := snapshot.Encode()
	if err != nil {
		s.logger.Warn("Failed to encode snapshot for archive", zap.Error(err))
		return
	}
	if err := s.recorder.Record(ctx, id, payload); err != nil {
		s.logger.Warn("Failed to archive sync snapshot", zap.String("id", id), zap.Error(err))
	}
}
