package store

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/alexdoe/folio/internal/constants"
	"github.com/alexdoe/folio/internal/domain"
	"github.com/alexdoe/folio/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// ContentRepository maps the content aggregate onto the fixed storage keys,
// one key per category plus one for the remote sync identifier.
//
// Writes are suppressed until the initial LoadAll completes, so a save of
// default data can never clobber a stored value that has not been read yet.
type ContentRepository struct {
	kv     KV
	logger *zap.Logger
	loaded atomic.Bool
}

func NewContentRepository(kv KV, logger *zap.Logger) *ContentRepository {
	return &ContentRepository{
		kv:     kv,
		logger: logger,
	}
}

// LoadAll reads every content category concurrently and merges the results
// over the defaults. A missing key keeps the default for that category; a
// corrupt stored value is logged and also falls back to the default. Only
// backend failures abort the load.
func (r *ContentRepository) LoadAll(ctx context.Context) (*domain.Content, error) {
	content := domain.DefaultContent()

	var mu sync.Mutex
	var loadErr error

	p := pool.New().WithMaxGoroutines(constants.StoreConfig.LoadConcurrency)

	p.Go(func() {
		loadCategory(ctx, r, constants.StorageKeys.Profile, &content.Profile, &mu, &loadErr)
	})
	p.Go(func() {
		loadCategory(ctx, r, constants.StorageKeys.Projects, &content.Projects, &mu, &loadErr)
	})
	p.Go(func() {
		loadCategory(ctx, r, constants.StorageKeys.Skills, &content.Skills, &mu, &loadErr)
	})
	p.Go(func() {
		loadCategory(ctx, r, constants.StorageKeys.About, &content.About, &mu, &loadErr)
	})

	p.Wait()

	if loadErr != nil {
		return nil, loadErr
	}

	r.loaded.Store(true)
	r.logger.Info("Content loaded",
		zap.Int("projects", len(content.Projects)),
		zap.Int("skill_categories", len(content.Skills)),
	)

	return content, nil
}

// loadCategory reads one category into a scratch value and copies it over the
// default only after a fully successful decode. Decoding straight into dest
// would leave a half-populated merge behind when a stored value is the wrong
// shape: encoding/json keeps filling fields after a type error.
func loadCategory[T any](ctx context.Context, r *ContentRepository, key string, dest *T, mu *sync.Mutex, loadErr *error) {
	var scratch T
	found, err := r.kv.Get(ctx, key, &scratch)
	if err != nil {
		if parseErr, ok := err.(*errors.ParseError); ok {
			r.logger.Warn("Stored content is corrupt, falling back to defaults",
				zap.String("key", key),
				zap.Error(parseErr),
			)
			return
		}

		mu.Lock()
		if *loadErr == nil {
			*loadErr = err
		}
		mu.Unlock()
		return
	}

	if found {
		*dest = scratch
	}
}

// Loaded reports whether the initial load has completed.
func (r *ContentRepository) Loaded() bool {
	return r.loaded.Load()
}

func (r *ContentRepository) SaveProfile(ctx context.Context, p domain.Profile) error {
	return r.save(ctx, constants.StorageKeys.Profile, p)
}

func (r *ContentRepository) SaveProjects(ctx context.Context, projects []domain.Project) error {
	return r.save(ctx, constants.StorageKeys.Projects, projects)
}

func (r *ContentRepository) SaveSkills(ctx context.Context, skills []domain.SkillCategory) error {
	return r.save(ctx, constants.StorageKeys.Skills, skills)
}

func (r *ContentRepository) SaveAbout(ctx context.Context, about domain.AboutContent) error {
	return r.save(ctx, constants.StorageKeys.About, about)
}

// ReplaceAll persists every category, used when an import or a shared load
// overwrites the whole aggregate.
func (r *ContentRepository) ReplaceAll(ctx context.Context, content *domain.Content) error {
	if err := r.SaveProfile(ctx, content.Profile); err != nil {
		return err
	}
	if err := r.SaveProjects(ctx, content.Projects); err != nil {
		return err
	}
	if err := r.SaveSkills(ctx, content.Skills); err != nil {
		return err
	}
	return r.SaveAbout(ctx, content.About)
}

// SyncID returns the stored remote blob identifier, empty until the first
// successful sync.
func (r *ContentRepository) SyncID(ctx context.Context) (string, error) {
	var id string
	if _, err := r.kv.Get(ctx, constants.StorageKeys.SyncID, &id); err != nil {
		if _, ok := err.(*errors.ParseError); ok {
			r.logger.Warn("Stored sync id is corrupt, treating as unset", zap.Error(err))
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func (r *ContentRepository) SetSyncID(ctx context.Context, id string) error {
	return r.kv.Set(ctx, constants.StorageKeys.SyncID, id)
}

func (r *ContentRepository) save(ctx context.Context, key string, value any) error {
	if !r.loaded.Load() {
		r.logger.Debug("Initial load in flight, write suppressed", zap.String("key", key))
		return nil
	}
	return r.kv.Set(ctx, key, value)
}
