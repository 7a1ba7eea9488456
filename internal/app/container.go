package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/alexdoe/folio/internal/config"
	"github.com/alexdoe/folio/internal/constants"
	"github.com/alexdoe/folio/internal/service/archive"
	"github.com/alexdoe/folio/internal/service/auth"
	"github.com/alexdoe/folio/internal/service/content"
	"github.com/alexdoe/folio/internal/service/metafetch"
	remotesync "github.com/alexdoe/folio/internal/service/sync"
	"github.com/alexdoe/folio/internal/service/upload"
	"github.com/alexdoe/folio/internal/store"
	"github.com/alexdoe/folio/internal/transport/httpapi"
	"github.com/alexdoe/folio/internal/transport/ws"
)

// Container bundles the assembled services behind the HTTP server.
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Handler http.Handler

	closers []func()
}

// Close tears down the container's services in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles the full service graph: storage backend, content service,
// remote sync, auth gate, upload and metadata helpers, the optional snapshot
// archive and the WebSocket hub, all wired into the router. Heavy
// initialization (store connect, initial content load) happens here so main
// stays focused on lifecycle.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Storage backend
	var kv store.KV
	switch cfg.Storage.Backend {
	case "redis":
		kv, err = store.NewRedisKV(store.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
	default:
		kv, err = store.NewFileKV(cfg.Storage.DataDir, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s store: %w", cfg.Storage.Backend, err)
	}
	closers = append(closers, func() {
		_ = kv.Close()
	})

	repo := store.NewContentRepository(kv, logger)
	loadCtx, loadCancel := context.WithTimeout(ctx, constants.StoreConfig.LoadTimeout)
	initial, err := repo.LoadAll(loadCtx)
	loadCancel()
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	contentSvc := content.NewService(repo, initial, logger)
	gate := auth.NewGate(auth.NewStaticChecker(cfg.Auth.EditPassword), logger)

	// Optional snapshot archive
	var recorder remotesync.Recorder
	var snapshots httpapi.SnapshotLister
	if cfg.Archive.Enabled {
		archiveSvc, archiveErr := archive.NewService(archive.Config{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		}, logger)
		if archiveErr != nil {
			return nil, fmt.Errorf("failed to create snapshot archive: %w", archiveErr)
		}
		closers = append(closers, func() {
			_ = archiveSvc.Close()
		})
		recorder = archiveSvc
		snapshots = archiveSvc
	}

	// Remote link flow
	blobClient := remotesync.NewBlobClient(cfg.BlobStore.BaseURL, logger)
	syncSvc := remotesync.NewService(contentSvc, repo, blobClient, recorder, cfg.Server.PublicURL, logger)

	uploader := upload.NewUploader(cfg.ImageHost.UploadURL, cfg.ImageHost.APIKey, logger)
	fetcher := metafetch.NewFetcher(logger)

	// Live update fan-out
	hub := ws.NewHub(logger)
	closers = append(closers, hub.Close)
	contentSvc.OnChange(hub.ContentUpdated)

	handlers := httpapi.NewHandlers(contentSvc, syncSvc, gate, uploader, fetcher, snapshots, hub, logger)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Handler: handlers.Routes(),
		closers: closers,
	}, nil
}
