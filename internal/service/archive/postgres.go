package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Service keeps a history of successfully synced content snapshots in
// Postgres. It is optional; when disabled the sync flow runs without it.
type Service struct {
	db     *sql.DB
	logger *zap.Logger
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// Snapshot is one archived sync.
type Snapshot struct {
	ID        int64           `json:"id"`
	BlobID    string          `json:"blobId"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

const createTableStmt = `
CREATE TABLE IF NOT EXISTS snapshots (
	id BIGSERIAL PRIMARY KEY,
	blob_id TEXT NOT NULL,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func NewService(cfg Config, logger *zap.Logger) (*Service, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if _, err := db.ExecContext(ctx, createTableStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	logger.Info("Snapshot archive connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
	)

	return &Service{
		db:     db,
		logger: logger,
	}, nil
}

// Record stores one synced snapshot.
func (s *Service) Record(ctx context.Context, blobID string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (blob_id, payload) VALUES ($1, $2)`,
		blobID, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}

	s.logger.Debug("Snapshot archived", zap.String("blob_id", blobID))
	return nil
}

// Recent returns the newest snapshots, most recent first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, blob_id, payload, created_at FROM snapshots ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]Snapshot, 0, limit)
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.BlobID, &snap.Payload, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
