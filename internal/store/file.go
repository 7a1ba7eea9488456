package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexdoe/folio/pkg/errors"
	"go.uber.org/zap"
)

// FileKV persists each key as one JSON file in a data directory. It is the
// default backend, the server-side stand-in for the browser's local storage.
type FileKV struct {
	dir    string
	logger *zap.Logger
}

func NewFileKV(dir string, logger *zap.Logger) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.NewStoreError("failed to create data directory", "init", dir, err)
	}

	logger.Info("File store ready", zap.String("dir", dir))

	return &FileKV{
		dir:    dir,
		logger: logger,
	}, nil
}

func (f *FileKV) Get(_ context.Context, key string, dest any) (bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		f.logger.Error("File read failed", zap.String("key", key), zap.Error(err))
		return false, errors.NewStoreError("read failed", "get", key, err)
	}

	if dest != nil {
		if err := json.Unmarshal(data, dest); err != nil {
			return true, errors.NewParseError("stored value is not valid JSON", key, err)
		}
	}

	return true, nil
}

func (f *FileKV) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.NewStoreError("marshal failed", "set", key, err)
	}

	// Write-then-rename keeps a crash mid-write from corrupting the stored
	// copy.
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		f.logger.Error("File write failed", zap.String("key", key), zap.Error(err))
		return errors.NewStoreError("write failed", "set", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		f.logger.Error("File rename failed", zap.String("key", key), zap.Error(err))
		return errors.NewStoreError("rename failed", "set", key, err)
	}

	return nil
}

func (f *FileKV) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		f.logger.Error("File delete failed", zap.String("key", key), zap.Error(err))
		return errors.NewStoreError("delete failed", "del", key, err)
	}
	return nil
}

func (f *FileKV) Close() error {
	return nil
}

func (f *FileKV) path(key string) string {
	name := strings.ReplaceAll(key, ":", "_")
	return filepath.Join(f.dir, fmt.Sprintf("%s.json", name))
}
