package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/MKhiriev/umay/internal/logger"
)

// MediaURLPrefix is the path under which the HTTP server exposes the local
// media directory.
const MediaURLPrefix = "/media/"

// localMediaStorage keeps uploads in a directory on the server's disk.
type localMediaStorage struct {
	dir    string
	logger *logger.Logger
}

// NewLocalMediaStorage creates dir when missing and stores media there.
func NewLocalMediaStorage(dir string, log *logger.Logger) (MediaStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Err(err).Str("func", "NewLocalMediaStorage").Str("dir", dir).Msg("failed to create media directory")
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	log.Debug().Str("dir", dir).Msg("creating local media storage")

	return &localMediaStorage{dir: dir, logger: log}, nil
}

func (s *localMediaStorage) Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error) {
	log := logger.FromContext(ctx)

	name = filepath.Base(name)
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		log.Err(err).Str("func", "*localMediaStorage.Save").Str("name", name).Msg("failed to create media file")
		return "", fmt.Errorf("failed to create media file: %w", err)
	}

	if _, err = io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(f.Name())
		log.Err(err).Str("func", "*localMediaStorage.Save").Str("name", name).Msg("failed to write media file")
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("failed to close media file: %w", err)
	}

	return path.Join(MediaURLPrefix, name), nil
}

func (s *localMediaStorage) Remove(ctx context.Context, name string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrMediaNotFound
	}
	return err
}
