package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/logger"
)

// minioMediaStorage keeps uploads in a MinIO (S3 compatible) bucket.
type minioMediaStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioMediaStorage connects to MinIO and creates the bucket when it is
// missing.
func NewMinioMediaStorage(ctx context.Context, cfg config.Minio, log *logger.Logger) (MediaStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Err(err).Str("func", "NewMinioMediaStorage").Msg("failed to create minio client")
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		log.Err(err).Str("func", "NewMinioMediaStorage").Str("bucket", cfg.Bucket).Msg("failed to check bucket existence")
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			log.Err(err).Str("func", "NewMinioMediaStorage").Str("bucket", cfg.Bucket).Msg("failed to create bucket")
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("created media bucket")
	}

	return &minioMediaStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: objectBaseURL(cfg),
	}, nil
}

func objectBaseURL(cfg config.Minio) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}

func (s *minioMediaStorage) Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error) {
	log := logger.FromContext(ctx)

	_, err := s.client.PutObject(ctx, s.bucket, name, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Err(err).Str("func", "*minioMediaStorage.Save").Str("name", name).Msg("failed to upload media")
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.publicURL + "/" + name, nil
}

func (s *minioMediaStorage) Remove(ctx context.Context, name string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
