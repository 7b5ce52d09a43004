package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/logger"
)

// Storages groups every repository and storage backend the service layer
// depends on.
type Storages struct {
	// DB is kept for health checks and shutdown.
	DB *DB

	Accounts     AccountRepository
	BirthRecords BirthRecordRepository
	Articles     ArticleRepository
	Media        MediaStorage
	OTP          OTPStore
}

// NewStorages initialises the storage layer:
//  1. opens the database selected by cfg.DB.Driver and applies migrations;
//  2. picks MinIO for media when an endpoint is configured, the local
//     media directory otherwise;
//  3. connects to Redis for one-time codes when an address is configured,
//     falling back to a process-local store.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	var media MediaStorage
	if cfg.Minio.Endpoint != "" {
		media, err = NewMinioMediaStorage(ctx, cfg.Minio, log)
	} else {
		media, err = NewLocalMediaStorage(cfg.Files.MediaDir, log)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("media storage error: %w", err)
	}

	var otp OTPStore
	if cfg.Redis.Addr != "" {
		if otp, err = NewRedisOTPStore(ctx, cfg.Redis, log); err != nil {
			db.Close()
			return nil, fmt.Errorf("otp store error: %w", err)
		}
	} else {
		log.Warn().Msg("redis is not configured, one-time codes are kept in memory")
		otp = NewMemoryOTPStore()
	}

	return &Storages{
		DB:           db,
		Accounts:     NewAccountRepository(db, log),
		BirthRecords: NewBirthRecordRepository(db, log),
		Articles:     NewArticleRepository(db, log),
		Media:        media,
		OTP:          otp,
	}, nil
}

// Close releases the database pool.
func (s *Storages) Close() error {
	return s.DB.Close()
}
