package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/models"
)

// birthRecordRepository is the database/sql implementation of
// [BirthRecordRepository] over the "birth_records" table.
type birthRecordRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewBirthRecordRepository constructs a [BirthRecordRepository] backed by db.
func NewBirthRecordRepository(db *DB, logger *logger.Logger) BirthRecordRepository {
	logger.Debug().Msg("creating birth record repository")
	return &birthRecordRepository{
		db:     db,
		logger: logger,
	}
}

// CreateRecord inserts record and returns it with the assigned id and
// timestamps.
func (r *birthRecordRepository) CreateRecord(ctx context.Context, record models.BirthRecord) (models.BirthRecord, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	record.CreatedAt, record.UpdatedAt = now, now

	query, args, err := r.db.buildInsertRecordQuery(record)
	if err != nil {
		log.Err(err).Str("func", "*birthRecordRepository.CreateRecord").Msg("failed to build query")
		return models.BirthRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&record.ID); err != nil {
			log.Err(err).
				Str("func", "*birthRecordRepository.CreateRecord").
				Int64("owner_account_id", record.OwnerAccountID).
				Msg("failed to insert birth record")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		return models.BirthRecord{}, err
	}

	return record, nil
}

// GetRecord returns the record with the given id or [ErrRecordNotFound].
func (r *birthRecordRepository) GetRecord(ctx context.Context, id int64) (models.BirthRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildSelectRecordsQuery(sq.Eq{"id": id}, 0)
	if err != nil {
		log.Err(err).Str("func", "*birthRecordRepository.GetRecord").Msg("failed to build query")
		return models.BirthRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.BirthRecord{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*birthRecordRepository.GetRecord").Int64("record_id", id).Msg("failed to scan birth record")
		return models.BirthRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

// UpdateRecord overwrites the clinical fields of record.ID and returns the
// stored row.
func (r *birthRecordRepository) UpdateRecord(ctx context.Context, record models.BirthRecord) (models.BirthRecord, error) {
	log := logger.FromContext(ctx)

	record.UpdatedAt = time.Now().UTC()
	query, args, err := r.db.buildUpdateRecordQuery(record)
	if err != nil {
		log.Err(err).Str("func", "*birthRecordRepository.UpdateRecord").Msg("failed to build query")
		return models.BirthRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	selectQuery, selectArgs, err := r.db.buildSelectRecordsQuery(sq.Eq{"id": record.ID}, 0)
	if err != nil {
		return models.BirthRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.BirthRecord
	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", "*birthRecordRepository.UpdateRecord").Int64("record_id", record.ID).Msg("failed to update birth record")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return ErrRecordNotFound
		}

		if updated, err = scanRecord(tx.QueryRowContext(ctx, selectQuery, selectArgs...)); err != nil {
			log.Err(err).Str("func", "*birthRecordRepository.UpdateRecord").Int64("record_id", record.ID).Msg("failed to read updated birth record")
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		return nil
	})
	if err != nil {
		return models.BirthRecord{}, err
	}

	return updated, nil
}

// DeleteRecord removes the record or returns [ErrRecordNotFound].
func (r *birthRecordRepository) DeleteRecord(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Delete(tableBirthRecords).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", "*birthRecordRepository.DeleteRecord").Int64("record_id", id).Msg("failed to delete birth record")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
}

// ListRecords returns up to limit records, newest first. limit 0 returns all.
func (r *birthRecordRepository) ListRecords(ctx context.Context, limit uint64) ([]models.BirthRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildSelectRecordsQuery(nil, limit)
	if err != nil {
		log.Err(err).Str("func", "*birthRecordRepository.ListRecords").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.queryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*birthRecordRepository.ListRecords").Msg("failed to execute query for listing birth records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.BirthRecord, 0, 50)
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*birthRecordRepository.ListRecords").Msg("failed to scan birth record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*birthRecordRepository.ListRecords").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
