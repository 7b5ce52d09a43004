package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/umay/internal/filter"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/policy"
	"github.com/MKhiriev/umay/internal/report"
	"github.com/MKhiriev/umay/internal/store"
	"github.com/MKhiriev/umay/internal/validators"
	"github.com/MKhiriev/umay/models"
)

// DashboardRecent is how many of the newest records the dashboard shows.
const DashboardRecent = 10

type recordService struct {
	records   store.BirthRecordRepository
	rules     *policy.Rules
	validator validators.Validator
	reports   *report.Builder
	now       func() time.Time

	logger *logger.Logger
}

func NewRecordService(records store.BirthRecordRepository, rules *policy.Rules, reports *report.Builder, logger *logger.Logger) RecordService {
	return &recordService{
		records:   records,
		rules:     rules,
		validator: validators.NewBirthRecordValidator(),
		reports:   reports,
		now:       time.Now,
		logger:    logger,
	}
}

// Search returns the records matching criteria, newest first.
func (s *recordService) Search(ctx context.Context, actor models.Account, criteria filter.Criteria) ([]models.BirthRecord, error) {
	if err := s.rules.AuthorizeRead(actor); err != nil {
		return nil, err
	}
	return s.search(ctx, criteria)
}

func (s *recordService) search(ctx context.Context, criteria filter.Criteria) ([]models.BirthRecord, error) {
	records, err := s.records.ListRecords(ctx, 0)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*recordService.search").Msg("failed to list records")
		return nil, err
	}
	return filter.Apply(records, criteria), nil
}

// Create stores a new record owned by actor. The midwife name and entry
// date are taken from the actor and the clock, never from the payload.
func (s *recordService) Create(ctx context.Context, actor models.Account, record models.BirthRecord) (models.BirthRecord, error) {
	log := logger.FromContext(ctx)

	if err := s.rules.AuthorizeClinical(actor); err != nil {
		log.Warn().Str("func", "*recordService.Create").Int64("account_id", actor.ID).Msg("record creation denied")
		return models.BirthRecord{}, err
	}
	if err := s.validator.Validate(ctx, record); err != nil {
		return models.BirthRecord{}, err
	}

	record.ID = 0
	record.OwnerAccountID = actor.ID
	record.Midwife = actor.FullName
	record.EntryDate = s.now().Format(models.EntryDateLayout)

	created, err := s.records.CreateRecord(ctx, record)
	if err != nil {
		log.Err(err).Str("func", "*recordService.Create").Int64("account_id", actor.ID).Msg("failed to create record")
		return models.BirthRecord{}, err
	}

	log.Info().Int64("record_id", created.ID).Int64("account_id", actor.ID).Msg("record created")
	return created, nil
}

func (s *recordService) Get(ctx context.Context, actor models.Account, id int64) (models.BirthRecord, error) {
	if err := s.rules.AuthorizeRead(actor); err != nil {
		return models.BirthRecord{}, err
	}
	return s.records.GetRecord(ctx, id)
}

// Update overwrites the clinical fields of a record the actor may write.
func (s *recordService) Update(ctx context.Context, actor models.Account, id int64, record models.BirthRecord) (models.BirthRecord, error) {
	log := logger.FromContext(ctx)

	existing, err := s.writable(ctx, actor, id)
	if err != nil {
		return models.BirthRecord{}, err
	}
	if err = s.validator.Validate(ctx, record); err != nil {
		return models.BirthRecord{}, err
	}

	record.ID = existing.ID
	record.OwnerAccountID = existing.OwnerAccountID
	record.Midwife = existing.Midwife
	record.EntryDate = existing.EntryDate
	record.CreatedAt = existing.CreatedAt

	updated, err := s.records.UpdateRecord(ctx, record)
	if err != nil {
		log.Err(err).Str("func", "*recordService.Update").Int64("record_id", id).Msg("failed to update record")
		return models.BirthRecord{}, err
	}

	log.Info().Int64("record_id", id).Int64("account_id", actor.ID).Msg("record updated")
	return updated, nil
}

func (s *recordService) Delete(ctx context.Context, actor models.Account, id int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.writable(ctx, actor, id); err != nil {
		return err
	}
	if err := s.records.DeleteRecord(ctx, id); err != nil {
		log.Err(err).Str("func", "*recordService.Delete").Int64("record_id", id).Msg("failed to delete record")
		return err
	}

	log.Info().Int64("record_id", id).Int64("account_id", actor.ID).Msg("record deleted")
	return nil
}

// writable loads the record and checks that actor may change it.
func (s *recordService) writable(ctx context.Context, actor models.Account, id int64) (models.BirthRecord, error) {
	if err := s.rules.AuthorizeClinical(actor); err != nil {
		return models.BirthRecord{}, err
	}

	existing, err := s.records.GetRecord(ctx, id)
	if err != nil {
		return models.BirthRecord{}, err
	}

	if err = s.rules.AuthorizeWrite(actor, existing); err != nil {
		logger.FromContext(ctx).Warn().
			Str("func", "*recordService.writable").
			Int64("account_id", actor.ID).
			Int64("record_id", id).
			Msg("record belongs to another midwife")
		return models.BirthRecord{}, err
	}

	return existing, nil
}

func (s *recordService) FilterOptions(ctx context.Context, actor models.Account) (models.FilterOptions, error) {
	if err := s.rules.AuthorizeRead(actor); err != nil {
		return models.FilterOptions{}, err
	}

	records, err := s.records.ListRecords(ctx, 0)
	if err != nil {
		return models.FilterOptions{}, err
	}
	return filter.Options(records), nil
}

// Dashboard aggregates every record and lists the newest ones. An empty
// register yields zero statistics rather than an error.
func (s *recordService) Dashboard(ctx context.Context, actor models.Account) (Dashboard, error) {
	if err := s.rules.AuthorizeRead(actor); err != nil {
		return Dashboard{}, err
	}

	records, err := s.records.ListRecords(ctx, 0)
	if err != nil {
		return Dashboard{}, err
	}

	stats, err := report.Compute(records)
	if err != nil && !errors.Is(err, report.ErrNoData) {
		return Dashboard{}, err
	}

	recent := records
	if len(recent) > DashboardRecent {
		recent = recent[:DashboardRecent]
	}

	return Dashboard{Stats: stats, Recent: recent}, nil
}

// Analytics aggregates the records matching criteria. It returns
// report.ErrNoData when nothing matches.
func (s *recordService) Analytics(ctx context.Context, actor models.Account, criteria filter.Criteria) (report.Statistics, error) {
	records, err := s.Search(ctx, actor, criteria)
	if err != nil {
		return report.Statistics{}, err
	}
	return report.Compute(records)
}

// Export renders the records matching criteria. The record set is the one
// Search returns for the same criteria.
func (s *recordService) Export(ctx context.Context, actor models.Account, criteria filter.Criteria, format report.Format) (ExportFile, error) {
	log := logger.FromContext(ctx)

	if err := s.rules.AuthorizeRead(actor); err != nil {
		return ExportFile{}, err
	}
	if !s.reports.Supports(format) {
		return ExportFile{}, fmt.Errorf("%w: %q", report.ErrUnknownFormat, format)
	}

	records, err := s.search(ctx, criteria)
	if err != nil {
		return ExportFile{}, err
	}

	now := s.now()
	var buf bytes.Buffer
	err = s.reports.Build(&buf, format, report.Document{
		Author:      actor.FullName,
		GeneratedAt: now,
		Records:     records,
	})
	if err != nil {
		if !errors.Is(err, report.ErrNoData) {
			log.Err(err).Str("func", "*recordService.Export").Str("format", string(format)).Msg("failed to render report")
		}
		return ExportFile{}, err
	}

	log.Info().Str("format", string(format)).Int("records", len(records)).Msg("report exported")
	return ExportFile{
		Name:        report.FileName(now, format),
		ContentType: format.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}
