package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/umay/internal/adapter"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/report"
	"github.com/MKhiriev/umay/models"
)

type clientRecordService struct {
	adapter adapter.ServerAdapter

	logger *logger.Logger
}

func NewClientRecordService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientRecordService {
	return &clientRecordService{adapter: serverAdapter, logger: logger}
}

func (s *clientRecordService) List(ctx context.Context, search string) ([]models.BirthRecord, error) {
	list, err := s.adapter.ListRecords(ctx, search)
	if err != nil {
		s.logger.Err(err).Str("func", "*clientRecordService.List").Msg("failed to list records")
		return nil, mapAdapterError(err)
	}
	return list.Records, nil
}

// Dashboard treats an empty register as zero statistics.
func (s *clientRecordService) Dashboard(ctx context.Context) (adapter.Dashboard, error) {
	dashboard, err := s.adapter.Dashboard(ctx)
	err = mapAdapterError(err)
	if errors.Is(err, report.ErrNoData) {
		return adapter.Dashboard{}, nil
	}
	if err != nil {
		s.logger.Err(err).Str("func", "*clientRecordService.Dashboard").Msg("failed to load dashboard")
		return adapter.Dashboard{}, err
	}
	return dashboard, nil
}

// RecordSummary renders a record as a short plain-text note for the
// clipboard. Only the complications that are present are listed.
func RecordSummary(r models.BirthRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s, %d лет, %d нед.\n", r.PatientName, r.Age, r.PregnancyWeeks)
	fmt.Fprintf(&b, "Роды: %s %s, %s\n", r.BirthDate, r.BirthTime, r.DeliveryMethod)
	fmt.Fprintf(&b, "Ребёнок: %s, %d г\n", r.ChildGender, r.ChildWeight)
	fmt.Fprintf(&b, "Кровопотеря: %d мл\n", r.BloodLoss)

	var present []string
	for i, on := range r.FlagValues() {
		if on {
			present = append(present, models.ComplicationFlags[i].Label)
		}
	}
	if len(present) > 0 {
		fmt.Fprintf(&b, "Осложнения: %s\n", strings.Join(present, ", "))
	}
	if r.Midwife != "" {
		fmt.Fprintf(&b, "Акушерка: %s\n", r.Midwife)
	}

	return strings.TrimRight(b.String(), "\n")
}
