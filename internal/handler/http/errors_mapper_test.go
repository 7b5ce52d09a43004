package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/umay/internal/app"
	"github.com/MKhiriev/umay/internal/content"
	"github.com/MKhiriev/umay/internal/filter"
	"github.com/MKhiriev/umay/internal/notify"
	"github.com/MKhiriev/umay/internal/policy"
	"github.com/MKhiriev/umay/internal/report"
	"github.com/MKhiriev/umay/internal/service"
	"github.com/MKhiriev/umay/internal/store"
	"github.com/MKhiriev/umay/internal/validators"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrWrongPassword, http.StatusUnauthorized},
		{fmt.Errorf("%w: %w", store.ErrLoginAlreadyExists, errors.New("unique violation")), http.StatusConflict},
		{&validators.ValidationError{Field: "age", Err: validators.ErrOutOfRange}, http.StatusBadRequest},
		{&filter.ValidationError{Field: "date_to", Reason: "bad date"}, http.StatusBadRequest},
		{policy.ErrForbidden, http.StatusForbidden},
		{report.ErrNoData, http.StatusNotFound},
		{content.ErrInvalidTransition, http.StatusConflict},
		{fmt.Errorf("%w: timeout", notify.ErrTransport), http.StatusBadGateway},
		{service.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{fmt.Errorf("%w: %w", store.ErrScanningRow, errors.New("boom")), http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, statusFromError(tc.err))
		})
	}
}

func TestWriteError_Body(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
		wantField   string
	}{
		{
			name:        "server errors are not leaked",
			err:         fmt.Errorf("%w: pq: relation missing", store.ErrExecutingQuery),
			wantMessage: app.MsgInternalServerError,
		},
		{
			name:        "field errors name the field",
			err:         &validators.ValidationError{Field: "password_confirm", Err: validators.ErrPasswordMismatch},
			wantMessage: validators.ErrPasswordMismatch.Error(),
			wantField:   "password_confirm",
		},
		{
			name:        "criteria errors name the parameter",
			err:         &filter.ValidationError{Field: "age_min", Reason: "must be a number"},
			wantMessage: "must be a number",
			wantField:   "age_min",
		},
		{
			name:        "not found",
			err:         store.ErrRecordNotFound,
			wantMessage: app.MsgNotFound,
		},
		{
			name:        "sentinel text",
			err:         fmt.Errorf("%w: topic", content.ErrEmptyTopic),
			wantMessage: content.ErrEmptyTopic.Error(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/", nil))

			writeError(rec, req, "test", tc.err)

			body := decodeError(t, rec)
			assert.Equal(t, tc.wantMessage, body.Error)
			assert.Equal(t, tc.wantField, body.Field)
		})
	}
}
