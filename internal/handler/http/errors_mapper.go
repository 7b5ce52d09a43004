package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/umay/internal/app"
	"github.com/MKhiriev/umay/internal/content"
	"github.com/MKhiriev/umay/internal/filter"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/notify"
	"github.com/MKhiriev/umay/internal/policy"
	"github.com/MKhiriev/umay/internal/report"
	"github.com/MKhiriev/umay/internal/service"
	"github.com/MKhiriev/umay/internal/store"
	"github.com/MKhiriev/umay/internal/utils"
	"github.com/MKhiriev/umay/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrEmailNotVerified:        http.StatusForbidden,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrLoginReserved:           http.StatusConflict,
	service.ErrNoResetChannel:          http.StatusUnprocessableEntity,
	service.ErrFileTooLarge:            http.StatusRequestEntityTooLarge,
	service.ErrUnsupportedMediaType:    http.StatusUnsupportedMediaType,
	service.ErrUnknownFeed:             http.StatusNotFound,
	service.ErrUnknownCity:             http.StatusNotFound,

	policy.ErrForbidden: http.StatusForbidden,

	filter.ErrInvalidCriteria: http.StatusBadRequest,

	report.ErrNoData:        http.StatusNotFound,
	report.ErrUnknownFormat: http.StatusBadRequest,

	content.ErrInvalidTransition: http.StatusConflict,
	content.ErrUnknownCategory:   http.StatusBadRequest,
	content.ErrInvalidWeek:       http.StatusBadRequest,
	content.ErrEmptyTopic:        http.StatusBadRequest,

	notify.ErrTransport:   http.StatusBadGateway,
	notify.ErrInvalidCode: http.StatusBadRequest,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoAccountWasFound:  http.StatusNotFound,
	store.ErrRecordNotFound:     http.StatusNotFound,
	store.ErrArticleNotFound:    http.StatusNotFound,
	store.ErrMediaNotFound:      http.StatusNotFound,
	store.ErrTokenNotFound:      http.StatusBadRequest,
	store.ErrCodeNotFound:       http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	_, status := classify(err)
	return status
}

// classify returns the sentinel err matched and its status. Field level
// validation errors take precedence over the table.
func classify(err error) (error, int) {
	var fieldErr *validators.ValidationError
	if errors.As(err, &fieldErr) {
		return fieldErr, http.StatusBadRequest
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return target, status
		}
	}
	return nil, http.StatusInternalServerError
}

// writeError logs err with the request logger and replies with the mapped
// status. Server-side failures never leak their text.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	log := logger.FromRequest(r)

	target, status := classify(err)

	var (
		message = app.MsgInternalServerError
		field   string
	)
	switch {
	case status == http.StatusBadGateway:
		message = app.MsgTryLater
	case status >= http.StatusInternalServerError:
	case errors.Is(err, report.ErrNoData):
		message = app.MsgNoData
	case errors.Is(err, policy.ErrForbidden):
		message = app.MsgForbidden
	case errors.Is(err, service.ErrWrongPassword):
		message = app.MsgInvalidLoginPassword
	case errors.Is(err, service.ErrEmailNotVerified):
		message = app.MsgEmailNotVerified
	case status == http.StatusNotFound:
		message = app.MsgNotFound
	default:
		message = target.Error()
	}

	var fieldErr *validators.ValidationError
	var criteriaErr *filter.ValidationError
	switch {
	case errors.As(err, &fieldErr):
		field = fieldErr.Field
		message = fieldErr.Err.Error()
	case errors.As(err, &criteriaErr):
		field = criteriaErr.Field
		message = criteriaErr.Reason
	}

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")
	} else {
		log.Warn().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, message, field, status)
}
