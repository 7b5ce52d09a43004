// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/umay/internal/notify"
	"github.com/MKhiriev/umay/internal/policy"
	"github.com/MKhiriev/umay/internal/service"
)

var (
	ErrUserQuit   = errors.New("вышел из программы")
	errNoServices = errors.New("client services are not provided")
)

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}

// humanizeError turns service errors into messages for the status line.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrWrongPassword):
		return "Неверный логин или пароль"
	case errors.Is(err, service.ErrEmailNotVerified):
		return "Email не подтверждён"
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "Логин и пароль обязательны"
	case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return "Сессия истекла, войдите снова"
	case errors.Is(err, policy.ErrForbidden):
		return "Доступ только для персонала роддома"
	case errors.Is(err, notify.ErrTransport):
		return "Сервер временно недоступен"
	}
	return humanizeServerUnavailableError(err)
}
