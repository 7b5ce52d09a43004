// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/umay/internal/adapter"
	"github.com/MKhiriev/umay/internal/app"
	"github.com/MKhiriev/umay/internal/notify"
	"github.com/MKhiriev/umay/internal/policy"
	"github.com/MKhiriev/umay/internal/report"
)

// mapAdapterError translates a transport error of the adapter into the
// business error the server started from.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		if msg == app.MsgInvalidLoginPassword {
			return ErrWrongPassword
		}
		return ErrTokenIsExpiredOrInvalid

	case errors.Is(err, adapter.ErrForbidden):
		if msg == app.MsgEmailNotVerified {
			return ErrEmailNotVerified
		}
		return policy.ErrForbidden

	case errors.Is(err, adapter.ErrNotFound):
		if msg == app.MsgNoData {
			return report.ErrNoData
		}

	case errors.Is(err, adapter.ErrBadGateway):
		return notify.ErrTransport
	}

	return err
}

// extractBody returns <body> of "<sentinel>: <body>".
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
