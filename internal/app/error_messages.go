// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared message constants used by the UMAY HTTP
// handlers and the terminal client.
//
// Msg* constants are written into error response bodies. Keeping them in one
// place keeps the wording of the API consistent.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidDataProvided is returned when input fails validation and no
	// more specific message applies.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidID is returned when a path id is not a positive integer.
	MsgInvalidID = "invalid id"

	// MsgInvalidLoginPassword is returned when the login/password pair does
	// not match any account.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgEmailNotVerified is returned on login before the emailed link
	// was followed.
	MsgEmailNotVerified = "email not verified"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token cannot be
	// verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgForbidden is returned when the account lacks the rights for the
	// operation.
	MsgForbidden = "access denied"

	// MsgNotFound is returned for unknown records, articles and accounts.
	MsgNotFound = "not found"

	// MsgNoData is returned when analytics or an export has nothing to show.
	MsgNoData = "no data in range"

	// MsgTryLater is returned when an SMS or email provider failed.
	MsgTryLater = "notification service is unavailable, try later"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"
)
