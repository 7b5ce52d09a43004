// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the store.
//
// Every failure is a [*ValidationError] naming the offending field, so the
// HTTP layer can point the user at it. Validation may be scoped to a subset
// of fields by passing their names to Validate.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
