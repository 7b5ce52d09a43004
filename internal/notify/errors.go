package notify

import "errors"

var (
	// ErrTransport is returned when the provider could not be reached or
	// rejected the message.
	ErrTransport = errors.New("notification transport failed")

	ErrInvalidCode     = errors.New("invalid or expired code")
	ErrUnknownProvider = errors.New("unknown notification provider")
)
