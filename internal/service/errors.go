package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong login or password")
	ErrEmailNotVerified    = errors.New("email not verified")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrLoginReserved is returned when someone tries to register the
	// configured super-admin login.
	ErrLoginReserved = errors.New("login is reserved")

	ErrNoResetChannel          = errors.New("account has neither a phone nor a verified email")
	ErrSuperAdminNotConfigured = errors.New("super-admin login or password is not configured")

	ErrFileTooLarge         = errors.New("file is too large")
	ErrUnsupportedMediaType = errors.New("only images and videos can be uploaded")
	ErrUnknownFeed          = errors.New("unknown feed")
	ErrUnknownCity          = errors.New("unknown city")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
