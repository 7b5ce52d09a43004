package notify

//go:generate mockgen -source=interfaces.go -destination=../mock/notify_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/umay/models"
)

// EmailSender sends account verification and password reset links.
type EmailSender interface {
	SendVerification(ctx context.Context, address, token string, role models.Role, appType models.AppType, purpose models.TokenPurpose) error
}

// SMSSender issues a one-time code to a phone number.
type SMSSender interface {
	SendOTP(ctx context.Context, phone string, purpose models.TokenPurpose) error
}

// OTPVerifier checks a code issued by [SMSSender]. A code is accepted once.
type OTPVerifier interface {
	VerifyOTP(ctx context.Context, phone string, purpose models.TokenPurpose, code string) error
}

// TextTransport delivers a plain text message to a phone number.
type TextTransport interface {
	SendText(ctx context.Context, phone, text string) error
}
