package notify

import (
	"context"

	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/models"
)

// logTransport writes SMS to the log instead of sending them.
type logTransport struct{}

func (logTransport) SendText(ctx context.Context, phone, text string) error {
	logger.FromContext(ctx).Info().
		Str("func", "logTransport.SendText").
		Str("phone", phone).
		Str("text", text).
		Msg("sms not sent: log provider")
	return nil
}

// logMailer writes verification links to the log instead of mailing them.
type logMailer struct {
	publicURL string
}

func (m logMailer) SendVerification(ctx context.Context, address, token string, role models.Role, appType models.AppType, purpose models.TokenPurpose) error {
	subject, _ := verificationMessage(m.publicURL, token, role, appType, purpose)
	logger.FromContext(ctx).Info().
		Str("func", "logMailer.SendVerification").
		Str("to", address).
		Str("subject", subject).
		Str("link", verificationLink(m.publicURL, token, purpose)).
		Msg("email not sent: log provider")
	return nil
}
