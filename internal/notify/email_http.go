package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/utils"
	"github.com/MKhiriev/umay/models"
)

const mailSendPath = "/send"

type mailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// httpMailer posts messages to a JSON mail API authenticated with a bearer
// key.
type httpMailer struct {
	client    *utils.HTTPClient
	from      string
	publicURL string
}

// NewHTTPMailer creates an [EmailSender] for the mail API in cfg. Links in
// the messages point at publicURL.
func NewHTTPMailer(cfg config.Email, publicURL string) EmailSender {
	client := utils.NewHTTPClient(strings.TrimRight(cfg.BaseURL, "/"), cfg.Timeout)
	client.SetAuthToken(cfg.APIKey)

	return &httpMailer{
		client:    client,
		from:      cfg.From,
		publicURL: publicURL,
	}
}

func (m *httpMailer) SendVerification(ctx context.Context, address, token string, role models.Role, appType models.AppType, purpose models.TokenPurpose) error {
	log := logger.FromContext(ctx)

	subject, text := verificationMessage(m.publicURL, token, role, appType, purpose)
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(mailRequest{From: m.from, To: address, Subject: subject, Text: text}).
		Post(mailSendPath)
	if err != nil {
		log.Err(err).Str("func", "*httpMailer.SendVerification").Msg("mail request failed")
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if resp.IsError() {
		log.Error().
			Str("func", "*httpMailer.SendVerification").
			Int("status", resp.StatusCode()).
			Msg("mail api rejected message")
		return fmt.Errorf("%w: mail api responded with status %d", ErrTransport, resp.StatusCode())
	}

	return nil
}
