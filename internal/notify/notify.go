package notify

import (
	"fmt"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/logger"
)

// NewEmailSender returns the mailer selected by cfg.Provider.
func NewEmailSender(cfg config.Email, publicURL string, log *logger.Logger) (EmailSender, error) {
	switch cfg.Provider {
	case config.ProviderHTTP:
		log.Debug().Str("base_url", cfg.BaseURL).Msg("creating http mailer")
		return NewHTTPMailer(cfg, publicURL), nil
	case config.ProviderLog:
		log.Debug().Msg("creating log mailer")
		return logMailer{publicURL: publicURL}, nil
	}
	return nil, fmt.Errorf("%w: email %q", ErrUnknownProvider, cfg.Provider)
}

// NewTextTransport returns the SMS transport selected by cfg.Provider.
func NewTextTransport(cfg config.SMS, log *logger.Logger) (TextTransport, error) {
	switch cfg.Provider {
	case config.ProviderInfobip:
		log.Debug().Str("base_url", cfg.BaseURL).Msg("creating infobip transport")
		return NewInfobipTransport(cfg), nil
	case config.ProviderLog:
		log.Debug().Msg("creating log sms transport")
		return logTransport{}, nil
	}
	return nil, fmt.Errorf("%w: sms %q", ErrUnknownProvider, cfg.Provider)
}
