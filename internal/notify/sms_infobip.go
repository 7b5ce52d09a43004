// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/utils"
)

const infobipSendPath = "/sms/2/text/advanced"

type infobipRequest struct {
	Messages []infobipMessage `json:"messages"`
}

type infobipMessage struct {
	From         string               `json:"from"`
	Destinations []infobipDestination `json:"destinations"`
	Text         string               `json:"text"`
}

type infobipDestination struct {
	To string `json:"to"`
}

// infobipTransport sends SMS through the Infobip HTTP API.
type infobipTransport struct {
	client *utils.HTTPClient
	apiKey string
	sender string
}

// NewInfobipTransport creates a [TextTransport] for the Infobip account in cfg.
func NewInfobipTransport(cfg config.SMS) TextTransport {
	return &infobipTransport{
		client: utils.NewHTTPClient(strings.TrimRight(cfg.BaseURL, "/"), cfg.Timeout),
		apiKey: cfg.APIKey,
		sender: cfg.Sender,
	}
}

func (t *infobipTransport) SendText(ctx context.Context, phone, text string) error {
	log := logger.FromContext(ctx)

	body := infobipRequest{
		Messages: []infobipMessage{{
			From:         t.sender,
			Destinations: []infobipDestination{{To: infobipNumber(phone)}},
			Text:         text,
		}},
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "App "+t.apiKey).
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post(infobipSendPath)
	if err != nil {
		log.Err(err).Str("func", "*infobipTransport.SendText").Msg("infobip request failed")
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if resp.IsError() {
		log.Error().
			Str("func", "*infobipTransport.SendText").
			Int("status", resp.StatusCode()).
			Str("body", resp.String()).
			Msg("infobip rejected message")
		return fmt.Errorf("%w: infobip responded with status %d", ErrTransport, resp.StatusCode())
	}

	return nil
}

// infobipNumber strips everything except digits: Infobip expects
// international numbers without the leading plus.
func infobipNumber(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}
