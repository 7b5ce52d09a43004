// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/store"
	"github.com/MKhiriev/umay/internal/utils"
	"github.com/MKhiriev/umay/models"
)

const (
	otpDigits = 6
	// maxOTPAttempts is how many wrong guesses a code survives.
	maxOTPAttempts = 5
)

// OTPSender generates six-digit codes, keeps their HMAC in an
// [store.OTPStore] and delivers the code over a [TextTransport].
type OTPSender struct {
	transport    TextTransport
	codes        store.OTPStore
	hashKey      string
	ttl          time.Duration
	generateCode func() (string, error)
}

// NewOTPSender creates an [OTPSender]. Codes expire after ttl.
func NewOTPSender(transport TextTransport, codes store.OTPStore, hashKey string, ttl time.Duration) *OTPSender {
	return &OTPSender{
		transport:    transport,
		codes:        codes,
		hashKey:      hashKey,
		ttl:          ttl,
		generateCode: randomCode,
	}
}

// SendOTP replaces any pending code for (phone, purpose) and sends the new
// one. If delivery fails the stored code is discarded.
func (s *OTPSender) SendOTP(ctx context.Context, phone string, purpose models.TokenPurpose) error {
	log := logger.FromContext(ctx)

	code, err := s.generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	key := otpKey(phone, purpose)
	if err = s.codes.SaveCode(ctx, key, utils.HashString(code, s.hashKey), s.ttl); err != nil {
		log.Err(err).Str("func", "*OTPSender.SendOTP").Msg("failed to save code")
		return fmt.Errorf("failed to save code: %w", err)
	}

	if err = s.transport.SendText(ctx, phone, otpText(code, purpose, s.ttl)); err != nil {
		if delErr := s.codes.DeleteCode(ctx, key); delErr != nil {
			log.Err(delErr).Str("func", "*OTPSender.SendOTP").Msg("failed to discard undelivered code")
		}
		return err
	}

	return nil
}

// VerifyOTP accepts code once. Unknown, expired and mismatching codes all
// return [ErrInvalidCode]. After maxOTPAttempts wrong guesses the pending
// code is discarded and a new one has to be requested.
func (s *OTPSender) VerifyOTP(ctx context.Context, phone string, purpose models.TokenPurpose, code string) error {
	key := otpKey(phone, purpose)

	stored, err := s.codes.GetCode(ctx, key)
	if errors.Is(err, store.ErrCodeNotFound) {
		return ErrInvalidCode
	}
	if err != nil {
		return fmt.Errorf("failed to read code: %w", err)
	}

	if !utils.EqualHash(stored, utils.HashString(code, s.hashKey)) {
		return s.failAttempt(ctx, key)
	}

	return s.codes.DeleteCode(ctx, key)
}

func (s *OTPSender) failAttempt(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	attempts, err := s.codes.IncrementAttempts(ctx, key, s.ttl)
	if errors.Is(err, store.ErrCodeNotFound) {
		return ErrInvalidCode
	}
	if err != nil {
		return fmt.Errorf("failed to count attempt: %w", err)
	}
	if attempts < maxOTPAttempts {
		return ErrInvalidCode
	}

	log.Warn().Str("func", "*OTPSender.VerifyOTP").Int64("attempts", attempts).Msg("too many wrong codes, discarding")
	if err = s.codes.DeleteCode(ctx, key); err != nil {
		return fmt.Errorf("failed to discard code: %w", err)
	}
	return ErrInvalidCode
}

func otpKey(phone string, purpose models.TokenPurpose) string {
	return string(purpose) + ":" + infobipNumber(phone)
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
