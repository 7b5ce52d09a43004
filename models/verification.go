package models

import "time"

// TokenPurpose tells what a verification token or OTP code confirms.
type TokenPurpose string

const (
	PurposeRegistration  TokenPurpose = "registration"
	PurposePasswordReset TokenPurpose = "password_reset"
)

// VerificationToken is a single-use emailed token.
type VerificationToken struct {
	Token     string       `json:"token"`
	AccountID int64        `json:"account_id"`
	Purpose   TokenPurpose `json:"purpose"`
	ExpiresAt time.Time    `json:"expires_at"`
	UsedAt    *time.Time   `json:"used_at,omitempty"`
}

// Delivery channels of a password reset.
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// OTPRequest asks for a one-time code to be sent to the account's phone.
// Accounts without a phone get a reset link on their verified email.
type OTPRequest struct {
	Login   string       `json:"login"`
	Purpose TokenPurpose `json:"purpose"`
}

// OTPResponse tells the caller where the code or link went.
type OTPResponse struct {
	Channel string `json:"channel"`
}

// PasswordResetRequest completes a password reset. Either Login with the
// SMS Code or the emailed Token must be set.
type PasswordResetRequest struct {
	Login           string `json:"login,omitempty"`
	Code            string `json:"code,omitempty"`
	Token           string `json:"token,omitempty"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}
