package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/umay/models"
)

// Account fields.
const (
	FieldFullName        = "full_name"
	FieldLogin           = "login"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirm"
	FieldRole            = "role"
	FieldAppType         = "app_type"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldCode            = "code"
	FieldToken           = "token"
)

const (
	MinPasswordLength = 6
	MaxLoginLength    = 64
)

// selfRegistrationRoles are the roles a user may request at sign up.
// Administrators are only created by seeding.
var selfRegistrationRoles = []models.Role{models.RoleUser, models.RoleMidwife, models.RoleManager}

// AccountValidator checks registration and password reset payloads.
type AccountValidator struct{}

func NewAccountValidator() Validator {
	return &AccountValidator{}
}

func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Account:
		return v.validateRegistration(value, fields...)
	case *models.Account:
		return v.validateRegistration(*value, fields...)
	case models.PasswordResetRequest:
		return v.validatePasswordReset(value, fields...)
	case *models.PasswordResetRequest:
		return v.validatePasswordReset(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateRegistration(a models.Account, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFullName, FieldLogin, FieldPassword, FieldPasswordConfirm, FieldRole, FieldAppType, FieldEmail, FieldPhone}
	}

	for _, f := range fields {
		switch f {
		case FieldFullName:
			if strings.TrimSpace(a.FullName) == "" {
				return invalid(f, ErrRequired)
			}
		case FieldLogin:
			login := strings.TrimSpace(a.Login)
			if login == "" {
				return invalid(f, ErrRequired)
			}
			if utf8.RuneCountInString(login) > MaxLoginLength {
				return invalid(f, ErrTooLong)
			}
			if strings.ContainsAny(login, " \t\n") {
				return invalid(f, ErrInvalidFormat)
			}
		case FieldPassword:
			if err := checkPassword(a.Password); err != nil {
				return invalid(f, err)
			}
		case FieldPasswordConfirm:
			if a.Password != a.PasswordConfirm {
				return invalid(f, ErrPasswordMismatch)
			}
		case FieldRole:
			found := false
			for _, r := range selfRegistrationRoles {
				if a.Role == r {
					found = true
					break
				}
			}
			if !found {
				return invalid(f, ErrNotAllowed)
			}
		case FieldAppType:
			if a.AppType != models.AppUmay && a.AppType != models.AppMama {
				return invalid(f, ErrNotAllowed)
			}
		case FieldEmail:
			if a.Email == "" {
				continue
			}
			if addr, err := mail.ParseAddress(a.Email); err != nil || addr.Address != a.Email {
				return invalid(f, ErrInvalidFormat)
			}
		case FieldPhone:
			if a.Phone == "" {
				continue
			}
			if !validPhone(a.Phone) {
				return invalid(f, ErrInvalidFormat)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validatePasswordReset(r models.PasswordResetRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldToken, FieldPassword, FieldPasswordConfirm}
	}

	for _, f := range fields {
		switch f {
		case FieldToken:
			// either the emailed token or login + sms code
			if r.Token != "" {
				continue
			}
			if strings.TrimSpace(r.Login) == "" {
				return invalid(FieldLogin, ErrRequired)
			}
			if len(r.Code) != 6 || strings.Trim(r.Code, "0123456789") != "" {
				return invalid(FieldCode, ErrInvalidFormat)
			}
		case FieldPassword:
			if err := checkPassword(r.Password); err != nil {
				return invalid(f, err)
			}
		case FieldPasswordConfirm:
			if r.Password != r.PasswordConfirm {
				return invalid(f, ErrPasswordMismatch)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func checkPassword(password string) error {
	if password == "" {
		return ErrRequired
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrTooShort
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return ErrTooLong
	}
	return nil
}

// validPhone accepts international numbers with optional separators.
func validPhone(phone string) bool {
	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 10 && digits <= 15
}
