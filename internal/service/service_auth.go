package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/notify"
	"github.com/MKhiriev/umay/internal/policy"
	"github.com/MKhiriev/umay/internal/store"
	"github.com/MKhiriev/umay/internal/utils"
	"github.com/MKhiriev/umay/internal/validators"
	"github.com/MKhiriev/umay/models"
)

const superAdminFullName = "Администратор"

// authService is the concrete implementation of AuthService.
// Passwords are stored as bcrypt hashes, sessions are stateless JWTs.
type authService struct {
	accounts  store.AccountRepository
	mailer    notify.EmailSender
	sms       notify.SMSSender
	otp       notify.OTPVerifier
	validator validators.Validator
	rules     *policy.Rules
	directory config.Directory
	tokens    *utils.UUIDGenerator

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	// emailVerification gates login of accounts with an unconfirmed email.
	emailVerification bool
	verificationTTL   time.Duration

	superAdminLogin    string
	superAdminPassword string

	bcryptCost int
	now        func() time.Time

	logger *logger.Logger
}

// AuthDeps bundles the collaborators of the auth service.
type AuthDeps struct {
	Accounts  store.AccountRepository
	Mailer    notify.EmailSender
	SMS       notify.SMSSender
	OTP       notify.OTPVerifier
	Rules     *policy.Rules
	Directory config.Directory
}

// NewAuthService constructs an AuthService from deps and the security
// parameters in cfg.
func NewAuthService(deps AuthDeps, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		accounts:           deps.Accounts,
		mailer:             deps.Mailer,
		sms:                deps.SMS,
		otp:                deps.OTP,
		validator:          validators.NewAccountValidator(),
		rules:              deps.Rules,
		directory:          deps.Directory,
		tokens:             utils.NewUUIDGenerator(),
		tokenSignKey:       cfg.TokenSignKey,
		tokenIssuer:        cfg.TokenIssuer,
		tokenDuration:      cfg.TokenDuration,
		emailVerification:  cfg.EmailVerification,
		verificationTTL:    cfg.VerificationTTL,
		superAdminLogin:    cfg.SuperAdminLogin,
		superAdminPassword: cfg.SuperAdminPassword,
		bcryptCost:         bcrypt.DefaultCost,
		now:                time.Now,
		logger:             logger,
	}
}

// Register creates a new account.
//
// Mama app sign ups always get the user role; staff sign ups default to
// midwife. When the account has an email and verification is enabled the
// verification email is sent inside the registration transaction, so a
// delivery failure leaves no account behind.
func (a *authService) Register(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	normalizeRegistration(&account)

	if err := a.validator.Validate(ctx, account); err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("login", account.Login).Msg("invalid registration")
		return models.Account{}, err
	}
	if a.rules.IsSuperAdmin(account) {
		log.Warn().Str("func", "*authService.Register").Str("login", account.Login).Msg("attempt to register the super-admin login")
		return models.Account{}, ErrLoginReserved
	}
	if account.City != "" && account.Institution != "" && !a.directory.HasInstitution(account.City, account.Institution) {
		return models.Account{}, &validators.ValidationError{Field: "institution", Err: validators.ErrNotAllowed}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), a.bcryptCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = string(hash)
	account.Password, account.PasswordConfirm = "", ""
	account.EmailVerified = false

	var (
		token        *models.VerificationToken
		beforeCommit func(models.Account) error
	)
	if account.Email != "" && a.emailVerification {
		token = &models.VerificationToken{
			Token:     a.tokens.Generate(),
			Purpose:   models.PurposeRegistration,
			ExpiresAt: a.now().Add(a.verificationTTL).UTC(),
		}
		beforeCommit = func(created models.Account) error {
			return a.mailer.SendVerification(ctx, created.Email, token.Token, created.Role, created.AppType, models.PurposeRegistration)
		}
	}

	registered, err := a.accounts.CreateAccount(ctx, account, token, beforeCommit)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("login", account.Login).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	log.Info().Int64("account_id", registered.ID).Str("role", string(registered.Role)).Msg("account registered")
	return registered.Public(), nil
}

func normalizeRegistration(account *models.Account) {
	account.ID = 0
	account.FullName = strings.TrimSpace(account.FullName)
	account.Login = strings.TrimSpace(account.Login)
	account.Email = strings.TrimSpace(account.Email)
	account.Phone = strings.TrimSpace(account.Phone)

	if account.AppType == "" {
		account.AppType = models.AppUmay
	}
	switch {
	case account.AppType == models.AppMama:
		account.Role = models.RoleUser
	case account.Role == "":
		account.Role = models.RoleMidwife
	}
}

// Login authenticates an account by login and password.
//
// Unknown logins and wrong passwords both yield ErrWrongPassword.
// An account with an unconfirmed email gets ErrEmailNotVerified while
// verification is enabled.
func (a *authService) Login(ctx context.Context, login, password string) (models.Account, error) {
	log := logger.FromContext(ctx)

	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		log.Error().Str("func", "*authService.Login").Msg("invalid credentials provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	account, err := a.accounts.FindAccountByLogin(ctx, login)
	if errors.Is(err, store.ErrNoAccountWasFound) {
		log.Warn().Str("func", "*authService.Login").Str("login", login).Msg("unknown login")
		return models.Account{}, ErrWrongPassword
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Str("login", login).Msg("account search by login failed")
		return models.Account{}, fmt.Errorf("account search by login failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("func", "*authService.Login").Int64("account_id", account.ID).Msg("wrong password")
		return models.Account{}, ErrWrongPassword
	}

	if a.emailVerification && account.Email != "" && !account.EmailVerified && !a.rules.IsSuperAdmin(account) {
		return models.Account{}, ErrEmailNotVerified
	}

	return account.Public(), nil
}

// CreateToken issues a signed JWT for account.
func (a *authService) CreateToken(ctx context.Context, account models.Account) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, account.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT. Any failure is reported as
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) GetAccount(ctx context.Context, id int64) (models.Account, error) {
	account, err := a.accounts.FindAccountByID(ctx, id)
	if err != nil {
		return models.Account{}, err
	}
	return account.Public(), nil
}

// VerifyEmail consumes a registration token.
func (a *authService) VerifyEmail(ctx context.Context, token string) (models.Account, error) {
	if strings.TrimSpace(token) == "" {
		return models.Account{}, ErrInvalidDataProvided
	}

	account, err := a.accounts.ConsumeVerificationToken(ctx, token, models.PurposeRegistration, a.now().UTC())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.VerifyEmail").Msg("email verification failed")
		return models.Account{}, err
	}

	return account.Public(), nil
}

// RequestPasswordReset sends an SMS code to the account's phone. Accounts
// without a phone get a reset link on their verified email instead.
func (a *authService) RequestPasswordReset(ctx context.Context, req models.OTPRequest) (models.OTPResponse, error) {
	log := logger.FromContext(ctx)

	login := strings.TrimSpace(req.Login)
	if login == "" {
		return models.OTPResponse{}, ErrInvalidDataProvided
	}
	if req.Purpose == "" {
		req.Purpose = models.PurposePasswordReset
	}
	if req.Purpose != models.PurposePasswordReset {
		return models.OTPResponse{}, ErrInvalidDataProvided
	}

	account, err := a.accounts.FindAccountByLogin(ctx, login)
	if err != nil {
		log.Err(err).Str("func", "*authService.RequestPasswordReset").Str("login", login).Msg("account search by login failed")
		return models.OTPResponse{}, err
	}

	switch {
	case account.Phone != "":
		if err = a.sms.SendOTP(ctx, account.Phone, req.Purpose); err != nil {
			log.Err(err).Str("func", "*authService.RequestPasswordReset").Int64("account_id", account.ID).Msg("failed to send otp")
			return models.OTPResponse{}, err
		}
		return models.OTPResponse{Channel: models.ChannelSMS}, nil

	case account.Email != "" && account.EmailVerified:
		token := models.VerificationToken{
			Token:     a.tokens.Generate(),
			AccountID: account.ID,
			Purpose:   models.PurposePasswordReset,
			ExpiresAt: a.now().Add(a.verificationTTL).UTC(),
		}
		err = a.accounts.CreateVerificationToken(ctx, token, func() error {
			return a.mailer.SendVerification(ctx, account.Email, token.Token, account.Role, account.AppType, models.PurposePasswordReset)
		})
		if err != nil {
			log.Err(err).Str("func", "*authService.RequestPasswordReset").Int64("account_id", account.ID).Msg("failed to send reset link")
			return models.OTPResponse{}, err
		}
		return models.OTPResponse{Channel: models.ChannelEmail}, nil
	}

	return models.OTPResponse{}, ErrNoResetChannel
}

// ResetPassword sets a new password after checking the emailed token or
// the SMS code.
func (a *authService) ResetPassword(ctx context.Context, req models.PasswordResetRequest) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return err
	}

	var (
		account models.Account
		err     error
	)
	if req.Token != "" {
		account, err = a.accounts.ConsumeVerificationToken(ctx, req.Token, models.PurposePasswordReset, a.now().UTC())
		if err != nil {
			log.Err(err).Str("func", "*authService.ResetPassword").Msg("reset token rejected")
			return err
		}
	} else {
		account, err = a.accounts.FindAccountByLogin(ctx, strings.TrimSpace(req.Login))
		if err != nil {
			return err
		}
		if account.Phone == "" {
			return ErrNoResetChannel
		}
		if err = a.otp.VerifyOTP(ctx, account.Phone, models.PurposePasswordReset, req.Code); err != nil {
			log.Warn().Str("func", "*authService.ResetPassword").Int64("account_id", account.ID).Msg("otp rejected")
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err = a.accounts.UpdatePassword(ctx, account.ID, string(hash)); err != nil {
		log.Err(err).Str("func", "*authService.ResetPassword").Int64("account_id", account.ID).Msg("failed to update password")
		return err
	}

	log.Info().Int64("account_id", account.ID).Msg("password reset")
	return nil
}

// SeedSuperAdmin creates the configured super-admin account when missing.
func (a *authService) SeedSuperAdmin(ctx context.Context) (models.Account, bool, error) {
	if a.superAdminLogin == "" || a.superAdminPassword == "" {
		return models.Account{}, false, ErrSuperAdminNotConfigured
	}

	existing, err := a.accounts.FindAccountByLogin(ctx, a.superAdminLogin)
	if err == nil {
		return existing.Public(), false, nil
	}
	if !errors.Is(err, store.ErrNoAccountWasFound) {
		return models.Account{}, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(a.superAdminPassword), a.bcryptCost)
	if err != nil {
		return models.Account{}, false, fmt.Errorf("hash password: %w", err)
	}

	created, err := a.accounts.CreateAccount(ctx, models.Account{
		FullName:      superAdminFullName,
		Login:         a.superAdminLogin,
		PasswordHash:  string(hash),
		Role:          models.RoleAdmin,
		AppType:       models.AppUmay,
		EmailVerified: true,
	}, nil, nil)
	if err != nil {
		return models.Account{}, false, fmt.Errorf("super-admin creation ended with error: %w", err)
	}

	a.logger.Info().Int64("account_id", created.ID).Str("login", created.Login).Msg("super-admin account created")
	return created.Public(), true, nil
}
