package service

import (
	"fmt"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/content"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/notify"
	"github.com/MKhiriev/umay/internal/policy"
	"github.com/MKhiriev/umay/internal/report"
	"github.com/MKhiriev/umay/internal/store"
)

type Services struct {
	AuthService      AuthService
	RecordService    RecordService
	ContentService   ContentService
	MediaService     MediaService
	DirectoryService DirectoryService
	AppInfoService   AppInfoService

	// Rules is shared with the transport layer for role checks that need
	// no storage.
	Rules *policy.Rules
}

// NewServices wires every service to its storage and outbound transports.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	mailer, err := notify.NewEmailSender(cfg.Notify.Email, cfg.App.PublicURL, logger)
	if err != nil {
		return nil, fmt.Errorf("email sender: %w", err)
	}
	transport, err := notify.NewTextTransport(cfg.Notify.SMS, logger)
	if err != nil {
		return nil, fmt.Errorf("sms transport: %w", err)
	}
	otp := notify.NewOTPSender(transport, storages.OTP, cfg.App.OTPHashKey, cfg.App.OTPTTL)

	generator, err := content.NewGenerator()
	if err != nil {
		return nil, fmt.Errorf("content generator: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	rules := policy.NewRules(cfg.App.SuperAdminLogin)

	return &Services{
		AuthService: NewAuthService(AuthDeps{
			Accounts:  storages.Accounts,
			Mailer:    mailer,
			SMS:       otp,
			OTP:       otp,
			Rules:     rules,
			Directory: cfg.Directory,
		}, cfg.App, logger),
		RecordService:    NewRecordService(storages.BirthRecords, rules, report.NewBuilder(cfg.Reports), logger),
		ContentService:   NewContentService(storages.Articles, generator, rules, logger),
		MediaService:     NewMediaService(storages.Media, rules, cfg.Storage.Files.MaxUploadSize, logger),
		DirectoryService: NewDirectoryService(cfg.Directory),
		AppInfoService:   appInfo,
		Rules:            rules,
	}, nil
}
