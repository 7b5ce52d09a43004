// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the merged [StructuredConfig] can start the server.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}
	if cfg.App.SuperAdminLogin == "" {
		return ErrInvalidAppConfigs
	}
	if cfg.App.SeedAdmin && cfg.App.SuperAdminPassword == "" {
		return ErrInvalidAppConfigs
	}

	switch cfg.Notify.SMS.Provider {
	case ProviderLog:
	case ProviderInfobip:
		if cfg.Notify.SMS.BaseURL == "" || cfg.Notify.SMS.APIKey == "" {
			return ErrInvalidNotifyConfigs
		}
	default:
		return ErrInvalidNotifyConfigs
	}

	switch cfg.Notify.Email.Provider {
	case ProviderLog:
	case ProviderHTTP:
		if cfg.Notify.Email.BaseURL == "" {
			return ErrInvalidNotifyConfigs
		}
	default:
		return ErrInvalidNotifyConfigs
	}

	if cfg.Reports.MaxPDFRows <= 0 {
		return ErrInvalidReportConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.ServerURL == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.RefreshInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
