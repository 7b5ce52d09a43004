// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllGroups(t *testing.T) {
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_TOKEN_SIGN_KEY":     "jwt_secret",
		"APP_TOKEN_ISSUER":       "umay",
		"APP_TOKEN_DURATION":     "1h",
		"APP_SUPER_ADMIN_LOGIN":  "admin",
		"APP_EMAIL_VERIFICATION": "true",
		"APP_OTP_TTL":            "3m",

		"SERVER_ADDRESS":         "localhost:8080",
		"SERVER_GRPC_ADDRESS":    "localhost:9090",
		"SERVER_REQUEST_TIMEOUT": "30s",

		"STORAGE_DB_DRIVER":             "sqlite3",
		"STORAGE_DB_DATABASE_URI":       "umay.db",
		"STORAGE_FILES_MEDIA_DIR":       "/var/umay/media",
		"STORAGE_MINIO_ENDPOINT":        "minio:9000",
		"STORAGE_MINIO_USE_SSL":         "true",
		"STORAGE_REDIS_ADDR":            "redis:6379",
		"STORAGE_FILES_MAX_UPLOAD_SIZE": "1048576",

		"NOTIFY_SMS_PROVIDER":  "infobip",
		"NOTIFY_SMS_API_KEY":   "key",
		"NOTIFY_SMS_SENDER":    "UMAY",
		"NOTIFY_EMAIL_TIMEOUT": "5s",

		"REPORTS_MAX_PDF_ROWS": "50",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "admin", cfg.App.SuperAdminLogin)
	assert.True(t, cfg.App.EmailVerification)
	assert.Equal(t, 3*time.Minute, cfg.App.OTPTTL)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)

	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, "umay.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/var/umay/media", cfg.Storage.Files.MediaDir)
	assert.Equal(t, int64(1048576), cfg.Storage.Files.MaxUploadSize)
	assert.Equal(t, "minio:9000", cfg.Storage.Minio.Endpoint)
	assert.True(t, cfg.Storage.Minio.UseSSL)
	assert.Equal(t, "redis:6379", cfg.Storage.Redis.Addr)

	assert.Equal(t, ProviderInfobip, cfg.Notify.SMS.Provider)
	assert.Equal(t, 5*time.Second, cfg.Notify.Email.Timeout)
	assert.Equal(t, 50, cfg.Reports.MaxPDFRows)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("APP_TOKEN_DURATION", "forever")

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
