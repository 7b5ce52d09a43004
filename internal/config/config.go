// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the UMAY
// server. It is populated by merging environment variables, command-line
// flags, an optional JSON file and finally built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds authentication, access-control and versioning settings.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database, the media
	// store and the Redis one-time code store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Notify holds the outbound SMS and email transports.
	Notify Notify `envPrefix:"NOTIFY_"`

	// Reports holds export rendering settings.
	Reports Reports `envPrefix:"REPORTS_"`

	// Client holds the terminal client settings.
	Client Client `envPrefix:"CLIENT_"`

	// Directory is the static city → institution lookup used by
	// registration forms. It is read from the JSON file only.
	Directory Directory

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// SuperAdminLogin names the account that bypasses ownership and
	// clinical access checks.
	// Env: APP_SUPER_ADMIN_LOGIN
	SuperAdminLogin string `env:"SUPER_ADMIN_LOGIN"`

	// SuperAdminPassword is used only when seeding the super-admin account.
	// Env: APP_SUPER_ADMIN_PASSWORD
	SuperAdminPassword string `env:"SUPER_ADMIN_PASSWORD"`

	// EmailVerification requires registrations with an email to confirm it
	// before logging in.
	// Env: APP_EMAIL_VERIFICATION
	EmailVerification bool `env:"EMAIL_VERIFICATION"`

	// VerificationTTL is the lifetime of emailed verification tokens.
	// Env: APP_VERIFICATION_TTL
	VerificationTTL time.Duration `env:"VERIFICATION_TTL"`

	// OTPHashKey keys the HMAC under which one-time codes are stored.
	// Env: APP_OTP_HASH_KEY
	OTPHashKey string `env:"OTP_HASH_KEY"`

	// OTPTTL is the lifetime of SMS one-time codes.
	// Env: APP_OTP_TTL
	OTPTTL time.Duration `env:"OTP_TTL"`

	// PublicURL is the externally visible base URL used in emailed links.
	// Env: APP_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`

	// LogLevel narrows the global log level ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// SeedAdmin creates the super-admin account on start when it is missing.
	// Env: APP_SEED_ADMIN
	SeedAdmin bool `env:"SEED_ADMIN"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP server ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health server.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Files Files `envPrefix:"FILES_"`
	Minio Minio `envPrefix:"MINIO_"`
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver is "postgres" (default) or "sqlite3".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the connection string: a PostgreSQL URL or an SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds settings of the local media directory.
type Files struct {
	// MediaDir is where uploads are stored when MinIO is not configured.
	// Env: STORAGE_FILES_MEDIA_DIR
	MediaDir string `env:"MEDIA_DIR"`

	// MaxUploadSize limits a single upload in bytes.
	// Env: STORAGE_FILES_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`
}

// Minio holds object storage settings. Media goes to MinIO when Endpoint is set.
type Minio struct {
	Endpoint  string `env:"ENDPOINT" json:"endpoint"`
	AccessKey string `env:"ACCESS_KEY" json:"access_key"`
	SecretKey string `env:"SECRET_KEY" json:"secret_key"`
	Bucket    string `env:"BUCKET" json:"bucket"`
	UseSSL    bool   `env:"USE_SSL" json:"use_ssl"`
	// PublicURL prefixes object names in returned media URLs.
	PublicURL string `env:"PUBLIC_URL" json:"public_url"`
}

// Redis holds the one-time code store connection.
type Redis struct {
	Addr     string `env:"ADDR" json:"addr"`
	Password string `env:"PASSWORD" json:"password"`
	DB       int    `env:"DB" json:"db"`
}

// Notify groups the outbound notification transports.
type Notify struct {
	SMS   SMS   `envPrefix:"SMS_"`
	Email Email `envPrefix:"EMAIL_"`
}

// SMS holds the SMS gateway settings.
type SMS struct {
	// Provider is "infobip" or "log". The "log" provider only writes codes
	// to the log and is meant for local runs.
	Provider string        `env:"PROVIDER"`
	BaseURL  string        `env:"BASE_URL"`
	APIKey   string        `env:"API_KEY"`
	Sender   string        `env:"SENDER"`
	Timeout  time.Duration `env:"TIMEOUT"`
}

// Email holds the transactional mail API settings.
type Email struct {
	// Provider is "http" or "log".
	Provider string        `env:"PROVIDER"`
	BaseURL  string        `env:"BASE_URL"`
	APIKey   string        `env:"API_KEY"`
	From     string        `env:"FROM"`
	Timeout  time.Duration `env:"TIMEOUT"`
}

// Reports holds export rendering settings.
type Reports struct {
	// FontPath points to a UTF-8 TrueType font for PDF reports.
	// Without it PDFs fall back to a cp1251 core font.
	FontPath string `env:"FONT_PATH"`

	// MaxPDFRows caps the detail table of PDF reports.
	MaxPDFRows int `env:"MAX_PDF_ROWS"`
}

// Client holds terminal client settings.
type Client struct {
	// ServerURL is the base URL of the UMAY HTTP API.
	ServerURL string `env:"SERVER_URL"`

	// RequestTimeout bounds every client request.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RefreshInterval is how often the record list is refreshed.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`

	// LogPath is the file the client logs into.
	LogPath string `env:"LOG_PATH"`
}

// Directory is the static lookup of cities and their medical institutions.
type Directory struct {
	Cities []City `json:"cities"`
}

// City lists the medical institutions of one city.
type City struct {
	Name         string   `json:"name"`
	Institutions []string `json:"institutions"`
}

// HasInstitution reports whether institution is listed for city.
// An empty directory accepts any pair.
func (d Directory) HasInstitution(city, institution string) bool {
	if len(d.Cities) == 0 {
		return true
	}
	for _, c := range d.Cities {
		if c.Name != city {
			continue
		}
		for _, i := range c.Institutions {
			if i == institution {
				return true
			}
		}
	}
	return false
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
