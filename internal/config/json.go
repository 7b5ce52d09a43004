package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the layout of the optional JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey       string   `json:"token_sign_key"`
		TokenIssuer        string   `json:"token_issuer"`
		TokenDuration      Duration `json:"token_duration"`
		SuperAdminLogin    string   `json:"super_admin_login"`
		SuperAdminPassword string   `json:"super_admin_password"`
		EmailVerification  bool     `json:"email_verification"`
		VerificationTTL    Duration `json:"verification_ttl"`
		OTPHashKey         string   `json:"otp_hash_key"`
		OTPTTL             Duration `json:"otp_ttl"`
		PublicURL          string   `json:"public_url"`
		LogLevel           string   `json:"log_level"`
		Version            string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			MediaDir      string `json:"media_dir"`
			MaxUploadSize int64  `json:"max_upload_size"`
		} `json:"files,omitempty"`

		Minio Minio `json:"minio,omitempty"`
		Redis Redis `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Notify struct {
		SMS struct {
			Provider string   `json:"provider"`
			BaseURL  string   `json:"base_url"`
			APIKey   string   `json:"api_key"`
			Sender   string   `json:"sender"`
			Timeout  Duration `json:"timeout"`
		} `json:"sms,omitempty"`
		Email struct {
			Provider string   `json:"provider"`
			BaseURL  string   `json:"base_url"`
			APIKey   string   `json:"api_key"`
			From     string   `json:"from"`
			Timeout  Duration `json:"timeout"`
		} `json:"email,omitempty"`
	} `json:"notify,omitempty"`

	Reports struct {
		FontPath   string `json:"font_path"`
		MaxPDFRows int    `json:"max_pdf_rows"`
	} `json:"reports,omitempty"`

	Client struct {
		ServerURL       string   `json:"server_url"`
		RequestTimeout  Duration `json:"request_timeout"`
		RefreshInterval Duration `json:"refresh_interval"`
		LogPath         string   `json:"log_path"`
	} `json:"client,omitempty"`

	Directory Directory `json:"directory,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:       jsonCfg.App.TokenSignKey,
			TokenIssuer:        jsonCfg.App.TokenIssuer,
			TokenDuration:      time.Duration(jsonCfg.App.TokenDuration),
			SuperAdminLogin:    jsonCfg.App.SuperAdminLogin,
			SuperAdminPassword: jsonCfg.App.SuperAdminPassword,
			EmailVerification:  jsonCfg.App.EmailVerification,
			VerificationTTL:    time.Duration(jsonCfg.App.VerificationTTL),
			OTPHashKey:         jsonCfg.App.OTPHashKey,
			OTPTTL:             time.Duration(jsonCfg.App.OTPTTL),
			PublicURL:          jsonCfg.App.PublicURL,
			LogLevel:           jsonCfg.App.LogLevel,
			Version:            jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				MediaDir:      jsonCfg.Storage.Files.MediaDir,
				MaxUploadSize: jsonCfg.Storage.Files.MaxUploadSize,
			},
			Minio: jsonCfg.Storage.Minio,
			Redis: jsonCfg.Storage.Redis,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Notify: Notify{
			SMS: SMS{
				Provider: jsonCfg.Notify.SMS.Provider,
				BaseURL:  jsonCfg.Notify.SMS.BaseURL,
				APIKey:   jsonCfg.Notify.SMS.APIKey,
				Sender:   jsonCfg.Notify.SMS.Sender,
				Timeout:  time.Duration(jsonCfg.Notify.SMS.Timeout),
			},
			Email: Email{
				Provider: jsonCfg.Notify.Email.Provider,
				BaseURL:  jsonCfg.Notify.Email.BaseURL,
				APIKey:   jsonCfg.Notify.Email.APIKey,
				From:     jsonCfg.Notify.Email.From,
				Timeout:  time.Duration(jsonCfg.Notify.Email.Timeout),
			},
		},
		Reports: Reports{
			FontPath:   jsonCfg.Reports.FontPath,
			MaxPDFRows: jsonCfg.Reports.MaxPDFRows,
		},
		Client: Client{
			ServerURL:       jsonCfg.Client.ServerURL,
			RequestTimeout:  time.Duration(jsonCfg.Client.RequestTimeout),
			RefreshInterval: time.Duration(jsonCfg.Client.RefreshInterval),
			LogPath:         jsonCfg.Client.LogPath,
		},
		Directory: jsonCfg.Directory,
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
