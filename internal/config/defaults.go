package config

import "time"

// defaultConfig holds the values used for every field left empty by the
// other sources.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:     "umay",
			TokenDuration:   12 * time.Hour,
			SuperAdminLogin: "admin",
			VerificationTTL: 24 * time.Hour,
			OTPTTL:          5 * time.Minute,
			Version:         "dev",
		},
		Storage: Storage{
			DB: DB{
				Driver: DriverPostgres,
			},
			Files: Files{
				MediaDir:      "media",
				MaxUploadSize: 50 << 20,
			},
			Minio: Minio{
				Bucket: "umay-media",
			},
		},
		Server: Server{
			RequestTimeout: 30 * time.Second,
		},
		Notify: Notify{
			SMS: SMS{
				Provider: ProviderLog,
				BaseURL:  "https://api.infobip.com",
				Sender:   "UMAY",
				Timeout:  10 * time.Second,
			},
			Email: Email{
				Provider: ProviderLog,
				From:     "no-reply@umay.kz",
				Timeout:  10 * time.Second,
			},
		},
		Reports: Reports{
			MaxPDFRows: 20,
		},
		Client: Client{
			ServerURL:       "http://localhost:8080",
			RequestTimeout:  10 * time.Second,
			RefreshInterval: time.Minute,
			LogPath:         "umay-client.log",
		},
		Directory: Directory{
			Cities: []City{
				{Name: "Шымкент", Institutions: []string{
					"Городской перинатальный центр",
					"ГКП на ПХВ Городской родильный дом",
					"Городская больница - 2",
					"Городская больница - 3",
				}},
				{Name: "ЮКО"},
				{Name: "Астана"},
			},
		},
	}
}

// Known drivers and providers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	ProviderLog     = "log"
	ProviderInfobip = "infobip"
	ProviderHTTP    = "http"
)
