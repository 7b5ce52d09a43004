package service

import (
	"context"
	"io"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/filter"
	"github.com/MKhiriev/umay/internal/report"
	"github.com/MKhiriev/umay/models"
)

// AuthService registers accounts and issues bearer tokens.
type AuthService interface {
	Register(ctx context.Context, account models.Account) (models.Account, error)
	Login(ctx context.Context, login, password string) (models.Account, error)
	CreateToken(ctx context.Context, account models.Account) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	GetAccount(ctx context.Context, id int64) (models.Account, error)

	VerifyEmail(ctx context.Context, token string) (models.Account, error)
	RequestPasswordReset(ctx context.Context, req models.OTPRequest) (models.OTPResponse, error)
	ResetPassword(ctx context.Context, req models.PasswordResetRequest) error

	// SeedSuperAdmin creates the configured super-admin when it is missing.
	// created is false when the account already exists.
	SeedSuperAdmin(ctx context.Context) (account models.Account, created bool, err error)
}

// RecordService is the birth register. Every method checks the actor's
// rights before touching storage.
type RecordService interface {
	Search(ctx context.Context, actor models.Account, criteria filter.Criteria) ([]models.BirthRecord, error)
	Create(ctx context.Context, actor models.Account, record models.BirthRecord) (models.BirthRecord, error)
	Get(ctx context.Context, actor models.Account, id int64) (models.BirthRecord, error)
	Update(ctx context.Context, actor models.Account, id int64, record models.BirthRecord) (models.BirthRecord, error)
	Delete(ctx context.Context, actor models.Account, id int64) error

	FilterOptions(ctx context.Context, actor models.Account) (models.FilterOptions, error)
	Dashboard(ctx context.Context, actor models.Account) (Dashboard, error)
	Analytics(ctx context.Context, actor models.Account, criteria filter.Criteria) (report.Statistics, error)
	Export(ctx context.Context, actor models.Account, criteria filter.Criteria, format report.Format) (ExportFile, error)
}

// ContentService serves the news and Mama feeds and their moderation queue.
type ContentService interface {
	ListPublished(ctx context.Context, feed models.Feed, category string, limit uint64) ([]models.Article, error)
	// ViewPublished returns a published article and counts the view.
	ViewPublished(ctx context.Context, feed models.Feed, id int64) (models.Article, error)

	List(ctx context.Context, actor models.Account, feed models.Feed, category string) ([]models.Article, error)
	Create(ctx context.Context, actor models.Account, article models.Article) (models.Article, error)
	Update(ctx context.Context, actor models.Account, article models.Article) (models.Article, error)
	Delete(ctx context.Context, actor models.Account, feed models.Feed, id int64) error

	Generate(ctx context.Context, actor models.Account, feed models.Feed, req models.GenerateRequest) (models.Article, error)
	Approve(ctx context.Context, actor models.Account, feed models.Feed, id int64) (models.Article, error)
	Reject(ctx context.Context, actor models.Account, feed models.Feed, id int64) error
}

// MediaService stores uploaded images and videos.
type MediaService interface {
	Upload(ctx context.Context, actor models.Account, upload MediaUpload) (models.MediaFile, error)
}

// DirectoryService exposes the static city and institution lookup.
type DirectoryService interface {
	Cities(ctx context.Context) []config.City
	Institutions(ctx context.Context, city string) ([]string, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// Dashboard is the landing view of the staff application.
type Dashboard struct {
	Stats  report.Statistics    `json:"stats"`
	Recent []models.BirthRecord `json:"recent"`
}

// ExportFile is a rendered report ready to be sent as an attachment.
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

// MediaUpload is one file of a multipart upload.
type MediaUpload struct {
	Name string
	// ContentType is sniffed from the first bytes of the body.
	ContentType string
	Size        int64
	Body        io.Reader
}
