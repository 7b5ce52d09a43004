package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/umay/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository persists staff and patient accounts.
type AccountRepository interface {
	// CreateAccount inserts account and, when token is not nil, its
	// verification token in one transaction. beforeCommit, when set, runs
	// last inside the transaction; an error from it rolls everything back.
	CreateAccount(ctx context.Context, account models.Account, token *models.VerificationToken, beforeCommit func(models.Account) error) (models.Account, error)
	// CreateVerificationToken stores token for an existing account. An error
	// from beforeCommit discards the token.
	CreateVerificationToken(ctx context.Context, token models.VerificationToken, beforeCommit func() error) error
	FindAccountByLogin(ctx context.Context, login string) (models.Account, error)
	FindAccountByID(ctx context.Context, id int64) (models.Account, error)
	UpdatePassword(ctx context.Context, accountID int64, passwordHash string) error
	// ConsumeVerificationToken marks a valid token used and the owner's
	// email verified. Unknown, used or expired tokens yield [ErrTokenNotFound].
	ConsumeVerificationToken(ctx context.Context, token string, purpose models.TokenPurpose, now time.Time) (models.Account, error)
}

// BirthRecordRepository persists birth records.
type BirthRecordRepository interface {
	CreateRecord(ctx context.Context, record models.BirthRecord) (models.BirthRecord, error)
	GetRecord(ctx context.Context, id int64) (models.BirthRecord, error)
	// UpdateRecord overwrites the clinical fields. Owner, midwife and entry
	// date are immutable.
	UpdateRecord(ctx context.Context, record models.BirthRecord) (models.BirthRecord, error)
	DeleteRecord(ctx context.Context, id int64) error
	// ListRecords returns records newest first. limit 0 means all.
	ListRecords(ctx context.Context, limit uint64) ([]models.BirthRecord, error)
}

// ArticleRepository persists the news and Mama feeds.
type ArticleRepository interface {
	CreateArticle(ctx context.Context, article models.Article) (models.Article, error)
	GetArticle(ctx context.Context, feed models.Feed, id int64) (models.Article, error)
	ListArticles(ctx context.Context, query models.ArticleQuery) ([]models.Article, error)
	UpdateArticle(ctx context.Context, article models.Article) (models.Article, error)
	DeleteArticle(ctx context.Context, feed models.Feed, id int64) error
	// DeletePendingArticle and SetPublished check the current state in the
	// statement itself and return [ErrArticleNotFound] when it does not match.
	DeletePendingArticle(ctx context.Context, feed models.Feed, id int64) error
	SetPublished(ctx context.Context, feed models.Feed, id int64, published bool) error
	// IncrementViews bumps the view counter of a published article in one
	// statement and returns the new value.
	IncrementViews(ctx context.Context, feed models.Feed, id int64) (int64, error)
}

// MediaStorage keeps uploaded images and videos.
type MediaStorage interface {
	// Save stores the object and returns its public URL.
	Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
	Remove(ctx context.Context, name string) error
}

// OTPStore keeps hashed one-time codes with a TTL.
type OTPStore interface {
	SaveCode(ctx context.Context, key, codeHash string, ttl time.Duration) error
	// GetCode returns [ErrCodeNotFound] when the code is missing or expired.
	GetCode(ctx context.Context, key string) (string, error)
	// IncrementAttempts counts a failed check of the code under key and
	// returns the total so far. The counter lives no longer than ttl and is
	// reset by SaveCode and DeleteCode.
	IncrementAttempts(ctx context.Context, key string, ttl time.Duration) (int64, error)
	DeleteCode(ctx context.Context, key string) error
}
