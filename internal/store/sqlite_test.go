package store

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/models"
)

func newSQLiteDB(t *testing.T) *DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "data", "umay.db")

	db, err := NewConnectSQLite(testContext(), config.DB{Driver: config.DriverSQLite, DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	return db
}

func TestSQLite_Accounts(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewAccountRepository(db, logger.Nop())
	ctx := testContext()

	created, err := repo.CreateAccount(ctx, testAccount(), nil, nil)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = repo.CreateAccount(ctx, testAccount(), nil, nil)
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)

	sameEmail := testAccount()
	sameEmail.Login = "aigul2"
	_, err = repo.CreateAccount(ctx, sameEmail, nil, nil)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	noEmail := testAccount()
	noEmail.Login, noEmail.Email = "nurse1", ""
	_, err = repo.CreateAccount(ctx, noEmail, nil, nil)
	require.NoError(t, err)
	noEmail.Login = "nurse2"
	_, err = repo.CreateAccount(ctx, noEmail, nil, nil)
	require.NoError(t, err, "accounts without email must not collide")

	found, err := repo.FindAccountByLogin(ctx, "aigul")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "aigul@example.kz", found.Email)

	require.NoError(t, repo.UpdatePassword(ctx, created.ID, "other-hash"))
	found, err = repo.FindAccountByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "other-hash", found.PasswordHash)
}

func TestSQLite_VerificationToken(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewAccountRepository(db, logger.Nop())
	ctx := testContext()
	now := time.Now().UTC()

	token := &models.VerificationToken{Token: "tok-1", Purpose: models.PurposeRegistration, ExpiresAt: now.Add(time.Hour)}
	created, err := repo.CreateAccount(ctx, testAccount(), token, nil)
	require.NoError(t, err)
	assert.False(t, created.EmailVerified)

	_, err = repo.ConsumeVerificationToken(ctx, "tok-1", models.PurposePasswordReset, now)
	assert.ErrorIs(t, err, ErrTokenNotFound, "purpose must match")

	verified, err := repo.ConsumeVerificationToken(ctx, "tok-1", models.PurposeRegistration, now)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)

	_, err = repo.ConsumeVerificationToken(ctx, "tok-1", models.PurposeRegistration, now)
	assert.ErrorIs(t, err, ErrTokenNotFound, "tokens are single use")

	expired := &models.VerificationToken{Token: "tok-2", Purpose: models.PurposeRegistration, ExpiresAt: now.Add(-time.Minute)}
	other := testAccount()
	other.Login, other.Email = "dana", "dana@example.kz"
	_, err = repo.CreateAccount(ctx, other, expired, nil)
	require.NoError(t, err)

	_, err = repo.ConsumeVerificationToken(ctx, "tok-2", models.PurposeRegistration, now)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestSQLite_RollbackOnHookFailure(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewAccountRepository(db, logger.Nop())
	ctx := testContext()

	_, err := repo.CreateAccount(ctx, testAccount(), nil, func(models.Account) error {
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = repo.FindAccountByLogin(ctx, "aigul")
	assert.ErrorIs(t, err, ErrNoAccountWasFound)
}

func TestSQLite_BirthRecords(t *testing.T) {
	db := newSQLiteDB(t)
	accounts := NewAccountRepository(db, logger.Nop())
	records := NewBirthRecordRepository(db, logger.Nop())
	ctx := testContext()

	owner, err := accounts.CreateAccount(ctx, testAccount(), nil, nil)
	require.NoError(t, err)

	for i, name := range []string{"Первая", "Вторая", "Третья"} {
		_, err := records.CreateRecord(ctx, models.BirthRecord{
			OwnerAccountID:  owner.ID,
			Midwife:         owner.FullName,
			EntryDate:       "2024-03-01 10:15",
			PatientName:     name,
			Age:             25 + i,
			BirthDate:       "2024-03-01",
			LaborDuration:   7.5,
			PlacentaAccreta: i == 2,
		})
		require.NoError(t, err)
	}

	list, err := records.ListRecords(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Третья", list[0].PatientName)
	assert.Equal(t, "Первая", list[2].PatientName)
	assert.True(t, list[0].PlacentaAccreta)
	assert.Equal(t, owner.ID, list[0].OwnerAccountID)

	limited, err := records.ListRecords(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	edit := list[2]
	edit.PatientName = "Первая (исправлено)"
	edit.Midwife = "Кто-то другой"
	updated, err := records.UpdateRecord(ctx, edit)
	require.NoError(t, err)
	assert.Equal(t, "Первая (исправлено)", updated.PatientName)
	assert.Equal(t, owner.FullName, updated.Midwife)

	require.NoError(t, records.DeleteRecord(ctx, edit.ID))
	_, err = records.GetRecord(ctx, edit.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, records.DeleteRecord(ctx, edit.ID), ErrRecordNotFound)
}

func TestSQLite_Articles(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewArticleRepository(db, logger.Nop())
	ctx := testContext()

	draft, err := repo.CreateArticle(ctx, models.Article{
		Feed:     models.FeedMama,
		Title:    "Сон и отдых",
		Category: "health",
		Origin:   models.OriginGenerated,
	})
	require.NoError(t, err)

	published, err := repo.ListArticles(ctx, models.ArticleQuery{Feed: models.FeedMama, PublishedOnly: true})
	require.NoError(t, err)
	assert.Empty(t, published)

	_, err = repo.IncrementViews(ctx, models.FeedMama, draft.ID)
	assert.ErrorIs(t, err, ErrArticleNotFound, "drafts are not counted")

	require.NoError(t, repo.SetPublished(ctx, models.FeedMama, draft.ID, true))
	assert.ErrorIs(t, repo.SetPublished(ctx, models.FeedMama, draft.ID, true), ErrArticleNotFound, "only one approve wins")
	assert.ErrorIs(t, repo.DeletePendingArticle(ctx, models.FeedMama, draft.ID), ErrArticleNotFound, "published articles are not rejected")
	views, err := repo.IncrementViews(ctx, models.FeedMama, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)

	_, err = repo.GetArticle(ctx, models.FeedNews, draft.ID)
	assert.ErrorIs(t, err, ErrArticleNotFound, "feeds are isolated")

	draft.Title = "Сон и отдых: обновлено"
	updated, err := repo.UpdateArticle(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, "Сон и отдых: обновлено", updated.Title)
	assert.True(t, updated.IsPublished)
	assert.Equal(t, int64(1), updated.Views)

	require.NoError(t, repo.DeleteArticle(ctx, models.FeedMama, draft.ID))
	assert.ErrorIs(t, repo.DeleteArticle(ctx, models.FeedMama, draft.ID), ErrArticleNotFound)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "umay.db?_foreign_keys=on", sqliteDSN("umay.db"))
	assert.Equal(t, "file:umay.db?cache=shared&_foreign_keys=on", sqliteDSN("file:umay.db?cache=shared"))
	assert.True(t, strings.HasSuffix(sqliteDSN("x.db?_foreign_keys=off"), "off"))
}
