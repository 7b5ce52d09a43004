// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/umay/models"
)

const (
	tableAccounts           = "accounts"
	tableBirthRecords       = "birth_records"
	tableArticles           = "articles"
	tableVerificationTokens = "verification_tokens"
)

var accountColumns = []string{
	"id", "full_name", "login", "password_hash", "role", "app_type", "email",
	"email_verified", "phone", "position", "city", "institution", "department",
	"created_at",
}

// recordDataColumns are the editable clinical columns of birth_records,
// complication flags last in canonical order.
var recordDataColumns = func() []string {
	cols := []string{
		"patient_name", "age", "pregnancy_weeks", "weight_before", "weight_after",
		"complications", "notes", "birth_date", "birth_time", "child_gender",
		"child_weight", "delivery_method", "anesthesia", "blood_loss",
		"labor_duration", "other_diseases",
	}
	for _, f := range models.ComplicationFlags {
		cols = append(cols, f.Column)
	}
	return cols
}()

var recordColumns = slices.Concat(
	[]string{"id", "owner_account_id", "midwife", "entry_date"},
	recordDataColumns,
	[]string{"created_at", "updated_at"},
)

var articleColumns = []string{
	"id", "feed", "title", "summary", "body", "category", "image_url",
	"video_url", "author", "origin", "is_published", "views", "created_at",
	"updated_at",
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		a     models.Account
		email sql.NullString
	)
	err := row.Scan(&a.ID, &a.FullName, &a.Login, &a.PasswordHash, &a.Role, &a.AppType, &email,
		&a.EmailVerified, &a.Phone, &a.Position, &a.City, &a.Institution, &a.Department, &a.CreatedAt)
	a.Email = email.String
	return a, err
}

func recordDataValues(r models.BirthRecord) []any {
	values := []any{
		r.PatientName, r.Age, r.PregnancyWeeks, r.WeightBefore, r.WeightAfter,
		r.Complications, r.Notes, r.BirthDate, r.BirthTime, r.ChildGender,
		r.ChildWeight, r.DeliveryMethod, r.Anesthesia, r.BloodLoss,
		r.LaborDuration, r.OtherDiseases,
	}
	for _, v := range r.FlagValues() {
		values = append(values, v)
	}
	return values
}

func scanRecord(row rowScanner) (models.BirthRecord, error) {
	var (
		r     models.BirthRecord
		owner sql.NullInt64
	)
	dest := []any{&r.ID, &owner, &r.Midwife, &r.EntryDate,
		&r.PatientName, &r.Age, &r.PregnancyWeeks, &r.WeightBefore, &r.WeightAfter,
		&r.Complications, &r.Notes, &r.BirthDate, &r.BirthTime, &r.ChildGender,
		&r.ChildWeight, &r.DeliveryMethod, &r.Anesthesia, &r.BloodLoss,
		&r.LaborDuration, &r.OtherDiseases,
	}
	for _, flag := range r.FlagRefs() {
		dest = append(dest, flag)
	}
	dest = append(dest, &r.CreatedAt, &r.UpdatedAt)

	err := row.Scan(dest...)
	r.OwnerAccountID = owner.Int64
	return r, err
}

func scanArticle(row rowScanner) (models.Article, error) {
	var a models.Article
	err := row.Scan(&a.ID, &a.Feed, &a.Title, &a.Summary, &a.Body, &a.Category, &a.ImageURL,
		&a.VideoURL, &a.Author, &a.Origin, &a.IsPublished, &a.Views, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

func (db *DB) buildInsertAccountQuery(a models.Account) (string, []any, error) {
	return db.builder.Insert(tableAccounts).
		Columns(accountColumns[1:]...).
		Values(a.FullName, a.Login, a.PasswordHash, a.Role, a.AppType, nullString(a.Email),
			a.EmailVerified, a.Phone, a.Position, a.City, a.Institution, a.Department, a.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) buildSelectAccountQuery(where sq.Eq) (string, []any, error) {
	return db.builder.Select(accountColumns...).
		From(tableAccounts).
		Where(where).
		ToSql()
}

func (db *DB) buildInsertTokenQuery(t models.VerificationToken) (string, []any, error) {
	return db.builder.Insert(tableVerificationTokens).
		Columns("token", "account_id", "purpose", "expires_at").
		Values(t.Token, t.AccountID, t.Purpose, t.ExpiresAt).
		ToSql()
}

func (db *DB) buildConsumeTokenQuery(token string, purpose models.TokenPurpose, now time.Time) (string, []any, error) {
	return db.builder.Update(tableVerificationTokens).
		Set("used_at", now).
		Where(sq.Eq{"token": token, "purpose": purpose, "used_at": nil}).
		Where(sq.Gt{"expires_at": now}).
		Suffix("RETURNING account_id").
		ToSql()
}

func (db *DB) buildInsertRecordQuery(r models.BirthRecord) (string, []any, error) {
	values := append([]any{nullID(r.OwnerAccountID), r.Midwife, r.EntryDate}, recordDataValues(r)...)
	values = append(values, r.CreatedAt, r.UpdatedAt)

	return db.builder.Insert(tableBirthRecords).
		Columns(recordColumns[1:]...).
		Values(values...).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) buildUpdateRecordQuery(r models.BirthRecord) (string, []any, error) {
	values := recordDataValues(r)
	clauses := make(map[string]any, len(recordDataColumns)+1)
	for i, col := range recordDataColumns {
		clauses[col] = values[i]
	}
	clauses["updated_at"] = r.UpdatedAt

	return db.builder.Update(tableBirthRecords).
		SetMap(clauses).
		Where(sq.Eq{"id": r.ID}).
		ToSql()
}

func (db *DB) buildSelectRecordsQuery(where sq.Sqlizer, limit uint64) (string, []any, error) {
	query := db.builder.Select(recordColumns...).
		From(tableBirthRecords).
		OrderBy("created_at DESC", "id DESC")
	if where != nil {
		query = query.Where(where)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query.ToSql()
}

func (db *DB) buildInsertArticleQuery(a models.Article) (string, []any, error) {
	return db.builder.Insert(tableArticles).
		Columns(articleColumns[1:]...).
		Values(a.Feed, a.Title, a.Summary, a.Body, a.Category, a.ImageURL,
			a.VideoURL, a.Author, a.Origin, a.IsPublished, a.Views, a.CreatedAt, a.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) buildSelectArticleQuery(feed models.Feed, id int64) (string, []any, error) {
	return db.builder.Select(articleColumns...).
		From(tableArticles).
		Where(sq.Eq{"id": id, "feed": feed}).
		ToSql()
}

func (db *DB) buildSelectArticlesQuery(q models.ArticleQuery) (string, []any, error) {
	where := sq.Eq{"feed": q.Feed}
	if q.Category != "" {
		where["category"] = q.Category
	}
	if q.PublishedOnly {
		where["is_published"] = true
	}

	query := db.builder.Select(articleColumns...).
		From(tableArticles).
		Where(where).
		OrderBy("created_at DESC", "id DESC")
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	return query.ToSql()
}

func (db *DB) buildUpdateArticleQuery(a models.Article) (string, []any, error) {
	return db.builder.Update(tableArticles).
		SetMap(map[string]any{
			"title":      a.Title,
			"summary":    a.Summary,
			"body":       a.Body,
			"category":   a.Category,
			"image_url":  a.ImageURL,
			"video_url":  a.VideoURL,
			"author":     a.Author,
			"updated_at": a.UpdatedAt,
		}).
		Where(sq.Eq{"id": a.ID, "feed": a.Feed}).
		ToSql()
}

func (db *DB) buildIncrementViewsQuery(feed models.Feed, id int64) (string, []any, error) {
	return db.builder.Update(tableArticles).
		Set("views", sq.Expr("views + 1")).
		Where(sq.Eq{"id": id, "feed": feed, "is_published": true}).
		Suffix("RETURNING views").
		ToSql()
}
