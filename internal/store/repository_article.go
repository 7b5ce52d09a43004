package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/models"
)

type articleRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewArticleRepository constructs an [ArticleRepository] backed by db.
func NewArticleRepository(db *DB, logger *logger.Logger) ArticleRepository {
	logger.Debug().Msg("creating article repository")
	return &articleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *articleRepository) CreateArticle(ctx context.Context, article models.Article) (models.Article, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	article.CreatedAt, article.UpdatedAt = now, now

	query, args, err := r.db.buildInsertArticleQuery(article)
	if err != nil {
		log.Err(err).Str("func", "*articleRepository.CreateArticle").Msg("failed to build query")
		return models.Article{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&article.ID); err != nil {
			log.Err(err).Str("func", "*articleRepository.CreateArticle").Str("feed", string(article.Feed)).Msg("failed to insert article")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		return models.Article{}, err
	}

	return article, nil
}

func (r *articleRepository) GetArticle(ctx context.Context, feed models.Feed, id int64) (models.Article, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildSelectArticleQuery(feed, id)
	if err != nil {
		return models.Article{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Article{}, ErrArticleNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*articleRepository.GetArticle").Int64("article_id", id).Msg("failed to scan article")
		return models.Article{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return article, nil
}

// ListArticles returns the articles of one feed, newest first.
func (r *articleRepository) ListArticles(ctx context.Context, q models.ArticleQuery) ([]models.Article, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildSelectArticlesQuery(q)
	if err != nil {
		log.Err(err).Str("func", "*articleRepository.ListArticles").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.queryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*articleRepository.ListArticles").Str("feed", string(q.Feed)).Msg("failed to execute query for listing articles")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	articles := make([]models.Article, 0, 20)
	for rows.Next() {
		article, scanErr := scanArticle(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*articleRepository.ListArticles").Msg("failed to scan article row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		articles = append(articles, article)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*articleRepository.ListArticles").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return articles, nil
}

func (r *articleRepository) UpdateArticle(ctx context.Context, article models.Article) (models.Article, error) {
	log := logger.FromContext(ctx)

	article.UpdatedAt = time.Now().UTC()
	query, args, err := r.db.buildUpdateArticleQuery(article)
	if err != nil {
		return models.Article{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	selectQuery, selectArgs, err := r.db.buildSelectArticleQuery(article.Feed, article.ID)
	if err != nil {
		return models.Article{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Article
	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", "*articleRepository.UpdateArticle").Int64("article_id", article.ID).Msg("failed to update article")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return ErrArticleNotFound
		}

		if updated, err = scanArticle(tx.QueryRowContext(ctx, selectQuery, selectArgs...)); err != nil {
			log.Err(err).Str("func", "*articleRepository.UpdateArticle").Int64("article_id", article.ID).Msg("failed to read updated article")
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		return nil
	})
	if err != nil {
		return models.Article{}, err
	}

	return updated, nil
}

func (r *articleRepository) DeleteArticle(ctx context.Context, feed models.Feed, id int64) error {
	query, args, err := r.db.builder.Delete(tableArticles).
		Where(sq.Eq{"id": id, "feed": feed}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "*articleRepository.DeleteArticle", query, args)
}

// DeletePendingArticle removes an article only while it awaits moderation.
// A published or missing article yields [ErrArticleNotFound].
func (r *articleRepository) DeletePendingArticle(ctx context.Context, feed models.Feed, id int64) error {
	query, args, err := r.db.builder.Delete(tableArticles).
		Where(sq.Eq{"id": id, "feed": feed, "is_published": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "*articleRepository.DeletePendingArticle", query, args)
}

// SetPublished flips the flag only if it still holds the opposite value, so
// of two concurrent moderators one gets [ErrArticleNotFound].
func (r *articleRepository) SetPublished(ctx context.Context, feed models.Feed, id int64, published bool) error {
	query, args, err := r.db.builder.Update(tableArticles).
		Set("is_published", published).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id, "feed": feed, "is_published": !published}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "*articleRepository.SetPublished", query, args)
}

func (r *articleRepository) IncrementViews(ctx context.Context, feed models.Feed, id int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildIncrementViewsQuery(feed, id)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var views int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&views)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrArticleNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*articleRepository.IncrementViews").Int64("article_id", id).Msg("failed to increment views")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return views, nil
}

// execAffectingOne runs a DML statement in a transaction and reports
// [ErrArticleNotFound] when no row was touched.
func (r *articleRepository) execAffectingOne(ctx context.Context, funcName, query string, args []any) error {
	log := logger.FromContext(ctx)

	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("failed to execute statement")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return ErrArticleNotFound
		}
		return nil
	})
}
