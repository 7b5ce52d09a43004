package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/umay/internal/content"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/policy"
	"github.com/MKhiriev/umay/internal/store"
	"github.com/MKhiriev/umay/internal/validators"
	"github.com/MKhiriev/umay/models"
)

// DefaultFeedLimit caps public feed listings when the caller sets no limit.
const DefaultFeedLimit = 50

type contentService struct {
	articles  store.ArticleRepository
	generator *content.Generator
	rules     *policy.Rules
	validator validators.Validator

	logger *logger.Logger
}

func NewContentService(articles store.ArticleRepository, generator *content.Generator, rules *policy.Rules, logger *logger.Logger) ContentService {
	return &contentService{
		articles:  articles,
		generator: generator,
		rules:     rules,
		validator: validators.NewArticleValidator(),
		logger:    logger,
	}
}

func (s *contentService) ListPublished(ctx context.Context, feed models.Feed, category string, limit uint64) ([]models.Article, error) {
	if !feed.Valid() {
		return nil, ErrUnknownFeed
	}
	if limit == 0 {
		limit = DefaultFeedLimit
	}

	return s.articles.ListArticles(ctx, models.ArticleQuery{
		Feed:          feed,
		Category:      strings.TrimSpace(category),
		PublishedOnly: true,
		Limit:         limit,
	})
}

// ViewPublished counts the view before reading, so drafts are never
// exposed and never counted.
func (s *contentService) ViewPublished(ctx context.Context, feed models.Feed, id int64) (models.Article, error) {
	if !feed.Valid() {
		return models.Article{}, ErrUnknownFeed
	}

	views, err := s.articles.IncrementViews(ctx, feed, id)
	if err != nil {
		return models.Article{}, err
	}

	article, err := s.articles.GetArticle(ctx, feed, id)
	if err != nil {
		return models.Article{}, err
	}
	article.Views = views

	return article, nil
}

// List returns the whole feed including the moderation queue.
func (s *contentService) List(ctx context.Context, actor models.Account, feed models.Feed, category string) ([]models.Article, error) {
	if err := s.rules.AuthorizeModeration(actor); err != nil {
		return nil, err
	}
	if !feed.Valid() {
		return nil, ErrUnknownFeed
	}

	return s.articles.ListArticles(ctx, models.ArticleQuery{
		Feed:     feed,
		Category: strings.TrimSpace(category),
	})
}

// Create stores a hand-written article. It is published at once.
func (s *contentService) Create(ctx context.Context, actor models.Account, article models.Article) (models.Article, error) {
	log := logger.FromContext(ctx)

	if err := s.rules.AuthorizeModeration(actor); err != nil {
		return models.Article{}, err
	}
	if err := s.validator.Validate(ctx, article); err != nil {
		return models.Article{}, err
	}

	article.ID = 0
	article.Views = 0
	article.Origin = models.OriginManual
	if article.Author == "" {
		article.Author = actor.FullName
	}
	content.Prepare(&article)

	created, err := s.articles.CreateArticle(ctx, article)
	if err != nil {
		log.Err(err).Str("func", "*contentService.Create").Str("feed", string(article.Feed)).Msg("failed to create article")
		return models.Article{}, err
	}

	log.Info().Int64("article_id", created.ID).Str("feed", string(created.Feed)).Msg("article created")
	return created, nil
}

// Update edits the text and media of an article. Moderation state and
// views are kept.
func (s *contentService) Update(ctx context.Context, actor models.Account, article models.Article) (models.Article, error) {
	if err := s.rules.AuthorizeModeration(actor); err != nil {
		return models.Article{}, err
	}
	if err := s.validator.Validate(ctx, article); err != nil {
		return models.Article{}, err
	}

	updated, err := s.articles.UpdateArticle(ctx, article)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contentService.Update").Int64("article_id", article.ID).Msg("failed to update article")
		return models.Article{}, err
	}
	return updated, nil
}

func (s *contentService) Delete(ctx context.Context, actor models.Account, feed models.Feed, id int64) error {
	if err := s.rules.AuthorizeModeration(actor); err != nil {
		return err
	}
	if !feed.Valid() {
		return ErrUnknownFeed
	}
	return s.articles.DeleteArticle(ctx, feed, id)
}

// Generate fills a template draft and queues it for moderation.
func (s *contentService) Generate(ctx context.Context, actor models.Account, feed models.Feed, req models.GenerateRequest) (models.Article, error) {
	log := logger.FromContext(ctx)

	if err := s.rules.AuthorizeModeration(actor); err != nil {
		return models.Article{}, err
	}
	if !feed.Valid() {
		return models.Article{}, ErrUnknownFeed
	}

	draft, err := s.generator.Generate(feed, req)
	if err != nil {
		return models.Article{}, err
	}

	created, err := s.articles.CreateArticle(ctx, draft)
	if err != nil {
		log.Err(err).Str("func", "*contentService.Generate").Str("feed", string(feed)).Msg("failed to store generated draft")
		return models.Article{}, err
	}

	log.Info().Int64("article_id", created.ID).Str("category", created.Category).Msg("draft generated")
	return created, nil
}

// Approve publishes a pending article. Published articles yield
// content.ErrInvalidTransition.
func (s *contentService) Approve(ctx context.Context, actor models.Account, feed models.Feed, id int64) (models.Article, error) {
	if err := s.rules.AuthorizeModeration(actor); err != nil {
		return models.Article{}, err
	}

	article, err := s.articles.GetArticle(ctx, feed, id)
	if err != nil {
		return models.Article{}, err
	}
	if err = content.Approve(&article); err != nil {
		return models.Article{}, err
	}
	if err = s.articles.SetPublished(ctx, feed, id, true); err != nil {
		return models.Article{}, moderationConflict(err)
	}

	logger.FromContext(ctx).Info().Int64("article_id", id).Int64("account_id", actor.ID).Msg("article approved")
	return article, nil
}

// Reject deletes a pending article.
func (s *contentService) Reject(ctx context.Context, actor models.Account, feed models.Feed, id int64) error {
	if err := s.rules.AuthorizeModeration(actor); err != nil {
		return err
	}

	article, err := s.articles.GetArticle(ctx, feed, id)
	if err != nil {
		return err
	}
	if err = content.CheckReject(article); err != nil {
		return err
	}
	if err = s.articles.DeletePendingArticle(ctx, feed, id); err != nil {
		return moderationConflict(err)
	}

	logger.FromContext(ctx).Info().Int64("article_id", id).Int64("account_id", actor.ID).Msg("article rejected")
	return nil
}

// moderationConflict reports a lost race with another moderator: the
// article was pending when read but changed before the write.
func moderationConflict(err error) error {
	if errors.Is(err, store.ErrArticleNotFound) {
		return content.ErrInvalidTransition
	}
	return err
}
