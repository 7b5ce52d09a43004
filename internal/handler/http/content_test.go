package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/umay/internal/content"
	"github.com/MKhiriev/umay/internal/policy"
	"github.com/MKhiriev/umay/internal/service"
	"github.com/MKhiriev/umay/internal/store"
	"github.com/MKhiriev/umay/models"
)

func TestListFeed(t *testing.T) {
	t.Run("category and limit", func(t *testing.T) {
		services := newTestServices()
		services.ContentService = &mockContentService{
			listPublishedFn: func(_ context.Context, feed models.Feed, category string, limit uint64) ([]models.Article, error) {
				assert.Equal(t, models.FeedMama, feed)
				assert.Equal(t, content.CategoryNutrition, category)
				assert.Equal(t, uint64(5), limit)
				return nil, nil
			},
		}

		rec := serve(t, services, httptest.NewRequest(http.MethodGet, "/api/content/mama?category=nutrition&limit=5", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("bad limit", func(t *testing.T) {
		rec := serve(t, newTestServices(), httptest.NewRequest(http.MethodGet, "/api/content/news?limit=-1", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "limit", decodeError(t, rec).Field)
	})

	t.Run("unknown feed", func(t *testing.T) {
		services := newTestServices()
		services.ContentService = &mockContentService{
			listPublishedFn: func(context.Context, models.Feed, string, uint64) ([]models.Article, error) {
				return nil, service.ErrUnknownFeed
			},
		}

		rec := serve(t, services, httptest.NewRequest(http.MethodGet, "/api/content/blog", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestViewArticle(t *testing.T) {
	services := newTestServices()
	services.ContentService = &mockContentService{
		viewPublishedFn: func(_ context.Context, feed models.Feed, id int64) (models.Article, error) {
			if id != 3 {
				return models.Article{}, store.ErrArticleNotFound
			}
			return models.Article{ID: 3, Feed: feed, Title: "Новость", IsPublished: true, Views: 12}, nil
		},
	}

	rec := serve(t, services, httptest.NewRequest(http.MethodGet, "/api/content/news/3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Article
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, int64(12), got.Views)

	rec = serve(t, services, httptest.NewRequest(http.MethodGet, "/api/content/news/4", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminContent(t *testing.T) {
	services := newTestServices()
	services.AuthService = authAs(testAdmin)
	services.ContentService = &mockContentService{
		listFn: func(_ context.Context, actor models.Account, feed models.Feed, _ string) ([]models.Article, error) {
			assert.Equal(t, testAdmin.ID, actor.ID)
			return []models.Article{{ID: 1, Feed: feed}}, nil
		},
		createFn: func(_ context.Context, _ models.Account, article models.Article) (models.Article, error) {
			assert.Equal(t, models.FeedNews, article.Feed)
			article.ID = 9
			return article, nil
		},
		updateFn: func(_ context.Context, _ models.Account, article models.Article) (models.Article, error) {
			assert.Equal(t, int64(9), article.ID)
			assert.Equal(t, models.FeedNews, article.Feed)
			return article, nil
		},
		deleteFn: func(_ context.Context, _ models.Account, _ models.Feed, id int64) error {
			assert.Equal(t, int64(9), id)
			return nil
		},
		generateFn: func(_ context.Context, _ models.Account, _ models.Feed, req models.GenerateRequest) (models.Article, error) {
			if req.Topic == "" {
				return models.Article{}, content.ErrEmptyTopic
			}
			return models.Article{ID: 11, Origin: models.OriginGenerated}, nil
		},
		approveFn: func(_ context.Context, _ models.Account, _ models.Feed, id int64) (models.Article, error) {
			if id == 11 {
				return models.Article{ID: 11, IsPublished: true}, nil
			}
			return models.Article{}, content.ErrInvalidTransition
		},
		rejectFn: func(context.Context, models.Account, models.Feed, int64) error {
			return nil
		},
	}

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{"list", http.MethodGet, "/api/admin/content/news", "", http.StatusOK},
		{"create", http.MethodPost, "/api/admin/content/news", `{"title":"t","body":"b","feed":"mama"}`, http.StatusCreated},
		{"update", http.MethodPut, "/api/admin/content/news/9", `{"title":"t","body":"b"}`, http.StatusOK},
		{"delete", http.MethodDelete, "/api/admin/content/news/9", "", http.StatusNoContent},
		{"generate", http.MethodPost, "/api/admin/content/mama/generate", `{"topic":"Сон","week":20}`, http.StatusCreated},
		{"generate without topic", http.MethodPost, "/api/admin/content/mama/generate", `{"topic":""}`, http.StatusBadRequest},
		{"approve", http.MethodPost, "/api/admin/content/mama/11/approve", "", http.StatusOK},
		{"approve published", http.MethodPost, "/api/admin/content/mama/12/approve", "", http.StatusConflict},
		{"reject", http.MethodPost, "/api/admin/content/mama/11/reject", "", http.StatusNoContent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, services, authorized(tc.method, tc.target, tc.body))
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestAdminContent_MidwifeForbidden(t *testing.T) {
	services := newTestServices()
	services.ContentService = &mockContentService{
		listFn: func(context.Context, models.Account, models.Feed, string) ([]models.Article, error) {
			return nil, policy.ErrForbidden
		},
	}

	rec := serve(t, services, authorized(http.MethodGet, "/api/admin/content/news", ""))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
