package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/umay/models"
)

// Article fields.
const (
	FieldFeed  = "feed"
	FieldTitle = "title"
	FieldBody  = "body"
	FieldMedia = "media"
)

const MaxTitleLength = 200

// ArticleValidator checks articles written in the admin CMS.
type ArticleValidator struct{}

func NewArticleValidator() Validator {
	return &ArticleValidator{}
}

func (v *ArticleValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Article:
		return v.validateArticle(value, fields...)
	case *models.Article:
		return v.validateArticle(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ArticleValidator) validateArticle(a models.Article, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFeed, FieldTitle, FieldBody, FieldMedia}
	}

	for _, f := range fields {
		switch f {
		case FieldFeed:
			if !a.Feed.Valid() {
				return invalid(f, ErrNotAllowed)
			}
		case FieldTitle:
			title := strings.TrimSpace(a.Title)
			if title == "" {
				return invalid(f, ErrRequired)
			}
			if utf8.RuneCountInString(title) > MaxTitleLength {
				return invalid(f, ErrTooLong)
			}
		case FieldBody:
			if strings.TrimSpace(a.Body) == "" {
				return invalid(f, ErrRequired)
			}
		case FieldMedia:
			for _, u := range []string{a.ImageURL, a.VideoURL} {
				if u != "" && !strings.HasPrefix(u, "/") && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
					return invalid(f, ErrInvalidFormat)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
