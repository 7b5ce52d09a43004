package models

import "time"

// Feed discriminates the two content feeds stored in one table.
type Feed string

const (
	FeedNews Feed = "news"
	FeedMama Feed = "mama"
)

// Valid reports whether f is a known feed.
func (f Feed) Valid() bool {
	return f == FeedNews || f == FeedMama
}

// Origin tells how an article was produced.
type Origin string

const (
	OriginManual    Origin = "manual"
	OriginGenerated Origin = "generated"
)

// Article is a news item or a Mama-feed content piece.
// Unpublished articles are waiting for moderation.
type Article struct {
	ID          int64     `json:"id"`
	Feed        Feed      `json:"feed"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Body        string    `json:"body"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	VideoURL    string    `json:"video_url,omitempty"`
	Author      string    `json:"author,omitempty"`
	Origin      Origin    `json:"origin"`
	IsPublished bool      `json:"is_published"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Article model.
func (a Article) TableName() string {
	return "articles"
}

// ArticleQuery selects articles for listing.
type ArticleQuery struct {
	Feed     Feed
	Category string
	// PublishedOnly hides the moderation queue.
	PublishedOnly bool
	Limit         uint64
}

// GenerateRequest asks the content generator for a new draft.
type GenerateRequest struct {
	Topic    string `json:"topic"`
	Week     int    `json:"week,omitempty"`
	Category string `json:"category,omitempty"`
}

// MediaFile describes an uploaded media object.
type MediaFile struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
