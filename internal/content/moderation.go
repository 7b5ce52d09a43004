// Package content holds the article moderation rules and the template
// based article generator.
package content

import (
	"errors"

	"github.com/MKhiriev/umay/models"
)

// ErrInvalidTransition is returned when a moderation action does not apply
// to the article's current state.
var ErrInvalidTransition = errors.New("invalid moderation transition")

// State is the moderation state of an article.
type State string

const (
	StatePending   State = "pending"
	StatePublished State = "published"
)

// StateOf returns the moderation state of a.
func StateOf(a models.Article) State {
	if a.IsPublished {
		return StatePublished
	}
	return StatePending
}

// Prepare sets the initial state of a new article: hand-written articles
// are published at once, generated ones wait for moderation.
func Prepare(a *models.Article) {
	if a.Origin == "" {
		a.Origin = models.OriginManual
	}
	a.IsPublished = a.Origin == models.OriginManual
}

// Approve publishes a pending article.
func Approve(a *models.Article) error {
	if StateOf(*a) != StatePending {
		return ErrInvalidTransition
	}
	a.IsPublished = true
	return nil
}

// CheckReject verifies a can be rejected. Rejected articles are deleted.
func CheckReject(a models.Article) error {
	if StateOf(a) != StatePending {
		return ErrInvalidTransition
	}
	return nil
}
