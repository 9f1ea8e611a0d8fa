package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"newsdesk/internal/models"
)

var (
	// ErrInvalidRequest reports missing required fields. Caller error, never retried.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrStoreUnavailable reports a store-layer failure. The service performs no
	// retries; the caller may re-invoke the action.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Store is the persistence contract the service writes through. One row per
// (user, derived id); upsert is a full overwrite.
type Store interface {
	UpsertBookmark(ctx context.Context, userID string, docID string, article *models.Article) error
	ListBookmarks(ctx context.Context, userID string) ([]models.Article, error)
	DeleteBookmark(ctx context.Context, userID string, docID string) error
}

// Service mediates all reads and writes of a user's bookmark set. It owns
// document id derivation so callers never construct ids themselves.
type Service struct {
	store Store
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// DeriveID maps an article title to its storage key by replacing every space
// with an underscore. Titles differing only in space-vs-underscore collide;
// this mirrors the stored layout and is not corrected here.
func DeriveID(title string) string {
	return strings.ReplaceAll(title, " ", "_")
}

// Add upserts the article under the caller's derived id. Re-adding a title
// replaces the stored description, content and URL; the end state is the same
// for repeated identical calls.
func (s *Service) Add(ctx context.Context, userID string, article *models.Article) error {
	if userID == "" || article == nil {
		return fmt.Errorf("%w: missing userId or article", ErrInvalidRequest)
	}

	docID := DeriveID(article.Title)

	if err := s.store.UpsertBookmark(ctx, userID, docID, article); err != nil {
		s.log.ErrorContext(ctx, "Failed to upsert bookmark",
			"error", err,
			"userID", userID,
			"docID", docID)

		return fmt.Errorf("%w: upsert bookmark: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// List returns the user's bookmark set in store order. A user with zero
// bookmarks gets an empty slice, never an error.
func (s *Service) List(ctx context.Context, userID string) ([]models.Article, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing userId", ErrInvalidRequest)
	}

	articles, err := s.store.ListBookmarks(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list bookmarks",
			"error", err,
			"userID", userID)

		return nil, fmt.Errorf("%w: list bookmarks: %v", ErrStoreUnavailable, err)
	}

	if articles == nil {
		articles = []models.Article{}
	}

	return articles, nil
}

// Remove deletes the bookmark derived from articleTitle. Deleting an absent
// id is not an error.
func (s *Service) Remove(ctx context.Context, userID string, articleTitle string) error {
	if userID == "" {
		return fmt.Errorf("%w: missing userId", ErrInvalidRequest)
	}

	docID := DeriveID(articleTitle)

	if err := s.store.DeleteBookmark(ctx, userID, docID); err != nil {
		s.log.ErrorContext(ctx, "Failed to delete bookmark",
			"error", err,
			"userID", userID,
			"docID", docID)

		return fmt.Errorf("%w: delete bookmark: %v", ErrStoreUnavailable, err)
	}

	return nil
}
