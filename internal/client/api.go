package client

import (
	"context"

	"newsdesk/internal/models"
)

// ArticleAPI fetches one page of headlines for a category.
type ArticleAPI interface {
	Headlines(ctx context.Context, category string, page int) ([]models.Article, error)
}

// SummaryAPI generates a summary for one article.
type SummaryAPI interface {
	Summarize(ctx context.Context, article models.Article) (string, error)
}

// BookmarkAPI is the bookmark service surface as seen from the client.
type BookmarkAPI interface {
	Add(ctx context.Context, userID string, article models.Article) error
	List(ctx context.Context, userID string) ([]models.Article, error)
	Remove(ctx context.Context, userID string, articleTitle string) error
}
