package news

import (
	"context"
	"strings"

	"mvdan.cc/xurls/v2"

	"newsdesk/internal/models"
)

// URLFallback is the sentinel stored when an article carries no usable URL.
const URLFallback = "#"

// Source returns one page of headlines for a category.
type Source interface {
	Headlines(ctx context.Context, category string, page int) ([]models.Article, error)
}

// NormalizeArticle trims the article fields and guarantees a non-empty URL.
// A missing URL is replaced with the first https link found in the content,
// or the "#" sentinel.
func NormalizeArticle(a models.Article) models.Article {
	a.Title = strings.TrimSpace(a.Title)
	a.Description = strings.TrimSpace(a.Description)
	a.URL = strings.TrimSpace(a.URL)

	if a.URL == "" {
		a.URL = fallbackURL(a.Content)
	}

	return a
}

func fallbackURL(content string) string {
	httpsURLRe, err := xurls.StrictMatchingScheme("https://")
	if err != nil {
		return URLFallback
	}

	if u := strings.TrimSpace(httpsURLRe.FindString(content)); u != "" {
		return u
	}

	return URLFallback
}
