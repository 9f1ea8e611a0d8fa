package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"newsdesk/internal/models"
)

const rssPageSize = 20

// Built-in feeds per NewsAPI-compatible category, used when no API key is
// configured.
var defaultCategoryFeeds = map[string][]string{
	"technology":    {"https://feeds.arstechnica.com/arstechnica/technology-lab"},
	"business":      {"https://feeds.bbci.co.uk/news/business/rss.xml"},
	"science":       {"https://www.sciencedaily.com/rss/all.xml"},
	"health":        {"https://feeds.bbci.co.uk/news/health/rss.xml"},
	"entertainment": {"https://feeds.bbci.co.uk/news/entertainment_and_arts/rss.xml"},
	"sports":        {"https://feeds.bbci.co.uk/sport/rss.xml"},
}

// RSSSource serves headlines from public RSS feeds mapped per category.
type RSSSource struct {
	feeds  map[string][]string
	parser *gofeed.Parser
	log    *slog.Logger
}

func NewRSSSource(log *slog.Logger) *RSSSource {
	return &RSSSource{
		feeds:  defaultCategoryFeeds,
		parser: gofeed.NewParser(),
		log:    log,
	}
}

func (s *RSSSource) Headlines(
	ctx context.Context,
	category string,
	page int,
) ([]models.Article, error) {
	feedURLs, ok := s.feeds[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	var articles []models.Article
	var errs []error

	for _, feedURL := range feedURLs {
		parsed, err := s.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("parse feed (URL = %s): %w", feedURL, err))

			continue
		}

		for _, item := range parsed.Items {
			if item == nil {
				continue
			}

			articles = append(articles, NormalizeArticle(models.Article{
				Title:       item.Title,
				Description: stripHTML(item.Description),
				Content:     stripHTML(item.Content),
				URL:         item.Link,
			}))
		}
	}

	if len(articles) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, err := range errs {
		s.log.WarnContext(ctx, "Failed to fetch category feed",
			"error", err,
			"category", category)
	}

	return paginate(articles, page, rssPageSize), nil
}

func paginate(articles []models.Article, page int, pageSize int) []models.Article {
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(articles) {
		return []models.Article{}
	}

	end := min(start+pageSize, len(articles))

	return articles[start:end]
}

func stripHTML(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	return strings.TrimSpace(doc.Text())
}
