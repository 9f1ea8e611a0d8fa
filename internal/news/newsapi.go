package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"newsdesk/internal/models"
)

const (
	newsAPIBaseURL       = "https://newsapi.org/v2/top-headlines"
	newsAPIClientTimeout = 20 * time.Second
)

// NewsAPISource proxies the NewsAPI top-headlines endpoint.
type NewsAPISource struct {
	apiKey string
	client *http.Client
	log    *slog.Logger
}

func NewNewsAPISource(apiKey string, log *slog.Logger) *NewsAPISource {
	return &NewsAPISource{
		apiKey: apiKey,
		client: &http.Client{Timeout: newsAPIClientTimeout},
		log:    log,
	}
}

func (s *NewsAPISource) Headlines(
	ctx context.Context,
	category string,
	page int,
) ([]models.Article, error) {
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("category", category)
	query.Set("page", strconv.Itoa(page))
	query.Set("apiKey", s.apiKey)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		newsAPIBaseURL+"?"+query.Encode(),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			s.log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"category", category,
				"page", page)
		}
	}()

	var payload struct {
		Status   string           `json:"status"`
		Message  string           `json:"message"`
		Articles []models.Article `json:"articles"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"provider status %d (message = %s)",
			resp.StatusCode,
			payload.Message,
		)
	}

	articles := make([]models.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		articles = append(articles, NormalizeArticle(a))
	}

	return articles, nil
}
