package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsdesk/internal/models"
)

const httpAPITimeout = 30 * time.Second

// HTTPAPI speaks the server's HTTP surface. It implements ArticleAPI,
// SummaryAPI and BookmarkAPI.
type HTTPAPI struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAPI(baseURL string) *HTTPAPI {
	return &HTTPAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: httpAPITimeout},
	}
}

func (a *HTTPAPI) Headlines(
	ctx context.Context,
	category string,
	page int,
) ([]models.Article, error) {
	query := url.Values{}
	query.Set("category", category)
	query.Set("page", strconv.Itoa(page))

	var payload struct {
		Articles []models.Article `json:"articles"`
	}
	if err := a.do(ctx, http.MethodGet, "/news?"+query.Encode(), nil, &payload); err != nil {
		return nil, err
	}

	return payload.Articles, nil
}

func (a *HTTPAPI) Summarize(
	ctx context.Context,
	article models.Article,
) (string, error) {
	body := map[string]string{
		"title":       article.Title,
		"description": article.Description,
		"content":     article.Content,
	}

	var payload struct {
		Summary string `json:"summary"`
	}
	if err := a.do(ctx, http.MethodPost, "/summarize", body, &payload); err != nil {
		return "", err
	}

	return payload.Summary, nil
}

func (a *HTTPAPI) Add(
	ctx context.Context,
	userID string,
	article models.Article,
) error {
	body := map[string]any{
		"userId":  userID,
		"article": article,
	}

	return a.do(ctx, http.MethodPost, "/bookmark", body, nil)
}

func (a *HTTPAPI) List(ctx context.Context, userID string) ([]models.Article, error) {
	var payload struct {
		Bookmarks []models.Article `json:"bookmarks"`
	}
	path := "/bookmarks/" + url.PathEscape(userID)
	if err := a.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}

	return payload.Bookmarks, nil
}

func (a *HTTPAPI) Remove(
	ctx context.Context,
	userID string,
	articleTitle string,
) error {
	path := "/bookmark/" + url.PathEscape(userID) + "/" + url.PathEscape(articleTitle)

	return a.do(ctx, http.MethodDelete, path, nil, nil)
}

func (a *HTTPAPI) do(
	ctx context.Context,
	method string,
	path string,
	body any,
	out any,
) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		var failure struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&failure); decodeErr == nil &&
			failure.Error != "" {
			return fmt.Errorf("server status %d: %s", resp.StatusCode, failure.Error)
		}

		return fmt.Errorf("server status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
