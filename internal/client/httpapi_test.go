package client_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"newsdesk/internal/auth"
	"newsdesk/internal/bookmarks"
	"newsdesk/internal/client"
	"newsdesk/internal/database"
	"newsdesk/internal/models"
	"newsdesk/internal/server"
	"newsdesk/internal/summarizer"
)

type fixedSource struct {
	articles []models.Article
}

func (s *fixedSource) Headlines(
	_ context.Context,
	_ string,
	_ int,
) ([]models.Article, error) {
	return s.articles, nil
}

type echoSummarizer struct{}

func (echoSummarizer) Summarize(
	_ context.Context,
	input summarizer.Input,
) (string, error) {
	return "summary of " + input.Title, nil
}

func newAPI(t *testing.T) *client.HTTPAPI {
	t.Helper()

	ctx := context.Background()
	log := slog.New(slog.DiscardHandler)

	db, err := database.New(ctx, filepath.Join(t.TempDir(), "test.sqlite"), log)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	srv := server.New(
		":0",
		&fixedSource{articles: []models.Article{{Title: "A B", URL: "#"}}},
		echoSummarizer{},
		bookmarks.NewService(db, log),
		auth.NewService(db, time.Hour, log),
		log,
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return client.NewHTTPAPI(ts.URL)
}

func TestHTTPAPIHeadlinesAndSummarize(t *testing.T) {
	api := newAPI(t)
	ctx := context.Background()

	articles, err := api.Headlines(ctx, "technology", 1)
	if err != nil {
		t.Fatalf("failed to fetch headlines: %v", err)
	}

	if len(articles) != 1 || articles[0].Title != "A B" {
		t.Fatalf("unexpected headlines: %+v", articles)
	}

	summary, err := api.Summarize(ctx, articles[0])
	if err != nil {
		t.Fatalf("failed to summarize: %v", err)
	}

	if summary != "summary of A B" {
		t.Fatalf("unexpected summary: %q", summary)
	}
}

func TestHTTPAPIBookmarkRoundTrip(t *testing.T) {
	api := newAPI(t)
	ctx := context.Background()

	article := models.Article{Title: "A B", Description: "d", Content: "c", URL: "#"}
	if err := api.Add(ctx, "user-1", article); err != nil {
		t.Fatalf("failed to add bookmark: %v", err)
	}

	list, err := api.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to list bookmarks: %v", err)
	}

	if len(list) != 1 || list[0] != article {
		t.Fatalf("unexpected bookmark list: %+v", list)
	}

	// Removing by the original title reaches the same derived document.
	if err = api.Remove(ctx, "user-1", "A B"); err != nil {
		t.Fatalf("failed to remove bookmark: %v", err)
	}

	list, err = api.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to list bookmarks again: %v", err)
	}

	if len(list) != 0 {
		t.Fatalf("expected empty bookmark list, got %+v", list)
	}
}

func TestHTTPAPIAddRejectsMissingUser(t *testing.T) {
	api := newAPI(t)

	err := api.Add(context.Background(), "", models.Article{Title: "A"})
	if err == nil {
		t.Fatalf("expected error for missing user")
	}
}
