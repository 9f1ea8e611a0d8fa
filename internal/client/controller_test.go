package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"newsdesk/internal/models"
)

type stubArticleAPI struct {
	articles []models.Article
}

func (s *stubArticleAPI) Headlines(
	_ context.Context,
	_ string,
	_ int,
) ([]models.Article, error) {
	return s.articles, nil
}

type stubSummaryAPI struct {
	mu        sync.Mutex
	summaries map[string]string
	err       error
}

func (s *stubSummaryAPI) Summarize(
	_ context.Context,
	article models.Article,
) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return "", s.err
	}

	return s.summaries[article.Title], nil
}

type stubBookmarkAPI struct {
	mu        sync.Mutex
	sets      map[string]map[string]models.Article
	addCalls  int
	listCalls int
}

func newStubBookmarkAPI() *stubBookmarkAPI {
	return &stubBookmarkAPI{sets: make(map[string]map[string]models.Article)}
}

func (s *stubBookmarkAPI) Add(
	_ context.Context,
	userID string,
	article models.Article,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addCalls++

	set, ok := s.sets[userID]
	if !ok {
		set = make(map[string]models.Article)
		s.sets[userID] = set
	}
	set[article.Title] = article

	return nil
}

func (s *stubBookmarkAPI) List(
	_ context.Context,
	userID string,
) ([]models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listCalls++

	articles := make([]models.Article, 0, len(s.sets[userID]))
	for _, a := range s.sets[userID] {
		articles = append(articles, a)
	}

	return articles, nil
}

func (s *stubBookmarkAPI) Remove(
	_ context.Context,
	userID string,
	articleTitle string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sets[userID], articleTitle)

	return nil
}

func (s *stubBookmarkAPI) listCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listCalls
}

func newTestController(
	articles *stubArticleAPI,
	summaries *stubSummaryAPI,
	bookmarksAPI *stubBookmarkAPI,
) *Controller {
	return NewController(articles, summaries, bookmarksAPI, slog.New(slog.DiscardHandler))
}

func waitFor(t *testing.T, c *Controller, check func(State) bool) State {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		state := c.State()
		if check(state) {
			return state
		}

		time.Sleep(5 * time.Millisecond)
	}

	t.Fatalf("condition not reached before deadline, state = %+v", c.State())

	return State{}
}

func TestControllerSignInFetchesBookmarksExactlyOnce(t *testing.T) {
	bookmarksAPI := newStubBookmarkAPI()
	if err := bookmarksAPI.Add(context.Background(), "user-1",
		models.Article{Title: "A", URL: "#"}); err != nil {
		t.Fatalf("failed to seed bookmark: %v", err)
	}

	c := newTestController(&stubArticleAPI{}, &stubSummaryAPI{}, bookmarksAPI)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.Dispatch(SignedIn{UserID: "user-1"})

	state := waitFor(t, c, func(s State) bool { return len(s.Bookmarks) == 1 })
	if !state.IsBookmarked("A") {
		t.Fatalf("expected bookmark indicator for A")
	}

	// Only the sign-in refresh happened, plus the seed call count of zero.
	if got := bookmarksAPI.listCallCount(); got != 1 {
		t.Fatalf("expected exactly one list fetch, got %d", got)
	}
}

func TestControllerSignOutClearsWithoutFetch(t *testing.T) {
	bookmarksAPI := newStubBookmarkAPI()
	if err := bookmarksAPI.Add(context.Background(), "user-1",
		models.Article{Title: "A", URL: "#"}); err != nil {
		t.Fatalf("failed to seed bookmark: %v", err)
	}

	c := newTestController(&stubArticleAPI{}, &stubSummaryAPI{}, bookmarksAPI)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.Dispatch(SignedIn{UserID: "user-1"})
	waitFor(t, c, func(s State) bool { return len(s.Bookmarks) == 1 })

	fetchesBefore := bookmarksAPI.listCallCount()

	c.Dispatch(SignedOut{})
	state := waitFor(t, c, func(s State) bool {
		return s.UserID == "" && len(s.Bookmarks) == 0
	})

	if got := bookmarksAPI.listCallCount(); got != fetchesBefore {
		t.Fatalf("expected no fetch on sign-out, got %d extra", got-fetchesBefore)
	}

	if state.IsBookmarked("A") {
		t.Fatalf("expected cleared bookmark indicators after sign-out")
	}
}

func TestControllerBookmarkRequiresIdentity(t *testing.T) {
	bookmarksAPI := newStubBookmarkAPI()
	c := newTestController(&stubArticleAPI{}, &stubSummaryAPI{}, bookmarksAPI)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	err := c.AddBookmark(ctx, models.Article{Title: "A", URL: "#"})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	if bookmarksAPI.addCalls != 0 {
		t.Fatalf("expected no network call while anonymous")
	}
}

func TestControllerAddThenRefreshReflectsMutation(t *testing.T) {
	bookmarksAPI := newStubBookmarkAPI()
	c := newTestController(&stubArticleAPI{}, &stubSummaryAPI{}, bookmarksAPI)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.Dispatch(SignedIn{UserID: "user-1"})
	waitFor(t, c, func(s State) bool { return s.UserID == "user-1" })

	if err := c.AddBookmark(ctx, models.Article{Title: "A B", URL: "#"}); err != nil {
		t.Fatalf("failed to add bookmark: %v", err)
	}

	state := waitFor(t, c, func(s State) bool { return s.IsBookmarked("A B") })
	if len(state.Bookmarks) != 1 {
		t.Fatalf("expected one bookmark after refresh, got %d", len(state.Bookmarks))
	}

	if err := c.RemoveBookmark(ctx, "A B"); err != nil {
		t.Fatalf("failed to remove bookmark: %v", err)
	}

	waitFor(t, c, func(s State) bool { return !s.IsBookmarked("A B") })
}

func TestControllerSummarizeRoutesByTitle(t *testing.T) {
	summaries := &stubSummaryAPI{summaries: map[string]string{
		"A": "summary of A",
		"B": "summary of B",
	}}
	c := newTestController(&stubArticleAPI{}, summaries, newStubBookmarkAPI())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.Summarize(ctx, models.Article{Title: "A"})
	c.Summarize(ctx, models.Article{Title: "B"})

	state := waitFor(t, c, func(s State) bool {
		_, aOk := s.SummaryFor("A")
		_, bOk := s.SummaryFor("B")

		return aOk && bOk
	})

	if summary, _ := state.SummaryFor("A"); summary != "summary of A" {
		t.Fatalf("unexpected summary for A: %q", summary)
	}

	if state.IsPending("A") || state.IsPending("B") {
		t.Fatalf("expected pending markers to be cleared")
	}
}

func TestControllerSummarizeFailureAllowsRetry(t *testing.T) {
	summaries := &stubSummaryAPI{err: errors.New("model error")}
	c := newTestController(&stubArticleAPI{}, summaries, newStubBookmarkAPI())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.Summarize(ctx, models.Article{Title: "A"})

	waitFor(t, c, func(s State) bool { return !s.IsPending("A") })

	if _, ok := c.State().SummaryFor("A"); ok {
		t.Fatalf("expected no cached summary after failure")
	}

	// Manual retry succeeds once the provider recovers.
	summaries.mu.Lock()
	summaries.err = nil
	summaries.summaries = map[string]string{"A": "summary of A"}
	summaries.mu.Unlock()

	c.Summarize(ctx, models.Article{Title: "A"})

	state := waitFor(t, c, func(s State) bool {
		_, ok := s.SummaryFor("A")

		return ok
	})

	if summary, _ := state.SummaryFor("A"); summary != "summary of A" {
		t.Fatalf("unexpected summary after retry: %q", summary)
	}
}

func TestControllerLoadArticles(t *testing.T) {
	articles := &stubArticleAPI{articles: []models.Article{{Title: "A", URL: "#"}}}
	c := newTestController(articles, &stubSummaryAPI{}, newStubBookmarkAPI())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.LoadArticles(ctx, "technology", 1)

	state := waitFor(t, c, func(s State) bool { return len(s.Articles) == 1 })
	if state.Articles[0].Title != "A" {
		t.Fatalf("unexpected article list: %+v", state.Articles)
	}
}
