package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"newsdesk/internal/models"
)

// ErrNotAuthenticated is the client-side guard for bookmark actions while
// anonymous. No network call is made; callers surface it as a prompt.
var ErrNotAuthenticated = errors.New("not authenticated")

const eventQueueSize = 64

// Controller owns the session state and drives the request lifecycle. All
// state mutation happens on the single Run goroutine: actions and completed
// asynchronous responses arrive as events, are folded in by Reduce, and the
// returned commands are executed. Asynchronous work never blocks the loop;
// completions are routed back as events keyed by title or identity. None of
// the operations support cancellation; a superseded response is simply the
// last one applied.
type Controller struct {
	articles  ArticleAPI
	summaries SummaryAPI
	bookmarks BookmarkAPI
	log       *slog.Logger

	events chan Event

	mu    sync.Mutex
	state State
}

func NewController(
	articles ArticleAPI,
	summaries SummaryAPI,
	bookmarks BookmarkAPI,
	log *slog.Logger,
) *Controller {
	return &Controller{
		articles:  articles,
		summaries: summaries,
		bookmarks: bookmarks,
		log:       log,
		events:    make(chan Event, eventQueueSize),
		state:     NewState(),
	}
}

// Run processes events until the context is done.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-c.events:
			c.apply(ctx, e)
		}
	}
}

// Dispatch hands an event to the loop. Identity watchers use it to deliver
// SignedIn and SignedOut transitions.
func (c *Controller) Dispatch(e Event) {
	c.events <- e
}

// State returns a snapshot of the current session state. The snapshot's maps
// are never mutated afterwards; the reducer clones on write.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// LoadArticles fetches a headline page and replaces the rendered list when it
// arrives. A failure degrades only this affordance.
func (c *Controller) LoadArticles(ctx context.Context, category string, page int) {
	go func() {
		articles, err := c.articles.Headlines(ctx, category, page)
		if err != nil {
			c.log.ErrorContext(ctx, "Failed to fetch articles",
				"error", err,
				"category", category,
				"page", page)

			return
		}

		c.Dispatch(ArticlesLoaded{Articles: articles})
	}()
}

// Summarize requests a summary for the article unless one is already cached.
// The title is marked pending until the response for that title arrives;
// requests for different titles run concurrently without interfering.
func (c *Controller) Summarize(ctx context.Context, article models.Article) {
	if _, ok := c.State().SummaryFor(article.Title); ok {
		return
	}

	c.Dispatch(SummaryRequested{Title: article.Title})

	go func() {
		summary, err := c.summaries.Summarize(ctx, article)
		if err != nil {
			c.log.ErrorContext(ctx, "Failed to generate summary",
				"error", err,
				"title", article.Title)
			c.Dispatch(SummaryFailed{Title: article.Title})

			return
		}

		c.Dispatch(SummaryReady{Title: article.Title, Summary: summary})
	}()
}

// AddBookmark persists the article for the signed-in identity and then
// refreshes the bookmark list. Anonymous callers get ErrNotAuthenticated and
// no network call is made.
func (c *Controller) AddBookmark(ctx context.Context, article models.Article) error {
	userID := c.State().UserID
	if userID == "" {
		return ErrNotAuthenticated
	}

	go func() {
		if err := c.bookmarks.Add(ctx, userID, article); err != nil {
			c.log.ErrorContext(ctx, "Failed to add bookmark",
				"error", err,
				"userID", userID,
				"title", article.Title)

			return
		}

		// The refresh is issued only after the mutation resolved, so the
		// refreshed list reflects it.
		c.Dispatch(BookmarkSaved{UserID: userID})
	}()

	return nil
}

// RemoveBookmark deletes the bookmark for the signed-in identity and then
// refreshes the bookmark list.
func (c *Controller) RemoveBookmark(ctx context.Context, articleTitle string) error {
	userID := c.State().UserID
	if userID == "" {
		return ErrNotAuthenticated
	}

	go func() {
		if err := c.bookmarks.Remove(ctx, userID, articleTitle); err != nil {
			c.log.ErrorContext(ctx, "Failed to remove bookmark",
				"error", err,
				"userID", userID,
				"title", articleTitle)

			return
		}

		c.Dispatch(BookmarkRemoved{UserID: userID})
	}()

	return nil
}

func (c *Controller) apply(ctx context.Context, e Event) {
	c.mu.Lock()
	next, cmds := Reduce(c.state, e)
	c.state = next
	c.mu.Unlock()

	for _, cmd := range cmds {
		c.execute(ctx, cmd)
	}
}

func (c *Controller) execute(ctx context.Context, cmd Command) {
	switch cmd := cmd.(type) {
	case FetchBookmarks:
		go func() {
			bookmarksList, err := c.bookmarks.List(ctx, cmd.UserID)
			if err != nil {
				c.log.ErrorContext(ctx, "Failed to fetch bookmarks",
					"error", err,
					"userID", cmd.UserID)

				return
			}

			c.Dispatch(BookmarksLoaded{Bookmarks: bookmarksList})
		}()
	}
}
