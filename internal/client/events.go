package client

import "newsdesk/internal/models"

// Event is a completed occurrence the reducer folds into the session state:
// an identity transition, a finished fetch or a summarization outcome.
type Event interface{ isEvent() }

// SignedIn reports an anonymous-to-authenticated transition (or a switch to
// another identity).
type SignedIn struct {
	UserID string
}

// SignedOut reports a transition back to anonymous.
type SignedOut struct{}

// ArticlesLoaded carries a freshly fetched headline page.
type ArticlesLoaded struct {
	Articles []models.Article
}

// BookmarksLoaded carries the result of a bookmark-list refresh.
type BookmarksLoaded struct {
	Bookmarks []models.Article
}

// SummaryRequested marks a title as pending.
type SummaryRequested struct {
	Title string
}

// SummaryReady caches a summary and clears the title's pending marker.
type SummaryReady struct {
	Title   string
	Summary string
}

// SummaryFailed clears the pending marker without caching anything, leaving
// the user free to retry.
type SummaryFailed struct {
	Title string
}

// BookmarkSaved reports a resolved add; it triggers the follow-up list
// refresh for the mutating identity.
type BookmarkSaved struct {
	UserID string
}

// BookmarkRemoved reports a resolved remove; it triggers the follow-up list
// refresh for the mutating identity.
type BookmarkRemoved struct {
	UserID string
}

func (SignedIn) isEvent()         {}
func (SignedOut) isEvent()        {}
func (ArticlesLoaded) isEvent()   {}
func (BookmarksLoaded) isEvent()  {}
func (SummaryRequested) isEvent() {}
func (SummaryReady) isEvent()     {}
func (SummaryFailed) isEvent()    {}
func (BookmarkSaved) isEvent()    {}
func (BookmarkRemoved) isEvent()  {}

// Command is a side effect the reducer asks the controller to run.
type Command interface{ isCommand() }

// FetchBookmarks asks for one bookmark-list fetch for the given identity.
type FetchBookmarks struct {
	UserID string
}

func (FetchBookmarks) isCommand() {}
