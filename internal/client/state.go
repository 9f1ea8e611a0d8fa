package client

import (
	"maps"

	"newsdesk/internal/models"
)

// SummaryCache maps article titles to generated summaries. It lives only in
// client memory: entries are created on the first successful summarization of
// a title, never invalidated and never persisted.
type SummaryCache map[string]string

func (c SummaryCache) Get(title string) (string, bool) {
	summary, ok := c[title]

	return summary, ok
}

// Put overwrites unconditionally. There is no eviction; article sets per
// session are small.
func (c SummaryCache) Put(title string, summary string) {
	c[title] = summary
}

// State is the client-side session state the reducer evolves: the rendered
// article list, the signed-in identity, its bookmark set, cached summaries
// and per-title pending markers. An empty UserID means anonymous.
type State struct {
	UserID    string
	Articles  []models.Article
	Bookmarks []models.Article
	Summaries SummaryCache
	Pending   map[string]struct{}
}

func NewState() State {
	return State{
		Summaries: SummaryCache{},
		Pending:   map[string]struct{}{},
	}
}

// IsBookmarked tests membership in the in-memory bookmark list by title
// equality. No server round-trip happens per article; the indicator may lag
// until the refresh that follows a mutation completes.
func (s State) IsBookmarked(title string) bool {
	for _, b := range s.Bookmarks {
		if b.Title == title {
			return true
		}
	}

	return false
}

func (s State) IsPending(title string) bool {
	_, ok := s.Pending[title]

	return ok
}

func (s State) SummaryFor(title string) (string, bool) {
	return s.Summaries.Get(title)
}

func cloneSummaries(c SummaryCache) SummaryCache {
	cloned := maps.Clone(c)
	if cloned == nil {
		cloned = SummaryCache{}
	}

	return cloned
}

func clonePending(p map[string]struct{}) map[string]struct{} {
	cloned := maps.Clone(p)
	if cloned == nil {
		cloned = map[string]struct{}{}
	}

	return cloned
}
