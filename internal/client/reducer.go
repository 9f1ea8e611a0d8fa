package client

// Reduce is the pure state-transition function of the synchronization layer:
// it folds one completed event into the session state and returns the side
// effects to run. It never mutates its input; maps are cloned on write so a
// previous State stays valid.
func Reduce(s State, e Event) (State, []Command) {
	switch e := e.(type) {
	case SignedIn:
		// A new identity invalidates the previous identity's bookmark
		// list; summaries are identity-independent and survive. Exactly
		// one refresh is issued for the new identity.
		s.UserID = e.UserID
		s.Bookmarks = nil

		return s, []Command{FetchBookmarks{UserID: e.UserID}}

	case SignedOut:
		// Clears the visible bookmark list without issuing a fetch.
		s.UserID = ""
		s.Bookmarks = nil

		return s, nil

	case ArticlesLoaded:
		s.Articles = e.Articles

		return s, nil

	case BookmarksLoaded:
		s.Bookmarks = e.Bookmarks

		return s, nil

	case SummaryRequested:
		s.Pending = clonePending(s.Pending)
		s.Pending[e.Title] = struct{}{}

		return s, nil

	case SummaryReady:
		// Responses are routed by title, so a late response for another
		// title cannot clobber this entry. For the same title, last
		// response wins.
		s.Summaries = cloneSummaries(s.Summaries)
		s.Summaries.Put(e.Title, e.Summary)

		s.Pending = clonePending(s.Pending)
		delete(s.Pending, e.Title)

		return s, nil

	case SummaryFailed:
		s.Pending = clonePending(s.Pending)
		delete(s.Pending, e.Title)

		return s, nil

	case BookmarkSaved:
		return s, []Command{FetchBookmarks{UserID: e.UserID}}

	case BookmarkRemoved:
		return s, []Command{FetchBookmarks{UserID: e.UserID}}

	default:
		return s, nil
	}
}
