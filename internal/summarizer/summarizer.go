package summarizer

import (
	"context"
)

// Input describes the payload for a summary request.
type Input struct {
	// Title is the article headline. It also keys pending markers and
	// single-flight de-duplication.
	Title string
	// Description is the short teaser shown in listings.
	Description string
	// Content is the article body, possibly truncated by the source.
	Content string
}

// Summarizer produces a single summary for a given article.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}
