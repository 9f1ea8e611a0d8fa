package summarizer

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"
)

// SingleFlight de-duplicates concurrent requests for the same title: a
// request in flight for a title is shared by later callers until it resolves.
// Requests for different titles proceed independently.
type SingleFlight struct {
	inner Summarizer
	group singleflight.Group
}

func NewSingleFlight(inner Summarizer) *SingleFlight {
	return &SingleFlight{inner: inner}
}

func (s *SingleFlight) Summarize(ctx context.Context, input Input) (string, error) {
	result, err, _ := s.group.Do(input.Title, func() (any, error) {
		return s.inner.Summarize(ctx, input)
	})
	if err != nil {
		return "", err
	}

	summary, ok := result.(string)
	if !ok {
		return "", errors.New("unexpected result type")
	}

	return summary, nil
}
