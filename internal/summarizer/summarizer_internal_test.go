package summarizer

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestExcerptSummarizerUsesLeadingSentences(t *testing.T) {
	s := NewExcerptSummarizer()

	summary, err := s.Summarize(context.Background(), Input{
		Title:   "A",
		Content: "First. Second! Third? Fourth.",
	})
	if err != nil {
		t.Fatalf("failed to summarize: %v", err)
	}

	if summary != "First. Second! Third?" {
		t.Fatalf("unexpected summary: %q", summary)
	}
}

func TestExcerptSummarizerFallsBackToDescription(t *testing.T) {
	s := NewExcerptSummarizer()

	summary, err := s.Summarize(context.Background(), Input{
		Title:       "A",
		Description: "Only a teaser.",
	})
	if err != nil {
		t.Fatalf("failed to summarize: %v", err)
	}

	if summary != "Only a teaser." {
		t.Fatalf("unexpected summary: %q", summary)
	}
}

func TestExcerptSummarizerRejectsEmptyInput(t *testing.T) {
	s := NewExcerptSummarizer()

	if _, err := s.Summarize(context.Background(), Input{Title: "A"}); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

type blockingSummarizer struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (s *blockingSummarizer) Summarize(_ context.Context, input Input) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	s.entered <- struct{}{}
	<-s.release

	return "summary of " + input.Title, nil
}

func (s *blockingSummarizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

func TestSingleFlightSharesConcurrentSameTitleRequests(t *testing.T) {
	inner := &blockingSummarizer{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s := NewSingleFlight(inner)
	ctx := context.Background()

	const concurrent = 4

	var wg sync.WaitGroup
	results := make([]string, concurrent)

	wg.Add(1)
	go func() {
		defer wg.Done()
		summary, err := s.Summarize(ctx, Input{Title: "A"})
		if err != nil {
			t.Errorf("failed to summarize: %v", err)
		}
		results[0] = summary
	}()

	// Wait until the first request holds the flight, then pile on.
	<-inner.entered

	for i := 1; i < concurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			summary, err := s.Summarize(ctx, Input{Title: "A"})
			if err != nil {
				t.Errorf("failed to summarize: %v", err)
			}
			results[i] = summary
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(inner.release)
	wg.Wait()

	if inner.callCount() != 1 {
		t.Fatalf("expected one inner call, got %d", inner.callCount())
	}

	for _, summary := range results {
		if summary != "summary of A" {
			t.Fatalf("unexpected summary: %q", summary)
		}
	}
}
