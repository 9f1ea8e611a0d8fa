package summarizer

import (
	"context"
	"errors"
	"strings"
)

const fallbackMaxSentences = 3

// ExcerptSummarizer is the degraded mode used when no OpenAI key is
// configured: it returns the leading sentences of the article body.
type ExcerptSummarizer struct{}

func NewExcerptSummarizer() *ExcerptSummarizer {
	return &ExcerptSummarizer{}
}

func (s *ExcerptSummarizer) Summarize(
	_ context.Context,
	input Input,
) (string, error) {
	text := strings.TrimSpace(input.Content)
	if text == "" {
		text = strings.TrimSpace(input.Description)
	}
	if text == "" {
		return "", errors.New("input is empty")
	}

	return leadingSentences(text, fallbackMaxSentences), nil
}

func leadingSentences(text string, limit int) string {
	var builder strings.Builder
	sentences := 0

	for _, r := range text {
		builder.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			sentences++
			if sentences >= limit {
				break
			}
		}
	}

	return strings.TrimSpace(builder.String())
}
