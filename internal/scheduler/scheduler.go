package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"newsdesk/internal/news"
)

const (
	WarmHeadlinesSpec     = "0 * * * *"
	Timezone              = "UTC"
	TimezoneOffsetSeconds = 0

	warmHeadlinesTimeout = 5 * time.Minute
	warmedPage           = 1
)

// Scheduler keeps the first headline page of each configured category warm so
// interactive requests hit the cache.
type Scheduler struct {
	ctx        context.Context
	cron       *cron.Cron
	source     news.Source
	categories []string
	log        *slog.Logger
}

func New(
	ctx context.Context,
	source news.Source,
	categories []string,
	log *slog.Logger,
) *Scheduler {
	c := cron.New(cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)))

	return &Scheduler{
		ctx:        ctx,
		cron:       c,
		source:     source,
		categories: categories,
		log:        log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(WarmHeadlinesSpec, s.warmHeadlines); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) warmHeadlines() {
	ctx, cancel := context.WithTimeout(s.ctx, warmHeadlinesTimeout)
	defer cancel()

	for _, category := range s.categories {
		if ctx.Err() != nil {
			s.log.InfoContext(ctx, "Scheduler context is done",
				"error", ctx.Err())

			return
		}

		articles, err := s.source.Headlines(ctx, category, warmedPage)
		if err != nil {
			s.log.ErrorContext(ctx, "Failed to warm headlines",
				"error", err,
				"category", category,
				"page", warmedPage)

			continue
		}

		s.log.InfoContext(ctx, "Headlines are warmed",
			"category", category,
			"page", warmedPage,
			"articleCount", len(articles))
	}
}
