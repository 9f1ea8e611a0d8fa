package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"newsdesk/internal/auth"
	"newsdesk/internal/bookmarks"
	"newsdesk/internal/config"
	"newsdesk/internal/database"
	"newsdesk/internal/news"
	"newsdesk/internal/scheduler"
	"newsdesk/internal/server"
	"newsdesk/internal/summarizer"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.InfoContext(ctx, "No .env file is loaded",
			"error", err)
	}

	cfg := config.LoadConfig()

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize db",
			"error", err,
			"dbPath", cfg.DBPath)

		return
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", err,
				"dbPath", cfg.DBPath)
		}
	}()
	log.InfoContext(ctx, "DB is initialized",
		"dbPath", cfg.DBPath)

	source := initSource(ctx, cfg, log)
	s := initSummarizer(ctx, cfg, log)

	bookmarkService := bookmarks.NewService(db, log)
	authService := auth.NewService(db, cfg.SessionTTL, log)

	sched := scheduler.New(ctx, source, cfg.Categories, log)
	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", scheduler.WarmHeadlinesSpec)

		return
	}
	defer sched.Stop()
	log.InfoContext(ctx, "Scheduler is started",
		"spec", scheduler.WarmHeadlinesSpec,
		"categories", cfg.Categories)

	srv := server.New(cfg.Addr, source, s, bookmarkService, authService, log)

	go func() {
		if err := srv.Start(); err != nil {
			log.ErrorContext(ctx, "Failed to serve",
				"error", err,
				"addr", cfg.Addr)
			cancel()
		}
	}()
	log.InfoContext(ctx, "Server is started",
		"addr", cfg.Addr)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case <-ctx.Done():
	}
	cancel()

	if err = srv.Shutdown(context.Background()); err != nil {
		log.Error("Failed to shut down server",
			"error", err)
	}

	log.Info("Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())
}

func initSource(ctx context.Context, cfg config.Config, log *slog.Logger) news.Source {
	var source news.Source

	if apiKey := strings.TrimSpace(cfg.NewsAPIKey); apiKey != "" {
		source = news.NewNewsAPISource(apiKey, log)
		log.InfoContext(ctx, "NewsAPI source is initialized")
	} else {
		source = news.NewRSSSource(log)
		log.WarnContext(ctx, "NEWS_API_KEY is missing so RSS source will be used")
	}

	return news.NewCachedSource(source, cfg.HeadlineCacheTTL, log)
}

func initSummarizer(ctx context.Context, cfg config.Config, log *slog.Logger) summarizer.Summarizer {
	apiKey := strings.TrimSpace(cfg.OpenAIAPIKey)
	if apiKey == "" {
		log.WarnContext(ctx, "OPENAI_API_KEY is missing so fallback will be used")

		return summarizer.NewSingleFlight(summarizer.NewExcerptSummarizer())
	}

	s, err := summarizer.NewOpenAISummarizer(apiKey)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create OpenAI summarizer so fallback will be used",
			"error", err)

		return summarizer.NewSingleFlight(summarizer.NewExcerptSummarizer())
	}

	log.InfoContext(ctx, "OpenAI summarizer is initialized")

	return summarizer.NewSingleFlight(s)
}
