package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"newsdesk/internal/auth"
	"newsdesk/internal/bookmarks"
	"newsdesk/internal/news"
	"newsdesk/internal/summarizer"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Server is the HTTP surface over the article source, the summarizer, the
// bookmark service and the identity provider.
type Server struct {
	httpServer *http.Server
	source     news.Source
	summarizer summarizer.Summarizer
	bookmarks  *bookmarks.Service
	auth       *auth.Service
	log        *slog.Logger
}

func New(
	addr string,
	source news.Source,
	s summarizer.Summarizer,
	bookmarkService *bookmarks.Service,
	authService *auth.Service,
	log *slog.Logger,
) *Server {
	srv := &Server{
		source:     source,
		summarizer: s,
		bookmarks:  bookmarkService,
		auth:       authService,
		log:        log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /news", srv.handleNews)
	mux.HandleFunc("POST /summarize", srv.handleSummarize)
	mux.HandleFunc("POST /bookmark", srv.handleAddBookmark)
	mux.HandleFunc("GET /bookmarks/{userID}", srv.handleListBookmarks)
	mux.HandleFunc("DELETE /bookmark/{userID}/{articleTitle}", srv.handleRemoveBookmark)
	mux.HandleFunc("POST /auth/signup", srv.handleSignUp)
	mux.HandleFunc("POST /auth/signin", srv.handleSignIn)
	mux.HandleFunc("POST /auth/signout", srv.handleSignOut)

	srv.httpServer = &http.Server{
		Addr:              addr,
		Handler:           srv.withCORS(srv.withRequestLog(mux)),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return srv
}

// Handler exposes the routed handler, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		s.log.InfoContext(r.Context(), "Request is handled",
			"method", r.Method,
			"path", r.URL.Path,
			"durationMs", time.Since(start).Milliseconds())
	})
}
