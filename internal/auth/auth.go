package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"newsdesk/internal/database"
	"newsdesk/internal/models"
)

// Closed set of sign-in and sign-up failure reasons. Anything else is
// surfaced as a plain wrapped error.
var (
	ErrEmailInUse      = errors.New("email already in use")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrUserNotFound    = errors.New("user not found")
	ErrWrongPassword   = errors.New("wrong password")
	ErrTooManyAttempts = errors.New("too many attempts")
)

const (
	minPasswordLength  = 6
	maxFailedAttempts  = 5
	failedAttemptsSpan = 15 * time.Minute
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service issues stable per-user identifiers and session tokens backed by the
// database. Repeated password failures for one email are throttled in memory.
type Service struct {
	db         *database.Database
	sessionTTL time.Duration
	log        *slog.Logger

	mu       sync.Mutex
	failures map[string][]time.Time
}

func NewService(db *database.Database, sessionTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		db:         db,
		sessionTTL: sessionTTL,
		log:        log,
		failures:   make(map[string][]time.Time),
	}
}

// SignUp registers a new identity and signs it in.
func (s *Service) SignUp(
	ctx context.Context,
	email string,
	password string,
) (*models.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}

	if _, _, err := s.db.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("look up email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID := uuid.NewString()
	if err = s.db.CreateUser(ctx, userID, email, string(hash)); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.createSession(ctx, userID)
}

// SignIn validates the credentials and issues a session token.
func (s *Service) SignIn(
	ctx context.Context,
	email string,
	password string,
) (*models.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	if s.throttled(email, time.Now()) {
		return nil, ErrTooManyAttempts
	}

	user, passwordHash, err := s.db.GetUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up email: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		s.recordFailure(email, time.Now())

		return nil, ErrWrongPassword
	}

	s.clearFailures(email)

	return s.createSession(ctx, user.ID)
}

// SignOut revokes the session. Revoking an unknown token is not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if err := s.db.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// UserID resolves a session token to its stable user identifier. Expired or
// unknown tokens resolve to ErrUserNotFound.
func (s *Service) UserID(ctx context.Context, token string) (string, error) {
	session, err := s.db.GetSession(ctx, token)
	if errors.Is(err, database.ErrNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if err = s.db.DeleteSession(ctx, token); err != nil {
			s.log.WarnContext(ctx, "Failed to delete expired session",
				"error", err)
		}

		return "", ErrUserNotFound
	}

	return session.UserID, nil
}

func (s *Service) createSession(ctx context.Context, userID string) (*models.Session, error) {
	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL).UTC(),
	}

	if err := s.db.CreateSession(ctx, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &session, nil
}

func (s *Service) throttled(email string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := s.recentFailuresLocked(email, now)
	s.failures[email] = recent

	return len(recent) >= maxFailedAttempts
}

func (s *Service) recordFailure(email string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[email] = append(s.recentFailuresLocked(email, now), now)
}

func (s *Service) clearFailures(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.failures, email)
}

func (s *Service) recentFailuresLocked(email string, now time.Time) []time.Time {
	var recent []time.Time
	for _, at := range s.failures[email] {
		if now.Sub(at) < failedAttemptsSpan {
			recent = append(recent, at)
		}
	}

	return recent
}
