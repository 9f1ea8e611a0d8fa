package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"newsdesk/internal/models"
)

// ErrNotFound reports a row that does not exist. Callers translate it into
// their own domain errors.
var ErrNotFound = errors.New("not found")

func (d *Database) UpsertBookmark(
	ctx context.Context,
	userID string,
	docID string,
	article *models.Article,
) error {
	query := `insert into bookmarks (user_id, doc_id, title, description, content, url)
	values (?, ?, ?, ?, ?, ?)
	on conflict (user_id, doc_id) do update
	set title = excluded.title,
		description = excluded.description,
		content = excluded.content,
		url = excluded.url`

	_, err := d.db.ExecContext(ctx, query,
		userID, docID, article.Title, article.Description, article.Content, article.URL)

	return err
}

func (d *Database) ListBookmarks(
	ctx context.Context,
	userID string,
) ([]models.Article, error) {
	query := "select title, description, content, url from bookmarks where user_id = ?"

	rows, err := d.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"userID", userID,
				"operation", "ListBookmarks")
		}
	}()

	var articles []models.Article
	for rows.Next() {
		var a models.Article
		if err = rows.Scan(&a.Title, &a.Description, &a.Content, &a.URL); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		articles = append(articles, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return articles, nil
}

func (d *Database) DeleteBookmark(ctx context.Context, userID string, docID string) error {
	query := "delete from bookmarks where user_id = ? and doc_id = ?"

	_, err := d.db.ExecContext(ctx, query, userID, docID)

	return err
}

func (d *Database) CreateUser(
	ctx context.Context,
	id string,
	email string,
	passwordHash string,
) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is empty")
	}

	query := "insert into users (id, email, password_hash) values (?, ?, ?)"

	_, err := d.db.ExecContext(ctx, query, id, email, passwordHash)

	return err
}

func (d *Database) GetUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, string, error) {
	query := "select id, email, password_hash from users where email = ?"

	var u models.User
	var passwordHash string

	err := d.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan row: %w", err)
	}

	return &u, passwordHash, nil
}

func (d *Database) CreateSession(ctx context.Context, session *models.Session) error {
	query := "insert into sessions (token, user_id, expires_at) values (?, ?, ?)"

	_, err := d.db.ExecContext(ctx, query,
		session.Token, session.UserID, session.ExpiresAt)

	return err
}

func (d *Database) GetSession(ctx context.Context, token string) (*models.Session, error) {
	query := "select token, user_id, expires_at from sessions where token = ?"

	var s models.Session

	err := d.db.QueryRowContext(ctx, query, token).Scan(&s.Token, &s.UserID, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	return &s, nil
}

func (d *Database) DeleteSession(ctx context.Context, token string) error {
	query := "delete from sessions where token = ?"

	_, err := d.db.ExecContext(ctx, query, token)

	return err
}

func (d *Database) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	query := "delete from sessions where expires_at <= ?"

	_, err := d.db.ExecContext(ctx, query, now)

	return err
}
