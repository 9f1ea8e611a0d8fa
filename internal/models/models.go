package models

import "time"

// Article is a single headline as returned by the article source. A bookmark
// stores this exact shape under the owning user; the title doubles as the
// natural key for bookmarks and summaries.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
}

// User is an authenticated identity.
type User struct {
	ID    string `json:"userId"`
	Email string `json:"email"`
}

// Session is an issued sign-in token. Expired sessions are treated as absent.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
