package models

import (
	"database/sql"
)

// User is the row stored in the users table.
type User struct {
	UserID       string   `db:"id"`
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	FullName     string   `db:"full_name"`
	Avatar       string   `db:"avatar"`
	CoverImage   string   `db:"cover_image"`
	PasswordHash string   `db:"password_hash"`
	WatchHistory []string `db:"watch_history"`
	AuditFields

	// Hash of the only refresh token currently accepted for the user.
	RefreshTokenHash sql.NullString `db:"refresh_token_hash"`
}
