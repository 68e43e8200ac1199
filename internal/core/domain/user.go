package domain

import "strings"

// User represents a registered account. A user is also a channel other users subscribe to.
type User struct {
	UserID       string   `json:"_id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	FullName     string   `json:"fullName"`
	Avatar       string   `json:"avatar"`
	CoverImage   string   `json:"coverImage"`
	PasswordHash string   `json:"-"`
	WatchHistory []string `json:"watchHistory"`
	// RefreshTokenHash mirrors the only refresh token currently accepted for this user.
	RefreshTokenHash *string `json:"-"`
	AuditFields

	pendingPassword *string
}

// SetPassword stages a plaintext password. It is hashed by the pre-persist step
// before the user is written; until then PasswordHash is left untouched.
func (u *User) SetPassword(plain string) {
	u.pendingPassword = &plain
}

// PasswordModified reports whether a new password is waiting to be hashed.
func (u *User) PasswordModified() bool {
	return u.pendingPassword != nil
}

// ApplyPasswordHash consumes the staged password through hash and stores the digest.
func (u *User) ApplyPasswordHash(hash func(plain string) (string, error)) error {
	if u.pendingPassword == nil {
		return nil
	}
	digest, err := hash(*u.pendingPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = digest
	u.pendingPassword = nil
	return nil
}

// Normalize trims text fields and lowercases the unique identifiers.
func (u *User) Normalize() {
	u.Username = NormalizeIdentifier(u.Username)
	u.Email = NormalizeIdentifier(u.Email)
	u.FullName = strings.TrimSpace(u.FullName)
}

// Sanitized returns a copy without the password and refresh token digests.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.RefreshTokenHash = nil
	u.pendingPassword = nil
	if u.WatchHistory == nil {
		u.WatchHistory = []string{}
	}
	return u
}

// NormalizeIdentifier is the canonical form of usernames and emails.
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
