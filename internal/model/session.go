package model

import "time"

// Session maps an opaque token from the auth cookie to a user. Expired rows
// are swept periodically.
type Session struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"size:36;uniqueIndex"`
	UserID    uint   `gorm:"index;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session can no longer authenticate requests.
func (s *Session) Expired(now time.Time) bool {
	return !now.UTC().Before(s.ExpiresAt.UTC())
}
