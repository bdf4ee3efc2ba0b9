package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Session status values. A session starts as a draft and becomes published
// explicitly; saving a draft moves it back.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Session represents a wellness session owned by a single user. The JSON
// payload itself lives at an external URL; only the reference is stored.
type Session struct {
	ID          string    `json:"_id" gorm:"primaryKey;type:varchar(24)"`
	UserID      string    `json:"user_id" gorm:"index;type:varchar(36)"`
	Title       string    `json:"title" gorm:"type:varchar(255)"`
	Tags        []string  `json:"tags" gorm:"serializer:json;type:text"`
	JSONFileURL string    `json:"json_file_url" gorm:"column:json_file_url;type:varchar(2048)"`
	Status      string    `json:"status" gorm:"index;type:varchar(16)"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PublicSession is the catalog projection of a published session. Owner
// identity stays a bare reference; nothing from the user record leaks.
type PublicSession struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Tags        []string  `json:"tags"`
	JSONFileURL string    `json:"json_file_url"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Public returns the catalog projection of the session.
func (s *Session) Public() PublicSession {
	return PublicSession{
		ID:          s.ID,
		UserID:      s.UserID,
		Title:       s.Title,
		Tags:        s.Tags,
		JSONFileURL: s.JSONFileURL,
		CreatedAt:   s.CreatedAt,
	}
}

// NewSessionID returns a fresh 24-character hex identifier (12 random bytes).
func NewSessionID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform's entropy source is broken;
		// nothing sensible can continue from here.
		panic(err)
	}
	return hex.EncodeToString(b)
}
