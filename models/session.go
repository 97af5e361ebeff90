package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session binds an authenticated identity to its cart session identifier
// and display name. This replaces the ambient localStorage pair
// (carritoId, userName) the storefront used to read: the session row is the
// single owner of that state, written only by login/registration and
// cleared on logout.
type Session struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserDocument string    `gorm:"not null;index" json:"user_document"`
	DocType      string    `gorm:"not null" json:"doc_type"`
	CartID       string    `json:"cart_id"`
	UserName     string    `json:"user_name"`
	ExpiresAt    time.Time `gorm:"index" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the session is past its lifetime.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
