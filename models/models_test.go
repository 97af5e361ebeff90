package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSessionBeforeCreateAssignsID(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	session := Session{UserDocument: "1012345678", DocType: "CC", ExpiresAt: time.Now().Add(time.Hour)}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if session.ID == uuid.Nil {
		t.Error("expected an id to be assigned on create")
	}

	// An explicit id is kept.
	explicit := uuid.New()
	session2 := Session{ID: explicit, UserDocument: "900123456", DocType: "NIT", ExpiresAt: time.Now().Add(time.Hour)}
	if err := db.Create(&session2).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if session2.ID != explicit {
		t.Errorf("expected explicit id %s to be kept, got %s", explicit, session2.ID)
	}
}

func TestSessionExpired(t *testing.T) {
	live := Session{ExpiresAt: time.Now().Add(time.Hour)}
	if live.Expired() {
		t.Error("expected future session to not be expired")
	}

	stale := Session{ExpiresAt: time.Now().Add(-time.Minute)}
	if !stale.Expired() {
		t.Error("expected past session to be expired")
	}
}
