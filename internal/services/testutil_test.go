package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gymsuite/backend/internal/config"
	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/internal/utils"
	"gorm.io/gorm"
)

var testDBCounter int64

// newTestDB opens a fresh in-memory sqlite database with the full
// schema. Each call gets its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", n),
	}

	db, err := models.Open(cfg)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func makeGym(t *testing.T, db *gorm.DB, slug string) *models.Gym {
	t.Helper()
	gym := &models.Gym{Name: "Gym " + slug, Slug: slug, Status: models.GymStatusActive}
	if err := db.Create(gym).Error; err != nil {
		t.Fatalf("create gym: %v", err)
	}
	return gym
}

func makeLocation(t *testing.T, db *gorm.DB, gymID uint, name string) *models.Location {
	t.Helper()
	loc := &models.Location{GymID: gymID, Name: name, City: "Springfield", Status: "active"}
	if err := db.Create(loc).Error; err != nil {
		t.Fatalf("create location: %v", err)
	}
	return loc
}

func makeUser(t *testing.T, db *gorm.DB, email, role string, gymID *uint) *models.User {
	t.Helper()
	hashed, err := utils.HashPassword("secret-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	now := time.Now()
	user := &models.User{
		FirstName:       "Test",
		LastName:        "User",
		Email:           email,
		Password:        hashed,
		Role:            role,
		GymID:           gymID,
		Status:          "active",
		EmailVerifiedAt: &now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
