package main

import (
	"os"
	"time"

	"github.com/gymsuite/backend/internal/cache"
	"github.com/gymsuite/backend/internal/config"
	"github.com/gymsuite/backend/internal/handlers"
	"github.com/gymsuite/backend/internal/models"
	"github.com/gymsuite/backend/internal/services"
	"github.com/gymsuite/backend/internal/utils"
	"github.com/gymsuite/backend/pkg/logger"
	"gorm.io/gorm"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg         *config.Config
	store       cache.Store
	authService *services.AuthService
	authHandler *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database, cache, services.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	// TTL marker store (Redis when enabled, in-memory otherwise)
	store := cache.New(&cfg.Redis)

	emailService := services.NewEmailService(cfg)
	authService := services.NewAuthService(db, &cfg.JWT, emailService, store)
	userService := services.NewUserService(db)

	// Create default super admin on an empty install
	if err := ensureSuperAdmin(db); err != nil {
		logger.Warn().Err(err).Msg("Failed to create default super admin")
	}

	return &appServices{
		cfg:         cfg,
		store:       store,
		authService: authService,
		authHandler: handlers.NewAuthHandler(authService, userService),
	}
}

// ensureSuperAdmin seeds a verified super_admin account when no users
// exist, so a fresh install can be administered before open registration
// is used.
func ensureSuperAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "change-me"
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := models.User{
		FirstName:       "Super",
		LastName:        "Admin",
		Email:           "admin@gymsuite.local",
		Password:        hashed,
		Role:            models.RoleSuperAdmin,
		Status:          "active",
		EmailVerifiedAt: &now,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Warn().Str("email", admin.Email).Msg("Created default super admin, change its password")
	return nil
}

// shutdown releases shared resources.
func (s *appServices) shutdown() {
	if err := s.store.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close cache store")
	}
}
