package models

import (
	"fmt"

	"github.com/gymsuite/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to the configured database and registers the pivot
// join tables.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := setupJoinTables(db); err != nil {
		return nil, err
	}

	return db, nil
}

func InitDB(cfg *config.DatabaseConfig) error {
	db, err := Open(cfg)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// setupJoinTables registers pivot models that carry their own timestamps
// so association writes go through them.
func setupJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Group{}, "Locations", &GroupLocation{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&Location{}, "Groups", &GroupLocation{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&User{}, "Locations", &LocationUser{}); err != nil {
		return err
	}
	return db.SetupJoinTable(&Location{}, "Users", &LocationUser{})
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Gym{},
		&Location{},
		&Group{},
		&Package{},
		&User{},
		&LocationUser{},
		&GroupLocation{},
		&GroupUser{},
		&PackageUser{},
		&AccessToken{},
		&PasswordResetToken{},
		&VerificationToken{},
	)
}

func AutoMigrate() error {
	return Migrate(DB)
}

func GetDB() *gorm.DB {
	return DB
}
