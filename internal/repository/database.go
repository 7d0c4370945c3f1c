package repository

import (
	"fmt"
	"strings"

	"github.com/gurdeepkumar/urlshorty/internal/config"
	"github.com/gurdeepkumar/urlshorty/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the database described by the config and creates the schema
// when it does not exist yet. TranslateError makes unique-constraint
// violations surface as gorm.ErrDuplicatedKey on every driver.
func InitDB(cfg config.Config) (*gorm.DB, error) {
	dsn := cfg.DSN()

	var dialer gorm.Dialector
	if strings.HasPrefix(dsn, "postgres") {
		dialer = postgres.Open(dsn)
	} else if strings.HasPrefix(dsn, "sqlite") {
		dialer = sqlite.Open(strings.TrimPrefix(dsn, "sqlite://"))
	} else {
		return nil, fmt.Errorf("unsupported database driver: %s", dsn)
	}

	db, err := gorm.Open(dialer, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// AutoMigrate creates or updates the user, url and refresh token tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.URL{}, &models.RefreshToken{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
