package db

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/contactsupport/backend/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CleanDatabaseURL strips artifacts that show up when a connection string is
// pasted straight from a provider dashboard: a leading "psql " command and
// surrounding quotes.
func CleanDatabaseURL(raw string) string {
	s := strings.TrimSpace(raw)
	low := strings.ToLower(s)
	if strings.HasPrefix(low, "psql ") {
		s = strings.TrimSpace(s[len("psql "):])
	}
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

func BuildDSN(cfg *config.Config) string {
	if cfg.DatabaseURL != "" {
		return CleanDatabaseURL(cfg.DatabaseURL)
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		cfg.DBUser, url.QueryEscape(cfg.DBPassword), cfg.DBHost, cfg.DBPort, cfg.DBName)
}

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)
	gcfg := &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(postgres.Open(dsn), gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)

	return db, nil
}
