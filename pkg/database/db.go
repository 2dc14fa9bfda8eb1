package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// APIKey represents the api_keys table. One key per family account.
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table
type APIUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KeyID        uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date         string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalOrders  int    `gorm:"default:0" json:"total_orders"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderRecord represents the orders table. An account holds at most one order per day.
type OrderRecord struct {
	ID          string `gorm:"primaryKey"`
	AccountID   string `gorm:"uniqueIndex:idx_account_date;not null"`
	Date        string `gorm:"uniqueIndex:idx_account_date;index;not null"`
	StudentName string `gorm:"not null"`
	Sandwich    string `gorm:"not null"`
	Bread       string `gorm:"not null"`
	Extras      string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (OrderRecord) TableName() string { return "orders" }

// FormSchemaRecord represents the form_schemas table; the highest version is current
type FormSchemaRecord struct {
	Version   int    `gorm:"primaryKey;autoIncrement:false"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (FormSchemaRecord) TableName() string { return "form_schemas" }

// Options selects the backing database
type Options struct {
	DatabaseURL string // postgres DSN; empty selects SQLite
	DataPath    string // SQLite file
	Debug       bool
}

// Open connects to Postgres when a DSN is given, SQLite otherwise, and migrates the schema
func Open(opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if !opts.Debug {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	var dialector gorm.Dialector
	if opts.DatabaseURL != "" {
		cfg.PrepareStmt = false
		dialector = postgres.New(postgres.Config{
			DSN:                  opts.DatabaseURL,
			PreferSimpleProtocol: true,
		})
	} else {
		path := opts.DataPath
		if path == "" {
			path = "orders.db"
		}
		dialector = sqlite.Open(path)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if opts.DatabaseURL == "" {
		// SQLite allows a single writer; in-memory databases are per connection
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table the service uses
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &OrderRecord{}, &FormSchemaRecord{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
