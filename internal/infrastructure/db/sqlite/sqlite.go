// Package sqlite is the embedded relational store, built on GORM. It backs
// local development and tests; production runs on MongoDB.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config selects the database file. ":memory:" gives a private in-memory database.
type Config struct {
	Path    string
	Verbose bool
}

// Open connects, migrates the schema and returns the handle.
func Open(cfg Config) (*gorm.DB, error) {
	level := logger.Silent
	if cfg.Verbose {
		level = logger.Warn
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// One writer at a time; this also keeps ":memory:" on a single database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&userModel{}, &productModel{}, &orderModel{}); err != nil {
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return db, nil
}

// Store bundles the repositories sharing one database.
type Store struct {
	Users    *UserRepository
	Products *ProductRepository
	Orders   *OrderRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		Users:    NewUserRepository(db),
		Products: NewProductRepository(db),
		Orders:   NewOrderRepository(db),
	}
}

// Ping reports whether the underlying connection is usable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
