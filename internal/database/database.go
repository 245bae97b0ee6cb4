// Package database centralises sqlx connection helpers.  The driver is
// go-sql-driver/mysql, which also serves MariaDB.
//
// Public entry points:
//
//	Open(cfg)                       – pool from the database config section.
//	OpenWithOptions(dsn, maxOpen, maxIdle) – fine-grained control.
//	DSN(cfg)                        – splice the secret into the DSN.
//
// Both openers Ping before returning so callers fail fast during boot.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/folio/internal/config"
)

// Open returns a pool for the database config section.
func Open(ctx context.Context, cfg config.Database) (*sqlx.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	return OpenWithOptions(ctx, dsn, cfg.MaxOpen, cfg.MaxIdle)
}

// OpenWithOptions opens a mysql pool with explicit sizes and a 30-minute
// connection lifetime.
func OpenWithOptions(ctx context.Context, dsn string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// DSN returns cfg.DSN with cfg.Password set (when non-empty) and
// parseTime enabled so DATETIME columns scan into time.Time.
func DSN(cfg config.Database) (string, error) {
	mc, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.Password != "" {
		mc.Passwd = cfg.Password
	}
	mc.ParseTime = true
	return mc.FormatDSN(), nil
}
