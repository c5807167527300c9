// Package sqlkv is a storage.KV backed by a single SQL table.
package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Table is the name of the key-value table.
const Table = "kv_store"

const connectTimeout = 5 * time.Second

// Dialect holds the statements for one SQL driver.
type Dialect struct {
	Driver string
	Create string
	Get    string
	Upsert string
}

var dialects = map[string]Dialect{
	"mysql": {
		Driver: "mysql",
		Create: "CREATE TABLE IF NOT EXISTS " + Table + " (k VARCHAR(191) NOT NULL PRIMARY KEY, v LONGTEXT NOT NULL)",
		Get:    "SELECT v FROM " + Table + " WHERE k = ?",
		Upsert: "INSERT INTO " + Table + " (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)",
	},
	"postgres": {
		Driver: "postgres",
		Create: "CREATE TABLE IF NOT EXISTS " + Table + " (k TEXT PRIMARY KEY, v TEXT NOT NULL)",
		Get:    "SELECT v FROM " + Table + " WHERE k = $1",
		Upsert: "INSERT INTO " + Table + " (k, v) VALUES ($1, $2) ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v",
	},
}

// DialectFor returns the dialect for a driver name ("mysql" or "postgres").
func DialectFor(driver string) (Dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return Dialect{}, fmt.Errorf("unsupported sql driver: %s", driver)
	}
	return d, nil
}

// Store implements storage.KV on a database/sql handle.
type Store struct {
	db *sql.DB
	d  Dialect
}

// Open connects to dsn with the given driver and ensures the table exists.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	d, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		return nil, errors.New("sql storage requires a dsn")
	}

	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s, err := New(ctx, db, d)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing handle and ensures the table exists.
func New(ctx context.Context, db *sql.DB, d Dialect) (*Store, error) {
	if _, err := db.ExecContext(ctx, d.Create); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", Table, err)
	}
	return &Store{db: db, d: d}, nil
}

// Get implements storage.KV.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, s.d.Get, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set implements storage.KV.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.d.Upsert, key, value)
	return err
}

// Close implements storage.KV.
func (s *Store) Close() error {
	return s.db.Close()
}
