package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// KVEntry is the persisted form of one key-value pair.
type KVEntry struct {
	Key   string `gorm:"primaryKey"`
	Value []byte `gorm:"not null"`
}

// TableName returns the table name for KVEntry.
func (KVEntry) TableName() string {
	return "kv_entries"
}

// SQLiteStore is a Store backed by a sqlite database file.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if necessary) the sqlite store at path and
// migrates its schema.
func OpenSQLite(path string, verbose bool) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	logLevel := logger.Error
	if verbose {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}

// Migrate creates or updates the storage schema.
func (s *SQLiteStore) Migrate() error {
	if err := s.db.AutoMigrate(&KVEntry{}); err != nil {
		return fmt.Errorf("storage migration failed: %w", err)
	}
	return nil
}

// Get returns the blob stored under key.
func (s *SQLiteStore) Get(key string) ([]byte, error) {
	var entry KVEntry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading key %q: %w", key, err)
	}
	return entry.Value, nil
}

// Set stores the blob under key, replacing any previous value.
func (s *SQLiteStore) Set(key string, value []byte) error {
	entry := KVEntry{Key: key, Value: value}
	if err := s.db.Save(&entry).Error; err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Delete removes the key.
func (s *SQLiteStore) Delete(key string) error {
	if err := s.db.Delete(&KVEntry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}
