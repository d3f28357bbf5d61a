package credstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// credentialKey is the primary key of the single row this store manages
const credentialKey = "token"

// credentialRecord is the gorm model for the credential table
type credentialRecord struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

func (credentialRecord) TableName() string {
	return "credentials"
}

// SQLiteStore is a durable credential store backed by a single-row SQLite
// table managed through gorm.
type SQLiteStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) a SQLite-backed credential store
// at the given path
func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open credential database: %w", err)
	}

	if err := db.AutoMigrate(&credentialRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate credential table: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Save upserts the credential row
func (s *SQLiteStore) Save(ctx context.Context, value string) error {
	record := credentialRecord{Key: credentialKey, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	s.logger.Debug("credential saved to database")
	return nil
}

// Read returns the stored credential, or ErrNotFound if absent
func (s *SQLiteStore) Read(ctx context.Context) (string, error) {
	var record credentialRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", credentialKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read credential: %w", err)
	}
	if record.Value == "" {
		return "", ErrNotFound
	}
	return record.Value, nil
}

// Clear deletes the credential row. Deleting a missing row is not an error
func (s *SQLiteStore) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Delete(&credentialRecord{}, "key = ?", credentialKey).Error
	if err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}

// Has reports whether a credential is currently stored
func (s *SQLiteStore) Has(ctx context.Context) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&credentialRecord{}).
		Where("key = ? AND value <> ''", credentialKey).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check credential presence: %w", err)
	}
	return count > 0, nil
}
