// Package gormkv stores collection documents in a relational table through GORM.
package gormkv

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
)

var _ kv.Store = (*Store)(nil)

// Store implements kv.Store on PostgreSQL using GORM. Caller manages DB lifecycle;
// the schema is applied by the migrations package.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// EntryRecord maps one stored document to a row.
type EntryRecord struct {
	Key       string    `gorm:"primaryKey;column:storage_key;size:512"`
	Value     []byte    `gorm:"column:value;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (EntryRecord) TableName() string { return "collection_entries" }

// Get loads the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record EntryRecord
	if err := s.db.WithContext(ctx).First(&record, "storage_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return record.Value, nil
}

// Set upserts the value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	record := EntryRecord{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&EntryRecord{}, "storage_key = ?", key).Error
}

// PurgeStale deletes documents not written since before and returns how many were removed.
func (s *Store) PurgeStale(ctx context.Context, before time.Time) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("updated_at < ?", before).Delete(&EntryRecord{})
	return result.RowsAffected, result.Error
}

func (s *Store) Backend() string { return "postgres" }

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres kv store not configured")
	}
	return nil
}
