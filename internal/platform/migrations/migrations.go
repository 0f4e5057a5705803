package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema used by the relational kv backend.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&collectionEntryRecord{})
}

// collectionEntryRecord mirrors gormkv.EntryRecord. One row holds one
// serialized collection (cart or favorites) for one visitor scope.
type collectionEntryRecord struct {
	Key       string    `gorm:"primaryKey;column:storage_key;size:512"`
	Value     []byte    `gorm:"column:value;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (collectionEntryRecord) TableName() string { return "collection_entries" }
