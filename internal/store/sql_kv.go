package store

import (
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"zetra/internal/domain"
)

// kvItem is one row of kv_items. The key column is item_key because KEY is
// reserved in several SQL dialects.
type kvItem struct {
	Key       string `gorm:"column:item_key;primaryKey"`
	Value     string `gorm:"column:value;not null"`
	UpdatedAt time.Time
}

func (kvItem) TableName() string { return "kv_items" }

// SQLKV stores values in a SQLite database.
type SQLKV struct {
	db *gorm.DB
}

var _ domain.KeyValueStore = (*SQLKV)(nil)

// OpenSQLKV opens (creating if needed) the SQLite database at dsn and
// migrates the kv_items table.
func OpenSQLKV(dsn string) (*SQLKV, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return NewSQLKV(db)
}

// NewSQLKV wraps an existing gorm connection.
func NewSQLKV(db *gorm.DB) (*SQLKV, error) {
	if err := db.AutoMigrate(&kvItem{}); err != nil {
		return nil, err
	}
	return &SQLKV{db: db}, nil
}

func (s *SQLKV) GetItem(key string) (string, bool, error) {
	var it kvItem
	err := s.db.Where("item_key = ?", key).Take(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return it.Value, true, nil
}

func (s *SQLKV) SetItem(key, value string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&kvItem{Key: key, Value: value, UpdatedAt: time.Now().UTC()}).Error
	})
}

func (s *SQLKV) RemoveItem(key string) error {
	return s.db.Where("item_key = ?", key).Delete(&kvItem{}).Error
}

// Close releases the underlying connection pool.
func (s *SQLKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
