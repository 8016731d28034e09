// Package storage is the client's durable key/value store, persisted in a
// local SQLite file. It plays the part browser local storage plays for a web
// client: session credentials and the mock fallback's state live here.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"staybooking/pkg/database"
)

const (
	KeyToken        = "token"
	KeyUser         = "user"
	KeyMockUsers    = "mock_users"
	KeyMockBookings = "mock_bookings"
)

type Entry struct {
	Key       string `gorm:"column:storage_key;primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string { return "local_storage" }

type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := database.OpenSQLite(path, &Entry{})
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}
	return &Store{db: db}, nil
}

func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate local storage: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the stored value and whether the key exists.
func (s *Store) Get(key string) (string, bool, error) {
	var e Entry
	err := s.db.Where("storage_key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return e.Value, true, nil
}

func (s *Store) Set(key, value string) error {
	e := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.db.Where("storage_key IN ?", keys).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("remove %v: %w", keys, err)
	}
	return nil
}

// GetJSON decodes the value under key into out. A missing key leaves out
// untouched and reports false.
func (s *Store) GetJSON(key string, out interface{}) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) SetJSON(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(key, string(raw))
}

// SetPair writes two keys in one transaction.
func (s *Store) SetPair(k1, v1, k2, v2 string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		inner := &Store{db: tx}
		if err := inner.Set(k1, v1); err != nil {
			return err
		}
		return inner.Set(k2, v2)
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
