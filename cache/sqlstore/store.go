package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viant/volinsight/cache"
	"github.com/viant/volinsight/payload"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type entry struct {
	Seq       int64  `gorm:"primaryKey;autoIncrement"`
	ID        string `gorm:"uniqueIndex;not null"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// Store persists cache entries in a sqlite table; values are CBOR encoded.
type Store[T any] struct {
	db    *gorm.DB
	table string
}

func (s *Store[T]) tx(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(s.table)
}

func (s *Store[T]) Set(ctx context.Context, id string, value T) error {
	data, err := payload.Marshal(value)
	if err != nil {
		return err
	}
	result := s.tx(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&entry{ID: id, Data: data, UpdatedAt: time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to set %v in %v: %w", id, s.table, result.Error)
	}
	return nil
}

func (s *Store[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	if id == "" {
		return zero, false, nil
	}
	record := entry{}
	result := s.tx(ctx).Take(&record, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return zero, false, nil
	}
	if result.Error != nil {
		return zero, false, fmt.Errorf("failed to get %v from %v: %w", id, s.table, result.Error)
	}
	var value T
	if err := payload.Unmarshal(record.Data, &value); err != nil {
		return zero, false, err
	}
	return value, true, nil
}

func (s *Store[T]) Remove(ctx context.Context, id string) error {
	result := s.tx(ctx).Where("id = ?", id).Delete(&entry{})
	return result.Error
}

func (s *Store[T]) IDs(ctx context.Context) ([]string, error) {
	var ids []string
	result := s.tx(ctx).Order("seq ASC").Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Len returns number of stored entries
func (s *Store[T]) Len(ctx context.Context) (int64, error) {
	var count int64
	result := s.tx(ctx).Count(&count)
	return count, result.Error
}

// Open opens (or creates) a sqlite database at dsn
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %v: %w", dsn, err)
	}
	return db, nil
}

// New creates a store backed by table, migrating it when needed
func New[T any](db *gorm.DB, table string) (*Store[T], error) {
	if err := db.Table(table).AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate %v: %w", table, err)
	}
	return &Store[T]{db: db, table: table}, nil
}

var _ cache.Store[int] = (*Store[int])(nil)
