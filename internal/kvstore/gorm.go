package kvstore

import (
	"context"
	"errors"

	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a Store persisting records in the kv_records table.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Get(ctx context.Context, key string) (string, error) {
	var record model.KVRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		logger.Error("Failed to read key from database", err, map[string]interface{}{
			"key": key,
		})
		return "", err
	}
	return record.Value, nil
}

func (s *gormStore) Set(ctx context.Context, key, value string) error {
	record := model.KVRecord{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		logger.Error("Failed to write key to database", err, map[string]interface{}{
			"key": key,
		})
		return err
	}
	return nil
}

func (s *gormStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Delete(&model.KVRecord{}, "key = ?", key).Error
	if err != nil {
		logger.Error("Failed to delete key from database", err, map[string]interface{}{
			"key": key,
		})
		return err
	}
	return nil
}
