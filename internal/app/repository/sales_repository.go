package repository

import (
	"errors"

	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/pkg/logger"
	"gorm.io/gorm"
)

type SalesRepository interface {
	FindByDate(date string) (*model.SalesRecord, error)
	FindAll() ([]model.SalesRecord, error)
	Upsert(record *model.SalesRecord) error
}

type salesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) FindByDate(date string) (*model.SalesRecord, error) {
	var record model.SalesRecord
	err := r.db.Where("date = ?", date).First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find sales record by date", err, map[string]interface{}{
				"date": date,
			})
		}
		return nil, err
	}
	return &record, nil
}

func (r *salesRepository) FindAll() ([]model.SalesRecord, error) {
	var records []model.SalesRecord
	err := r.db.Order("date ASC").Find(&records).Error
	if err != nil {
		logger.Error("Failed to list sales records", err, nil)
		return nil, err
	}
	return records, nil
}

func (r *salesRepository) Upsert(record *model.SalesRecord) error {
	logger.Debug("Saving sales record", map[string]interface{}{
		"date":    record.Date,
		"revenue": record.Revenue,
		"orders":  record.Orders,
	})

	if err := r.db.Save(record).Error; err != nil {
		logger.Error("Failed to save sales record", err, map[string]interface{}{
			"date": record.Date,
		})
		return err
	}
	return nil
}
