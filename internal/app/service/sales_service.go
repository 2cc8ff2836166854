package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/internal/app/repository"
	"github.com/rmehra/billmitra-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidPeriod = errors.New("period must be daily, weekly or monthly")

// SalesPoint is one bucket of the sales summary: a day, an ISO week or a
// month depending on the requested period.
type SalesPoint struct {
	Bucket    string  `json:"bucket"`
	Revenue   float64 `json:"revenue"`
	Orders    int     `json:"orders"`
	Customers int     `json:"customers"`
}

type SalesSummary struct {
	Period          string       `json:"period"`
	Points          []SalesPoint `json:"points"`
	TotalRevenue    float64      `json:"total_revenue"`
	TotalOrders     int          `json:"total_orders"`
	TotalCustomers  int          `json:"total_customers"`
	AvgDailyRevenue float64      `json:"avg_daily_revenue"`
}

// SalesService aggregates finalized bills into per-day sales records.
type SalesService interface {
	RecordBill(bill model.Bill) error
	Summary(period string) (SalesSummary, error)
}

type salesService struct {
	salesRepo repository.SalesRepository
	now       func() time.Time
}

func NewSalesService(salesRepo repository.SalesRepository) SalesService {
	return &salesService{
		salesRepo: salesRepo,
		now:       time.Now,
	}
}

// RecordBill adds the bill to today's sales row: revenue grows by the grand
// total, orders and customers each by one.
func (s *salesService) RecordBill(bill model.Bill) error {
	date := s.now().Format(model.SalesDateFormat)

	record, err := s.salesRepo.FindByDate(date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = &model.SalesRecord{Date: date}
	} else if err != nil {
		return err
	}

	record.Revenue += bill.GrandTotal
	record.Orders++
	record.Customers++

	if err := s.salesRepo.Upsert(record); err != nil {
		return err
	}

	logger.Info("Sales record updated", map[string]interface{}{
		"date":    date,
		"revenue": record.Revenue,
		"orders":  record.Orders,
	})
	return nil
}

// Summary buckets all sales records by the requested period and computes the
// catalog-wide totals. Buckets come out in chronological order.
func (s *salesService) Summary(period string) (SalesSummary, error) {
	switch period {
	case "daily", "weekly", "monthly":
	default:
		return SalesSummary{}, ErrInvalidPeriod
	}

	records, err := s.salesRepo.FindAll()
	if err != nil {
		return SalesSummary{}, err
	}

	summary := SalesSummary{Period: period, Points: []SalesPoint{}}
	index := map[string]int{}
	for _, record := range records {
		bucket, err := bucketFor(period, record.Date)
		if err != nil {
			logger.Warn("Skipping sales record with bad date", map[string]interface{}{
				"date": record.Date,
			})
			continue
		}

		i, ok := index[bucket]
		if !ok {
			i = len(summary.Points)
			index[bucket] = i
			summary.Points = append(summary.Points, SalesPoint{Bucket: bucket})
		}
		summary.Points[i].Revenue += record.Revenue
		summary.Points[i].Orders += record.Orders
		summary.Points[i].Customers += record.Customers

		summary.TotalRevenue += record.Revenue
		summary.TotalOrders += record.Orders
		summary.TotalCustomers += record.Customers
	}

	if len(records) > 0 {
		summary.AvgDailyRevenue = summary.TotalRevenue / float64(len(records))
	}
	return summary, nil
}

func bucketFor(period, date string) (string, error) {
	day, err := time.Parse(model.SalesDateFormat, date)
	if err != nil {
		return "", err
	}

	switch period {
	case "weekly":
		year, week := day.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week), nil
	case "monthly":
		return day.Format("2006-01"), nil
	default:
		return date, nil
	}
}
