package service

import (
	"testing"
	"time"

	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/internal/app/repository"
	"github.com/rmehra/billmitra-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSalesServiceTest(t *testing.T) (*salesService, repository.SalesRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	salesRepo := repository.NewSalesRepository(testDB)
	svc := NewSalesService(salesRepo).(*salesService)
	return svc, salesRepo
}

func fixedClock(date string) func() time.Time {
	day, err := time.Parse(model.SalesDateFormat, date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return day }
}

func TestSalesService_RecordBill(t *testing.T) {
	svc, salesRepo := setupSalesServiceTest(t)
	svc.now = fixedClock("2025-06-10")

	require.NoError(t, svc.RecordBill(model.Bill{GrandTotal: 68.25}))
	require.NoError(t, svc.RecordBill(model.Bill{GrandTotal: 100}))

	record, err := salesRepo.FindByDate("2025-06-10")
	require.NoError(t, err)
	assert.InDelta(t, 168.25, record.Revenue, 1e-9)
	assert.Equal(t, 2, record.Orders)
	assert.Equal(t, 2, record.Customers)
}

func TestSalesService_RecordBill_SeparateDays(t *testing.T) {
	svc, salesRepo := setupSalesServiceTest(t)

	svc.now = fixedClock("2025-06-10")
	require.NoError(t, svc.RecordBill(model.Bill{GrandTotal: 50}))
	svc.now = fixedClock("2025-06-11")
	require.NoError(t, svc.RecordBill(model.Bill{GrandTotal: 75}))

	records, err := salesRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-06-10", records[0].Date)
	assert.Equal(t, "2025-06-11", records[1].Date)
}

func TestSalesService_Summary_Daily(t *testing.T) {
	svc, _ := setupSalesServiceTest(t)

	for date, total := range map[string]float64{
		"2025-06-10": 100,
		"2025-06-11": 200,
	} {
		svc.now = fixedClock(date)
		require.NoError(t, svc.RecordBill(model.Bill{GrandTotal: total}))
	}

	summary, err := svc.Summary("daily")
	require.NoError(t, err)
	assert.Equal(t, "daily", summary.Period)
	require.Len(t, summary.Points, 2)
	assert.Equal(t, "2025-06-10", summary.Points[0].Bucket)
	assert.InDelta(t, 100, summary.Points[0].Revenue, 1e-9)
	assert.InDelta(t, 300, summary.TotalRevenue, 1e-9)
	assert.Equal(t, 2, summary.TotalOrders)
	assert.Equal(t, 2, summary.TotalCustomers)
	assert.InDelta(t, 150, summary.AvgDailyRevenue, 1e-9)
}

func TestSalesService_Summary_WeeklyAndMonthly(t *testing.T) {
	svc, _ := setupSalesServiceTest(t)

	// Mon and Tue of ISO week 24, plus one day in July
	for _, date := range []string{"2025-06-09", "2025-06-10", "2025-07-01"} {
		svc.now = fixedClock(date)
		require.NoError(t, svc.RecordBill(model.Bill{GrandTotal: 100}))
	}

	weekly, err := svc.Summary("weekly")
	require.NoError(t, err)
	require.Len(t, weekly.Points, 2)
	assert.Equal(t, "2025-W24", weekly.Points[0].Bucket)
	assert.InDelta(t, 200, weekly.Points[0].Revenue, 1e-9)
	assert.Equal(t, 2, weekly.Points[0].Orders)
	assert.Equal(t, "2025-W27", weekly.Points[1].Bucket)

	monthly, err := svc.Summary("monthly")
	require.NoError(t, err)
	require.Len(t, monthly.Points, 2)
	assert.Equal(t, "2025-06", monthly.Points[0].Bucket)
	assert.InDelta(t, 200, monthly.Points[0].Revenue, 1e-9)
	assert.Equal(t, "2025-07", monthly.Points[1].Bucket)
}

func TestSalesService_Summary_InvalidPeriod(t *testing.T) {
	svc, _ := setupSalesServiceTest(t)

	_, err := svc.Summary("yearly")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestSalesService_Summary_Empty(t *testing.T) {
	svc, _ := setupSalesServiceTest(t)

	summary, err := svc.Summary("daily")
	require.NoError(t, err)
	assert.Len(t, summary.Points, 0)
	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.AvgDailyRevenue)
}
