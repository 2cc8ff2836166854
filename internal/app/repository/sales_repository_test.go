package repository

import (
	"testing"

	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSalesRepo(t *testing.T) SalesRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewSalesRepository(testDB)
}

func TestSalesRepository_UpsertAndFind(t *testing.T) {
	repo := setupSalesRepo(t)

	record := &model.SalesRecord{Date: "2025-06-01", Revenue: 450.50, Orders: 3, Customers: 3}
	require.NoError(t, repo.Upsert(record))

	found, err := repo.FindByDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, 450.50, found.Revenue)
	assert.Equal(t, 3, found.Orders)

	// Update the same row
	found.Revenue += 100
	found.Orders++
	require.NoError(t, repo.Upsert(found))

	again, err := repo.FindByDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, 550.50, again.Revenue)
	assert.Equal(t, 4, again.Orders)
}

func TestSalesRepository_FindByDate_NotFound(t *testing.T) {
	repo := setupSalesRepo(t)

	_, err := repo.FindByDate("1999-01-01")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSalesRepository_FindAll_Ordered(t *testing.T) {
	repo := setupSalesRepo(t)

	require.NoError(t, repo.Upsert(&model.SalesRecord{Date: "2025-06-02", Revenue: 200, Orders: 1, Customers: 1}))
	require.NoError(t, repo.Upsert(&model.SalesRecord{Date: "2025-06-01", Revenue: 100, Orders: 1, Customers: 1}))

	records, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-06-01", records[0].Date)
	assert.Equal(t, "2025-06-02", records[1].Date)
}
