package repository

import (
	"context"
	"testing"

	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuRepository_ItemsRoundTrip(t *testing.T) {
	store := kvstore.NewMemoryStore()
	repo := NewMenuRepository(store)
	ctx := context.Background()

	items := []model.MenuItem{
		{ID: "a", Name: "Masala Dosa", Price: 80, CategoryID: "2", Available: true},
		{ID: "b", Name: "Filter Coffee", Price: 30, CategoryID: "4", Available: false},
	}
	require.NoError(t, repo.SaveItems(ctx, items))

	loaded := repo.LoadItems(ctx)
	assert.Equal(t, items, loaded)
}

func TestMenuRepository_LoadItemsDefault(t *testing.T) {
	repo := NewMenuRepository(kvstore.NewMemoryStore())

	items := repo.LoadItems(context.Background())
	assert.NotNil(t, items)
	assert.Len(t, items, 0)
}

func TestMenuRepository_LoadCategoriesSeedsDefaults(t *testing.T) {
	repo := NewMenuRepository(kvstore.NewMemoryStore())

	categories := repo.LoadCategories(context.Background())
	require.Len(t, categories, 4)
	assert.Equal(t, "Appetizers", categories[0].Name)
	assert.Equal(t, "Main Course", categories[1].Name)
	assert.Equal(t, "Desserts", categories[2].Name)
	assert.Equal(t, "Beverages", categories[3].Name)
	assert.Equal(t, 1, categories[0].Order)
	assert.Equal(t, 4, categories[3].Order)
}

func TestMenuRepository_CategoriesRoundTrip(t *testing.T) {
	store := kvstore.NewMemoryStore()
	repo := NewMenuRepository(store)
	ctx := context.Background()

	categories := []model.MenuCategory{
		{ID: "x", Name: "Specials", Description: "Chef's picks", Order: 1},
	}
	require.NoError(t, repo.SaveCategories(ctx, categories))

	loaded := repo.LoadCategories(ctx)
	assert.Equal(t, categories, loaded)
}

func TestMenuRepository_CorruptedValueFallsBack(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, KeyMenuItems, "{not json"))
	require.NoError(t, store.Set(ctx, KeyMenuCategories, "{not json"))

	repo := NewMenuRepository(store)
	assert.Len(t, repo.LoadItems(ctx), 0)
	// A corrupted value yields an empty list, not the seed set
	assert.Len(t, repo.LoadCategories(ctx), 0)
}

func TestProfileRepository_RoundTrip(t *testing.T) {
	store := kvstore.NewMemoryStore()
	repo := NewProfileRepository(store)
	ctx := context.Background()

	profile := model.RestaurantProfile{
		Name:    "Annapurna Bhavan",
		Address: "12 MG Road, Pune",
		Phone:   "020-12345678",
		TaxID:   "27AAAAA0000A1Z5",
	}
	require.NoError(t, repo.Save(ctx, profile))

	assert.Equal(t, profile, repo.Load(ctx))
}

func TestProfileRepository_LoadDefault(t *testing.T) {
	repo := NewProfileRepository(kvstore.NewMemoryStore())

	profile := repo.Load(context.Background())
	assert.True(t, profile.IsEmpty())
}
