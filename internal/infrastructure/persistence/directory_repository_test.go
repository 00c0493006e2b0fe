package persistence

import (
	"context"
	"testing"

	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/domain/travel"
	"github.com/laiyolobaru/backend/internal/domain/umkm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUMKMRepository(t *testing.T) {
	repo := NewGormUMKMRepository(newTestDB(t))
	ctx := context.Background()

	minPrice := decimal.NewFromInt(5000)
	maxPrice := decimal.NewFromInt(25000)
	lat, lng := -5.98, 120.45
	first, err := umkm.NewUMKM(umkm.Details{
		Name: "Kue Bolu Ibu Ani", OwnerName: "Ani", Dusun: shared.Dusun1, Category: umkm.CategoryKuliner,
		PriceMin: &minPrice, PriceMax: &maxPrice, Latitude: &lat, Longitude: &lng,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := umkm.NewUMKM(umkm.Details{Name: "Anyaman Pandan", OwnerName: "Ratna", Dusun: shared.Dusun1, Category: umkm.CategoryKerajinan})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))

	third, err := umkm.NewUMKM(umkm.Details{Name: "Ikan Asin", OwnerName: "Daeng", Dusun: shared.Dusun4, Category: umkm.CategoryPerikanan})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, third))

	t.Run("round trips prices and coordinates", func(t *testing.T) {
		found, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, found.PriceMin)
		assert.True(t, minPrice.Equal(*found.PriceMin))
		require.NotNil(t, found.Latitude)
		assert.InDelta(t, lat, *found.Latitude, 1e-9)

		plain, err := repo.FindByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Nil(t, plain.PriceMin)
	})

	t.Run("count by dusun", func(t *testing.T) {
		counts, err := repo.CountByDusun(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[shared.Dusun1])
		assert.Equal(t, int64(1), counts[shared.Dusun4])
		assert.Zero(t, counts[shared.Dusun2])
	})

	t.Run("category filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["category"] = string(umkm.CategoryKerajinan)
		items, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, second.ID, items[0].ID)
	})

	t.Run("name unique per dusun", func(t *testing.T) {
		exists, err := repo.ExistsByNameInDusun(ctx, "ikan asin", shared.Dusun4, nil)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestGormTravelRepositories(t *testing.T) {
	db := newTestDB(t)
	categories := NewGormTravelCategoryRepository(db)
	repo := NewGormTravelRepository(db)
	ctx := context.Background()

	beach, err := travel.NewCategory("Wisata Pantai", "Pantai dan pesisir")
	require.NoError(t, err)
	require.NoError(t, categories.Save(ctx, beach))

	dest, err := travel.NewTravel(travel.Details{
		Name:        "Pantai Laiyolo",
		CategoryID:  beach.ID,
		Dusun:       shared.Dusun3,
		TicketPrice: decimal.NewFromInt(10000),
		Facilities:  []string{"Gazebo", "Toilet", "gazebo"},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, dest))

	t.Run("facilities survive a round trip", func(t *testing.T) {
		found, err := repo.FindByID(ctx, dest.ID)
		require.NoError(t, err)
		assert.Equal(t, travel.Facilities{"Gazebo", "Toilet"}, found.Facilities)
		assert.True(t, decimal.NewFromInt(10000).Equal(found.TicketPrice))
	})

	t.Run("category name is unique case-insensitively", func(t *testing.T) {
		exists, err := categories.ExistsByName(ctx, "wisata pantai", nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = categories.ExistsByName(ctx, "Wisata Pantai", &beach.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("count by category and category filter", func(t *testing.T) {
		count, err := repo.CountByCategory(ctx, beach.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		filter := shared.DefaultFilter()
		filter.Filters["category_id"] = beach.ID
		items, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, dest.ID, items[0].ID)
	})

	t.Run("missing category", func(t *testing.T) {
		_, err := categories.FindByID(ctx, dest.ID)
		assert.ErrorIs(t, err, travel.ErrCategoryNotFound)
	})
}
