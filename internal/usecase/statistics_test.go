package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchant-dashboard/internal/kvstore"
	"merchant-dashboard/internal/loader"
	"merchant-dashboard/internal/models"
)

func newStatisticsFixture(backend *backendStub, store kvstore.Store) *Statistics {
	return NewStatistics(backend,
		loader.New[models.PromoStatsPage](store, testLogger()),
		loader.New[models.ShopStatistics](store, testLogger()),
		testLogger())
}

func TestPromoPagesAreCachedPerPage(t *testing.T) {
	ctx := context.Background()
	backend := &backendStub{promoStats: models.PromoStatsPage{ShopID: "shop_1", Rows: []models.PromoStat{{PromoID: "p1", Issued: 10, Redeemed: 4}}}}
	stats := newStatisticsFixture(backend, kvstore.NewMemory())

	_, err := stats.PromoPage(ctx, "shop_1", 1)
	require.NoError(t, err)
	_, err = stats.PromoPage(ctx, "shop_1", 2)
	require.NoError(t, err)
	_, err = stats.PromoPage(ctx, "shop_1", 1)
	require.NoError(t, err)

	assert.Equal(t, 2, backend.getCalls, "each page fetches once, repeats hit the cache")
}

func TestShopStatisticsCached(t *testing.T) {
	ctx := context.Background()
	backend := &backendStub{shopStats: models.ShopStatistics{ShopID: "shop_1", CouponsRedeemed: 7, RevenueCents: 123400}}
	stats := newStatisticsFixture(backend, kvstore.NewMemory())

	first, err := stats.Shop(ctx, "shop_1")
	require.NoError(t, err)
	second, err := stats.Shop(ctx, "shop_1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(123400), second.RevenueCents)
	assert.Equal(t, 1, backend.getCalls)
}
