package usecase

import (
	"context"

	"go.uber.org/zap"

	"merchant-dashboard/internal/loader"
	"merchant-dashboard/internal/models"
)

// Statistics serves the per-promo pages and the shop aggregate, each behind
// its own cache-first loader. Every (shop, page) tuple is cached
// independently.
type Statistics struct {
	api        StatisticsAPI
	promoStats *loader.Loader[models.PromoStatsPage]
	shopStats  *loader.Loader[models.ShopStatistics]
	log        *zap.SugaredLogger
}

func NewStatistics(api StatisticsAPI, promoStats *loader.Loader[models.PromoStatsPage], shopStats *loader.Loader[models.ShopStatistics], log *zap.SugaredLogger) *Statistics {
	return &Statistics{
		api:        api,
		promoStats: promoStats,
		shopStats:  shopStats,
		log:        log,
	}
}

// PromoPage returns one page of per-promo statistics for a shop.
func (s *Statistics) PromoPage(ctx context.Context, shopID string, page int) (models.PromoStatsPage, error) {
	return s.promoStats.Load(ctx, PromoStatsKey(shopID, page), func(ctx context.Context) (models.PromoStatsPage, error) {
		return s.api.GetPromoStatistics(ctx, shopID, page)
	})
}

// Shop returns the aggregate statistics of a shop.
func (s *Statistics) Shop(ctx context.Context, shopID string) (models.ShopStatistics, error) {
	return s.shopStats.Load(ctx, ShopStatsKey(shopID), func(ctx context.Context) (models.ShopStatistics, error) {
		return s.api.GetShopStatistics(ctx, shopID)
	})
}
