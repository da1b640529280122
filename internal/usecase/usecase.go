// Package usecase implements the business operations of the dashboard. Each
// use case validates its input, consults the cache-first loaders, calls the
// backend when needed and translates every outcome into either a state value
// or a Redirection for the UI router.
package usecase

import (
	"context"
	"strconv"

	"merchant-dashboard/internal/models"
	"merchant-dashboard/internal/result"
	"merchant-dashboard/internal/routes"
)

// Remote ports, defined where they are consumed. api.Client satisfies all of
// them.

type PromoAPI interface {
	GetPromos(ctx context.Context, shopID string) ([]models.Promo, error)
	SavePromo(ctx context.Context, promo models.Promo) error
}

type ShopAPI interface {
	GetShops(ctx context.Context, accountID string) ([]models.Shop, error)
	SaveShop(ctx context.Context, shop models.Shop) error
}

type StatisticsAPI interface {
	GetPromoStatistics(ctx context.Context, shopID string, page int) (models.PromoStatsPage, error)
	GetShopStatistics(ctx context.Context, shopID string) (models.ShopStatistics, error)
}

type CashierAPI interface {
	GetCashiers(ctx context.Context, accountID string) ([]models.Cashier, error)
	SaveCashier(ctx context.Context, cashier models.Cashier) error
	DeleteCashier(ctx context.Context, accountID, cashierID string) error
}

// RedemptionSink receives append-only redemption records. Write-only.
type RedemptionSink interface {
	RedeemCoupon(ctx context.Context, record models.RedeemCoupon) error
}

type ProfileAPI interface {
	GetProfile(ctx context.Context) (models.UserProfile, error)
}

// Cache keys. One deterministic key per (resource, owner, page) tuple.

func PromoListKey(shopID string) string {
	return "promo_list_" + shopID
}

func ShopListKey(accountID string) string {
	return "shop_list_" + accountID
}

func PromoStatsKey(shopID string, page int) string {
	return "promo_stats_" + shopID + "_" + strconv.Itoa(page)
}

func ShopStatsKey(shopID string) string {
	return "shop_stats_" + shopID
}

func CashierListKey(accountID string) string {
	return "cashier_list_" + accountID
}

// FailureRedirection maps a failed mutating call onto the route the UI must
// navigate to: the upgrade screen when the plan ran out, otherwise the error
// page carrying the message and the originating route.
func FailureRedirection(err error, origin routes.Route) routes.Redirection {
	ex := result.From(err)
	if ex.Kind == result.KindUpgradedPlanRequired {
		return routes.WithError(routes.UpgradePlan, ex.Message)
	}
	return routes.WithErrorOrigin(routes.Error, ex.Message, origin)
}
