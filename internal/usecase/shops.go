package usecase

import (
	"context"

	"go.uber.org/zap"

	"merchant-dashboard/internal/clock"
	"merchant-dashboard/internal/events"
	"merchant-dashboard/internal/kvstore"
	"merchant-dashboard/internal/loader"
	"merchant-dashboard/internal/models"
	"merchant-dashboard/internal/routes"
)

// Shops lists and creates the shops of an account.
type Shops struct {
	api    ShopAPI
	store  kvstore.Store
	loader *loader.Loader[[]models.Shop]
	clock  clock.Clock
	events *events.Manager
	log    *zap.SugaredLogger
}

func NewShops(api ShopAPI, store kvstore.Store, ld *loader.Loader[[]models.Shop], clk clock.Clock, ev *events.Manager, log *zap.SugaredLogger) *Shops {
	return &Shops{
		api:    api,
		store:  store,
		loader: ld,
		clock:  clk,
		events: ev,
		log:    log,
	}
}

// List returns the shops of an account, cache-first.
func (s *Shops) List(ctx context.Context, accountID string) ([]models.Shop, error) {
	return s.loader.Load(ctx, ShopListKey(accountID), func(ctx context.Context) ([]models.Shop, error) {
		return s.api.GetShops(ctx, accountID)
	})
}

// Create saves a new shop and appends it to the cached list. There is no
// local validation: the shop id comes from the logo upload that already
// happened, and everything else is checked by the backend.
func (s *Shops) Create(ctx context.Context, form models.ShopForm, accountID string) routes.Redirection {
	shop := models.NewShop(form, accountID, s.clock)

	if err := s.api.SaveShop(ctx, shop); err != nil {
		return FailureRedirection(err, routes.CreateShop)
	}

	if err := kvstore.AppendJSON(ctx, s.store, ShopListKey(accountID), shop); err != nil {
		s.log.Warnw("failed to append shop to cache", "account_id", accountID, "error", err)
	}

	s.events.PublishShopCreated(ctx, shop)
	return routes.To(routes.Shops)
}

// Refresh drops the cached shop list of an account.
func (s *Shops) Refresh(ctx context.Context, accountID string) error {
	return s.loader.Invalidate(ctx, ShopListKey(accountID))
}
