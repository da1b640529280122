package usecase

import (
	"context"

	"go.uber.org/zap"

	"merchant-dashboard/internal/clock"
	"merchant-dashboard/internal/events"
	"merchant-dashboard/internal/ids"
	"merchant-dashboard/internal/kvstore"
	"merchant-dashboard/internal/loader"
	"merchant-dashboard/internal/models"
	"merchant-dashboard/internal/routes"
	"merchant-dashboard/internal/validation"
)

// Promos lists and creates the promo campaigns of a shop.
type Promos struct {
	api    PromoAPI
	store  kvstore.Store
	loader *loader.Loader[[]models.Promo]
	clock  clock.Clock
	ids    ids.Generator
	events *events.Manager
	log    *zap.SugaredLogger
}

// NewPromos creates the promos use case. The composition root constructs it
// exactly once; the loader instance is what makes the at-most-once-per-key
// policy hold across the session.
func NewPromos(api PromoAPI, store kvstore.Store, ld *loader.Loader[[]models.Promo], clk clock.Clock, gen ids.Generator, ev *events.Manager, log *zap.SugaredLogger) *Promos {
	return &Promos{
		api:    api,
		store:  store,
		loader: ld,
		clock:  clk,
		ids:    gen,
		events: ev,
		log:    log,
	}
}

// List returns the promos of a shop, cache-first. A failed load surfaces as
// an error for the caller's state; the UI retries in place, no navigation.
func (p *Promos) List(ctx context.Context, shopID string) ([]models.Promo, error) {
	return p.loader.Load(ctx, PromoListKey(shopID), func(ctx context.Context) ([]models.Promo, error) {
		return p.api.GetPromos(ctx, shopID)
	})
}

// Create validates the form, saves the promo and appends it to the cached
// list. The date-range rule is checked before the save call; a violation
// returns to the creation form and the backend is never contacted.
func (p *Promos) Create(ctx context.Context, form models.PromoForm, shopID string) routes.Redirection {
	res := validation.ValidatePromo(form, shopID, p.ids, p.clock)
	if !res.IsOk() {
		return routes.WithError(routes.CreatePromo, res.Err().Message)
	}

	promo := res.Value()
	if err := p.api.SavePromo(ctx, promo); err != nil {
		return FailureRedirection(err, routes.CreatePromo)
	}

	// Keep the cached list consistent by direct append instead of
	// invalidation.
	if err := kvstore.AppendJSON(ctx, p.store, PromoListKey(shopID), promo); err != nil {
		p.log.Warnw("failed to append promo to cache", "shop_id", shopID, "error", err)
	}

	p.events.PublishPromoCreated(ctx, promo)
	return routes.To(routes.Dashboard)
}

// Refresh drops the cached promo list of a shop so the next List refetches.
func (p *Promos) Refresh(ctx context.Context, shopID string) error {
	return p.loader.Invalidate(ctx, PromoListKey(shopID))
}
