package usecase

import (
	"context"

	"go.uber.org/zap"

	"merchant-dashboard/internal/clock"
	"merchant-dashboard/internal/ids"
	"merchant-dashboard/internal/kvstore"
	"merchant-dashboard/internal/loader"
	"merchant-dashboard/internal/models"
	"merchant-dashboard/internal/routes"
)

// Cashiers manages the staff allowed to scan coupons for an account.
type Cashiers struct {
	api    CashierAPI
	store  kvstore.Store
	loader *loader.Loader[[]models.Cashier]
	clock  clock.Clock
	ids    ids.Generator
	log    *zap.SugaredLogger
}

func NewCashiers(api CashierAPI, store kvstore.Store, ld *loader.Loader[[]models.Cashier], clk clock.Clock, gen ids.Generator, log *zap.SugaredLogger) *Cashiers {
	return &Cashiers{
		api:    api,
		store:  store,
		loader: ld,
		clock:  clk,
		ids:    gen,
		log:    log,
	}
}

// List returns the cashiers of an account, cache-first.
func (c *Cashiers) List(ctx context.Context, accountID string) ([]models.Cashier, error) {
	return c.loader.Load(ctx, CashierListKey(accountID), func(ctx context.Context) ([]models.Cashier, error) {
		return c.api.GetCashiers(ctx, accountID)
	})
}

// Add registers a new cashier and appends it to the cached list.
func (c *Cashiers) Add(ctx context.Context, form models.CashierForm, accountID string) routes.Redirection {
	cashier := models.Cashier{
		ID:        c.ids.NewID(),
		AccountID: accountID,
		Name:      form.Name,
		Email:     form.Email,
		CreatedAt: c.clock.TodayString(),
	}

	if err := c.api.SaveCashier(ctx, cashier); err != nil {
		return FailureRedirection(err, routes.Cashiers)
	}

	if err := kvstore.AppendJSON(ctx, c.store, CashierListKey(accountID), cashier); err != nil {
		c.log.Warnw("failed to append cashier to cache", "account_id", accountID, "error", err)
	}

	return routes.To(routes.Cashiers)
}

// Remove deletes a cashier and drops it from the cached list.
func (c *Cashiers) Remove(ctx context.Context, accountID, cashierID string) routes.Redirection {
	if err := c.api.DeleteCashier(ctx, accountID, cashierID); err != nil {
		return FailureRedirection(err, routes.Cashiers)
	}

	err := kvstore.RemoveJSON(ctx, c.store, CashierListKey(accountID), func(cashier models.Cashier) bool {
		return cashier.ID == cashierID
	})
	if err != nil {
		c.log.Warnw("failed to remove cashier from cache", "account_id", accountID, "cashier_id", cashierID, "error", err)
	}

	return routes.To(routes.Cashiers)
}
