package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchant-dashboard/internal/clock"
	"merchant-dashboard/internal/ids"
	"merchant-dashboard/internal/kvstore"
	"merchant-dashboard/internal/loader"
	"merchant-dashboard/internal/models"
	"merchant-dashboard/internal/result"
	"merchant-dashboard/internal/routes"
)

func newCashiersFixture(backend *backendStub, store kvstore.Store) *Cashiers {
	clk := clock.Fixed{Instant: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)}
	return NewCashiers(backend, store, loader.New[[]models.Cashier](store, testLogger()), clk, &ids.Sequence{Prefix: "cashier_"}, testLogger())
}

func TestAddCashier(t *testing.T) {
	ctx := context.Background()
	backend := &backendStub{}
	store := kvstore.NewMemory()
	cashiers := newCashiersFixture(backend, store)

	redirection := cashiers.Add(ctx, models.CashierForm{Name: "Ada", Email: "ada@example.com"}, "acc_1")

	assert.Equal(t, routes.Redirection{Path: routes.Cashiers}, redirection)
	assert.Equal(t, models.Cashier{
		ID:        "cashier_1",
		AccountID: "acc_1",
		Name:      "Ada",
		Email:     "ada@example.com",
		CreatedAt: "2025-05-01",
	}, backend.savedCash)

	var cached []models.Cashier
	require.NoError(t, kvstore.GetJSON(ctx, store, "cashier_list_acc_1", &cached))
	require.Len(t, cached, 1)
	assert.Equal(t, backend.savedCash, cached[0])
}

func TestRemoveCashierDropsFromCache(t *testing.T) {
	ctx := context.Background()
	backend := &backendStub{}
	store := kvstore.NewMemory()
	cashiers := newCashiersFixture(backend, store)

	cashiers.Add(ctx, models.CashierForm{Name: "Ada"}, "acc_1")
	cashiers.Add(ctx, models.CashierForm{Name: "Grace"}, "acc_1")

	redirection := cashiers.Remove(ctx, "acc_1", "cashier_1")

	assert.Equal(t, routes.Redirection{Path: routes.Cashiers}, redirection)
	assert.Equal(t, 1, backend.deleteCalls)

	var cached []models.Cashier
	require.NoError(t, kvstore.GetJSON(ctx, store, "cashier_list_acc_1", &cached))
	require.Len(t, cached, 1)
	assert.Equal(t, "Grace", cached[0].Name)
}

func TestRemoveCashierBackendFailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	backend := &backendStub{deleteErr: result.New(result.KindInternalServerError, "backend error")}
	store := kvstore.NewMemory()
	cashiers := newCashiersFixture(backend, store)

	cashiers.Add(ctx, models.CashierForm{Name: "Ada"}, "acc_1")

	redirection := cashiers.Remove(ctx, "acc_1", "cashier_1")

	assert.Equal(t, routes.Error, redirection.Path)
	require.NotNil(t, redirection.Params)
	assert.Equal(t, string(routes.Cashiers), redirection.Params.Origin)

	var cached []models.Cashier
	require.NoError(t, kvstore.GetJSON(ctx, store, "cashier_list_acc_1", &cached))
	assert.Len(t, cached, 1)
}
