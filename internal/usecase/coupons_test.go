package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchant-dashboard/internal/clock"
	"merchant-dashboard/internal/ids"
	"merchant-dashboard/internal/models"
	"merchant-dashboard/internal/result"
	"merchant-dashboard/internal/routes"
)

func newCouponsFixture(backend *backendStub) *Coupons {
	clk := clock.Fixed{Instant: time.Date(2025, 5, 2, 14, 30, 45, 0, time.UTC)}
	gen := &ids.Sequence{Prefix: "redeem_"}
	return NewCoupons(backend, clk, gen, silentEvents(), testLogger())
}

func scannedCoupon() models.Coupon {
	return models.Coupon{
		ID:            "coupon_1",
		PromoID:       "promo_1",
		ShopID:        "shop_1",
		CustomerID:    "customer_1",
		ValidityStart: "2025-05-01",
		ValidityEnd:   "2025-05-10",
	}
}

func TestVerifyAcceptsCouponForOwnShop(t *testing.T) {
	coupons := newCouponsFixture(&backendStub{})

	verified := coupons.Verify(`{"id":"coupon_1","promo_id":"promo_1","shop_id":"shop_1","customer_id":"customer_1","validity_start":"2025-05-01","validity_end":"2025-05-10"}`, "shop_1")
	require.True(t, verified.IsOk())
	assert.Equal(t, "coupon_1", verified.Value().ID)
}

func TestVerifyRejectsGarbagePayload(t *testing.T) {
	coupons := newCouponsFixture(&backendStub{})

	verified := coupons.Verify("not a coupon at all", "shop_1")
	require.False(t, verified.IsOk())
	exc, ok := result.As(verified.Err())
	require.True(t, ok)
	assert.Equal(t, result.KindNotRecognized, exc.Kind)
}

func TestVerifyRejectsForeignShop(t *testing.T) {
	coupons := newCouponsFixture(&backendStub{})

	verified := coupons.Verify(`{"id":"coupon_1","promo_id":"promo_1","shop_id":"shop_1","customer_id":"customer_1","validity_start":"2025-05-01","validity_end":"2025-05-10"}`, "shop_2")
	require.False(t, verified.IsOk())
	exc, ok := result.As(verified.Err())
	require.True(t, ok)
	assert.Equal(t, result.KindWrongShop, exc.Kind)
}

func TestRedeemBuildsRecordFromCouponAndTransaction(t *testing.T) {
	backend := &backendStub{}
	coupons := newCouponsFixture(backend)

	redirection := coupons.Redeem(context.Background(), scannedCoupon(), models.Transaction{AmountCents: 2590, NewCustomer: true})
	assert.Equal(t, routes.Redirection{Path: routes.Dashboard}, redirection)

	require.Len(t, backend.redeemed, 1)
	assert.Equal(t, models.RedeemCoupon{
		ID:            "redeem_1",
		CouponID:      "coupon_1",
		PromoID:       "promo_1",
		ShopID:        "shop_1",
		CustomerID:    "customer_1",
		ScannedAt:     "2025-05-02 14:30:45",
		AmountCents:   2590,
		NewCustomer:   true,
		ValidityStart: "2025-05-01",
		ValidityEnd:   "2025-05-10",
	}, backend.redeemed[0])
}

func TestRedeemBackendFailureRedirectsToError(t *testing.T) {
	backend := &backendStub{redeemErr: result.New(result.KindSaveResourceFailed, "save failed")}
	coupons := newCouponsFixture(backend)

	redirection := coupons.Redeem(context.Background(), scannedCoupon(), models.Transaction{AmountCents: 100})
	require.NotNil(t, redirection.Params)
	assert.Equal(t, routes.Error, redirection.Path)
	assert.Equal(t, string(routes.Redeem), redirection.Params.Origin)
	assert.Empty(t, backend.redeemed)
}
