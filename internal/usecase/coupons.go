package usecase

import (
	"context"

	"go.uber.org/zap"

	"merchant-dashboard/internal/clock"
	"merchant-dashboard/internal/events"
	"merchant-dashboard/internal/ids"
	"merchant-dashboard/internal/models"
	"merchant-dashboard/internal/result"
	"merchant-dashboard/internal/routes"
	"merchant-dashboard/internal/validation"
)

// Coupons runs the per-scan verification pipeline and writes redemption
// records. No state is kept between scans.
type Coupons struct {
	sink   RedemptionSink
	clock  clock.Clock
	ids    ids.Generator
	events *events.Manager
	log    *zap.SugaredLogger
}

func NewCoupons(sink RedemptionSink, clk clock.Clock, gen ids.Generator, ev *events.Manager, log *zap.SugaredLogger) *Coupons {
	return &Coupons{
		sink:   sink,
		clock:  clk,
		ids:    gen,
		events: ev,
		log:    log,
	}
}

// Verify parses the scanned QR payload and checks it against the currently
// selected shop: syntax, then affiliation, then validity window, in that
// order.
func (c *Coupons) Verify(raw, shopID string) result.Result[models.Coupon] {
	parsed := validation.ParseCoupon(raw)
	if !parsed.IsOk() {
		return parsed
	}
	return validation.VerifyCoupon(parsed.Value(), shopID, c.clock.Today())
}

// Redeem builds the append-only redemption record from a verified coupon and
// the transaction details, and hands it to the write-only sink.
func (c *Coupons) Redeem(ctx context.Context, coupon models.Coupon, tx models.Transaction) routes.Redirection {
	record := models.RedeemCoupon{
		ID:            c.ids.NewID(),
		CouponID:      coupon.ID,
		PromoID:       coupon.PromoID,
		ShopID:        coupon.ShopID,
		CustomerID:    coupon.CustomerID,
		ScannedAt:     clock.FormatTimestamp(c.clock.Now()),
		AmountCents:   tx.AmountCents,
		NewCustomer:   tx.NewCustomer,
		ValidityStart: coupon.ValidityStart,
		ValidityEnd:   coupon.ValidityEnd,
	}

	if err := c.sink.RedeemCoupon(ctx, record); err != nil {
		return FailureRedirection(err, routes.Redeem)
	}

	c.events.PublishCouponRedeemed(ctx, record)
	return routes.To(routes.Dashboard)
}
