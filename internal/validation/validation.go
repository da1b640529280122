// Package validation holds the pure domain rules checked before any network
// call: promo date-range coherence and the coupon verification pipeline.
package validation

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"

	"merchant-dashboard/internal/clock"
	"merchant-dashboard/internal/ids"
	"merchant-dashboard/internal/models"
	"merchant-dashboard/internal/result"
)

// ValidateDateRange succeeds iff start and end parse as dates and start does
// not come after end.
func ValidateDateRange(start, end string) *result.Exception {
	startAt, err := clock.ParseDate(start)
	if err != nil {
		return result.InvalidDateRange()
	}
	endAt, err := clock.ParseDate(end)
	if err != nil {
		return result.InvalidDateRange()
	}
	if startAt.After(endAt) {
		return result.InvalidDateRange()
	}
	return nil
}

// ParseCoupon decodes a scanned QR payload. Any payload missing the fields a
// coupon needs for verification is rejected as not recognized.
func ParseCoupon(raw string) result.Result[models.Coupon] {
	var coupon models.Coupon
	if err := json.Unmarshal([]byte(raw), &coupon); err != nil {
		return result.Err[models.Coupon](result.NotRecognized())
	}
	if coupon.ID == "" || coupon.PromoID == "" || coupon.ShopID == "" ||
		coupon.ValidityStart == "" || coupon.ValidityEnd == "" {
		return result.Err[models.Coupon](result.NotRecognized())
	}
	if _, err := clock.ParseDate(coupon.ValidityStart); err != nil {
		return result.Err[models.Coupon](result.NotRecognized())
	}
	if _, err := clock.ParseDate(coupon.ValidityEnd); err != nil {
		return result.Err[models.Coupon](result.NotRecognized())
	}
	return result.Ok(coupon)
}

// VerifyCoupon runs the affiliation and validity-window rules in their fixed
// order: wrong shop, then expired, then not yet started. The order is part of
// the contract; a coupon failing several rules reports the first.
func VerifyCoupon(coupon models.Coupon, shopID string, today time.Time) result.Result[models.Coupon] {
	if coupon.ShopID != shopID {
		return result.Err[models.Coupon](result.WrongShop())
	}

	// Dates were checked by ParseCoupon.
	end, _ := clock.ParseDate(coupon.ValidityEnd)
	if today.After(end) {
		return result.Err[models.Coupon](result.PromoExpired())
	}

	start, _ := clock.ParseDate(coupon.ValidityStart)
	if today.Before(start) {
		return result.Err[models.Coupon](result.PromoNotYetStarted())
	}

	return result.Ok(coupon)
}

// SanitizeString strips control characters and surrounding whitespace from
// user input.
func SanitizeString(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)

	return strings.TrimSpace(s)
}

// ValidatePromo constructs the candidate promo from form input and checks its
// date range. This is the only rule enforced before the save call; every
// other creation failure comes back from the backend.
func ValidatePromo(form models.PromoForm, shopID string, gen ids.Generator, clk clock.Clock) result.Result[models.Promo] {
	promo := models.NewPromo(form, shopID, gen, clk)
	if ex := ValidateDateRange(promo.Start, promo.End); ex != nil {
		return result.Err[models.Promo](ex)
	}
	return result.Ok(promo)
}
