// Package models contains the domain entities of the merchant dashboard.
package models

import "strings"

// Authentication is the session identity stored after sign-in. Role and
// AccountRef both empty means the merchant signed up but was never
// provisioned; the bootstrap use case checks that state directly.
type Authentication struct {
	UserID     string `json:"user_id"`
	Token      string `json:"token"`
	Role       string `json:"role,omitempty"`
	AccountRef string `json:"account_ref,omitempty"`
}

// Provisioned reports whether the account was set up on the backend.
func (a Authentication) Provisioned() bool {
	return a.Role != "" || a.AccountRef != ""
}

// UserProfile describes the merchant account behind the session.
type UserProfile struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Region    string `json:"region,omitempty"`
	Plan      string `json:"plan,omitempty"`
}

// Shop is a merchant location running promo campaigns.
type Shop struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	LogoURI   string `json:"logo_uri,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ShopForm is the UI input for creating a shop. The logo file is uploaded
// before submission; LogoFileID references that upload.
type ShopForm struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	LogoFileID string `json:"logo_file_id"`
	LogoExt    string `json:"logo_ext"`
}

// Promo is a QR-code campaign scoped to one shop. Start and End are dates in
// the 2006-01-02 layout.
type Promo struct {
	ID          string `json:"id"`
	ShopID      string `json:"shop_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	ImageURI    string `json:"image_uri,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// PromoForm is the UI input for creating a promo.
type PromoForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	ImageFileID string `json:"image_file_id"`
	ImageExt    string `json:"image_ext"`
}

// Coupon is a customer-held token scanned at the counter. The raw QR payload
// decodes into this shape.
type Coupon struct {
	ID            string `json:"id"`
	PromoID       string `json:"promo_id"`
	ShopID        string `json:"shop_id"`
	CustomerID    string `json:"customer_id"`
	ValidityStart string `json:"validity_start"`
	ValidityEnd   string `json:"validity_end"`
}

// Transaction carries the purchase details entered by the cashier when
// redeeming a coupon.
type Transaction struct {
	AmountCents int64 `json:"amount_cents"`
	NewCustomer bool  `json:"new_customer"`
}

// RedeemCoupon is the append-only redemption record built from a verified
// coupon plus transaction details. It is never mutated after construction.
type RedeemCoupon struct {
	ID            string `json:"id"`
	CouponID      string `json:"coupon_id"`
	PromoID       string `json:"promo_id"`
	ShopID        string `json:"shop_id"`
	CustomerID    string `json:"customer_id"`
	ScannedAt     string `json:"scanned_at"`
	AmountCents   int64  `json:"amount_cents"`
	NewCustomer   bool   `json:"new_customer"`
	ValidityStart string `json:"validity_start"`
	ValidityEnd   string `json:"validity_end"`
}

// Cashier is a staff member allowed to scan coupons for an account.
type Cashier struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at"`
}

// CashierForm is the UI input for adding a cashier.
type CashierForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PromoStat aggregates scan activity for one promo.
type PromoStat struct {
	PromoID  string `json:"promo_id"`
	Name     string `json:"name"`
	Issued   int    `json:"issued"`
	Redeemed int    `json:"redeemed"`
}

// PromoStatsPage is one page of per-promo statistics for a shop.
type PromoStatsPage struct {
	ShopID string      `json:"shop_id"`
	Page   int         `json:"page"`
	Rows   []PromoStat `json:"rows"`
	Total  int         `json:"total"`
}

// ShopStatistics aggregates activity across a whole shop.
type ShopStatistics struct {
	ShopID          string `json:"shop_id"`
	CouponsIssued   int    `json:"coupons_issued"`
	CouponsRedeemed int    `json:"coupons_redeemed"`
	NewCustomers    int    `json:"new_customers"`
	RevenueCents    int64  `json:"revenue_cents"`
}

// ErrorResponse is the error payload of the local facade.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ImageURI derives the media URI for an uploaded file. Every promo image and
// shop logo URI goes through this one rule.
func ImageURI(fileID, ext string) string {
	return "/media/" + fileID + "." + strings.TrimPrefix(ext, ".")
}
