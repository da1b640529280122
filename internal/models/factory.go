package models

import (
	"merchant-dashboard/internal/clock"
	"merchant-dashboard/internal/ids"
)

// NewPromo turns form input into the persisted promo shape, attaching the
// generated id, the creation date and the derived image URI.
func NewPromo(form PromoForm, shopID string, gen ids.Generator, clk clock.Clock) Promo {
	return Promo{
		ID:          gen.NewID(),
		ShopID:      shopID,
		Name:        form.Name,
		Description: form.Description,
		Start:       form.Start,
		End:         form.End,
		ImageURI:    ImageURI(form.ImageFileID, form.ImageExt),
		CreatedAt:   clk.TodayString(),
	}
}

// NewShop turns form input into the persisted shop shape. The id comes from
// the already-uploaded logo file: the upload step is the real id source.
func NewShop(form ShopForm, accountID string, clk clock.Clock) Shop {
	return Shop{
		ID:        form.LogoFileID,
		AccountID: accountID,
		Name:      form.Name,
		Address:   form.Address,
		LogoURI:   ImageURI(form.LogoFileID, form.LogoExt),
		CreatedAt: clk.TodayString(),
	}
}
