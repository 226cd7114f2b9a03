package models

import "github.com/shopspring/decimal"

// PriceQuote is the breakdown produced by the pricing composer.
// Subtotal is the base price snapshot, Discount covers both the
// promotion and any redeemed reward, Fee is the payment method's
// processing surcharge on the post-discount amount.
type PriceQuote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Fee      decimal.Decimal `json:"fee"`
	Total    decimal.Decimal `json:"total"`
}
