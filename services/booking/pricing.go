package booking

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"salonbook/models"
	"salonbook/utils"
)

var hundred = decimal.NewFromInt(100)

// ComposePrice turns (base price, promotion, reward, payment method)
// into the final chargeable amount. It is deterministic and
// side-effect-free; promotion and reward state mutate only when the
// coordinator commits the booking.
//
// Order of operations is fixed:
//  1. apply the promotion (if active at now)
//  2. apply the reward, clamped so the price never goes negative; any
//     reward remainder beyond the price is forfeited
//  3. compute the processing fee on the post-discount amount
//  4. total = post-discount amount + fee
//
// All amounts in the quote are rounded to cents.
func ComposePrice(basePrice float64, promo *models.Promotion, rewardAmount float64, method models.PaymentMethod, now time.Time) (models.PriceQuote, error) {
	base := decimal.NewFromFloat(basePrice)

	discounted := base
	if promo.ActiveAt(now) {
		switch promo.Kind {
		case models.DiscountPercentage:
			pct := decimal.NewFromInt(int64(promo.Percentage))
			discounted = base.Mul(hundred.Sub(pct)).Div(hundred)
		case models.DiscountFixedAmount:
			discounted = base.Sub(decimal.NewFromFloat(promo.FixedAmount))
		}
		if discounted.IsNegative() {
			discounted = decimal.Zero
		}
	}

	reward := decimal.NewFromFloat(rewardAmount)
	if reward.GreaterThan(discounted) {
		reward = discounted // remainder forfeited for this booking
	}
	afterReward := discounted.Sub(reward)

	feePct := decimal.NewFromFloat(method.FeePercent)
	fee := afterReward.Mul(feePct).Div(hundred).Add(decimal.NewFromFloat(method.FeeFixed))
	total := afterReward.Add(fee)

	quote := models.PriceQuote{
		Subtotal: base.Round(2),
		Discount: base.Sub(afterReward).Round(2),
		Fee:      fee.Round(2),
		Total:    total.Round(2),
	}

	// Unreachable given the clamping above; checked anyway and treated
	// as a programmer error rather than clamped a second time.
	if quote.Total.IsNegative() {
		utils.GetLogger().Error("pricing composer produced a negative total",
			zap.Float64("basePrice", basePrice),
			zap.Float64("rewardAmount", rewardAmount),
			zap.String("total", quote.Total.String()),
		)
		return models.PriceQuote{}, ErrPricingInvariant
	}

	return quote, nil
}
