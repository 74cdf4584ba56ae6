package services

import (
	"time"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
)

// PricingCalculator is a domain service for pricing rules that span more than
// one value object.
type PricingCalculator struct{}

func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// EffectivePrice returns the lowest price among the base price and every
// promotion valid at the given time. Nil promotions are ignored.
func (pc *PricingCalculator) EffectivePrice(base *domain.Money, promotions []*domain.Promotion, at time.Time) *domain.Money {
	best := base
	for _, promo := range promotions {
		if promo == nil || !promo.IsValidAt(at) {
			continue
		}
		if candidate := promo.ApplyTo(base); candidate.LessThan(best) {
			best = candidate
		}
	}
	if best.IsNegative() {
		return domain.Zero()
	}
	return best
}

