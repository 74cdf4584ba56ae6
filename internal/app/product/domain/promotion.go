package domain

import (
	"fmt"
	"math/big"
	"time"
)

// Promotion is a time-bounded promotional price. It either fixes the price
// outright or takes a percentage off the base price.
// Promotion is immutable once created.
type Promotion struct {
	price      *Money
	percentage *big.Rat // 0.0 - 1.0, nil for fixed-price promotions
	startDate  time.Time
	endDate    time.Time
}

// NewFixedPromotion creates a promotion that sells at price during [startDate, endDate).
func NewFixedPromotion(price *Money, startDate, endDate time.Time) (*Promotion, error) {
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if !endDate.After(startDate) {
		return nil, ErrInvalidPromotionPeriod
	}
	return &Promotion{price: price, startDate: startDate, endDate: endDate}, nil
}

// NewPercentagePromotion creates a promotion taking percentage (0-100) off the base price.
func NewPercentagePromotion(percentage float64, startDate, endDate time.Time) (*Promotion, error) {
	if percentage < 0 || percentage > 100 {
		return nil, ErrInvalidPromotionPercentage
	}
	if !endDate.After(startDate) {
		return nil, ErrInvalidPromotionPeriod
	}
	pct := new(big.Rat).SetFloat64(percentage)
	pct.Quo(pct, big.NewRat(100, 1))
	return &Promotion{percentage: pct, startDate: startDate, endDate: endDate}, nil
}

// IsValidAt checks if the promotion is valid at the given time.
// A promotion is valid if the time is within [startDate, endDate).
func (p *Promotion) IsValidAt(now time.Time) bool {
	return !now.Before(p.startDate) && now.Before(p.endDate)
}

func (p *Promotion) StartDate() time.Time {
	return p.startDate
}

func (p *Promotion) EndDate() time.Time {
	return p.endDate
}

// ApplyTo returns the promotional price for the given base price.
func (p *Promotion) ApplyTo(base *Money) *Money {
	if p.percentage == nil {
		return p.price
	}
	return base.Subtract(base.Multiply(NewMoneyFromRat(p.percentage)))
}

func (p *Promotion) String() string {
	if p.percentage == nil {
		return fmt.Sprintf("fixed %s (valid from %s to %s)", p.price,
			p.startDate.Format("2006-01-02"), p.endDate.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s%% off (valid from %s to %s)",
		new(big.Rat).Mul(p.percentage, big.NewRat(100, 1)).FloatString(2),
		p.startDate.Format("2006-01-02"), p.endDate.Format("2006-01-02"))
}
