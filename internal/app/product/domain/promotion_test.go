package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromotion(t *testing.T) {
	end := t0.Add(24 * time.Hour)

	pct, err := NewPercentagePromotion(25, t0, end)
	require.NoError(t, err)
	assert.True(t, pct.IsValidAt(t0))
	assert.False(t, pct.IsValidAt(end))
	assert.Equal(t, "75.00", pct.ApplyTo(NewMoney(100, 1)).String())

	fixed, err := NewFixedPromotion(NewMoney(999, 100), t0, end)
	require.NoError(t, err)
	assert.Equal(t, "9.99", fixed.ApplyTo(NewMoney(100, 1)).String())

	_, err = NewPercentagePromotion(101, t0, end)
	assert.ErrorIs(t, err, ErrInvalidPromotionPercentage)

	_, err = NewFixedPromotion(NewMoney(1, 1), end, t0)
	assert.ErrorIs(t, err, ErrInvalidPromotionPeriod)

	_, err = NewFixedPromotion(nil, t0, end)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}
