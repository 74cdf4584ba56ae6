package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/models/m_product"
)

// TestInsertMut_NewProduct verifies the insert values of a freshly created product.
func TestInsertMut_NewProduct(t *testing.T) {
	r := NewProductRepo()

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	price := domain.NewMoney(1999, 100) // 19.99

	p, err := domain.NewProduct("Aurora Lamp", "", "lighting", price, 7, now)
	require.NoError(t, err)
	p.AssignID(12)

	values := buildInsertValues(p)
	require.NotNil(t, values)

	assert.Equal(t, int64(12), values[m_product.ColProductID])
	assert.Equal(t, price.Numerator(), values[m_product.ColPriceNumerator])
	assert.Equal(t, price.Denominator(), values[m_product.ColPriceDenominator])
	assert.Equal(t, string(domain.ProductStatusDraft), values[m_product.ColStatus])
	assert.Equal(t, true, values[m_product.ColIsAvailable])
	assert.Equal(t, int64(7), values[m_product.ColUserID])

	// Empty description is stored as NULL
	v, ok := values[m_product.ColDescription]
	require.True(t, ok, "expected key %s in insert map", m_product.ColDescription)
	assert.Nil(t, v)

	require.NotNil(t, r.InsertMut(p))
}

// TestUpdateMut_OnlyDirtyFields verifies that updates carry only changed columns plus updated_at.
func TestUpdateMut_OnlyDirtyFields(t *testing.T) {
	r := NewProductRepo()

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	p := domain.ReconstructProduct(3, "Aurora Lamp", "desk lamp", "lighting", domain.NewMoney(2000, 100), 0,
		domain.ProductStatusDraft, true, 1, created, created)

	assert.Nil(t, r.UpdateMut(p), "clean product must not produce a mutation")

	later := created.Add(time.Hour)
	require.NoError(t, p.UpdatePrice(domain.NewMoney(1500, 100), later))

	values := buildUpdateValues(p)
	require.NotNil(t, values)
	assert.Equal(t, int64(15), values[m_product.ColPriceNumerator])
	assert.Equal(t, int64(1), values[m_product.ColPriceDenominator])
	assert.Equal(t, later, values[m_product.ColUpdatedAt])
	assert.NotContains(t, values, m_product.ColName)
	assert.NotContains(t, values, m_product.ColStatus)

	require.NotNil(t, r.UpdateMut(p))
}

// TestUpdateMut_TouchOnlyStampsUpdatedAt covers competitor refreshes.
func TestUpdateMut_TouchOnlyStampsUpdatedAt(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	p := domain.ReconstructProduct(4, "Borealis Lamp", "", "lighting", domain.NewMoney(10, 1), 0,
		domain.ProductStatusActive, true, 1, created, created)

	later := created.Add(24 * time.Hour)
	p.Touch(later)

	values := buildUpdateValues(p)
	require.Len(t, values, 1)
	assert.Equal(t, later, values[m_product.ColUpdatedAt])
}

func TestUpdateMut_ClearedDescriptionIsNull(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	p := domain.ReconstructProduct(5, "Aurora Lamp", "old", "lighting", domain.NewMoney(10, 1), 0,
		domain.ProductStatusDraft, true, 1, created, created)

	require.NoError(t, p.ReplaceDetails("Aurora Lamp", "", "lighting", created.Add(time.Minute)))

	values := buildUpdateValues(p)
	v, ok := values[m_product.ColDescription]
	require.True(t, ok)
	assert.Nil(t, v)
}
