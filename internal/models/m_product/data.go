package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds a spanner.Insert mutation for a product using a map of values.
// expected keys are the column names declared in fields.go
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation for a product.
// The values map should NOT include the product_id key; it is prepended as the primary key.
func UpdateMutation(productID int64, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColProductID}
	vals := []interface{}{productID}

	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}

	return spanner.Update(TableName, cols, vals)
}

// BuildInsertMap prepares the canonical fields for insertion.
// A nil description is stored as NULL.
func BuildInsertMap(productID int64, name string, description *string, category string,
	priceNum, priceDen, stock int64, status string, isAvailable bool, userID int64,
	createdAt, updatedAt time.Time) map[string]interface{} {

	m := map[string]interface{}{
		ColProductID:        productID,
		ColName:             name,
		ColCategory:         category,
		ColPriceNumerator:   priceNum,
		ColPriceDenominator: priceDen,
		ColStockQuantity:    stock,
		ColStatus:           status,
		ColIsAvailable:      isAvailable,
		ColUserID:           userID,
		ColCreatedAt:        createdAt,
		ColUpdatedAt:        updatedAt,
	}

	if description != nil {
		m[ColDescription] = *description
	} else {
		m[ColDescription] = nil
	}

	return m
}
