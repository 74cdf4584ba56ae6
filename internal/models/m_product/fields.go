package m_product

// Field constants for the products table.
const (
	TableName = "products"

	ColProductID        = "product_id"
	ColName             = "name"
	ColDescription      = "description"
	ColCategory         = "category"
	ColPriceNumerator   = "price_numerator"
	ColPriceDenominator = "price_denominator"
	ColStockQuantity    = "stock_quantity"
	ColStatus           = "status"
	ColIsAvailable      = "is_available"
	ColUserID           = "user_id"
	ColCreatedAt        = "created_at"
	ColUpdatedAt        = "updated_at"
)

// ReadColumns is the column order used when decoding full product rows.
var ReadColumns = []string{
	ColProductID,
	ColName,
	ColDescription,
	ColCategory,
	ColPriceNumerator,
	ColPriceDenominator,
	ColStockQuantity,
	ColStatus,
	ColIsAvailable,
	ColUserID,
	ColCreatedAt,
	ColUpdatedAt,
}
