package list_products

import (
	"context"
	"math/big"

	"cloud.google.com/go/spanner"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"github.com/murkotick/product-launch-service/internal/app/product/dto"
)

// SpannerListProductsQuery lists products that are available and in stock,
// with an optional category filter.
type SpannerListProductsQuery struct {
	Client *spanner.Client
}

func NewSpannerListProductsQuery(client *spanner.Client) *SpannerListProductsQuery {
	return &SpannerListProductsQuery{Client: client}
}

func (q *SpannerListProductsQuery) ListAvailableProducts(ctx context.Context, category *string, limit, offset int) ([]*dto.ProductSummaryDTO, error) {
	baseSQL := `SELECT product_id, name, category, price_numerator, price_denominator, status
		FROM products
		WHERE is_available = TRUE AND stock_quantity > 0`
	params := map[string]interface{}{}
	if category != nil {
		baseSQL += " AND category = @category"
		params["category"] = *category
	}
	baseSQL += " ORDER BY name ASC LIMIT @limit OFFSET @offset"
	params["limit"] = int64(limit)
	params["offset"] = int64(offset)

	stmt := spanner.Statement{SQL: baseSQL, Params: params}
	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]*dto.ProductSummaryDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "list products")
		}

		var (
			id                 int64
			name               string
			categoryStr        spanner.NullString
			priceNum, priceDen int64
			status             string
		)
		if err := row.Columns(&id, &name, &categoryStr, &priceNum, &priceDen, &status); err != nil {
			return nil, errors.Wrap(err, "decode product summary")
		}

		price := "0.00"
		if priceDen != 0 {
			price = new(big.Rat).SetFrac(big.NewInt(priceNum), big.NewInt(priceDen)).FloatString(2)
		}
		out = append(out, &dto.ProductSummaryDTO{
			ProductID: id,
			Name:      name,
			Category:  categoryStr.StringVal,
			Price:     price,
			PriceNum:  priceNum,
			PriceDen:  priceDen,
			Status:    status,
		})
	}
}
