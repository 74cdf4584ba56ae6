package get_product

import (
	"context"
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/app/product/dto"
)

// SpannerGetProductQuery is a concrete query implementation that reads from Spanner directly.
type SpannerGetProductQuery struct {
	Client *spanner.Client
}

func NewSpannerGetProductQuery(client *spanner.Client) *SpannerGetProductQuery {
	return &SpannerGetProductQuery{Client: client}
}

// GetProduct fetches one product row. A missing row yields domain.ErrProductNotFound.
func (q *SpannerGetProductQuery) GetProduct(ctx context.Context, productID int64) (*dto.ProductDTO, error) {
	stmt := spanner.Statement{
		SQL: `SELECT product_id, name, description, category,
		             price_numerator, price_denominator, stock_quantity,
		             status, is_available, user_id, created_at, updated_at
		      FROM products
		      WHERE product_id = @id`,
		Params: map[string]interface{}{"id": productID},
	}

	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.Wrapf(domain.ErrProductNotFound, "product %d", productID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "query product")
	}

	var (
		id                   int64
		name                 string
		description          spanner.NullString
		category             spanner.NullString
		priceNum, priceDen   int64
		stock                int64
		status               string
		available            bool
		userID               int64
		createdAt, updatedAt time.Time
	)
	if err := row.Columns(&id, &name, &description, &category, &priceNum, &priceDen, &stock,
		&status, &available, &userID, &createdAt, &updatedAt); err != nil {
		return nil, errors.Wrap(err, "decode product")
	}

	out := &dto.ProductDTO{
		ProductID:     id,
		Name:          name,
		Category:      category.StringVal,
		PriceNum:      priceNum,
		PriceDen:      priceDen,
		StockQuantity: stock,
		Status:        status,
		IsAvailable:   available,
		IsInStock:     stock > 0 && domain.ProductStatus(status) == domain.ProductStatusActive,
		UserID:        userID,
		CreatedAt:     createdAt.UTC(),
		UpdatedAt:     updatedAt.UTC(),
		Price:         priceString(priceNum, priceDen),
	}
	if description.Valid && description.StringVal != "" {
		desc := description.StringVal
		out.Description = &desc
	}
	return out, nil
}

func priceString(num, den int64) string {
	if den == 0 {
		return "0.00"
	}
	return new(big.Rat).SetFrac(big.NewInt(num), big.NewInt(den)).FloatString(2)
}
