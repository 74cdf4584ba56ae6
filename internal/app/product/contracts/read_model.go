package contracts

import (
	"context"

	"github.com/murkotick/product-launch-service/internal/app/product/dto"
)

type ReadModel interface {
	GetProduct(ctx context.Context, productID int64) (*dto.ProductDTO, error)
	ListAvailableProducts(ctx context.Context, category *string, limit, offset int) ([]*dto.ProductSummaryDTO, error)
}
