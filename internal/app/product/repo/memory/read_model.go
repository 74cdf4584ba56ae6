package memory

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/app/product/dto"
)

// ReadModel serves product queries from the committed state of a Store.
type ReadModel struct {
	store *Store
}

func NewReadModel(s *Store) *ReadModel {
	return &ReadModel{store: s}
}

func (rm *ReadModel) GetProduct(_ context.Context, productID int64) (*dto.ProductDTO, error) {
	p, ok := rm.store.Product(productID)
	if !ok {
		return nil, errors.Wrapf(domain.ErrProductNotFound, "product %d", productID)
	}
	out := dto.FromProduct(p)
	return &out, nil
}

// ListAvailableProducts returns available, in-stock products ordered by name.
func (rm *ReadModel) ListAvailableProducts(_ context.Context, category *string, limit, offset int) ([]*dto.ProductSummaryDTO, error) {
	var matched []*domain.Product
	for _, p := range rm.store.Products() {
		if !p.IsAvailable() || p.StockQuantity() <= 0 {
			continue
		}
		if category != nil && p.Category() != *category {
			continue
		}
		matched = append(matched, p)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name() < matched[j].Name() })

	out := make([]*dto.ProductSummaryDTO, 0)
	if offset >= len(matched) {
		return out, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	for _, p := range matched {
		out = append(out, &dto.ProductSummaryDTO{
			ProductID: p.ID(),
			Name:      p.Name(),
			Category:  p.Category(),
			Price:     p.Price().String(),
			PriceNum:  p.Price().Numerator(),
			PriceDen:  p.Price().Denominator(),
			Status:    string(p.Status()),
		})
	}
	return out, nil
}
