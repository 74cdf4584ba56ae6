package repo

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/models/m_product"
)

// ProductRepo builds Spanner mutations for products.
// It returns *spanner.Mutation objects but never applies them.
type ProductRepo struct{}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{}
}

// buildInsertValues constructs the values map used for insertion.
// It's unexported so tests in the same package can inspect the map without
// relying on spanner.Mutation internals.
func buildInsertValues(p *domain.Product) map[string]interface{} {
	var description *string
	if d := p.Description(); d != "" {
		description = &d
	}

	price := p.Price()
	return m_product.BuildInsertMap(p.ID(), p.Name(), description, p.Category(),
		price.Numerator(), price.Denominator(), p.StockQuantity(), string(p.Status()),
		p.IsAvailable(), p.UserID(), p.CreatedAt().UTC(), p.UpdatedAt().UTC())
}

// buildUpdateValues maps the aggregate's dirty fields to columns.
func buildUpdateValues(p *domain.Product) map[string]interface{} {
	ch := p.Changes()
	updates := map[string]interface{}{}

	if ch.Dirty(domain.FieldName) {
		updates[m_product.ColName] = p.Name()
	}
	if ch.Dirty(domain.FieldDescription) {
		if p.Description() == "" {
			updates[m_product.ColDescription] = nil
		} else {
			updates[m_product.ColDescription] = p.Description()
		}
	}
	if ch.Dirty(domain.FieldCategory) {
		updates[m_product.ColCategory] = p.Category()
	}
	if ch.Dirty(domain.FieldPrice) {
		updates[m_product.ColPriceNumerator] = p.Price().Numerator()
		updates[m_product.ColPriceDenominator] = p.Price().Denominator()
	}
	if ch.Dirty(domain.FieldStock) {
		updates[m_product.ColStockQuantity] = p.StockQuantity()
	}
	if ch.Dirty(domain.FieldStatus) {
		updates[m_product.ColStatus] = string(p.Status())
	}
	if ch.Dirty(domain.FieldAvailable) {
		updates[m_product.ColIsAvailable] = p.IsAvailable()
	}
	if len(updates) == 0 && !ch.Dirty(domain.FieldUpdatedAt) {
		return nil
	}

	updates[m_product.ColUpdatedAt] = p.UpdatedAt().UTC()
	return updates
}

// InsertMut builds an Insert mutation for a new product. The product must
// already carry its id.
func (r *ProductRepo) InsertMut(p *domain.Product) *spanner.Mutation {
	if p == nil {
		return nil
	}
	return m_product.InsertMutation(buildInsertValues(p))
}

// UpdateMut builds an Update mutation using the aggregate's ChangeTracker.
// It updates only dirty fields and always stamps updated_at when there are changes.
func (r *ProductRepo) UpdateMut(p *domain.Product) *spanner.Mutation {
	if p == nil || p.Changes() == nil || !p.Changes().HasChanges() {
		return nil
	}
	updates := buildUpdateValues(p)
	if updates == nil {
		return nil
	}
	return m_product.UpdateMutation(p.ID(), updates)
}

// decodeProduct reads a row selected with m_product.ReadColumns.
func decodeProduct(row *spanner.Row) (*domain.Product, error) {
	var (
		id                   int64
		name                 string
		description          spanner.NullString
		category             spanner.NullString
		priceNum, priceDen   int64
		stock                int64
		status               string
		isAvailable          bool
		userID               int64
		createdAt, updatedAt time.Time
	)
	if err := row.Columns(&id, &name, &description, &category, &priceNum, &priceDen,
		&stock, &status, &isAvailable, &userID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return domain.ReconstructProduct(
		id,
		name,
		description.StringVal,
		category.StringVal,
		domain.NewMoney(priceNum, priceDen),
		stock,
		domain.ProductStatus(status),
		isAvailable,
		userID,
		createdAt.UTC(),
		updatedAt.UTC(),
	), nil
}
