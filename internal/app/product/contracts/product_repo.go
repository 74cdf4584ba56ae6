package contracts

import (
	"context"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
)

// ProductStore is the transactional product repository exposed by a UnitOfWork.
// Reads observe writes made earlier in the same unit of work.
type ProductStore interface {
	// GetByID returns domain.ErrProductNotFound when the product does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)

	// Add persists a new product and assigns its id.
	Add(ctx context.Context, p *domain.Product) (*domain.Product, error)

	// Update persists the fields marked dirty on the product.
	Update(ctx context.Context, p *domain.Product) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// UserStore is the read side of users needed by product commands.
type UserStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
