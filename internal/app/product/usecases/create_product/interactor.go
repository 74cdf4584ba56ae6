package create_product

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/murkotick/product-launch-service/internal/app/product/contracts"
	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/shared"
	"github.com/murkotick/product-launch-service/internal/pkg/clock"
)

// Request is the application-level create-product request.
type Request struct {
	Name        string
	Description string
	Category    string
	PriceNum    int64 // numerator
	PriceDen    int64 // denominator
	UserID      int64
}

// Interactor implements the plain create-product usecase: one product and its
// outbox event in a single transaction.
type Interactor struct {
	UnitOfWork contracts.UnitOfWorkFactory
	Clock      clock.Clock
}

func NewInteractor(uow contracts.UnitOfWorkFactory, clk clock.Clock) *Interactor {
	return &Interactor{
		UnitOfWork: uow,
		Clock:      clk,
	}
}

// Execute creates a new product owned by an existing user and returns its id.
func (it *Interactor) Execute(ctx context.Context, req Request) (id int64, err error) {
	if req.PriceDen == 0 {
		return 0, domain.ErrInvalidPrice
	}
	now := it.Clock.Now()

	uow := it.UnitOfWork.New()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = uow.Rollback(context.WithoutCancel(ctx))
		}
	}()

	// 1. Owner must exist
	ok, err := uow.Users().Exists(ctx, req.UserID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.Wrapf(domain.ErrUserNotFound, "user %d", req.UserID)
	}

	// 2. Name must be unique
	all, err := uow.Products().GetAll(ctx)
	if err != nil {
		return 0, err
	}
	name := strings.TrimSpace(req.Name)
	for _, p := range all {
		if p.Name() == name {
			return 0, errors.Wrapf(domain.ErrDuplicateProductName, "product %d", p.ID())
		}
	}

	// 3. Build and persist the aggregate
	product, err := domain.NewProduct(req.Name, req.Description, req.Category,
		domain.NewMoney(req.PriceNum, req.PriceDen), req.UserID, now)
	if err != nil {
		return 0, err
	}
	if _, err = uow.Products().Add(ctx, product); err != nil {
		return 0, err
	}

	// 4. Outbox events
	if err = shared.AppendOutboxEvents(ctx, uow.Outbox(), product.DomainEvents(), now); err != nil {
		return 0, err
	}
	product.ClearEvents()

	// 5. Commit
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return product.ID(), nil
}
