package update_stock

import (
	"context"

	"github.com/pkg/errors"

	"github.com/murkotick/product-launch-service/internal/app/product/contracts"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/shared"
	"github.com/murkotick/product-launch-service/internal/pkg/clock"
)

// Request adjusts the stock of one product by Quantity units. A negative
// quantity removes stock.
type Request struct {
	ProductID int64
	Quantity  int64
}

// Interactor applies a stock adjustment and its outbox event in one transaction.
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

// Execute returns the stock on hand after the adjustment.
func (it *Interactor) Execute(ctx context.Context, req Request) (stock int64, err error) {
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

	// 1. Load aggregate
	product, err := uow.Products().GetByID(ctx, req.ProductID)
	if err != nil {
		return 0, err
	}

	// 2. Domain method
	if err = product.UpdateStock(req.Quantity, now); err != nil {
		return 0, errors.Wrapf(err, "product %d", req.ProductID)
	}
	if len(product.DomainEvents()) == 0 {
		return product.StockQuantity(), uow.Rollback(ctx)
	}

	// 3. Persist dirty fields
	if err = uow.Products().Update(ctx, product); err != nil {
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
	return product.StockQuantity(), nil
}
