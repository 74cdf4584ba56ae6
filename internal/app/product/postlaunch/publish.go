// Package postlaunch holds the actions run after a launch transaction committed.
package postlaunch

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/murkotick/product-launch-service/internal/app/product/contracts"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/launch_product"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/shared"
	"github.com/murkotick/product-launch-service/internal/pkg/clock"
)

// PublishProcedure moves a freshly launched draft product to active in its own transaction.
type PublishProcedure struct {
	UnitOfWork contracts.UnitOfWorkFactory
	Clock      clock.Clock
	Logger     logrus.FieldLogger
}

func NewPublishProcedure(uow contracts.UnitOfWorkFactory, clk clock.Clock, logger logrus.FieldLogger) *PublishProcedure {
	return &PublishProcedure{UnitOfWork: uow, Clock: clk, Logger: logger}
}

func (p *PublishProcedure) Name() string { return "publish" }

func (p *PublishProcedure) Run(ctx context.Context, launched launch_product.Launched) (err error) {
	uow := p.UnitOfWork.New()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = uow.Rollback(context.WithoutCancel(ctx))
		}
	}()

	id := launched.Product.ProductID
	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "load product %d", id)
	}

	// Relaunched products may already be live.
	if product.IsPublished() {
		p.Logger.WithField("product_id", id).WithField("status", product.Status()).
			Debug("product already published")
		return uow.Rollback(ctx)
	}

	now := p.Clock.Now()
	if err = product.Publish(now); err != nil {
		return err
	}
	if err = uow.Products().Update(ctx, product); err != nil {
		return errors.Wrapf(err, "update product %d", id)
	}
	if err = shared.AppendOutboxEvents(ctx, uow.Outbox(), product.DomainEvents(), now); err != nil {
		return err
	}
	product.ClearEvents()

	if err = uow.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit publish")
	}
	p.Logger.WithField("product_id", id).Info("product published")
	return nil
}
