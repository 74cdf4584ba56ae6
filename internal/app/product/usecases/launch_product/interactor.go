package launch_product

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/murkotick/product-launch-service/internal/app/product/contracts"
	"github.com/murkotick/product-launch-service/internal/app/product/domain/services"
	"github.com/murkotick/product-launch-service/internal/app/product/dto"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/shared"
	"github.com/murkotick/product-launch-service/internal/pkg/clock"
)

var errNoProduct = errors.New("launch_product: no step prepared a product")

// Interactor runs the product launch workflow: every step in one transaction,
// then the post-commit actions.
type Interactor struct {
	UnitOfWork contracts.UnitOfWorkFactory
	Clock      clock.Clock
	Logger     logrus.FieldLogger

	steps      []Step
	postCommit []PostCommitAction
	runner     *postCommitRunner
}

type Option func(*Interactor)

// WithSteps replaces the default step pipeline.
func WithSteps(steps ...Step) Option {
	return func(it *Interactor) { it.steps = steps }
}

// WithPostCommitActions sets the actions run after a successful commit.
func WithPostCommitActions(actions ...PostCommitAction) Option {
	return func(it *Interactor) { it.postCommit = actions }
}

func WithPostCommitTimeout(d time.Duration) Option {
	return func(it *Interactor) { it.runner.timeout = d }
}

func NewInteractor(uow contracts.UnitOfWorkFactory, clk clock.Clock, logger logrus.FieldLogger, opts ...Option) *Interactor {
	it := &Interactor{
		UnitOfWork: uow,
		Clock:      clk,
		Logger:     logger,
		steps:      DefaultSteps(services.NewPricingCalculator()),
		runner:     &postCommitRunner{timeout: DefaultPostCommitTimeout, log: logger},
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Execute launches the product described by req on behalf of actor.
// Business and infrastructure failures are reported in the Result; a nil
// request or actor is a programming error and panics.
func (it *Interactor) Execute(ctx context.Context, req *Request, actor *dto.UserSummary) Result {
	if req == nil {
		panic("launch_product: nil request")
	}
	if actor == nil {
		panic("launch_product: nil acting user")
	}

	log := it.Logger.WithFields(logrus.Fields{
		"product_id":   req.ProductID,
		"product_name": req.ProductName,
		"actor_id":     actor.ID,
	})

	uow := it.UnitOfWork.New()
	if err := uow.Begin(ctx); err != nil {
		return it.abort(ctx, uow, log, "begin", err)
	}

	lc := newLaunchContext(req, actor, uow, it.Clock.Now())
	for _, step := range it.steps {
		if err := runStep(ctx, step, lc); err != nil {
			return it.abort(ctx, uow, log, step.Name(), err)
		}
	}

	if lc.Product == nil {
		return it.abort(ctx, uow, log, "outbox", errNoProduct)
	}
	if err := recordEvents(ctx, lc); err != nil {
		return it.abort(ctx, uow, log, "outbox", err)
	}
	if err := uow.Save(ctx); err != nil {
		return it.abort(ctx, uow, log, "save", err)
	}
	if err := uow.Commit(ctx); err != nil {
		return it.abort(ctx, uow, log, "commit", err)
	}

	launch := lc.launch()
	log.WithFields(logrus.Fields{
		"product_id":   launch.Product.ProductID,
		"campaign_ids": launch.CampaignIDs,
	}).Info("product launched")

	it.runner.schedule(ctx, it.postCommit, Launched{
		Product:    launch.Product,
		Campaigns:  launch.Campaigns,
		LaunchDate: launch.LaunchDate,
		LaunchedBy: *actor,
	})
	return success(launch)
}

// Drain blocks until every scheduled post-commit action has finished.
func (it *Interactor) Drain() {
	it.runner.wait()
}

func runStep(ctx context.Context, step Step, lc *LaunchContext) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = errors.WithStack(&stepPanic{step: step.Name(), value: v})
		}
	}()
	return step.Run(ctx, lc)
}

// recordEvents writes the events of every touched aggregate plus the launch
// event into the outbox of the open transaction.
func recordEvents(ctx context.Context, lc *LaunchContext) error {
	events := append(lc.pendingEvents(), lc.launchedEvent())
	if err := shared.AppendOutboxEvents(ctx, lc.UoW.Outbox(), events, lc.Now); err != nil {
		return errors.Wrap(err, "append outbox events")
	}
	lc.clearEvents()
	return nil
}

func (it *Interactor) abort(ctx context.Context, uow contracts.UnitOfWork, log logrus.FieldLogger, stage string, err error) Result {
	if rbErr := uow.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
		log.WithError(rbErr).Error("rollback failed")
	}

	kind := Classify(err)
	entry := log.WithError(err).WithFields(logrus.Fields{
		"stage":        stage,
		"failure_kind": kind,
	})
	if kind == FailureDuplicate {
		entry.Warn("product launch rejected")
	} else {
		entry.Error("product launch failed")
	}
	return failure(kind.message())
}
