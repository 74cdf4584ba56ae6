package launch_product

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/murkotick/product-launch-service/internal/app/product/dto"
)

// DefaultPostCommitTimeout bounds each post-commit action.
const DefaultPostCommitTimeout = 30 * time.Second

// Launched is what post-commit actions learn about a committed launch.
type Launched struct {
	Product    dto.ProductDTO
	Campaigns  []CampaignResult
	LaunchDate time.Time
	LaunchedBy dto.UserSummary
}

// PostCommitAction runs after the launch transaction committed.
// Its failure is logged and never changes the launch result.
type PostCommitAction interface {
	Name() string
	Run(ctx context.Context, launched Launched) error
}

type postCommitRunner struct {
	group   errgroup.Group
	timeout time.Duration
	log     logrus.FieldLogger
}

// schedule starts every action in the background on a context detached from
// the caller's cancellation.
func (r *postCommitRunner) schedule(ctx context.Context, actions []PostCommitAction, launched Launched) {
	if len(actions) == 0 {
		return
	}
	base := context.WithoutCancel(ctx)
	for _, action := range actions {
		action := action
		r.group.Go(func() error {
			r.run(base, action, launched)
			return nil
		})
	}
}

func (r *postCommitRunner) run(base context.Context, action PostCommitAction, launched Launched) {
	log := r.log.WithFields(logrus.Fields{
		"action":     action.Name(),
		"product_id": launched.Product.ProductID,
	})
	defer func() {
		if v := recover(); v != nil {
			log.WithField("panic", v).Error("post-commit action panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(base, r.timeout)
	defer cancel()

	if err := action.Run(ctx, launched); err != nil {
		log.WithError(err).Warn("post-commit action failed")
		return
	}
	log.Debug("post-commit action completed")
}

func (r *postCommitRunner) wait() {
	_ = r.group.Wait()
}
