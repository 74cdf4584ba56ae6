package launch_product

import (
	"time"

	"github.com/murkotick/product-launch-service/internal/app/product/contracts"
	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/app/product/dto"
)

// LaunchContext is the state shared by the steps of one launch.
// Steps read the request and write their outputs here; nothing outlives the invocation.
type LaunchContext struct {
	Request *Request
	Actor   *dto.UserSummary
	UoW     contracts.UnitOfWork
	Now     time.Time

	// Product is the current snapshot of the launched product.
	Product *domain.Product

	Campaigns      []CampaignResult
	EffectivePrice *domain.Money

	WarehouseCount       int
	ChannelCount         int
	SupplierCount        int
	PreferredSupplierIDs []int
	VariantCount         int
	AutoReorder          bool

	touched []*domain.Product
}

func newLaunchContext(req *Request, actor *dto.UserSummary, uow contracts.UnitOfWork, now time.Time) *LaunchContext {
	return &LaunchContext{
		Request: req,
		Actor:   actor,
		UoW:     uow,
		Now:     now,
	}
}

// Track registers an aggregate whose domain events must reach the outbox.
func (lc *LaunchContext) Track(p *domain.Product) {
	lc.touched = append(lc.touched, p)
}

// CampaignIDs returns the synthesized campaign ids in input order.
func (lc *LaunchContext) CampaignIDs() []int {
	ids := make([]int, 0, len(lc.Campaigns))
	for _, c := range lc.Campaigns {
		ids = append(ids, c.ID)
	}
	return ids
}

func (lc *LaunchContext) pendingEvents() []domain.DomainEvent {
	var events []domain.DomainEvent
	for _, p := range lc.touched {
		events = append(events, p.DomainEvents()...)
	}
	return events
}

func (lc *LaunchContext) clearEvents() {
	for _, p := range lc.touched {
		p.ClearEvents()
	}
}

func (lc *LaunchContext) launchedEvent() *domain.ProductLaunchedEvent {
	req := lc.Request
	return &domain.ProductLaunchedEvent{
		ProductID:            lc.Product.ID(),
		LaunchDate:           req.LaunchDate,
		Currency:             req.PricingStrategy.currency(),
		CampaignIDs:          lc.CampaignIDs(),
		CompetingProductIDs:  req.CompetingProductIDs,
		WarehouseCount:       lc.WarehouseCount,
		ChannelCount:         lc.ChannelCount,
		SupplierCount:        lc.SupplierCount,
		PreferredSupplierIDs: lc.PreferredSupplierIDs,
		VariantCount:         lc.VariantCount,
		TieredPriceCount:     len(req.PricingStrategy.TieredPrices),
		PromotionCount:       len(req.PricingStrategy.PromotionalPrices),
		AutoReorder:          lc.AutoReorder,
		ReorderMaxStock:      req.ReorderSettings.MaxStock,
		ReorderCheckHours:    req.ReorderSettings.CheckFrequencyHours,
		LaunchedBy:           lc.Actor.ID,
		LaunchedAt:           lc.Now,
	}
}

func (lc *LaunchContext) launch() *ProductLaunch {
	effective := lc.EffectivePrice
	if effective == nil {
		effective = lc.Product.Price()
	}
	return &ProductLaunch{
		Product:        dto.FromProduct(lc.Product),
		CampaignIDs:    lc.CampaignIDs(),
		Campaigns:      lc.Campaigns,
		LaunchDate:     lc.Request.LaunchDate,
		EffectivePrice: effective.String(),
	}
}
