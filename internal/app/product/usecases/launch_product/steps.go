package launch_product

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/murkotick/product-launch-service/internal/app/product/contracts"
	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/app/product/domain/services"
)

// AuditActionLaunched is the audit action recorded for every successful launch.
const AuditActionLaunched = "product.launched"

// Step is one stage of the launch workflow. A non-nil error aborts the launch.
type Step interface {
	Name() string
	Run(ctx context.Context, lc *LaunchContext) error
}

// DefaultSteps returns the launch steps in execution order.
func DefaultSteps(pricing *services.PricingCalculator) []Step {
	return []Step{
		PrepareProductStep{},
		PricingStep{Calculator: pricing},
		InventoryStep{},
		CompetitorStep{},
		CampaignStep{},
		SupplierStep{},
		VariantStep{},
		AuditStep{},
		ReorderStep{},
	}
}

// PrepareProductStep rejects duplicate names, then either updates the product
// being relaunched or creates a new draft owned by the requesting user.
type PrepareProductStep struct{}

func (PrepareProductStep) Name() string { return "prepare_product" }

func (PrepareProductStep) Run(ctx context.Context, lc *LaunchContext) error {
	req := lc.Request
	products := lc.UoW.Products()

	all, err := products.GetAll(ctx)
	if err != nil {
		return errors.Wrap(err, "list products")
	}
	name := strings.TrimSpace(req.ProductName)
	for _, p := range all {
		if p.Name() == name && p.ID() != req.ProductID {
			return errors.Wrapf(domain.ErrDuplicateProductName, "name %q taken by product %d", name, p.ID())
		}
	}

	if req.ProductID > 0 {
		p, err := products.GetByID(ctx, req.ProductID)
		if err != nil {
			return errors.Wrapf(err, "load product %d", req.ProductID)
		}
		if err := p.ReplaceDetails(req.ProductName, req.Description, req.Category, lc.Now); err != nil {
			return err
		}
		if err := products.Update(ctx, p); err != nil {
			return errors.Wrapf(err, "update product %d", p.ID())
		}
		lc.Product = p
		lc.Track(p)
		return nil
	}

	ok, err := lc.UoW.Users().Exists(ctx, req.UserID)
	if err != nil {
		return errors.Wrapf(err, "check user %d", req.UserID)
	}
	if !ok {
		return errors.Wrapf(domain.ErrUserNotFound, "user %d", req.UserID)
	}

	p, err := domain.NewProduct(req.ProductName, req.Description, req.Category, req.draftPrice(), req.UserID, lc.Now)
	if err != nil {
		return err
	}
	if p, err = products.Add(ctx, p); err != nil {
		return errors.Wrap(err, "add product")
	}
	lc.Product = p
	lc.Track(p)
	return nil
}

// PricingStep applies the strategy's base price and computes the effective
// launch price. Tiered and promotional prices are not persisted.
type PricingStep struct {
	Calculator *services.PricingCalculator
}

func (PricingStep) Name() string { return "pricing" }

func (s PricingStep) Run(ctx context.Context, lc *LaunchContext) error {
	products := lc.UoW.Products()
	p, err := products.GetByID(ctx, lc.Product.ID())
	if errors.Is(err, domain.ErrProductNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "load product %d", lc.Product.ID())
	}

	strategy := lc.Request.PricingStrategy
	if err := p.UpdatePrice(strategy.BasePrice, lc.Now); err != nil {
		return errors.Wrap(err, "strategy base price")
	}
	if err := products.Update(ctx, p); err != nil {
		return errors.Wrapf(err, "update product %d", p.ID())
	}
	lc.Product = p
	lc.Track(p)

	at := lc.Request.LaunchDate
	if at.IsZero() {
		at = lc.Now
	}
	lc.EffectivePrice = s.calculator().EffectivePrice(p.Price(), promotions(strategy.PromotionalPrices), at)
	return nil
}

func (s PricingStep) calculator() *services.PricingCalculator {
	if s.Calculator == nil {
		return services.NewPricingCalculator()
	}
	return s.Calculator
}

// promotions converts promotional prices into domain promotions, skipping malformed entries.
func promotions(prices []PromotionalPrice) []*domain.Promotion {
	out := make([]*domain.Promotion, 0, len(prices))
	for _, pp := range prices {
		var (
			promo *domain.Promotion
			err   error
		)
		if pp.DiscountPercentage != nil {
			promo, err = domain.NewPercentagePromotion(*pp.DiscountPercentage, pp.StartDate, pp.EndDate)
		} else {
			promo, err = domain.NewFixedPromotion(pp.Price, pp.StartDate, pp.EndDate)
		}
		if err != nil {
			continue
		}
		out = append(out, promo)
	}
	return out
}

// InventoryStep validates the warehouse distribution. Nothing is persisted.
type InventoryStep struct{}

func (InventoryStep) Name() string { return "inventory" }

func (InventoryStep) Run(_ context.Context, lc *LaunchContext) error {
	for i, d := range lc.Request.InventoryDistribution {
		if d.WarehouseID <= 0 {
			return errors.Wrapf(domain.ErrInvalidWarehouse, "distribution %d: warehouse %d", i, d.WarehouseID)
		}
		if d.MinimumStock < 0 || d.MinimumStock > d.MaximumStock {
			return errors.Wrapf(domain.ErrInvalidStockLevels, "distribution %d: min %d max %d", i, d.MinimumStock, d.MaximumStock)
		}
		if d.InitialQuantity < 0 || d.InitialQuantity > d.MaximumStock {
			return errors.Wrapf(domain.ErrInvalidStockLevels, "distribution %d: initial %d max %d", i, d.InitialQuantity, d.MaximumStock)
		}
	}
	lc.WarehouseCount = len(lc.Request.InventoryDistribution)
	return nil
}

// CompetitorStep refreshes updated_at on every competing product that exists.
type CompetitorStep struct{}

func (CompetitorStep) Name() string { return "competitors" }

func (CompetitorStep) Run(ctx context.Context, lc *LaunchContext) error {
	products := lc.UoW.Products()
	for _, id := range lc.Request.CompetingProductIDs {
		p, err := products.GetByID(ctx, id)
		if errors.Is(err, domain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "load competitor %d", id)
		}
		p.Touch(lc.Now)
		if err := products.Update(ctx, p); err != nil {
			return errors.Wrapf(err, "update competitor %d", id)
		}
		if id == lc.Product.ID() {
			lc.Product = p
		}
	}
	return nil
}

// CampaignStep accepts the marketing campaigns and numbers them 1..N.
type CampaignStep struct{}

func (CampaignStep) Name() string { return "campaigns" }

func (CampaignStep) Run(_ context.Context, lc *LaunchContext) error {
	campaigns := make([]CampaignResult, 0, len(lc.Request.MarketingCampaigns))
	channels := 0
	for i, c := range lc.Request.MarketingCampaigns {
		channels += len(c.Channels)
		campaigns = append(campaigns, CampaignResult{
			ID:        i + 1,
			Name:      c.Name,
			ProductID: lc.Product.ID(),
			Budget:    c.Budget,
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
		})
	}
	lc.Campaigns = campaigns
	lc.ChannelCount = channels
	return nil
}

// SupplierStep validates supplier contracts.
type SupplierStep struct{}

func (SupplierStep) Name() string { return "suppliers" }

func (SupplierStep) Run(_ context.Context, lc *LaunchContext) error {
	var preferred []int
	for i, c := range lc.Request.SupplierContracts {
		if c.SupplierID <= 0 {
			return errors.Wrapf(domain.ErrInvalidSupplier, "contract %d: supplier %d", i, c.SupplierID)
		}
		if c.EndDate.Before(c.StartDate) {
			return errors.Wrapf(domain.ErrInvalidLaunchConfig, "contract %d: ends before it starts", i)
		}
		if c.IsPreferred {
			preferred = append(preferred, c.SupplierID)
		}
	}
	lc.SupplierCount = len(lc.Request.SupplierContracts)
	lc.PreferredSupplierIDs = preferred
	return nil
}

// VariantStep counts the requested variants. Variants are not persisted.
type VariantStep struct{}

func (VariantStep) Name() string { return "variants" }

func (VariantStep) Run(_ context.Context, lc *LaunchContext) error {
	for range lc.Request.ProductVariants {
		lc.VariantCount++
	}
	return nil
}

// AuditStep writes one launch audit entry in the launch transaction.
type AuditStep struct{}

func (AuditStep) Name() string { return "audit" }

type auditDetails struct {
	ProductName string `json:"product_name"`
	CampaignIDs []int  `json:"campaign_ids"`
	LaunchDate  string `json:"launch_date"`
}

func (AuditStep) Run(ctx context.Context, lc *LaunchContext) error {
	details, err := json.Marshal(auditDetails{
		ProductName: lc.Product.Name(),
		CampaignIDs: lc.CampaignIDs(),
		LaunchDate:  lc.Request.LaunchDate.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return errors.Wrap(err, "marshal audit details")
	}
	entry := &contracts.AuditEntry{
		EntryID:     uuid.NewString(),
		ProductID:   lc.Product.ID(),
		Action:      AuditActionLaunched,
		ActorID:     lc.Actor.ID,
		ActorEmail:  lc.Actor.Email,
		DetailsJSON: string(details),
		CreatedAt:   lc.Now,
	}
	return errors.Wrap(lc.UoW.Audit().Append(ctx, entry), "append audit entry")
}

// ReorderStep validates reorder settings.
type ReorderStep struct{}

func (ReorderStep) Name() string { return "reorder" }

func (ReorderStep) Run(_ context.Context, lc *LaunchContext) error {
	settings := lc.Request.ReorderSettings
	if id := settings.PreferredSupplierID; id != nil && *id <= 0 {
		return errors.Wrapf(domain.ErrInvalidSupplier, "preferred supplier %d", *id)
	}
	if settings.ReorderPoint < 0 || settings.ReorderQuantity < 0 {
		return errors.Wrap(domain.ErrInvalidLaunchConfig, "negative reorder point or quantity")
	}
	if settings.MaxStock < 0 || settings.CheckFrequencyHours < 0 {
		return errors.Wrap(domain.ErrInvalidLaunchConfig, "negative max stock or check frequency")
	}
	lc.AutoReorder = settings.EnableAutoReorder
	return nil
}
