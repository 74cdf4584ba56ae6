package product

import (
	"github.com/pkg/errors"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/app/product/dto"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/launch_product"
)

// parseMoney parses a decimal amount. An empty string yields nil.
func parseMoney(field, s string) (*domain.Money, error) {
	if s == "" {
		return nil, nil
	}
	m, err := domain.NewMoneyFromDecimal(s)
	if err != nil {
		return nil, errors.Errorf("invalid %s: %q", field, s)
	}
	return m, nil
}

// moneyParser accumulates the first parse error so mapping code stays linear.
type moneyParser struct {
	err error
}

func (p *moneyParser) parse(field, s string) *domain.Money {
	if p.err != nil {
		return nil
	}
	m, err := parseMoney(field, s)
	if err != nil {
		p.err = err
	}
	return m
}

func mapLaunchProductRequest(req *LaunchProductRequest) (*launch_product.Request, error) {
	var mp moneyParser

	out := &launch_product.Request{
		ProductID:           req.ProductID,
		ProductName:         req.ProductName,
		Description:         req.Description,
		Category:            req.Category,
		BasePrice:           mp.parse("base_price", req.BasePrice),
		UserID:              req.UserID,
		LaunchDate:          req.LaunchDate.UTC(),
		CompetingProductIDs: req.CompetingProductIDs,
		PricingStrategy: launch_product.PricingStrategy{
			BasePrice: mp.parse("pricing_strategy.base_price", req.PricingStrategy.BasePrice),
			Currency:  req.PricingStrategy.Currency,
		},
		ReorderSettings: launch_product.ReorderSettings{
			EnableAutoReorder:   req.ReorderSettings.EnableAutoReorder,
			ReorderPoint:        req.ReorderSettings.ReorderPoint,
			ReorderQuantity:     req.ReorderSettings.ReorderQuantity,
			MaxStock:            req.ReorderSettings.MaxStock,
			CheckFrequencyHours: req.ReorderSettings.CheckFrequencyHours,
			PreferredSupplierID: req.ReorderSettings.PreferredSupplierID,
		},
	}

	for _, tp := range req.PricingStrategy.TieredPrices {
		out.PricingStrategy.TieredPrices = append(out.PricingStrategy.TieredPrices, launch_product.TieredPrice{
			Price:       mp.parse("tiered_prices.price", tp.Price),
			MinQuantity: tp.MinQuantity,
			MaxQuantity: tp.MaxQuantity,
		})
	}
	for _, pp := range req.PricingStrategy.PromotionalPrices {
		out.PricingStrategy.PromotionalPrices = append(out.PricingStrategy.PromotionalPrices, launch_product.PromotionalPrice{
			Price:              mp.parse("promotional_prices.price", pp.Price),
			DiscountPercentage: pp.DiscountPercentage,
			StartDate:          pp.StartDate.UTC(),
			EndDate:            pp.EndDate.UTC(),
		})
	}
	for _, d := range req.InventoryDistribution {
		out.InventoryDistribution = append(out.InventoryDistribution, launch_product.InventoryDistribution(d))
	}
	for _, c := range req.MarketingCampaigns {
		campaign := launch_product.MarketingCampaign{
			Name:           c.Name,
			Type:           c.Type,
			Budget:         mp.parse("marketing_campaigns.budget", c.Budget),
			StartDate:      c.StartDate.UTC(),
			EndDate:        c.EndDate.UTC(),
			TargetAudience: c.TargetAudience,
		}
		for _, ch := range c.Channels {
			campaign.Channels = append(campaign.Channels, launch_product.CampaignChannel{
				Channel: ch.Channel,
				Budget:  mp.parse("channels.budget", ch.Budget),
				Content: ch.Content,
			})
		}
		out.MarketingCampaigns = append(out.MarketingCampaigns, campaign)
	}
	for _, sc := range req.SupplierContracts {
		out.SupplierContracts = append(out.SupplierContracts, launch_product.SupplierContract{
			SupplierID:           sc.SupplierID,
			ContractType:         sc.ContractType,
			UnitCost:             mp.parse("supplier_contracts.unit_cost", sc.UnitCost),
			MinimumOrderQuantity: sc.MinimumOrderQuantity,
			LeadTimeDays:         sc.LeadTimeDays,
			StartDate:            sc.StartDate.UTC(),
			EndDate:              sc.EndDate.UTC(),
			IsPreferred:          sc.IsPreferred,
		})
	}
	for _, v := range req.ProductVariants {
		out.ProductVariants = append(out.ProductVariants, launch_product.ProductVariant{
			Name:          v.Name,
			SKU:           v.SKU,
			PriceModifier: mp.parse("product_variants.price_modifier", v.PriceModifier),
			Attributes:    v.Attributes,
		})
	}

	if mp.err != nil {
		return nil, mp.err
	}
	return out, nil
}

func mapLaunchResult(res launch_product.Result) *LaunchProductReply {
	out := &LaunchProductReply{
		Success:      res.Success,
		ErrorMessage: res.ErrorMessage,
	}
	if res.Launch == nil {
		return out
	}

	l := res.Launch
	campaigns := make([]Campaign, 0, len(l.Campaigns))
	for _, c := range l.Campaigns {
		wire := Campaign{
			ID:        c.ID,
			Name:      c.Name,
			ProductID: c.ProductID,
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
		}
		if c.Budget != nil {
			wire.Budget = c.Budget.String()
		}
		campaigns = append(campaigns, wire)
	}
	out.Launch = &ProductLaunch{
		Product:        mapProductDTO(&l.Product),
		CampaignIDs:    l.CampaignIDs,
		Campaigns:      campaigns,
		LaunchDate:     l.LaunchDate,
		EffectivePrice: l.EffectivePrice,
	}
	return out
}

func mapCreateProductRequest(req *CreateProductRequest) (create_product.Request, error) {
	price, err := parseMoney("price", req.Price)
	if err != nil {
		return create_product.Request{}, err
	}
	return create_product.Request{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PriceNum:    price.Numerator(),
		PriceDen:    price.Denominator(),
		UserID:      req.UserID,
	}, nil
}

func mapProductDTO(in *dto.ProductDTO) Product {
	out := Product{
		ID:            in.ProductID,
		Name:          in.Name,
		Category:      in.Category,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		Status:        in.Status,
		IsAvailable:   in.IsAvailable,
		InStock:       in.IsInStock,
		UserID:        in.UserID,
		CreatedAt:     in.CreatedAt,
		UpdatedAt:     in.UpdatedAt,
	}
	if in.Description != nil {
		out.Description = *in.Description
	}
	return out
}

func mapProductSummaries(items []*dto.ProductSummaryDTO) []ProductSummary {
	out := make([]ProductSummary, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		out = append(out, ProductSummary{
			ID:       it.ProductID,
			Name:     it.Name,
			Category: it.Category,
			Price:    it.Price,
			Status:   it.Status,
		})
	}
	return out
}
