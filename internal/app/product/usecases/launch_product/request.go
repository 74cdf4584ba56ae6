package launch_product

import (
	"time"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
)

// DefaultCurrency is used when a pricing strategy leaves the currency empty.
const DefaultCurrency = "EUR"

// Request describes everything needed to launch one product.
// ProductID 0 means "create a new product"; a positive id relaunches an existing one.
type Request struct {
	ProductID   int64
	ProductName string
	Description string
	Category    string
	BasePrice   *domain.Money
	UserID      int64
	LaunchDate  time.Time

	PricingStrategy       PricingStrategy
	InventoryDistribution []InventoryDistribution
	CompetingProductIDs   []int64
	MarketingCampaigns    []MarketingCampaign
	SupplierContracts     []SupplierContract
	ProductVariants       []ProductVariant
	ReorderSettings       ReorderSettings
}

type PricingStrategy struct {
	BasePrice         *domain.Money
	Currency          string
	TieredPrices      []TieredPrice
	PromotionalPrices []PromotionalPrice
}

// draftPrice is the price a newly created product starts with. The pricing
// step overwrites it, so a missing or non-positive base price falls back to
// the strategy's base price.
func (r *Request) draftPrice() *domain.Money {
	if r.BasePrice != nil && r.BasePrice.IsPositive() {
		return r.BasePrice
	}
	return r.PricingStrategy.BasePrice
}

func (ps PricingStrategy) currency() string {
	if ps.Currency == "" {
		return DefaultCurrency
	}
	return ps.Currency
}

type TieredPrice struct {
	Price       *domain.Money
	MinQuantity int
	MaxQuantity *int
}

// PromotionalPrice is either a fixed price or, when DiscountPercentage is set,
// a percentage off the base price (0-100).
type PromotionalPrice struct {
	Price              *domain.Money
	DiscountPercentage *float64
	StartDate          time.Time
	EndDate            time.Time
}

type InventoryDistribution struct {
	WarehouseID     int
	InitialQuantity int
	MinimumStock    int
	MaximumStock    int
}

type MarketingCampaign struct {
	Name           string
	Type           string
	Budget         *domain.Money
	StartDate      time.Time
	EndDate        time.Time
	TargetAudience string
	Channels       []CampaignChannel
}

// CampaignChannel allocates part of a campaign to one channel. Channel budgets
// need not add up to the campaign budget.
type CampaignChannel struct {
	Channel string
	Budget  *domain.Money
	Content string
}

type SupplierContract struct {
	SupplierID           int
	ContractType         string
	UnitCost             *domain.Money
	MinimumOrderQuantity int
	LeadTimeDays         int
	StartDate            time.Time
	EndDate              time.Time
	IsPreferred          bool
}

type ProductVariant struct {
	Name          string
	SKU           string
	PriceModifier *domain.Money
	Attributes    map[string]string
}

type ReorderSettings struct {
	EnableAutoReorder   bool
	ReorderPoint        int
	ReorderQuantity     int
	MaxStock            int
	CheckFrequencyHours int
	PreferredSupplierID *int
}
