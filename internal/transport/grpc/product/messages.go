package product

import "time"

// Wire messages of productlaunch.v1.ProductLaunchService. Money amounts are
// decimal strings such as "19.99".

type LaunchProductRequest struct {
	ProductID   int64     `json:"product_id,omitempty"`
	ProductName string    `json:"product_name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	BasePrice   string    `json:"base_price,omitempty"`
	UserID      int64     `json:"user_id"`
	LaunchDate  time.Time `json:"launch_date"`

	PricingStrategy       PricingStrategy         `json:"pricing_strategy"`
	InventoryDistribution []InventoryDistribution `json:"inventory_distribution,omitempty"`
	CompetingProductIDs   []int64                 `json:"competing_product_ids,omitempty"`
	MarketingCampaigns    []MarketingCampaign     `json:"marketing_campaigns,omitempty"`
	SupplierContracts     []SupplierContract      `json:"supplier_contracts,omitempty"`
	ProductVariants       []ProductVariant        `json:"product_variants,omitempty"`
	ReorderSettings       ReorderSettings         `json:"reorder_settings"`
}

type PricingStrategy struct {
	BasePrice         string             `json:"base_price"`
	Currency          string             `json:"currency,omitempty"`
	TieredPrices      []TieredPrice      `json:"tiered_prices,omitempty"`
	PromotionalPrices []PromotionalPrice `json:"promotional_prices,omitempty"`
}

type TieredPrice struct {
	Price       string `json:"price"`
	MinQuantity int    `json:"min_quantity"`
	MaxQuantity *int   `json:"max_quantity,omitempty"`
}

type PromotionalPrice struct {
	Price              string    `json:"price,omitempty"`
	DiscountPercentage *float64  `json:"discount_percentage,omitempty"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
}

type InventoryDistribution struct {
	WarehouseID     int `json:"warehouse_id"`
	InitialQuantity int `json:"initial_quantity"`
	MinimumStock    int `json:"minimum_stock"`
	MaximumStock    int `json:"maximum_stock"`
}

type MarketingCampaign struct {
	Name           string            `json:"name"`
	Type           string            `json:"type,omitempty"`
	Budget         string            `json:"budget,omitempty"`
	StartDate      time.Time         `json:"start_date"`
	EndDate        time.Time         `json:"end_date"`
	TargetAudience []string          `json:"target_audience,omitempty"`
	Channels       []CampaignChannel `json:"channels,omitempty"`
}

type CampaignChannel struct {
	Channel string `json:"channel"`
	Budget  string `json:"budget,omitempty"`
	Content string `json:"content,omitempty"`
}

type SupplierContract struct {
	SupplierID           int       `json:"supplier_id"`
	ContractType         string    `json:"contract_type,omitempty"`
	UnitCost             string    `json:"unit_cost,omitempty"`
	MinimumOrderQuantity int       `json:"minimum_order_quantity"`
	LeadTimeDays         int       `json:"lead_time_days"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	IsPreferred          bool      `json:"is_preferred"`
}

type ProductVariant struct {
	Name          string            `json:"name"`
	SKU           string            `json:"sku"`
	PriceModifier string            `json:"price_modifier,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

type ReorderSettings struct {
	EnableAutoReorder   bool `json:"enable_auto_reorder"`
	ReorderPoint        int  `json:"reorder_point"`
	ReorderQuantity     int  `json:"reorder_quantity"`
	MaxStock            int  `json:"max_stock"`
	CheckFrequencyHours int  `json:"check_frequency_hours"`
	PreferredSupplierID *int `json:"preferred_supplier_id,omitempty"`
}

// LaunchProductReply carries either a launch or an error message. A rejected
// launch is still a successful RPC.
type LaunchProductReply struct {
	Success      bool           `json:"success"`
	Launch       *ProductLaunch `json:"launch,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

type ProductLaunch struct {
	Product        Product    `json:"product"`
	CampaignIDs    []int      `json:"campaign_ids"`
	Campaigns      []Campaign `json:"campaigns"`
	LaunchDate     time.Time  `json:"launch_date"`
	EffectivePrice string     `json:"effective_price"`
}

type Campaign struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	ProductID int64     `json:"product_id"`
	Budget    string    `json:"budget,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	Price         string    `json:"price"`
	StockQuantity int64     `json:"stock_quantity"`
	Status        string    `json:"status"`
	IsAvailable   bool      `json:"is_available"`
	InStock       bool      `json:"in_stock"`
	UserID        int64     `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ProductSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Price    string `json:"price"`
	Status   string `json:"status"`
}

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Price       string `json:"price"`
	UserID      int64  `json:"user_id"`
}

type CreateProductReply struct {
	ProductID int64 `json:"product_id"`
}

// UpdateStockRequest adds Quantity units to the stock on hand. A negative
// quantity removes stock.
type UpdateStockRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type UpdateStockReply struct {
	StockQuantity int64 `json:"stock_quantity"`
}

type GetProductRequest struct {
	ProductID int64 `json:"product_id"`
}

type GetProductReply struct {
	Product Product `json:"product"`
}

type ListProductsRequest struct {
	Category  *string `json:"category,omitempty"`
	PageSize  int32   `json:"page_size,omitempty"`
	PageToken string  `json:"page_token,omitempty"`
}

type ListProductsReply struct {
	Products      []ProductSummary `json:"products"`
	NextPageToken string           `json:"next_page_token,omitempty"`
}
