package domain

import "time"

// DomainEvent is a marker interface for all domain events.
// Domain events represent facts about things that have happened in the domain.
type DomainEvent interface {
	EventType() string
	AggregateID() int64
	OccurredAt() time.Time
}

// ProductCreatedEvent is raised when a new product receives its identity.
type ProductCreatedEvent struct {
	ProductID int64
	Name      string
	Category  string
	Price     *Money
	UserID    int64
	CreatedAt time.Time
}

func (e *ProductCreatedEvent) EventType() string     { return "product.created" }
func (e *ProductCreatedEvent) AggregateID() int64    { return e.ProductID }
func (e *ProductCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// ProductUpdatedEvent is raised when product details are updated.
type ProductUpdatedEvent struct {
	ProductID int64
	UpdatedAt time.Time
	Changes   map[string]interface{} // Map of field name to new value
}

func (e *ProductUpdatedEvent) EventType() string     { return "product.updated" }
func (e *ProductUpdatedEvent) AggregateID() int64    { return e.ProductID }
func (e *ProductUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// PriceChangedEvent is raised when the price of a product changes.
type PriceChangedEvent struct {
	ProductID int64
	OldPrice  *Money
	NewPrice  *Money
	ChangedAt time.Time
}

func (e *PriceChangedEvent) EventType() string     { return "price.changed" }
func (e *PriceChangedEvent) AggregateID() int64    { return e.ProductID }
func (e *PriceChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

// ProductPublishedEvent is raised when a draft product goes on sale.
type ProductPublishedEvent struct {
	ProductID   int64
	PublishedAt time.Time
}

func (e *ProductPublishedEvent) EventType() string     { return "product.published" }
func (e *ProductPublishedEvent) AggregateID() int64    { return e.ProductID }
func (e *ProductPublishedEvent) OccurredAt() time.Time { return e.PublishedAt }

// ProductLaunchedEvent is raised by the launch workflow once every launch step succeeded.
// It is written to the outbox in the same transaction as the product changes.
type ProductLaunchedEvent struct {
	ProductID            int64
	LaunchDate           time.Time
	Currency             string
	CampaignIDs          []int
	CompetingProductIDs  []int64
	WarehouseCount       int
	ChannelCount         int
	SupplierCount        int
	PreferredSupplierIDs []int
	VariantCount         int
	TieredPriceCount     int
	PromotionCount       int
	AutoReorder          bool
	ReorderMaxStock      int
	ReorderCheckHours    int
	LaunchedBy           int64
	LaunchedAt           time.Time
}

func (e *ProductLaunchedEvent) EventType() string     { return "product.launched" }
func (e *ProductLaunchedEvent) AggregateID() int64    { return e.ProductID }
func (e *ProductLaunchedEvent) OccurredAt() time.Time { return e.LaunchedAt }
