package domain

import (
	"strings"
	"time"
)

// Field constants for change tracking
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldPrice       = "price"
	FieldStock       = "stock_quantity"
	FieldStatus      = "status"
	FieldAvailable   = "is_available"
	FieldUpdatedAt   = "updated_at"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 1000
	maxCategoryLength    = 100
)

// ProductStatus represents the lifecycle state of a product.
type ProductStatus string

const (
	// ProductStatusDraft indicates a product that is not visible to customers yet.
	ProductStatusDraft ProductStatus = "draft"

	// ProductStatusActive indicates a product that is available for purchase.
	ProductStatusActive ProductStatus = "active"

	// ProductStatusInactive indicates a product that is temporarily unavailable.
	ProductStatusInactive ProductStatus = "inactive"

	// ProductStatusDiscontinued indicates a product that is no longer sold.
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product is the aggregate root for the catalog. Identity is an int64 assigned
// by the store on insert; zero means "not persisted yet".
type Product struct {
	id            int64
	name          string
	description   string
	category      string
	price         *Money
	stockQuantity int64
	status        ProductStatus
	isAvailable   bool
	userID        int64
	createdAt     time.Time
	updatedAt     time.Time
	changes       *ChangeTracker
	events        []DomainEvent
}

// NewProduct creates a draft product owned by userID. The id is assigned later
// through AssignID, which also records the creation event.
func NewProduct(name, description, category string, price *Money, userID int64, now time.Time) (*Product, error) {
	if err := validateDetails(name, description, category); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	return &Product{
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		category:    strings.TrimSpace(category),
		price:       price,
		status:      ProductStatusDraft,
		isAvailable: true,
		userID:      userID,
		createdAt:   now,
		updatedAt:   now,
		changes:     NewChangeTracker(),
		events:      make([]DomainEvent, 0),
	}, nil
}

// ReconstructProduct reconstructs a Product from persisted state.
// Used by repositories when loading from the database.
func ReconstructProduct(
	id int64,
	name, description, category string,
	price *Money,
	stockQuantity int64,
	status ProductStatus,
	isAvailable bool,
	userID int64,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:            id,
		name:          name,
		description:   description,
		category:      category,
		price:         price,
		stockQuantity: stockQuantity,
		status:        status,
		isAvailable:   isAvailable,
		userID:        userID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		changes:       NewChangeTracker(),
		events:        make([]DomainEvent, 0),
	}
}

// Getters

func (p *Product) ID() int64 {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Description() string {
	return p.description
}

func (p *Product) Category() string {
	return p.category
}

func (p *Product) Price() *Money {
	return p.price
}

func (p *Product) StockQuantity() int64 {
	return p.stockQuantity
}

func (p *Product) Status() ProductStatus {
	return p.status
}

func (p *Product) IsAvailable() bool {
	return p.isAvailable
}

func (p *Product) UserID() int64 {
	return p.userID
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Product) Changes() *ChangeTracker {
	return p.changes
}

func (p *Product) DomainEvents() []DomainEvent {
	return p.events
}

// Business Methods

// AssignID sets the store-generated identity of a new product and records the
// creation event. It is a no-op for products that already have an id.
func (p *Product) AssignID(id int64) {
	if p.id != 0 {
		return
	}
	p.id = id
	p.events = append(p.events, &ProductCreatedEvent{
		ProductID: id,
		Name:      p.name,
		Category:  p.category,
		Price:     p.price,
		UserID:    p.userID,
		CreatedAt: p.createdAt,
	})
}

// ReplaceDetails overwrites name, description and category. Unlike a partial
// update, empty description and category values clear the stored ones.
func (p *Product) ReplaceDetails(name, description, category string, now time.Time) error {
	if err := validateDetails(name, description, category); err != nil {
		return err
	}

	changes := make(map[string]interface{})
	if n := strings.TrimSpace(name); n != p.name {
		p.name = n
		p.changes.MarkDirty(FieldName)
		changes[FieldName] = n
	}
	if d := strings.TrimSpace(description); d != p.description {
		p.description = d
		p.changes.MarkDirty(FieldDescription)
		changes[FieldDescription] = d
	}
	if c := strings.TrimSpace(category); c != p.category {
		p.category = c
		p.changes.MarkDirty(FieldCategory)
		changes[FieldCategory] = c
	}

	if len(changes) > 0 {
		p.touch(now)
		p.events = append(p.events, &ProductUpdatedEvent{
			ProductID: p.id,
			UpdatedAt: now,
			Changes:   changes,
		})
	}
	return nil
}

// UpdatePrice sets the price and stamps the product as updated, even when the
// amount does not change.
func (p *Product) UpdatePrice(newPrice *Money, now time.Time) error {
	if err := validatePrice(newPrice); err != nil {
		return err
	}

	if !newPrice.Equals(p.price) {
		old := p.price
		p.price = newPrice
		p.changes.MarkDirty(FieldPrice)
		p.events = append(p.events, &PriceChangedEvent{
			ProductID: p.id,
			OldPrice:  old,
			NewPrice:  newPrice,
			ChangedAt: now,
		})
	}
	p.touch(now)
	return nil
}

// Touch stamps the product as updated without changing any other field.
func (p *Product) Touch(now time.Time) {
	p.touch(now)
}

// UpdateStock adds quantity (which may be negative) to the stock on hand.
func (p *Product) UpdateStock(quantity int64, now time.Time) error {
	if p.status == ProductStatusDiscontinued {
		return ErrProductDiscontinued
	}
	if p.stockQuantity+quantity < 0 {
		return ErrInsufficientStock
	}
	if quantity == 0 {
		return nil
	}
	p.stockQuantity += quantity
	p.changes.MarkDirty(FieldStock)
	p.touch(now)

	p.events = append(p.events, &ProductUpdatedEvent{
		ProductID: p.id,
		UpdatedAt: now,
		Changes:   map[string]interface{}{FieldStock: p.stockQuantity},
	})
	return nil
}

// Publish moves a draft product to active and makes it available.
func (p *Product) Publish(now time.Time) error {
	if p.status != ProductStatusDraft {
		return ErrProductNotDraft
	}
	p.status = ProductStatusActive
	p.isAvailable = true
	p.changes.MarkDirty(FieldStatus, FieldAvailable)
	p.touch(now)

	p.events = append(p.events, &ProductPublishedEvent{
		ProductID:   p.id,
		PublishedAt: now,
	})
	return nil
}

func (p *Product) IsPublished() bool {
	return p.status == ProductStatusActive
}

func (p *Product) IsInStock() bool {
	return p.stockQuantity > 0 && p.status == ProductStatusActive
}

// ClearEvents clears the accumulated domain events.
// Should be called after events have been written to the outbox.
func (p *Product) ClearEvents() {
	p.events = make([]DomainEvent, 0)
}

// Clone returns a deep copy that shares no mutable state with p.
// Stores hand out clones so callers cannot mutate committed state.
func (p *Product) Clone() *Product {
	c := *p
	c.changes = NewChangeTracker()
	for f := range p.changes.dirty {
		c.changes.MarkDirty(f)
	}
	c.events = append(make([]DomainEvent, 0, len(p.events)), p.events...)
	return &c
}

func (p *Product) touch(now time.Time) {
	p.updatedAt = now
	p.changes.MarkDirty(FieldUpdatedAt)
}

// Validation helpers

func validateDetails(name, description, category string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyProductName
	}
	if len(trimmed) > maxNameLength {
		return ErrProductNameTooLong
	}
	if len(strings.TrimSpace(description)) > maxDescriptionLength {
		return ErrProductDescriptionTooLong
	}
	if len(strings.TrimSpace(category)) > maxCategoryLength {
		return ErrProductCategoryTooLong
	}
	return nil
}

func validatePrice(price *Money) error {
	if price == nil || !price.IsPositive() {
		return ErrInvalidPrice
	}
	return nil
}
