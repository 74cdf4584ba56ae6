package dto

import (
	"time"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
)

// ProductDTO contains full product fields returned by read queries and by the
// launch workflow.
type ProductDTO struct {
	ProductID     int64
	Name          string
	Description   *string
	Category      string
	PriceNum      int64
	PriceDen      int64
	StockQuantity int64
	Status        string
	IsAvailable   bool
	IsInStock     bool
	UserID        int64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Price is the decimal string of PriceNum/PriceDen, two decimals.
	Price string
}

// ProductSummaryDTO is a compact DTO for list queries.
type ProductSummaryDTO struct {
	ProductID int64
	Name      string
	Category  string
	Price     string
	PriceNum  int64
	PriceDen  int64
	Status    string
}

// UserSummary identifies the acting user of a command.
type UserSummary struct {
	ID       int64
	Email    string
	FullName string
	Role     string
}

// FromProduct snapshots an aggregate into a ProductDTO.
func FromProduct(p *domain.Product) ProductDTO {
	out := ProductDTO{
		ProductID:     p.ID(),
		Name:          p.Name(),
		Category:      p.Category(),
		PriceNum:      p.Price().Numerator(),
		PriceDen:      p.Price().Denominator(),
		Price:         p.Price().String(),
		StockQuantity: p.StockQuantity(),
		Status:        string(p.Status()),
		IsAvailable:   p.IsAvailable(),
		IsInStock:     p.IsInStock(),
		UserID:        p.UserID(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
	if d := p.Description(); d != "" {
		out.Description = &d
	}
	return out
}
