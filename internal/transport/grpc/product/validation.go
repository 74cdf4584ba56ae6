package product

import (
	"github.com/pkg/errors"
)

func validateLaunchProduct(req *LaunchProductRequest) error {
	if req == nil {
		return errors.New("request is required")
	}
	if req.ProductID < 0 {
		return errors.New("product_id must not be negative")
	}
	if req.ProductName == "" {
		return errors.New("product_name is required")
	}
	if req.PricingStrategy.BasePrice == "" {
		return errors.New("pricing_strategy.base_price is required")
	}
	return nil
}

func validateUpdateStock(req *UpdateStockRequest) error {
	if req == nil {
		return errors.New("request is required")
	}
	if req.ProductID <= 0 {
		return errors.New("product_id is required")
	}
	return nil
}

func validateCreateProduct(req *CreateProductRequest) error {
	if req == nil {
		return errors.New("request is required")
	}
	if req.Name == "" {
		return errors.New("name is required")
	}
	if req.Price == "" {
		return errors.New("price is required")
	}
	if req.UserID <= 0 {
		return errors.New("user_id is required")
	}
	return nil
}
