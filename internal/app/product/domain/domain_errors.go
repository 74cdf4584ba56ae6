package domain

import "errors"

// Domain errors for the Product aggregate
var (
	// ErrProductNotFound indicates that a product with the given ID does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateProductName indicates another product already carries the requested name.
	ErrDuplicateProductName = errors.New("a product with the same name already exists")

	// ErrProductDiscontinued indicates a stock change on a product that is no longer sold.
	ErrProductDiscontinued = errors.New("product is discontinued")

	// ErrProductNotDraft indicates a publish attempt on a product that already left the draft state.
	ErrProductNotDraft = errors.New("product is not a draft")

	// ErrInsufficientStock indicates a stock change would make the quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock available")
)

// Domain errors for Product validation
var (
	ErrEmptyProductName          = errors.New("product name cannot be empty")
	ErrProductNameTooLong        = errors.New("product name exceeds maximum length of 200 characters")
	ErrProductDescriptionTooLong = errors.New("product description exceeds maximum length of 1000 characters")
	ErrProductCategoryTooLong    = errors.New("product category exceeds maximum length of 100 characters")
)

// Domain errors for Money and Promotion value objects
var (
	// ErrInvalidPrice indicates a zero, negative or missing price.
	ErrInvalidPrice = errors.New("price must be greater than zero")

	ErrInvalidPromotionPercentage = errors.New("promotion percentage must be between 0 and 100")
	ErrInvalidPromotionPeriod     = errors.New("promotion end date must be after start date")
)

// Domain errors for the User aggregate
var (
	// ErrUserNotFound indicates that a user with the given ID does not exist.
	ErrUserNotFound = errors.New("user not found")

	ErrInvalidUserName  = errors.New("first name and last name are required and must not exceed 100 characters")
	ErrInvalidUserEmail = errors.New("a valid email address is required")
)

// Domain errors for launch configuration
var (
	ErrInvalidWarehouse    = errors.New("invalid warehouse id")
	ErrInvalidStockLevels  = errors.New("inconsistent stock levels")
	ErrInvalidSupplier     = errors.New("invalid supplier id")
	ErrInvalidLaunchConfig = errors.New("invalid launch configuration")
)

var validationErrors = []error{
	ErrEmptyProductName,
	ErrProductNameTooLong,
	ErrProductDescriptionTooLong,
	ErrProductCategoryTooLong,
	ErrInvalidPrice,
	ErrInvalidPromotionPercentage,
	ErrInvalidPromotionPeriod,
	ErrInvalidUserName,
	ErrInvalidUserEmail,
	ErrInvalidWarehouse,
	ErrInvalidStockLevels,
	ErrInvalidSupplier,
	ErrInvalidLaunchConfig,
}

var businessRuleErrors = []error{
	ErrProductDiscontinued,
	ErrProductNotDraft,
	ErrInsufficientStock,
}

// IsValidation reports whether err wraps an input validation error.
func IsValidation(err error) bool {
	return isAny(err, validationErrors)
}

// IsBusinessRule reports whether err wraps a state or business rule violation.
func IsBusinessRule(err error) bool {
	return isAny(err, businessRuleErrors)
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
