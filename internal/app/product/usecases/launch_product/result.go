package launch_product

import (
	"time"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/app/product/dto"
)

// Messages returned to callers. Internal error details are never exposed.
const (
	MessageDuplicateProduct = "a product with the same name already exists"
	MessageLaunchFailed     = "an error occurred while launching the product"
)

// Result is the outcome of one launch. Exactly one of Launch and ErrorMessage is set.
type Result struct {
	Success      bool
	Launch       *ProductLaunch
	ErrorMessage string
}

type ProductLaunch struct {
	Product        dto.ProductDTO
	CampaignIDs    []int
	Campaigns      []CampaignResult
	LaunchDate     time.Time
	EffectivePrice string
}

// CampaignResult is a campaign accepted during the launch. Ids are 1..N in request order.
type CampaignResult struct {
	ID        int
	Name      string
	ProductID int64
	Budget    *domain.Money
	StartDate time.Time
	EndDate   time.Time
}

func success(launch *ProductLaunch) Result {
	return Result{Success: true, Launch: launch}
}

func failure(message string) Result {
	return Result{ErrorMessage: message}
}
