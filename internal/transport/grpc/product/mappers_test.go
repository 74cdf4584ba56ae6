package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapLaunchProductRequest(t *testing.T) {
	pct := 15.0
	supplier := 3
	maxQty := 100
	req := &LaunchProductRequest{
		ProductName: "Aurora Lamp",
		BasePrice:   "49.99",
		UserID:      1,
		LaunchDate:  time.Date(2025, 3, 2, 10, 0, 0, 0, time.FixedZone("CET", 3600)),
		PricingStrategy: PricingStrategy{
			BasePrice:         "45",
			TieredPrices:      []TieredPrice{{Price: "40", MinQuantity: 10, MaxQuantity: &maxQty}},
			PromotionalPrices: []PromotionalPrice{{DiscountPercentage: &pct}},
		},
		InventoryDistribution: []InventoryDistribution{{WarehouseID: 2, InitialQuantity: 5, MaximumStock: 10}},
		MarketingCampaigns: []MarketingCampaign{{
			Name:           "Spring",
			Type:           "seasonal",
			Budget:         "1000",
			TargetAudience: []string{"students", "designers"},
			Channels:       []CampaignChannel{{Channel: "email", Budget: "250", Content: "Meet Aurora"}},
		}},
		SupplierContracts: []SupplierContract{{
			SupplierID:           3,
			ContractType:         "exclusive",
			UnitCost:             "12.50",
			MinimumOrderQuantity: 50,
			LeadTimeDays:         14,
			StartDate:            time.Date(2025, 3, 1, 0, 0, 0, 0, time.FixedZone("CET", 3600)),
			EndDate:              time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			IsPreferred:          true,
		}},
		ProductVariants: []ProductVariant{
			{SKU: "AL-1", Attributes: map[string]string{"color": "black"}},
			{SKU: "AL-2", PriceModifier: "5"},
		},
		ReorderSettings: ReorderSettings{
			EnableAutoReorder:   true,
			MaxStock:            500,
			CheckFrequencyHours: 24,
			PreferredSupplierID: &supplier,
		},
	}

	out, err := mapLaunchProductRequest(req)
	require.NoError(t, err)

	assert.Equal(t, "49.99", out.BasePrice.String())
	assert.Equal(t, "45.00", out.PricingStrategy.BasePrice.String())
	assert.Equal(t, time.UTC, out.LaunchDate.Location())
	require.Len(t, out.PricingStrategy.TieredPrices, 1)
	assert.Equal(t, &maxQty, out.PricingStrategy.TieredPrices[0].MaxQuantity)
	assert.Nil(t, out.PricingStrategy.PromotionalPrices[0].Price)
	assert.Equal(t, 2, out.InventoryDistribution[0].WarehouseID)

	campaign := out.MarketingCampaigns[0]
	assert.Equal(t, "seasonal", campaign.Type)
	assert.Equal(t, []string{"students", "designers"}, campaign.TargetAudience)
	require.Len(t, campaign.Channels, 1)
	assert.Equal(t, "email", campaign.Channels[0].Channel)
	assert.Equal(t, "250.00", campaign.Channels[0].Budget.String())
	assert.Equal(t, "Meet Aurora", campaign.Channels[0].Content)

	contract := out.SupplierContracts[0]
	assert.Equal(t, "exclusive", contract.ContractType)
	assert.Equal(t, "12.50", contract.UnitCost.String())
	assert.Equal(t, 50, contract.MinimumOrderQuantity)
	assert.Equal(t, 14, contract.LeadTimeDays)
	assert.Equal(t, time.Date(2025, 2, 28, 23, 0, 0, 0, time.UTC), contract.StartDate)
	assert.True(t, contract.IsPreferred)

	assert.Equal(t, "black", out.ProductVariants[0].Attributes["color"])
	assert.Nil(t, out.ProductVariants[0].PriceModifier)
	assert.Equal(t, "5.00", out.ProductVariants[1].PriceModifier.String())

	assert.Equal(t, 500, out.ReorderSettings.MaxStock)
	assert.Equal(t, 24, out.ReorderSettings.CheckFrequencyHours)
	assert.Equal(t, &supplier, out.ReorderSettings.PreferredSupplierID)
}

func TestMapLaunchProductRequest_OptionalBasePrice(t *testing.T) {
	req := &LaunchProductRequest{
		ProductName:     "Aurora Lamp",
		UserID:          1,
		PricingStrategy: PricingStrategy{BasePrice: "45"},
	}
	require.NoError(t, validateLaunchProduct(req))

	out, err := mapLaunchProductRequest(req)
	require.NoError(t, err)
	assert.Nil(t, out.BasePrice)
	assert.Equal(t, "45.00", out.PricingStrategy.BasePrice.String())
}

func TestMapLaunchProductRequest_BadMoney(t *testing.T) {
	req := &LaunchProductRequest{
		ProductName:        "Aurora Lamp",
		BasePrice:          "1",
		PricingStrategy:    PricingStrategy{BasePrice: "1"},
		MarketingCampaigns: []MarketingCampaign{{Name: "x", Budget: "lots"}},
	}
	_, err := mapLaunchProductRequest(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marketing_campaigns.budget")
}
