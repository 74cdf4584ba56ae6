package e2e

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/app/product/dto"
	"github.com/murkotick/product-launch-service/internal/app/product/queries/get_product"
	"github.com/murkotick/product-launch-service/internal/app/product/queries/list_products"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/launch_product"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/update_stock"
)

var owner = &dto.UserSummary{ID: ownerID, Email: "grace@example.com", FullName: "Grace Hopper", Role: "admin"}

func launchRequest(name string) *launch_product.Request {
	return &launch_product.Request{
		ProductName: name,
		Description: "launched from e2e",
		Category:    "lighting",
		BasePrice:   domain.NewMoney(4999, 100),
		UserID:      ownerID,
		LaunchDate:  clk.Now().Add(24 * time.Hour),
		PricingStrategy: launch_product.PricingStrategy{
			BasePrice: domain.NewMoney(4500, 100),
		},
		InventoryDistribution: []launch_product.InventoryDistribution{
			{WarehouseID: 1, InitialQuantity: 10, MinimumStock: 2, MaximumStock: 50},
		},
		MarketingCampaigns: []launch_product.MarketingCampaign{
			{Name: "Spring", Budget: domain.NewMoney(100000, 100)},
		},
		SupplierContracts: []launch_product.SupplierContract{
			{SupplierID: 7, UnitCost: domain.NewMoney(2000, 100)},
		},
	}
}

func TestProductCreationFlow(t *testing.T) {
	requireEmulator(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name := uniqueName("Created Product")
	productID, err := createUC.Execute(ctx, create_product.Request{
		Name:        name,
		Description: "A product for E2E tests",
		Category:    "books",
		PriceNum:    1999,
		PriceDen:    100,
		UserID:      ownerID,
	})
	require.NoError(t, err)
	require.Positive(t, productID)

	prod, err := get_product.NewHandler(readModel).Execute(ctx, productID)
	require.NoError(t, err)

	assert.Equal(t, name, prod.Name)
	assert.Equal(t, "books", prod.Category)
	assert.Equal(t, "draft", prod.Status)
	assert.Equal(t, "19.99", prod.Price)

	events := mustFetchOutboxEvents(ctx, t, spClient, productID)
	require.Len(t, events, 1)
	assert.Equal(t, "product.created", events[0].EventType)
	assert.Equal(t, "pending", events[0].Status)
}

func TestCreateProduct_DuplicateNameRejected(t *testing.T) {
	requireEmulator(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req := create_product.Request{Name: uniqueName("Twin"), Category: "books", PriceNum: 500, PriceDen: 100, UserID: ownerID}
	_, err := createUC.Execute(ctx, req)
	require.NoError(t, err)

	_, err = createUC.Execute(ctx, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateProductName)
	assert.Equal(t, int64(1), countProductsNamed(ctx, t, req.Name))
}

func TestLaunchFlow_CommitsProductEventsAndAudit(t *testing.T) {
	requireEmulator(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name := uniqueName("Aurora Lamp")
	res := launch(ctx, launchRequest(name), owner)
	require.True(t, res.Success, res.ErrorMessage)
	require.NotNil(t, res.Launch)
	assert.Equal(t, []int{1}, res.Launch.CampaignIDs)
	assert.Equal(t, "45.00", res.Launch.EffectivePrice)

	productID := res.Launch.Product.ProductID
	prod, err := get_product.NewHandler(readModel).Execute(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, name, prod.Name)
	assert.Equal(t, "45.00", prod.Price)

	events := mustFetchOutboxEvents(ctx, t, spClient, productID)
	types := eventTypes(events)
	assert.Contains(t, types, "product.created")
	assert.Contains(t, types, "product.launched")

	actions := mustFetchAuditActions(ctx, t, spClient, productID)
	assert.Equal(t, []string{launch_product.AuditActionLaunched}, actions)
}

func TestLaunchFlow_PublishesAfterCommit(t *testing.T) {
	requireEmulator(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res := launch(ctx, launchRequest(uniqueName("Published Lamp")), owner)
	require.True(t, res.Success, res.ErrorMessage)

	prod, err := get_product.NewHandler(readModel).Execute(ctx, res.Launch.Product.ProductID)
	require.NoError(t, err)
	assert.Equal(t, "active", prod.Status)

	events := mustFetchOutboxEvents(ctx, t, spClient, prod.ProductID)
	types := eventTypes(events)
	assert.Contains(t, types, "product.published")
}

func TestLaunchFlow_DuplicateNameLeavesNoTrace(t *testing.T) {
	requireEmulator(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name := uniqueName("Duplicate Lamp")
	first := launch(ctx, launchRequest(name), owner)
	require.True(t, first.Success, first.ErrorMessage)

	second := launch(ctx, launchRequest(name), owner)
	assert.False(t, second.Success)
	assert.Nil(t, second.Launch)
	assert.Equal(t, launch_product.MessageDuplicateProduct, second.ErrorMessage)
	assert.Equal(t, int64(1), countProductsNamed(ctx, t, name))

	rejected := false
	for _, e := range logHook.AllEntries() {
		if e.Message == "product launch rejected" && e.Data["product_name"] == name {
			rejected = true
		}
	}
	assert.True(t, rejected, "duplicate launch must be logged as rejected")
}

func TestLaunchFlow_LateStepFailureRollsBackProduct(t *testing.T) {
	requireEmulator(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name := uniqueName("Broken Lamp")
	req := launchRequest(name)
	// The product is staged before suppliers are checked.
	req.SupplierContracts = []launch_product.SupplierContract{{SupplierID: 0, UnitCost: domain.NewMoney(1, 1)}}

	res := launch(ctx, req, owner)
	assert.False(t, res.Success)
	assert.Equal(t, launch_product.MessageLaunchFailed, res.ErrorMessage)
	assert.Equal(t, int64(0), countProductsNamed(ctx, t, name))
}

func TestUpdateStock_LaunchedProductBecomesListable(t *testing.T) {
	requireEmulator(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	category := uniqueName("stock")
	req := launchRequest(uniqueName("Stocked Lamp"))
	req.Category = category
	res := launch(ctx, req, owner)
	require.True(t, res.Success, res.ErrorMessage)
	productID := res.Launch.Product.ProductID

	list := list_products.NewHandler(readModel)
	items, err := list.Execute(ctx, &category, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, items)

	stock, err := stockUC.Execute(ctx, update_stock.Request{ProductID: productID, Quantity: 6})
	require.NoError(t, err)
	assert.Equal(t, int64(6), stock)

	items, err = list.Execute(ctx, &category, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, productID, items[0].ProductID)

	prod, err := get_product.NewHandler(readModel).Execute(ctx, productID)
	require.NoError(t, err)
	assert.True(t, prod.IsInStock)

	_, err = stockUC.Execute(ctx, update_stock.Request{ProductID: productID, Quantity: -7})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestGetProduct_NotFound(t *testing.T) {
	requireEmulator(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := get_product.NewHandler(readModel).Execute(ctx, 987654321)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// launch runs one launch and waits for its post-commit actions, so the next
// read/write transaction does not race the publish step on the emulator.
func launch(ctx context.Context, req *launch_product.Request, actor *dto.UserSummary) launch_product.Result {
	res := launchUC.Execute(ctx, req, actor)
	launchUC.Drain()
	return res
}

func countProductsNamed(ctx context.Context, t *testing.T, name string) int64 {
	t.Helper()
	stmt := spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM products WHERE name = @name",
		Params: map[string]interface{}{"name": name},
	}
	iter := spClient.Single().Query(ctx, stmt)
	defer iter.Stop()
	row, err := iter.Next()
	require.NoError(t, err)
	var n int64
	require.NoError(t, row.Columns(&n))
	return n
}
