package product

import (
	"context"
	"net"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/app/product/queries/get_product"
	"github.com/murkotick/product-launch-service/internal/app/product/queries/list_products"
	"github.com/murkotick/product-launch-service/internal/app/product/repo/memory"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/launch_product"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/update_stock"
	"github.com/murkotick/product-launch-service/internal/pkg/clock"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type testServer struct {
	store  *memory.Store
	launch *launch_product.Interactor
	client *Client
}

func startServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	owner, err := domain.NewUser(1, "Ada", "Lovelace", "ada@example.com", now)
	require.NoError(t, err)
	store.AddUser(owner)

	logger, _ := logtest.NewNullLogger()
	clk := clock.NewFake(now)
	launch := launch_product.NewInteractor(store, clk, logger)
	readModel := memory.NewReadModel(store)

	h := NewHandler(
		Commands{
			Launch:      launch,
			Create:      create_product.NewInteractor(store, clk),
			UpdateStock: update_stock.NewInteractor(store, clk),
		},
		Queries{Get: get_product.NewHandler(readModel), List: list_products.NewHandler(readModel)},
		logger,
	)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(UnaryLoggingInterceptor(logger)))
	RegisterProductLaunchServiceServer(srv, h)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &testServer{store: store, launch: launch, client: NewClient(conn)}
}

func launchRequest(name string) *LaunchProductRequest {
	return &LaunchProductRequest{
		ProductName: name,
		Category:    "lighting",
		BasePrice:   "49.99",
		UserID:      1,
		LaunchDate:  now.Add(24 * time.Hour),
		PricingStrategy: PricingStrategy{
			BasePrice: "45.00",
		},
		InventoryDistribution: []InventoryDistribution{
			{WarehouseID: 1, InitialQuantity: 10, MinimumStock: 1, MaximumStock: 20},
		},
		MarketingCampaigns: []MarketingCampaign{
			{Name: "Spring", Budget: "1000.00"},
			{Name: "Summer"},
		},
	}
}

func TestLaunchProduct_OverGRPC(t *testing.T) {
	ts := startServer(t)
	ctx := metadata.AppendToOutgoingContext(context.Background(),
		MetadataActorID, "1", MetadataActorEmail, "ada@example.com")

	reply, err := ts.client.LaunchProduct(ctx, launchRequest("Aurora Lamp"))
	require.NoError(t, err)
	ts.launch.Drain()

	require.True(t, reply.Success, reply.ErrorMessage)
	require.NotNil(t, reply.Launch)
	assert.Equal(t, "Aurora Lamp", reply.Launch.Product.Name)
	assert.Equal(t, "45.00", reply.Launch.Product.Price)
	assert.Equal(t, []int{1, 2}, reply.Launch.CampaignIDs)
	assert.Equal(t, "1000.00", reply.Launch.Campaigns[0].Budget)

	audit := ts.store.AuditEntries()
	require.Len(t, audit, 1)
	assert.Equal(t, "ada@example.com", audit[0].ActorEmail)
}

func TestLaunchProduct_DuplicateIsAReplyNotAnError(t *testing.T) {
	ts := startServer(t)
	ctx := context.Background()

	_, err := ts.client.LaunchProduct(ctx, launchRequest("Aurora Lamp"))
	require.NoError(t, err)

	reply, err := ts.client.LaunchProduct(ctx, launchRequest("Aurora Lamp"))
	require.NoError(t, err)
	assert.False(t, reply.Success)
	assert.Nil(t, reply.Launch)
	assert.Equal(t, launch_product.MessageDuplicateProduct, reply.ErrorMessage)
}

func TestLaunchProduct_InvalidInput(t *testing.T) {
	ts := startServer(t)

	req := launchRequest("Aurora Lamp")
	req.PricingStrategy.BasePrice = "forty"
	_, err := ts.client.LaunchProduct(context.Background(), req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	ctx := metadata.AppendToOutgoingContext(context.Background(), MetadataActorID, "abc")
	_, err = ts.client.LaunchProduct(ctx, launchRequest("Borealis Lamp"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCreateAndGetProduct(t *testing.T) {
	ts := startServer(t)
	ctx := context.Background()

	created, err := ts.client.CreateProduct(ctx, &CreateProductRequest{
		Name: "Aurora Lamp", Description: "desk lamp", Category: "lighting", Price: "19.99", UserID: 1,
	})
	require.NoError(t, err)

	got, err := ts.client.GetProduct(ctx, &GetProductRequest{ProductID: created.ProductID})
	require.NoError(t, err)
	assert.Equal(t, "Aurora Lamp", got.Product.Name)
	assert.Equal(t, "desk lamp", got.Product.Description)
	assert.Equal(t, "19.99", got.Product.Price)
	assert.Equal(t, "draft", got.Product.Status)

	_, err = ts.client.CreateProduct(ctx, &CreateProductRequest{Name: "Aurora Lamp", Price: "1", UserID: 1})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = ts.client.CreateProduct(ctx, &CreateProductRequest{Name: "Other", Price: "1", UserID: 9})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = ts.client.CreateProduct(ctx, &CreateProductRequest{Name: "Other", Price: "0", UserID: 1})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = ts.client.GetProduct(ctx, &GetProductRequest{ProductID: 404})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestUpdateStock_RestockedProductIsListed(t *testing.T) {
	ts := startServer(t)
	ctx := context.Background()

	created, err := ts.client.CreateProduct(ctx, &CreateProductRequest{Name: "Aurora Lamp", Category: "lighting", Price: "19.99", UserID: 1})
	require.NoError(t, err)

	listed, err := ts.client.ListProducts(ctx, &ListProductsRequest{})
	require.NoError(t, err)
	assert.Empty(t, listed.Products)

	reply, err := ts.client.UpdateStock(ctx, &UpdateStockRequest{ProductID: created.ProductID, Quantity: 8})
	require.NoError(t, err)
	assert.Equal(t, int64(8), reply.StockQuantity)

	listed, err = ts.client.ListProducts(ctx, &ListProductsRequest{})
	require.NoError(t, err)
	require.Len(t, listed.Products, 1)
	assert.Equal(t, "Aurora Lamp", listed.Products[0].Name)

	got, err := ts.client.GetProduct(ctx, &GetProductRequest{ProductID: created.ProductID})
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.Product.StockQuantity)
	assert.False(t, got.Product.InStock, "draft products are not in stock until published")
}

func TestUpdateStock_Errors(t *testing.T) {
	ts := startServer(t)
	ctx := context.Background()

	created, err := ts.client.CreateProduct(ctx, &CreateProductRequest{Name: "Aurora Lamp", Price: "19.99", UserID: 1})
	require.NoError(t, err)

	_, err = ts.client.UpdateStock(ctx, &UpdateStockRequest{ProductID: created.ProductID, Quantity: -1})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = ts.client.UpdateStock(ctx, &UpdateStockRequest{ProductID: 404, Quantity: 1})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = ts.client.UpdateStock(ctx, &UpdateStockRequest{Quantity: 1})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestListProducts_Pagination(t *testing.T) {
	ts := startServer(t)
	for _, name := range []string{"A", "B", "C"} {
		p, err := domain.NewProduct(name, "", "lighting", domain.NewMoney(10, 1), 1, now)
		require.NoError(t, err)
		require.NoError(t, p.UpdateStock(1, now))
		ts.store.SeedProduct(p)
	}
	ctx := context.Background()

	first, err := ts.client.ListProducts(ctx, &ListProductsRequest{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, first.Products, 2)
	assert.Equal(t, "2", first.NextPageToken)

	second, err := ts.client.ListProducts(ctx, &ListProductsRequest{PageSize: 2, PageToken: first.NextPageToken})
	require.NoError(t, err)
	require.Len(t, second.Products, 1)
	assert.Equal(t, "C", second.Products[0].Name)
	assert.Empty(t, second.NextPageToken)

	_, err = ts.client.ListProducts(ctx, &ListProductsRequest{PageToken: "-3"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
