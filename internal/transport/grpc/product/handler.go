package product

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/murkotick/product-launch-service/internal/app/product/dto"
	"github.com/murkotick/product-launch-service/internal/app/product/queries/get_product"
	"github.com/murkotick/product-launch-service/internal/app/product/queries/list_products"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/launch_product"
	"github.com/murkotick/product-launch-service/internal/app/product/usecases/update_stock"
)

// Metadata keys identifying the acting user of a request.
const (
	MetadataActorID    = "x-actor-id"
	MetadataActorEmail = "x-actor-email"
)

// Commands groups write interactors.
// Keep transport layer depending on application layer only.
type Commands struct {
	Launch      *launch_product.Interactor
	Create      *create_product.Interactor
	UpdateStock *update_stock.Interactor
}

// Queries groups read handlers.
type Queries struct {
	Get  *get_product.Handler
	List *list_products.Handler
}

// Handler is a thin gRPC transport adapter.
// It validates input, maps wire messages <-> application DTOs and delegates to CQRS handlers.
type Handler struct {
	commands Commands
	queries  Queries
	log      logrus.FieldLogger
}

var _ ProductLaunchServiceServer = (*Handler)(nil)

func NewHandler(cmd Commands, qry Queries, log logrus.FieldLogger) *Handler {
	return &Handler{commands: cmd, queries: qry, log: log}
}

func (h *Handler) LaunchProduct(ctx context.Context, req *LaunchProductRequest) (*LaunchProductReply, error) {
	if err := validateLaunchProduct(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	appReq, err := mapLaunchProductRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	actor, err := actorFromContext(ctx, req.UserID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	res := h.commands.Launch.Execute(ctx, appReq, actor)
	return mapLaunchResult(res), nil
}

func (h *Handler) CreateProduct(ctx context.Context, req *CreateProductRequest) (*CreateProductReply, error) {
	if err := validateCreateProduct(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	appReq, err := mapCreateProductRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	id, err := h.commands.Create.Execute(ctx, appReq)
	if err != nil {
		return nil, h.fail(ctx, "CreateProduct", err)
	}
	return &CreateProductReply{ProductID: id}, nil
}

func (h *Handler) UpdateStock(ctx context.Context, req *UpdateStockRequest) (*UpdateStockReply, error) {
	if err := validateUpdateStock(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	stock, err := h.commands.UpdateStock.Execute(ctx, update_stock.Request{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return nil, h.fail(ctx, "UpdateStock", err)
	}
	return &UpdateStockReply{StockQuantity: stock}, nil
}

func (h *Handler) GetProduct(ctx context.Context, req *GetProductRequest) (*GetProductReply, error) {
	if req == nil || req.ProductID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "product_id is required")
	}

	dtoOut, err := h.queries.Get.Execute(ctx, req.ProductID)
	if err != nil {
		return nil, h.fail(ctx, "GetProduct", err)
	}
	return &GetProductReply{Product: mapProductDTO(dtoOut)}, nil
}

func (h *Handler) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsReply, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	limit := pageSize(req.PageSize)
	offset, err := decodePageToken(req.PageToken)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid page_token")
	}

	var category *string
	if req.Category != nil && *req.Category != "" {
		category = req.Category
	}

	items, err := h.queries.List.Execute(ctx, category, limit, offset)
	if err != nil {
		return nil, h.fail(ctx, "ListProducts", err)
	}

	next := ""
	if len(items) == limit {
		next = encodePageToken(offset + len(items))
	}
	return &ListProductsReply{Products: mapProductSummaries(items), NextPageToken: next}, nil
}

func (h *Handler) fail(ctx context.Context, method string, err error) error {
	st := mapError(err)
	if status.Code(st) == codes.Internal {
		h.log.WithError(err).WithField("method", method).Error("request failed")
	}
	return st
}

// actorFromContext reads the acting user from request metadata. Without
// metadata the product owner acts on their own behalf.
func actorFromContext(ctx context.Context, fallbackID int64) (*dto.UserSummary, error) {
	actor := &dto.UserSummary{ID: fallbackID}

	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return actor, nil
	}
	if ids := md.Get(MetadataActorID); len(ids) > 0 {
		id, err := strconv.ParseInt(ids[0], 10, 64)
		if err != nil || id <= 0 {
			return nil, errors.Errorf("invalid %s metadata", MetadataActorID)
		}
		actor.ID = id
	}
	if emails := md.Get(MetadataActorEmail); len(emails) > 0 {
		actor.Email = emails[0]
	}
	return actor, nil
}
