package product

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "productlaunch.v1.ProductLaunchService"

// ProductLaunchServiceServer is the server API of the service.
type ProductLaunchServiceServer interface {
	LaunchProduct(context.Context, *LaunchProductRequest) (*LaunchProductReply, error)
	CreateProduct(context.Context, *CreateProductRequest) (*CreateProductReply, error)
	UpdateStock(context.Context, *UpdateStockRequest) (*UpdateStockReply, error)
	GetProduct(context.Context, *GetProductRequest) (*GetProductReply, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsReply, error)
}

func RegisterProductLaunchServiceServer(s grpc.ServiceRegistrar, srv ProductLaunchServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc.MethodHandler.
func unaryHandler[Req any, Resp any](method string, call func(ProductLaunchServiceServer, context.Context, *Req) (*Resp, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ProductLaunchServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ProductLaunchServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProductLaunchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "LaunchProduct",
			Handler:    unaryHandler("LaunchProduct", ProductLaunchServiceServer.LaunchProduct),
		},
		{
			MethodName: "CreateProduct",
			Handler:    unaryHandler("CreateProduct", ProductLaunchServiceServer.CreateProduct),
		},
		{
			MethodName: "UpdateStock",
			Handler:    unaryHandler("UpdateStock", ProductLaunchServiceServer.UpdateStock),
		},
		{
			MethodName: "GetProduct",
			Handler:    unaryHandler("GetProduct", ProductLaunchServiceServer.GetProduct),
		},
		{
			MethodName: "ListProducts",
			Handler:    unaryHandler("ListProducts", ProductLaunchServiceServer.ListProducts),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "productlaunch/v1/product_launch.proto",
}

// Client calls the service over a connection using the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out interface{}, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *Client) LaunchProduct(ctx context.Context, in *LaunchProductRequest, opts ...grpc.CallOption) (*LaunchProductReply, error) {
	out := new(LaunchProductReply)
	if err := c.invoke(ctx, "LaunchProduct", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*CreateProductReply, error) {
	out := new(CreateProductReply)
	if err := c.invoke(ctx, "CreateProduct", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateStock(ctx context.Context, in *UpdateStockRequest, opts ...grpc.CallOption) (*UpdateStockReply, error) {
	out := new(UpdateStockReply)
	if err := c.invoke(ctx, "UpdateStock", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*GetProductReply, error) {
	out := new(GetProductReply)
	if err := c.invoke(ctx, "GetProduct", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsReply, error) {
	out := new(ListProductsReply)
	if err := c.invoke(ctx, "ListProducts", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
