package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Контракт сервиса описан вручную поверх google.protobuf.Struct:
// запросы и ответы - JSON-подобные структуры, генерация кода не нужна.
const (
	ServiceName = "momo.v1.MomoService"

	classifyMethod    = "/" + ServiceName + "/Classify"
	importBatchMethod = "/" + ServiceName + "/ImportBatch"
	getStatsMethod    = "/" + ServiceName + "/GetStats"
)

// MomoServer серверная часть сервиса
type MomoServer interface {
	// Classify {"body": "..."} -> ClassificationResult
	Classify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

	// ImportBatch {"source", "messages": [{body, date, address}]} или {"source", "format", "payload"} -> ImportResult
	ImportBatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

	// GetStats {} -> Stats
	GetStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc описание сервиса для grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MomoServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Classify", Handler: unaryHandler(classifyMethod, MomoServer.Classify)},
		{MethodName: "ImportBatch", Handler: unaryHandler(importBatchMethod, MomoServer.ImportBatch)},
		{MethodName: "GetStats", Handler: unaryHandler(getStatsMethod, MomoServer.GetStats)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "momo/v1/momo.proto",
}

// RegisterMomoServer регистрирует реализацию на сервере
func RegisterMomoServer(s grpc.ServiceRegistrar, srv MomoServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type unaryMethod func(MomoServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MomoServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(MomoServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// MomoClient клиент сервиса
type MomoClient struct {
	cc grpc.ClientConnInterface
}

func NewMomoClient(cc grpc.ClientConnInterface) *MomoClient {
	return &MomoClient{cc: cc}
}

func (c *MomoClient) Classify(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, classifyMethod, in, opts...)
}

func (c *MomoClient) ImportBatch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, importBatchMethod, in, opts...)
}

func (c *MomoClient) GetStats(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, getStatsMethod, in, opts...)
}

func (c *MomoClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
