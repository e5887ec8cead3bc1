package simserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "ctd.sim.v1.SimService"

// Full method names
const (
	SimService_CreateSession_FullMethodName = "/" + ServiceName + "/CreateSession"
	SimService_ApplyInputs_FullMethodName   = "/" + ServiceName + "/ApplyInputs"
	SimService_GetSnapshot_FullMethodName   = "/" + ServiceName + "/GetSnapshot"
	SimService_CloseSession_FullMethodName  = "/" + ServiceName + "/CloseSession"
	SimService_ListSessions_FullMethodName  = "/" + ServiceName + "/ListSessions"
	SimService_WatchSession_FullMethodName  = "/" + ServiceName + "/WatchSession"
)

// SimServiceServer is the server API for the simulation control service.
// Messages are google.protobuf.Struct documents; see converters.go for their fields.
type SimServiceServer interface {
	CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApplyInputs(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSnapshot(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CloseSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSessions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WatchSession(*structpb.Struct, SimService_WatchSessionServer) error
}

// UnimplementedSimServiceServer can be embedded to have forward compatible implementations
type UnimplementedSimServiceServer struct{}

func (UnimplementedSimServiceServer) CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateSession not implemented")
}
func (UnimplementedSimServiceServer) ApplyInputs(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApplyInputs not implemented")
}
func (UnimplementedSimServiceServer) GetSnapshot(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSnapshot not implemented")
}
func (UnimplementedSimServiceServer) CloseSession(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CloseSession not implemented")
}
func (UnimplementedSimServiceServer) ListSessions(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListSessions not implemented")
}
func (UnimplementedSimServiceServer) WatchSession(*structpb.Struct, SimService_WatchSessionServer) error {
	return status.Errorf(codes.Unimplemented, "method WatchSession not implemented")
}

// SimService_WatchSessionServer is the server side of the snapshot stream
type SimService_WatchSessionServer interface {
	Send(*structpb.Struct) error
	grpc.ServerStream
}

type simServiceWatchSessionServer struct {
	grpc.ServerStream
}

func (x *simServiceWatchSessionServer) Send(m *structpb.Struct) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterSimServiceServer registers srv with s
func RegisterSimServiceServer(s grpc.ServiceRegistrar, srv SimServiceServer) {
	s.RegisterService(&SimService_ServiceDesc, srv)
}

func unaryHandler(method string, call func(SimServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SimServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(SimServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchSessionHandler(srv interface{}, stream grpc.ServerStream) error {
	m := new(structpb.Struct)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(SimServiceServer).WatchSession(m, &simServiceWatchSessionServer{stream})
}

// SimService_ServiceDesc is the grpc.ServiceDesc for the simulation control service
var SimService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SimServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateSession",
			Handler:    unaryHandler(SimService_CreateSession_FullMethodName, SimServiceServer.CreateSession),
		},
		{
			MethodName: "ApplyInputs",
			Handler:    unaryHandler(SimService_ApplyInputs_FullMethodName, SimServiceServer.ApplyInputs),
		},
		{
			MethodName: "GetSnapshot",
			Handler:    unaryHandler(SimService_GetSnapshot_FullMethodName, SimServiceServer.GetSnapshot),
		},
		{
			MethodName: "CloseSession",
			Handler:    unaryHandler(SimService_CloseSession_FullMethodName, SimServiceServer.CloseSession),
		},
		{
			MethodName: "ListSessions",
			Handler:    unaryHandler(SimService_ListSessions_FullMethodName, SimServiceServer.ListSessions),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchSession",
			Handler:       watchSessionHandler,
			ServerStreams: true,
		},
	},
	Metadata: "ctd/sim/v1/sim.proto",
}

// SimServiceClient is the client API for the simulation control service
type SimServiceClient interface {
	CreateSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ApplyInputs(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetSnapshot(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CloseSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListSessions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	WatchSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (SimService_WatchSessionClient, error)
}

type simServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSimServiceClient wraps a connection
func NewSimServiceClient(cc grpc.ClientConnInterface) SimServiceClient {
	return &simServiceClient{cc}
}

func (c *simServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *simServiceClient) CreateSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, SimService_CreateSession_FullMethodName, in, opts)
}

func (c *simServiceClient) ApplyInputs(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, SimService_ApplyInputs_FullMethodName, in, opts)
}

func (c *simServiceClient) GetSnapshot(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, SimService_GetSnapshot_FullMethodName, in, opts)
}

func (c *simServiceClient) CloseSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, SimService_CloseSession_FullMethodName, in, opts)
}

func (c *simServiceClient) ListSessions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, SimService_ListSessions_FullMethodName, in, opts)
}

// SimService_WatchSessionClient is the client side of the snapshot stream
type SimService_WatchSessionClient interface {
	Recv() (*structpb.Struct, error)
	grpc.ClientStream
}

type simServiceWatchSessionClient struct {
	grpc.ClientStream
}

func (x *simServiceWatchSessionClient) Recv() (*structpb.Struct, error) {
	m := new(structpb.Struct)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *simServiceClient) WatchSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (SimService_WatchSessionClient, error) {
	stream, err := c.cc.NewStream(ctx, &SimService_ServiceDesc.Streams[0], SimService_WatchSession_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &simServiceWatchSessionClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
