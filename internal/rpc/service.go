// Package rpc serves and calls scans over gRPC. Messages are structpb
// structs, so the service needs no generated code.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ScannerServer is the server API for the Scanner service.
type ScannerServer interface {
	Scan(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the Scanner service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScannerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Scan", Handler: scanHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalogscanner/v1/scanner.proto",
}

func scanHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScannerServer).Scan(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ScanMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ScannerServer).Scan(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
