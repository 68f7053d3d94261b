// Package common hosts the common.Common gRPC service handlers.
package common

import (
	"context"

	commonpb "github.com/cyber-republic/go-grpc-adenine/api/gen/go/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnimplementedMessage is the status message of calls with no implementor.
const UnimplementedMessage = "Method not implemented!"

// ServiceName is the fully qualified service name used in wire paths and health checks.
var ServiceName = commonpb.Common_ServiceDesc.ServiceName

// Unimplemented fails every Common method with codes.Unimplemented.
type Unimplemented struct {
	commonpb.UnimplementedCommonServer
}

// GenerateAPIRequest reports that no implementation is registered.
func (Unimplemented) GenerateAPIRequest(context.Context, *commonpb.Request) (*commonpb.Response, error) {
	return nil, status.Error(codes.Unimplemented, UnimplementedMessage)
}

// GetAPIKey reports that no implementation is registered.
func (Unimplemented) GetAPIKey(context.Context, *commonpb.Request) (*commonpb.Response, error) {
	return nil, status.Error(codes.Unimplemented, UnimplementedMessage)
}

// Register binds the Common dispatch table to registrar. A nil impl
// registers Unimplemented.
func Register(registrar grpc.ServiceRegistrar, impl commonpb.CommonServer) {
	if impl == nil {
		impl = Unimplemented{}
	}
	commonpb.RegisterCommonServer(registrar, impl)
}

var _ commonpb.CommonServer = Unimplemented{}
