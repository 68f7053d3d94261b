// Package interceptors provides the unary server interceptors installed on
// Adenine gRPC servers.
package interceptors

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	grpcmeta "github.com/cyber-republic/go-grpc-adenine/internal/api/grpc/metadata"
	"github.com/cyber-republic/go-grpc-adenine/internal/platform/logging"
)

// LoggingInterceptor attaches a request-scoped logger to the handler context
// and writes one access-log entry per call. Client-side failures log at Info,
// server faults at Error.
func LoggingInterceptor(base *zap.Logger) grpc.UnaryServerInterceptor {
	if base == nil {
		base = zap.NewNop()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		fields := []zap.Field{zap.String("rpc_method", info.FullMethod)}
		if requestID := grpcmeta.RequestIDFromContext(ctx); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}
		if did := grpcmeta.DIDFromContext(ctx); did != "" {
			fields = append(fields, zap.String("did", did))
		}
		logger := base.With(fields...)

		resp, err := handler(logging.WithLogger(ctx, logger), req)

		code := status.Code(err)
		entryFields := []zap.Field{
			zap.Stringer("code", code),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			entryFields = append(entryFields, zap.Error(err))
		}
		logger.Check(levelForCode(code), "served rpc").Write(entryFields...)
		return resp, err
	}
}

func levelForCode(code codes.Code) zapcore.Level {
	switch code {
	case codes.OK, codes.Canceled, codes.InvalidArgument, codes.NotFound, codes.AlreadyExists,
		codes.PermissionDenied, codes.Unauthenticated, codes.ResourceExhausted,
		codes.FailedPrecondition, codes.OutOfRange, codes.Unimplemented:
		return zapcore.InfoLevel
	case codes.DeadlineExceeded, codes.Aborted, codes.Unavailable:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
