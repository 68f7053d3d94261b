// Package metadata reads and writes the gRPC metadata carried by Adenine calls.
package metadata

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/cyber-republic/go-grpc-adenine/internal/platform/id"
)

// DIDHeader carries the caller's decentralized identifier.
const DIDHeader = "did"

// RequestIDHeader carries the request correlation ID, echoed in response headers.
const RequestIDHeader = "x-adenine-request-id"

type contextKey string

const requestIDContextKey contextKey = "adenine-request-id"

// RequestIDFromContext returns the request ID stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey).(string)
	return value
}

// WithRequestID stores the request ID in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// DIDFromContext returns the caller DID from incoming metadata.
func DIDFromContext(ctx context.Context) string {
	return strings.TrimSpace(incomingValue(ctx, DIDHeader))
}

// WithOutgoingDID attaches did to the outgoing metadata of ctx.
func WithOutgoingDID(ctx context.Context, did string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return metadata.AppendToOutgoingContext(ctx, DIDHeader, did)
}

// IsPrintableASCII reports whether value is non-empty printable ASCII.
func IsPrintableASCII(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < 0x20 || value[i] > 0x7e {
			return false
		}
	}
	return true
}

// FirstMetadataValue returns the first printable ASCII value for key.
func FirstMetadataValue(md metadata.MD, key string) string {
	if len(md) == 0 {
		return ""
	}
	for mdKey, values := range md {
		if !strings.EqualFold(mdKey, key) {
			continue
		}
		for _, value := range values {
			if IsPrintableASCII(value) {
				return value
			}
		}
	}
	return ""
}

// UnaryServerInterceptor ensures every unary call has a request ID. A missing
// ID is generated, stored in the handler context, echoed as a response header
// and recorded on the active span.
func UnaryServerInterceptor(idGenerator func() (string, error)) grpc.UnaryServerInterceptor {
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := incomingValue(ctx, RequestIDHeader)
		if requestID == "" {
			generated, err := idGenerator()
			if err != nil {
				return nil, status.Errorf(codes.Internal, "ensure request metadata: %v", err)
			}
			requestID = generated
		}
		if err := grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID)); err != nil {
			return nil, status.Errorf(codes.Internal, "set response metadata: %v", err)
		}

		attrs := []attribute.KeyValue{attribute.String("adenine.request_id", requestID)}
		if did := DIDFromContext(ctx); did != "" {
			attrs = append(attrs, attribute.String("adenine.did", did))
		}
		trace.SpanFromContext(ctx).SetAttributes(attrs...)

		return handler(WithRequestID(ctx, requestID), req)
	}
}

func incomingValue(ctx context.Context, header string) string {
	if ctx == nil {
		return ""
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	return FirstMetadataValue(md, header)
}
