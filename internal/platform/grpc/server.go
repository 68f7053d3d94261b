package grpc

import (
	grpcprom "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
)

// DefaultMaxConcurrentStreams bounds the number of handlers running per connection.
const DefaultMaxConcurrentStreams = 128

// DefaultServerOptions returns the server options shared by Adenine services.
// Prometheus metrics wrap the whole chain; interceptors run inside it in order.
func DefaultServerOptions(interceptors ...gogrpc.UnaryServerInterceptor) []gogrpc.ServerOption {
	chain := make([]gogrpc.UnaryServerInterceptor, 0, len(interceptors)+1)
	chain = append(chain, grpcprom.UnaryServerInterceptor)
	for _, interceptor := range interceptors {
		if interceptor != nil {
			chain = append(chain, interceptor)
		}
	}
	return []gogrpc.ServerOption{
		gogrpc.StatsHandler(otelgrpc.NewServerHandler()),
		gogrpc.MaxConcurrentStreams(DefaultMaxConcurrentStreams),
		gogrpc.ChainUnaryInterceptor(chain...),
	}
}

// RegisterMetrics initialises Prometheus series for every service on server.
// Call it after all services are registered.
func RegisterMetrics(server *gogrpc.Server) {
	if server == nil {
		return
	}
	grpcprom.EnableHandlingTimeHistogram()
	grpcprom.Register(server)
}
