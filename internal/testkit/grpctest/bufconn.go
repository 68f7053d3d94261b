// Package grpctest runs gRPC servers over in-memory connections for tests.
package grpctest

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

const bufferSize = 1 << 20

// Service hosts a gRPC server on a bufconn listener.
type Service struct {
	listener *bufconn.Listener
	server   *grpc.Server
}

// NewService creates an unstarted server with opts.
func NewService(opts ...grpc.ServerOption) *Service {
	return &Service{
		listener: bufconn.Listen(bufferSize),
		server:   grpc.NewServer(opts...),
	}
}

// Server returns the underlying server for service registration.
func (s *Service) Server() *grpc.Server {
	return s.server
}

// Start serves in the background and stops the server when t finishes.
func (s *Service) Start(t testing.TB) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.server.Serve(s.listener)
	}()
	t.Cleanup(func() {
		s.server.Stop()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Errorf("timeout waiting for bufconn server to stop")
		}
	})
}

// Dial returns a client connection to the in-memory server, closed when t finishes.
func (s *Service) Dial(t testing.TB, opts ...grpc.DialOption) *grpc.ClientConn {
	t.Helper()
	base := []grpc.DialOption{
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return s.listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	conn, err := grpc.NewClient("passthrough:///bufnet", append(base, opts...)...)
	if err != nil {
		t.Fatalf("dial bufconn: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}
