// Package server wires the common service runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	commonpb "github.com/cyber-republic/go-grpc-adenine/api/gen/go/common"
	"github.com/cyber-republic/go-grpc-adenine/internal/api/grpc/interceptors"
	grpcmeta "github.com/cyber-republic/go-grpc-adenine/internal/api/grpc/metadata"
	"github.com/cyber-republic/go-grpc-adenine/internal/platform/config"
	platformgrpc "github.com/cyber-republic/go-grpc-adenine/internal/platform/grpc"
	"github.com/cyber-republic/go-grpc-adenine/internal/platform/metrics"
	commonservice "github.com/cyber-republic/go-grpc-adenine/internal/services/common/api/grpc/common"
	"github.com/cyber-republic/go-grpc-adenine/internal/services/common/envelope"
	commonsqlite "github.com/cyber-republic/go-grpc-adenine/internal/services/common/storage/sqlite"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Options configures a common server. Zero values fall back to defaults.
type Options struct {
	// Addr is the gRPC listen address.
	Addr string
	// DBPath locates the API key database. Only used with a shared secret.
	DBPath string
	// SharedSecret enables the keyring implementation. Empty serves the
	// unimplemented default.
	SharedSecret string
	// TokenTTL is the lifetime of response tokens.
	TokenTTL time.Duration
	// MetricsAddr enables the Prometheus endpoint when set.
	MetricsAddr string
	// RateLimit is the allowed calls per second. Zero disables limiting.
	RateLimit float64
	RateBurst int
	Logger    *zap.Logger
}

type serverEnv struct {
	DBPath       string        `env:"ADENINE_COMMON_DB_PATH"`
	SharedSecret string        `env:"ADENINE_SHARED_SECRET"`
	TokenTTL     time.Duration `env:"ADENINE_TOKEN_TTL" envDefault:"30s"`
	MetricsAddr  string        `env:"ADENINE_METRICS_ADDR"`
	RateLimit    float64       `env:"ADENINE_RATE_LIMIT"`
	RateBurst    int           `env:"ADENINE_RATE_BURST" envDefault:"20"`
}

func loadServerEnv() (serverEnv, error) {
	var cfg serverEnv
	if err := config.ParseEnv(&cfg); err != nil {
		return serverEnv{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "common.db")
	}
	return cfg, nil
}

// Server hosts the common gRPC API and its storage lifecycle.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *commonsqlite.Store
	metrics    *metrics.Server
	logger     *zap.Logger
	keyring    bool
}

// New creates a server listening on port, configured from the environment.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a server for addr, configured from the environment.
func NewWithAddr(addr string) (*Server, error) {
	env, err := loadServerEnv()
	if err != nil {
		return nil, err
	}
	return NewWithOptions(Options{
		Addr:         addr,
		DBPath:       env.DBPath,
		SharedSecret: env.SharedSecret,
		TokenTTL:     env.TokenTTL,
		MetricsAddr:  env.MetricsAddr,
		RateLimit:    env.RateLimit,
		RateBurst:    env.RateBurst,
	})
}

// NewWithOptions creates a server from explicit options.
func NewWithOptions(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}
	listener, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", opts.Addr, err)
	}

	s := &Server{listener: listener, logger: logger}
	var impl commonpb.CommonServer
	if secret := strings.TrimSpace(opts.SharedSecret); secret != "" {
		env, err := envelope.New(secret, envelope.WithTTL(opts.TokenTTL))
		if err != nil {
			s.Close()
			return nil, err
		}
		store, err := openCommonStore(opts.DBPath)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.store = store
		s.keyring = true
		impl = commonservice.NewService(store, env)
	}

	if opts.MetricsAddr != "" {
		metricsServer, err := metrics.Listen(opts.MetricsAddr, nil, logger)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.metrics = metricsServer
	}

	s.grpcServer = grpc.NewServer(platformgrpc.DefaultServerOptions(
		grpcmeta.UnaryServerInterceptor(nil),
		interceptors.LoggingInterceptor(logger),
		interceptors.RateLimitInterceptor(opts.RateLimit, opts.RateBurst),
	)...)
	commonservice.Register(s.grpcServer, impl)
	s.health = health.NewServer()
	grpc_health_v1.RegisterHealthServer(s.grpcServer, s.health)
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(commonservice.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	platformgrpc.RegisterMetrics(s.grpcServer)

	return s, nil
}

// Addr returns the gRPC listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// MetricsAddr returns the metrics listener address, or "" when disabled.
func (s *Server) MetricsAddr() string {
	if s == nil {
		return ""
	}
	return s.metrics.Addr()
}

// Run creates and serves a common server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	mode := "unimplemented"
	if s.keyring {
		mode = "keyring"
	}
	s.logger.Info("common server listening", zap.String("addr", s.Addr()), zap.String("mode", mode))

	metricsCtx, stopMetrics := context.WithCancel(ctx)
	defer stopMetrics()
	metricsDone := make(chan error, 1)
	if s.metrics != nil {
		go func() {
			metricsDone <- s.metrics.Serve(metricsCtx)
		}()
	} else {
		metricsDone <- nil
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	var err error
	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		err = <-serveErr
	case err = <-serveErr:
	}
	stopMetrics()
	if metricsErr := <-metricsDone; metricsErr != nil {
		s.logger.Warn("metrics server stopped", zap.Error(metricsErr))
	}
	if err == nil || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return fmt.Errorf("serve gRPC: %w", err)
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("close common store", zap.Error(err))
		}
	}
}

func openCommonStore(path string) (*commonsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := commonsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open common sqlite store: %w", err)
	}
	return store, nil
}
