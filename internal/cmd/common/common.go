// Package common parses common service flags and launches the service.
package common

import (
	"context"
	"flag"

	entrypoint "github.com/cyber-republic/go-grpc-adenine/internal/platform/cmd"
	server "github.com/cyber-republic/go-grpc-adenine/internal/services/common/app"
)

// Config holds common command configuration.
type Config struct {
	Port int `env:"ADENINE_COMMON_PORT" envDefault:"8001"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The common gRPC server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the common gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCommon, func(ctx context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
