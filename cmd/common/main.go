// Package main starts the common gRPC service process lifecycle.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	commoncmd "github.com/cyber-republic/go-grpc-adenine/internal/cmd/common"
	"github.com/cyber-republic/go-grpc-adenine/internal/platform/config"
)

func main() {
	cfg, err := commoncmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commoncmd.Run(ctx, cfg); err != nil {
		config.Exitf("failed to serve: %v", err)
	}
}
