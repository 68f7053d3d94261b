// Package main provides a CLI for generating and fetching Adenine API keys.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	commonctlcmd "github.com/cyber-republic/go-grpc-adenine/internal/cmd/commonctl"
	"github.com/cyber-republic/go-grpc-adenine/internal/platform/config"
)

func main() {
	cfg, err := commonctlcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commonctlcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
