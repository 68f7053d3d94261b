// Package commonctl implements a command-line client for the common service.
package commonctl

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	entrypoint "github.com/cyber-republic/go-grpc-adenine/internal/platform/cmd"
	"github.com/cyber-republic/go-grpc-adenine/internal/platform/config"
	"github.com/cyber-republic/go-grpc-adenine/internal/platform/logging"
	"github.com/cyber-republic/go-grpc-adenine/internal/platform/timeouts"
	"github.com/cyber-republic/go-grpc-adenine/internal/services/common/client"
)

// Actions accepted as the first positional argument.
const (
	ActionGenerate = "generate"
	ActionGet      = "get"
)

// Config holds commonctl configuration.
type Config struct {
	Addr   string `env:"ADENINE_COMMON_ADDR" envDefault:"localhost:8001"`
	Secret string `env:"ADENINE_SHARED_SECRET"`
	DID    string `env:"ADENINE_DID"`
	Action string
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "common server address")
	fs.StringVar(&cfg.Secret, "secret", cfg.Secret, "shared secret used to sign requests")
	fs.StringVar(&cfg.DID, "did", cfg.DID, "caller DID")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 1 {
		return Config{}, fmt.Errorf("expected one action (%s or %s)", ActionGenerate, ActionGet)
	}
	cfg.Action = strings.ToLower(strings.TrimSpace(fs.Arg(0)))
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Action != ActionGenerate && c.Action != ActionGet {
		return fmt.Errorf("unknown action %q (valid actions: %s, %s)", c.Action, ActionGenerate, ActionGet)
	}
	return config.RequireValues(map[string]string{
		"addr":   c.Addr,
		"did":    c.DID,
		"secret": c.Secret,
	})
}

// Run executes the configured action and prints the result to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCommonCtl, func(ctx context.Context) error {
		return execute(ctx, cfg, out)
	})
}

func execute(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	conn, err := client.Dial(ctx, cfg.Addr, logging.FromContext(ctx))
	if err != nil {
		return err
	}
	defer conn.Close()
	c := client.New(conn)

	callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
	defer cancel()
	var result *client.Result
	switch cfg.Action {
	case ActionGenerate:
		result, err = c.GenerateAPIKey(callCtx, cfg.Secret, cfg.DID)
	case ActionGet:
		result, err = c.GetAPIKey(callCtx, cfg.Secret, cfg.DID)
	default:
		return errors.New("action is required")
	}
	if err != nil {
		return fmt.Errorf("%s api key: %w", cfg.Action, err)
	}

	fmt.Fprintf(out, "status: %t\n", result.Status)
	fmt.Fprintf(out, "message: %s\n", result.StatusMessage)
	if result.Status {
		fmt.Fprintf(out, "did: %s\n", result.DID)
		fmt.Fprintf(out, "api_key: %s\n", result.APIKey)
	}
	return nil
}
