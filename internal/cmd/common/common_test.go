package common

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("common", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8001 {
		t.Fatalf("port = %d, want 8001", cfg.Port)
	}
}

func TestParseConfigEnvThenFlags(t *testing.T) {
	t.Setenv("ADENINE_COMMON_PORT", "9100")

	cfg, err := ParseConfig(flag.NewFlagSet("common", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9100 {
		t.Fatalf("env port = %d, want 9100", cfg.Port)
	}

	cfg, err = ParseConfig(flag.NewFlagSet("common", flag.ContinueOnError), []string{"-port", "9200"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9200 {
		t.Fatalf("flag port = %d, want 9200", cfg.Port)
	}
}

func TestParseConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("ADENINE_COMMON_PORT", "eighty")
	if _, err := ParseConfig(flag.NewFlagSet("common", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected env parse error")
	}
}
