package server

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("GEODIN_HTTP_ADDR", "")
	t.Setenv("GEODIN_DB_PATH", "")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("http addr = %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "geodin.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
}

func TestParseConfigEnvironment(t *testing.T) {
	t.Setenv("GEODIN_HTTP_ADDR", ":9999")
	t.Setenv("GEODIN_DB_PATH", "/var/lib/geodin/geodin.db")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("http addr = %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "/var/lib/geodin/geodin.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
}

func TestParseConfigFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("GEODIN_HTTP_ADDR", ":9999")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", ":8081"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != ":8081" {
		t.Fatalf("http addr = %q", cfg.HTTPAddr)
	}
}
