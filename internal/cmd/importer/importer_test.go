package importer

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("GEODIN_DB_PATH", "")

	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "geodin.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
}

func TestParseConfigScopes(t *testing.T) {
	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-starting-point", "geodin-main",
		"-project", "p1",
	})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.StartingPoint != "geodin-main" {
		t.Fatalf("starting point = %q", cfg.StartingPoint)
	}
	if cfg.Project != "p1" {
		t.Fatalf("project = %q", cfg.Project)
	}
}

func TestParseConfigRegisterRequiresURL(t *testing.T) {
	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-register-name", "Geodin main API"}); err == nil {
		t.Fatal("expected error")
	}
}
