// Package main runs the Geodin import against the configured database.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	importercmd "github.com/lizardsystem/geodin/internal/cmd/importer"
	"github.com/lizardsystem/geodin/internal/platform/config"
)

func main() {
	cfg, err := importercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse config: %v", err)
	}
	log.SetPrefix("[IMPORTER] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := importercmd.Run(ctx, cfg); err != nil {
		log.Fatalf("import failed: %v", err)
	}
}
