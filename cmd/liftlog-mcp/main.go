package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/clock"
	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/ids"
	liftmcp "github.com/claude/liftlog/internal/mcp"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/tracker"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	serverURL := flag.String("server", "", "LiftLog server URL; when set, queries go to its REST API")
	flag.Parse()

	// stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds liftmcp.DataSource
	if *serverURL != "" {
		ds = liftmcp.NewHTTPClient(*serverURL)
		log.Info("remote mode", "server", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		loc, err := clock.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Error("invalid timezone", "error", err)
			os.Exit(1)
		}

		ctx := context.Background()
		backend, err := storage.Open(ctx, cfg.StorageOptions())
		if err != nil {
			log.Error("failed to open storage", "error", err)
			os.Exit(1)
		}
		store := storage.NewStore(backend, log)
		defer store.Close()

		t := tracker.New(ctx, store, clock.System{Location: loc}, ids.UUID{}, log)
		ds = liftmcp.Local{T: t}
		log.Info("local mode", "storage", cfg.Storage.Driver)
	}

	s := liftmcp.New(ds, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}
