// Command tdengine-mcp runs the read-only TDengine analytics gateway as an
// MCP server, over stdio or streamable HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/analytics"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/config"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/server"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to the TOML configuration file")
		transport  = flag.String("transport", "", "transport override: stdio or http")
		httpAddr   = flag.String("addr", "", "listen address override for the http transport")
		logLevel   = flag.String("log-level", "", "log level override: debug, info, warn or error")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if *transport != "" {
		cfg.Transport = *transport
	}
	if t := os.Getenv("TRANSPORT"); t != "" {
		cfg.Transport = t
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	setupLogging(cfg.LogLevel)

	registry := database.NewRegistry(cfg.DatabaseEnvironments(), database.RESTDialer())
	defer func() {
		if err := registry.Close(); err != nil {
			slog.Warn("closing connection pools", "error", err)
		}
	}()

	dbService := database.NewExecutor(registry, cfg.DefaultEnvironment)
	anService := analytics.NewService()

	s, err := server.New(cfg, dbService, anService, version)
	if err != nil {
		return fmt.Errorf("building MCP server: %w", err)
	}

	slog.Info("starting tdengine-mcp",
		"version", version,
		"transport", cfg.Transport,
		"environments", len(cfg.Environments),
		"default_environment", cfg.DefaultEnvironment,
	)

	switch cfg.Transport {
	case config.TransportHTTP:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return s.ServeHTTP(ctx, cfg.HTTPAddr)
	default:
		return s.ServeStdio()
	}
}

// setupLogging configures slog on stderr. Stdout is reserved for MCP
// protocol frames on the stdio transport.
func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
