// Package server wires the tool, resource and prompt surfaces onto an MCP
// server and serves them over stdio or streamable HTTP.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/analytics"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/config"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
)

const (
	serverName      = "tdengine-mcp"
	shutdownTimeout = 10 * time.Second
)

// TDengineMCPServer bundles the MCP server with the services every
// registered handler closes over.
type TDengineMCPServer struct {
	config    *config.Config
	dbService database.Service
	anService analytics.Service

	MCPServer *server.MCPServer
}

// New builds the MCP server and registers every tool, resource and prompt.
// The returned server is ready to serve on either transport.
func New(cfg *config.Config, dbService database.Service, anService analytics.Service, version string) (*TDengineMCPServer, error) {
	s := &TDengineMCPServer{
		config:    cfg,
		dbService: dbService,
		anService: anService,
		MCPServer: server.NewMCPServer(
			serverName,
			version,
			server.WithToolCapabilities(true),
			server.WithResourceCapabilities(false, false),
			server.WithPromptCapabilities(false),
		),
	}

	toolCount, err := s.registerTools()
	if err != nil {
		return nil, err
	}
	s.registerResources()
	s.registerPrompts()

	if s.anService != nil {
		s.anService.EmitEvent(s.anService.NewStartupEvent(analytics.StartupEventInfo{
			Version:      version,
			Transport:    cfg.Transport,
			Environments: len(cfg.Environments),
			ToolCount:    toolCount,
		}))
	}
	return s, nil
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout. All logging
// goes to stderr; stdout carries only protocol frames.
func (s *TDengineMCPServer) ServeStdio() error {
	slog.Info("serving MCP over stdio")
	return server.ServeStdio(s.MCPServer)
}

// ServeHTTP serves the streamable-HTTP transport on the configured address
// until ctx is cancelled, then shuts the listener down gracefully.
func (s *TDengineMCPServer) ServeHTTP(ctx context.Context, addr string) error {
	httpServer := server.NewStreamableHTTPServer(s.MCPServer)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving MCP over streamable HTTP", "addr", addr)
		errCh <- httpServer.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
