package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/taosql"
)

const (
	databaseResourceURI = "taos://database"
	schemasResourceURI  = "taos://schemas"
)

// registerResources exposes the default environment's catalog as MCP
// resources: the database list as plain text and the super-table schemas as
// a JSON document.
func (s *TDengineMCPServer) registerResources() {
	s.MCPServer.AddResource(
		mcp.NewResource(
			databaseResourceURI,
			"databases",
			mcp.WithResourceDescription("List of databases on the default TDengine environment"),
			mcp.WithMIMEType("text/plain"),
		),
		s.readDatabasesResource,
	)

	s.MCPServer.AddResource(
		mcp.NewResource(
			schemasResourceURI,
			"schemas",
			mcp.WithResourceDescription("Column schemas of every super table in the default database"),
			mcp.WithMIMEType("application/json"),
		),
		s.readSchemasResource,
	)
}

func (s *TDengineMCPServer) readDatabasesResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	result, err := s.dbService.Execute(ctx, database.QueryRequest{SQL: "SHOW DATABASES"})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(result.Data))
	for _, row := range result.Data {
		if len(row) == 0 {
			continue
		}
		names = append(names, fmt.Sprintf("%v", row[0]))
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      databaseResourceURI,
			MIMEType: "text/plain",
			Text:     strings.Join(names, "\n"),
		},
	}, nil
}

// readSchemasResource describes every super table of the default database
// and merges the results into one document keyed by super-table name. A
// stable that fails to describe is skipped rather than failing the whole
// resource.
func (s *TDengineMCPServer) readSchemasResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	dbName := s.dbService.DefaultDatabase("")
	db, err := taosql.Identifier("database name", dbName)
	if err != nil {
		return nil, err
	}

	stables, err := s.dbService.Execute(ctx, database.QueryRequest{
		SQL: fmt.Sprintf("SHOW %s.STABLES", db),
	})
	if err != nil {
		return nil, err
	}

	schemas := make(map[string][]map[string]any)
	for _, row := range stables.Data {
		if len(row) == 0 {
			continue
		}
		stableName := fmt.Sprintf("%v", row[0])
		target, err := taosql.QualifiedTable(db, stableName)
		if err != nil {
			slog.Warn("skipping stable with unusable name", "stable", stableName)
			continue
		}

		described, err := s.dbService.Execute(ctx, database.QueryRequest{
			SQL: fmt.Sprintf("DESCRIBE %s", target),
		})
		if err != nil {
			slog.Warn("failed to describe stable", "stable", stableName, "error", err)
			continue
		}

		columns := make([]map[string]any, 0, len(described.Data))
		for _, col := range described.Data {
			entry := make(map[string]any, len(described.Head))
			for i, name := range described.Head {
				if i < len(col) {
					entry[name] = col[i]
				}
			}
			columns = append(columns, entry)
		}
		schemas[stableName] = columns
	}

	out, err := json.Marshal(schemas)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize schemas: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      schemasResourceURI,
			MIMEType: "application/json",
			Text:     string(out),
		},
	}, nil
}
