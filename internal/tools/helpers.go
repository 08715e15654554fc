package tools

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/taosql"
)

// Ready validates the shared dependencies and records the invocation. A
// non-nil return is the error result the handler must hand back unchanged.
func Ready(deps *ToolDependencies, toolName string) *mcp.CallToolResult {
	if deps.AnalyticsService == nil {
		errMessage := "analytics service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage)
	}
	if deps.DBService == nil {
		errMessage := "database service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage)
	}
	deps.AnalyticsService.EmitEvent(deps.AnalyticsService.NewToolsEvent(toolName))
	return nil
}

// FailureResult renders err as the structured {kind, message} error object
// promised to callers. Every failure crossing the tool boundary goes
// through here so no raw stack trace ever reaches the agent.
func FailureResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(database.MarshalError(err))
}

// ResolveDatabase picks the explicit db_name or the environment default and
// validates it as an identifier.
func ResolveDatabase(deps *ToolDependencies, environment, dbName string) (string, error) {
	if dbName == "" {
		dbName = deps.DBService.DefaultDatabase(environment)
	}
	return taosql.Identifier("database name", dbName)
}

// ResultText serializes a tabular result for the caller, degrading to an
// error result if serialization itself fails.
func ResultText(deps *ToolDependencies, result *database.TabularResult) *mcp.CallToolResult {
	response, err := deps.DBService.ResultToJSON(result)
	if err != nil {
		slog.Error("error formatting query results", "error", err)
		return FailureResult(err)
	}
	return mcp.NewToolResultText(response)
}
