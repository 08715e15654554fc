package query

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools"
)

// QueryTaosDbDataHandler returns a handler for query_taos_db_data.
func QueryTaosDbDataHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "query_taos_db_data"); errResult != nil {
			return errResult, nil
		}
		var args QueryTaosDbDataInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		if args.SQL == "" {
			errMessage := "sql parameter is required"
			slog.Error(errMessage)
			return mcp.NewToolResultError(errMessage), nil
		}

		dbName, err := tools.ResolveDatabase(deps, args.Environment, args.DbName)
		if err != nil {
			return tools.FailureResult(err), nil
		}

		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			Database:    dbName,
			SQL:         args.SQL,
			Limit:       args.Limit,
		})
		if err != nil {
			slog.Error("error executing query", "error", err)
			return tools.FailureResult(err), nil
		}
		return tools.ResultText(deps, result), nil
	}
}
