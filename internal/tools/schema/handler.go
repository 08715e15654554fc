package schema

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/taosql"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools"
)

// GetFieldInfosHandler returns a handler for get_field_infos.
func GetFieldInfosHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "get_field_infos"); errResult != nil {
			return errResult, nil
		}
		var args GetFieldInfosInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		target, err := describeTarget(deps, args.Environment, args.DbName, args.StableName)
		if err != nil {
			return tools.FailureResult(err), nil
		}

		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			SQL:         fmt.Sprintf("DESCRIBE %s", target),
		})
		if err != nil {
			slog.Error("error describing stable", "stable_name", args.StableName, "error", err)
			return tools.FailureResult(err), nil
		}
		return tools.ResultText(deps, result), nil
	}
}

// GetTagInfosHandler returns a handler for get_tag_infos.
func GetTagInfosHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "get_tag_infos"); errResult != nil {
			return errResult, nil
		}
		var args GetTagInfosInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		target, err := describeTarget(deps, args.Environment, args.DbName, args.StableName)
		if err != nil {
			return tools.FailureResult(err), nil
		}

		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			SQL:         fmt.Sprintf("SHOW TAGS FROM %s", target),
		})
		if err != nil {
			slog.Error("error listing tags", "stable_name", args.StableName, "error", err)
			return tools.FailureResult(err), nil
		}
		return tools.ResultText(deps, result), nil
	}
}

// describeTarget validates the stable name, resolves the database and
// renders the qualified db.stable target.
func describeTarget(deps *tools.ToolDependencies, environment, dbName, stableName string) (string, error) {
	if stableName == "" {
		return "", database.NewError(database.KindValidationRejected, "stable_name parameter is required")
	}
	if _, err := taosql.Identifier("stable name", stableName); err != nil {
		return "", err
	}
	db, err := tools.ResolveDatabase(deps, environment, dbName)
	if err != nil {
		return "", err
	}
	return taosql.QualifiedTable(db, stableName)
}
