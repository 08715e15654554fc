package data

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/taosql"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools"
)

const defaultLatestLimit = 10

const defaultTagValuesLimit = 100

// GetLatestDataHandler returns a handler for get_latest_data.
func GetLatestDataHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "get_latest_data"); errResult != nil {
			return errResult, nil
		}
		var args GetLatestDataInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		target, err := readTarget(deps, args.Environment, args.DbName, args.StableName, args.TableName)
		if err != nil {
			return tools.FailureResult(err), nil
		}
		limit := args.Limit
		if limit <= 0 {
			limit = defaultLatestLimit
		}

		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			SQL:         fmt.Sprintf("SELECT * FROM %s ORDER BY ts DESC LIMIT %d", target, limit),
		})
		if err != nil {
			slog.Error("error fetching latest data", "target", target, "error", err)
			return tools.FailureResult(err), nil
		}
		return tools.ResultText(deps, result), nil
	}
}

// GetDataByTimeRangeHandler returns a handler for get_data_by_time_range.
func GetDataByTimeRangeHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "get_data_by_time_range"); errResult != nil {
			return errResult, nil
		}
		var args GetDataByTimeRangeInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		target, err := readTarget(deps, args.Environment, args.DbName, args.StableName, args.TableName)
		if err != nil {
			return tools.FailureResult(err), nil
		}
		window, err := taosql.ParseTimeRange(args.StartTime, args.EndTime)
		if err != nil {
			return tools.FailureResult(err), nil
		}

		sql := fmt.Sprintf("SELECT * FROM %s WHERE %s ORDER BY ts", target, window.SQL("ts"))
		if args.Limit > 0 {
			sql = fmt.Sprintf("%s LIMIT %d", sql, args.Limit)
		}

		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			SQL:         sql,
		})
		if err != nil {
			slog.Error("error fetching ranged data", "target", target, "error", err)
			return tools.FailureResult(err), nil
		}
		return tools.ResultText(deps, result), nil
	}
}

// GetTagValuesHandler returns a handler for get_tag_values.
func GetTagValuesHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "get_tag_values"); errResult != nil {
			return errResult, nil
		}
		var args GetTagValuesInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		target, err := readTarget(deps, args.Environment, args.DbName, args.StableName, "")
		if err != nil {
			return tools.FailureResult(err), nil
		}
		tagName, err := taosql.Identifier("tag name", args.TagName)
		if err != nil {
			return tools.FailureResult(err), nil
		}
		limit := args.Limit
		if limit <= 0 {
			limit = defaultTagValuesLimit
		}

		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			SQL:         fmt.Sprintf("SELECT DISTINCT %s FROM %s LIMIT %d", tagName, target, limit),
		})
		if err != nil {
			slog.Error("error fetching tag values", "target", target, "tag_name", tagName, "error", err)
			return tools.FailureResult(err), nil
		}
		return tools.ResultText(deps, result), nil
	}
}

// readTarget resolves the database and picks the stable or table reference,
// validating each part as an identifier. Exactly one of stableName and
// tableName must be non-empty.
func readTarget(deps *tools.ToolDependencies, environment, dbName, stableName, tableName string) (string, error) {
	name := stableName
	switch {
	case stableName == "" && tableName == "":
		return "", database.NewError(database.KindValidationRejected,
			"either stable_name or table_name must be specified")
	case stableName != "" && tableName != "":
		return "", database.NewError(database.KindValidationRejected,
			"stable_name and table_name are mutually exclusive")
	case tableName != "":
		name = tableName
	}
	db, err := tools.ResolveDatabase(deps, environment, dbName)
	if err != nil {
		return "", err
	}
	return taosql.QualifiedTable(db, name)
}
