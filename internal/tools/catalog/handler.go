package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/taosql"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools"
)

// ListEnvironmentsHandler returns a handler for list_environments.
func ListEnvironmentsHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "list_environments"); errResult != nil {
			return errResult, nil
		}
		payload := struct {
			Environments []string `json:"environments"`
			Default      string   `json:"default"`
		}{
			Environments: deps.DBService.Environments(),
			Default:      deps.DBService.DefaultEnvironment(),
		}
		out, err := json.Marshal(payload)
		if err != nil {
			return tools.FailureResult(err), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// GetAllDbsHandler returns a handler for get_all_dbs.
func GetAllDbsHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "get_all_dbs"); errResult != nil {
			return errResult, nil
		}
		var args GetAllDbsInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			SQL:         "SHOW DATABASES",
		})
		if err != nil {
			slog.Error("error listing databases", "error", err)
			return tools.FailureResult(err), nil
		}
		return tools.ResultText(deps, result), nil
	}
}

// GetDbInfoHandler returns a handler for get_db_info.
func GetDbInfoHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "get_db_info"); errResult != nil {
			return errResult, nil
		}
		var args GetDbInfoInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		dbName := args.DbName
		if dbName == "" {
			dbName = deps.DBService.DefaultDatabase(args.Environment)
		}
		if _, err := taosql.Identifier("database name", dbName); err != nil {
			return tools.FailureResult(err), nil
		}

		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			SQL: fmt.Sprintf("SELECT * FROM information_schema.ins_databases WHERE name = %s",
				taosql.QuoteLiteral(dbName)),
		})
		if err != nil {
			slog.Error("error retrieving database info", "db_name", dbName, "error", err)
			return tools.FailureResult(err), nil
		}
		return tools.ResultText(deps, result), nil
	}
}

// GetAllStablesHandler returns a handler for get_all_stables.
func GetAllStablesHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "get_all_stables"); errResult != nil {
			return errResult, nil
		}
		var args GetAllStablesInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		dbName, err := tools.ResolveDatabase(deps, args.Environment, args.DbName)
		if err != nil {
			return tools.FailureResult(err), nil
		}

		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			SQL:         fmt.Sprintf("SHOW %s.STABLES", dbName),
		})
		if err != nil {
			slog.Error("error listing stables", "db_name", dbName, "error", err)
			return tools.FailureResult(err), nil
		}
		return tools.ResultText(deps, result), nil
	}
}

// GetAllTablesHandler returns a handler for get_all_tables.
func GetAllTablesHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "get_all_tables"); errResult != nil {
			return errResult, nil
		}
		var args GetAllTablesInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		dbName, err := tools.ResolveDatabase(deps, args.Environment, args.DbName)
		if err != nil {
			return tools.FailureResult(err), nil
		}

		sql := fmt.Sprintf("SHOW %s.TABLES", dbName)
		if args.StableName != "" {
			if _, err := taosql.Identifier("stable name", args.StableName); err != nil {
				return tools.FailureResult(err), nil
			}
			// Sub-tables of a stable share its name as prefix by TDengine
			// convention.
			sql = fmt.Sprintf("SHOW %s.TABLES LIKE %s", dbName, taosql.QuoteLiteral(args.StableName+"_%"))
		}

		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			SQL:         sql,
		})
		if err != nil {
			slog.Error("error listing tables", "db_name", dbName, "error", err)
			return tools.FailureResult(err), nil
		}
		return tools.ResultText(deps, result), nil
	}
}

// TestTableExistsHandler returns a handler for test_table_exists.
func TestTableExistsHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "test_table_exists"); errResult != nil {
			return errResult, nil
		}
		var args TestTableExistsInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		if args.StableName == "" {
			errMessage := "stable_name parameter is required"
			slog.Error(errMessage)
			return mcp.NewToolResultError(errMessage), nil
		}
		if _, err := taosql.Identifier("stable name", args.StableName); err != nil {
			return tools.FailureResult(err), nil
		}

		dbName, err := tools.ResolveDatabase(deps, args.Environment, args.DbName)
		if err != nil {
			return tools.FailureResult(err), nil
		}

		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			Database:    dbName,
			SQL:         fmt.Sprintf("SHOW STABLES LIKE %s", taosql.QuoteLiteral(args.StableName)),
		})
		if err != nil {
			slog.Error("error checking stable existence", "stable_name", args.StableName, "error", err)
			return tools.FailureResult(err), nil
		}

		// Zero rows means the stable is absent: a valid negative result.
		payload := struct {
			StableName string `json:"stable_name"`
			Exists     bool   `json:"exists"`
		}{StableName: args.StableName, Exists: !result.Empty()}

		out, err := json.Marshal(payload)
		if err != nil {
			return tools.FailureResult(err), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}
