package aggregate

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/taosql"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools"
)

// AggregateQueryHandler returns a handler for aggregate_query.
func AggregateQueryHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "aggregate_query"); errResult != nil {
			return errResult, nil
		}
		var args AggregateQueryInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		spec, err := buildSpec(deps, args)
		if err != nil {
			return tools.FailureResult(err), nil
		}
		sql, err := taosql.BuildAggregateQuery(spec)
		if err != nil {
			return tools.FailureResult(err), nil
		}

		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			SQL:         sql,
		})
		if err != nil {
			slog.Error("error executing aggregate query", "target", spec.Target, "error", err)
			return tools.FailureResult(err), nil
		}
		return tools.ResultText(deps, result), nil
	}
}

// buildSpec validates the arguments and assembles the builder spec. The
// builder re-validates identifiers; range and interval errors surface here
// so they never reach the database.
func buildSpec(deps *tools.ToolDependencies, args AggregateQueryInput) (taosql.AggregateSpec, error) {
	name := args.StableName
	switch {
	case args.StableName == "" && args.TableName == "":
		return taosql.AggregateSpec{}, database.NewError(database.KindValidationRejected,
			"either stable_name or table_name must be specified")
	case args.StableName != "" && args.TableName != "":
		return taosql.AggregateSpec{}, database.NewError(database.KindValidationRejected,
			"stable_name and table_name are mutually exclusive")
	case args.TableName != "":
		name = args.TableName
	}

	db, err := tools.ResolveDatabase(deps, args.Environment, args.DbName)
	if err != nil {
		return taosql.AggregateSpec{}, err
	}
	target, err := taosql.QualifiedTable(db, name)
	if err != nil {
		return taosql.AggregateSpec{}, err
	}

	spec := taosql.AggregateSpec{
		Target:      target,
		Function:    args.AggFunction,
		Column:      args.ColumnName,
		GroupByTags: args.GroupByTags,
	}

	if args.Interval != "" {
		interval, err := taosql.ParseInterval(args.Interval)
		if err != nil {
			return taosql.AggregateSpec{}, err
		}
		spec.Interval = &interval
	}

	switch {
	case args.StartTime != "" && args.EndTime != "":
		window, err := taosql.ParseTimeRange(args.StartTime, args.EndTime)
		if err != nil {
			return taosql.AggregateSpec{}, err
		}
		spec.Range = &window
	case args.StartTime != "" || args.EndTime != "":
		return taosql.AggregateSpec{}, database.NewError(database.KindInvalidRange,
			"start_time and end_time must be given together")
	}

	return spec, nil
}
