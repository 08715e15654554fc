package diagnostics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/taosql"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools"
)

// ProbeUnavailable marks a diagnostic slot whose query failed. The summary
// still completes with the remaining probes.
const ProbeUnavailable = "unavailable"

const duplicateSampleLimit = 10

// GetTableStatsHandler returns a handler for get_table_stats.
func GetTableStatsHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "get_table_stats"); errResult != nil {
			return errResult, nil
		}
		var args GetTableStatsInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		dbName, err := tools.ResolveDatabase(deps, args.Environment, args.DbName)
		if err != nil {
			return tools.FailureResult(err), nil
		}

		var sql string
		switch {
		case args.TableName != "":
			target, err := taosql.QualifiedTable(dbName, args.TableName)
			if err != nil {
				return tools.FailureResult(err), nil
			}
			sql = fmt.Sprintf("SELECT COUNT(*) AS row_count FROM %s", target)
		case args.StableName != "":
			target, err := taosql.QualifiedTable(dbName, args.StableName)
			if err != nil {
				return tools.FailureResult(err), nil
			}
			sql = fmt.Sprintf("SELECT COUNT(*) AS row_count FROM %s", target)
		default:
			sql = fmt.Sprintf(
				"SELECT stable_name, COUNT(*) AS table_count FROM information_schema.ins_tables WHERE db_name = %s GROUP BY stable_name",
				taosql.QuoteLiteral(dbName))
		}

		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			SQL:         sql,
		})
		if err != nil {
			slog.Error("error fetching table stats", "db_name", dbName, "error", err)
			return tools.FailureResult(err), nil
		}
		return tools.ResultText(deps, result), nil
	}
}

// CheckDataIntegrityHandler returns a handler for check_data_integrity.
func CheckDataIntegrityHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "check_data_integrity"); errResult != nil {
			return errResult, nil
		}
		var args CheckDataIntegrityInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		if args.StableName == "" {
			errMessage := "stable_name parameter is required"
			slog.Error(errMessage)
			return mcp.NewToolResultError(errMessage), nil
		}

		dbName, err := tools.ResolveDatabase(deps, args.Environment, args.DbName)
		if err != nil {
			return tools.FailureResult(err), nil
		}
		target, err := taosql.QualifiedTable(dbName, args.StableName)
		if err != nil {
			return tools.FailureResult(err), nil
		}

		checkNulls := args.CheckNulls == nil || *args.CheckNulls
		summary, _ := IntegritySummary(ctx, deps, args.Environment, target, checkNulls, args.CheckDuplicates)
		summary["stable_name"] = args.StableName
		summary["db_name"] = dbName

		out, err := json.Marshal(summary)
		if err != nil {
			return tools.FailureResult(err), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// AnalyzePerformanceHandler returns a handler for analyze_performance.
func AnalyzePerformanceHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "analyze_performance"); errResult != nil {
			return errResult, nil
		}
		var args AnalyzePerformanceInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		dbName, err := tools.ResolveDatabase(deps, args.Environment, args.DbName)
		if err != nil {
			return tools.FailureResult(err), nil
		}

		var summary map[string]any
		if args.StableName != "" {
			target, err := taosql.QualifiedTable(dbName, args.StableName)
			if err != nil {
				return tools.FailureResult(err), nil
			}
			summary, _ = StablePerformance(ctx, deps, args.Environment, dbName, args.StableName, target)
			summary["stable_name"] = args.StableName
		} else {
			summary = databasePerformance(ctx, deps, args.Environment, dbName)
		}
		summary["db_name"] = dbName

		out, err := json.Marshal(summary)
		if err != nil {
			return tools.FailureResult(err), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// IntegritySummary runs the integrity probe sequence against target: total
// row count, optional per-column NULL counts and optional duplicate
// timestamps. Failed probes degrade to ProbeUnavailable; the returned error
// is non-nil only when every probe failed, so composite callers can mark the
// whole section down.
func IntegritySummary(ctx context.Context, deps *tools.ToolDependencies, environment, target string, checkNulls, checkDuplicates bool) (map[string]any, error) {
	summary := map[string]any{}
	var probes, failures int
	var firstErr error

	record := func(err error) {
		probes++
		if err != nil {
			failures++
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	total, err := deps.DBService.Execute(ctx, database.QueryRequest{
		Environment: environment,
		SQL:         fmt.Sprintf("SELECT COUNT(*) AS total_rows FROM %s", target),
	})
	record(err)
	if err != nil {
		slog.Warn("total rows probe failed", "target", target, "error", err)
		summary["total_rows"] = ProbeUnavailable
	} else if value, ok := total.Scalar(); ok {
		summary["total_rows"] = value
	} else {
		summary["total_rows"] = 0
	}

	if checkNulls {
		counts, err := nullCounts(ctx, deps, environment, target)
		record(err)
		if err != nil {
			summary["null_counts"] = ProbeUnavailable
		} else {
			summary["null_counts"] = counts
		}
	}

	if checkDuplicates {
		dupes, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: environment,
			SQL: fmt.Sprintf(
				"SELECT ts, COUNT(*) AS dup_count FROM %s GROUP BY ts HAVING COUNT(*) > 1 LIMIT %d",
				target, duplicateSampleLimit),
		})
		record(err)
		if err != nil {
			slog.Warn("duplicate timestamp probe failed", "target", target, "error", err)
			summary["duplicate_timestamps"] = ProbeUnavailable
		} else {
			summary["duplicate_timestamps"] = dupes.Data
		}
	}

	if probes > 0 && failures == probes {
		return summary, firstErr
	}
	return summary, nil
}

// nullCounts counts NULLs per non-timestamp column. A column whose probe
// fails is marked unavailable; a failed DESCRIBE fails the whole slot.
func nullCounts(ctx context.Context, deps *tools.ToolDependencies, environment, target string) (map[string]any, error) {
	described, err := deps.DBService.Execute(ctx, database.QueryRequest{
		Environment: environment,
		SQL:         fmt.Sprintf("DESCRIBE %s", target),
	})
	if err != nil {
		slog.Warn("describe probe failed", "target", target, "error", err)
		return nil, err
	}

	counts := map[string]any{}
	for _, row := range described.Data {
		if len(row) == 0 {
			continue
		}
		column, ok := row[0].(string)
		if !ok || column == "ts" || !taosql.ValidIdentifier(column) {
			continue
		}
		result, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: environment,
			SQL:         fmt.Sprintf("SELECT COUNT(*) AS null_count FROM %s WHERE %s IS NULL", target, column),
		})
		if err != nil {
			slog.Warn("null count probe failed", "target", target, "column", column, "error", err)
			counts[column] = ProbeUnavailable
			continue
		}
		if value, ok := result.Scalar(); ok {
			counts[column] = value
		} else {
			counts[column] = 0
		}
	}
	return counts, nil
}

// StablePerformance runs the per-stable performance probes: time range with
// a sampled latency, record count and sub-table count. Failed probes degrade
// to ProbeUnavailable; the returned error is non-nil only when every probe
// failed.
func StablePerformance(ctx context.Context, deps *tools.ToolDependencies, environment, dbName, stableName, target string) (map[string]any, error) {
	summary := map[string]any{}
	var failures int
	var firstErr error

	// The latency sample times the cheapest whole-stable scan probe.
	started := time.Now()
	timeRange, err := deps.DBService.Execute(ctx, database.QueryRequest{
		Environment: environment,
		SQL:         fmt.Sprintf("SELECT MIN(ts) AS min_time, MAX(ts) AS max_time FROM %s", target),
	})
	elapsed := time.Since(started)
	if err != nil {
		slog.Warn("time range probe failed", "target", target, "error", err)
		summary["time_range"] = ProbeUnavailable
		summary["query_latency_ms"] = ProbeUnavailable
		failures++
		firstErr = err
	} else {
		if timeRange.Empty() {
			summary["time_range"] = []any{nil, nil}
		} else {
			summary["time_range"] = timeRange.Data[0]
		}
		summary["query_latency_ms"] = elapsed.Milliseconds()
	}

	if total, err := deps.DBService.Execute(ctx, database.QueryRequest{
		Environment: environment,
		SQL:         fmt.Sprintf("SELECT COUNT(*) AS total_records FROM %s", target),
	}); err != nil {
		slog.Warn("record count probe failed", "target", target, "error", err)
		summary["total_records"] = ProbeUnavailable
		failures++
		if firstErr == nil {
			firstErr = err
		}
	} else if value, ok := total.Scalar(); ok {
		summary["total_records"] = value
	} else {
		summary["total_records"] = 0
	}

	if tables, err := deps.DBService.Execute(ctx, database.QueryRequest{
		Environment: environment,
		SQL: fmt.Sprintf(
			"SELECT COUNT(*) AS table_count FROM information_schema.ins_tables WHERE stable_name = %s AND db_name = %s",
			taosql.QuoteLiteral(stableName), taosql.QuoteLiteral(dbName)),
	}); err != nil {
		slog.Warn("table count probe failed", "target", target, "error", err)
		summary["table_count"] = ProbeUnavailable
		failures++
		if firstErr == nil {
			firstErr = err
		}
	} else if value, ok := tables.Scalar(); ok {
		summary["table_count"] = value
	} else {
		summary["table_count"] = 0
	}

	if failures == 3 {
		return summary, firstErr
	}
	return summary, nil
}

func databasePerformance(ctx context.Context, deps *tools.ToolDependencies, environment, dbName string) map[string]any {
	summary := map[string]any{}

	stables, err := deps.DBService.Execute(ctx, database.QueryRequest{
		Environment: environment,
		SQL: fmt.Sprintf(
			"SELECT stable_name, COUNT(*) AS table_count FROM information_schema.ins_tables WHERE db_name = %s GROUP BY stable_name",
			taosql.QuoteLiteral(dbName)),
	})
	if err != nil {
		slog.Warn("stables summary probe failed", "db_name", dbName, "error", err)
		summary["stables_summary"] = ProbeUnavailable
		return summary
	}
	summary["stables_summary"] = stables.Data
	return summary
}
