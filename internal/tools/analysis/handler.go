package analysis

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
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/diagnostics"
)

const (
	defaultDaysBack        = 7
	defaultTimeRangeHours  = 24
	sampleRowLimit         = 5
	tagDistributionLimit   = 20
	dashboardTagLimit      = 50
	maxDashboardBuckets    = 10000
	dashboardTargetBuckets = 60
)

// ComprehensiveStableAnalysisHandler returns a handler for
// comprehensive_stable_analysis. The section sequence is fixed: schema,
// tags, performance, statistics, data integrity, sample data, recent
// activity, tag distribution. Lookback windows are evaluated server-side
// with NOW() so identical calls against unchanged data produce identical
// reports.
func ComprehensiveStableAnalysisHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "comprehensive_stable_analysis"); errResult != nil {
			return errResult, nil
		}
		var args ComprehensiveStableAnalysisInput
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

		includeSample := args.IncludeSampleData == nil || *args.IncludeSampleData
		daysBack := defaultDaysBack
		if args.DaysBack != nil {
			daysBack = *args.DaysBack
		}

		r := newReport(map[string]any{
			"stable_name":   args.StableName,
			"database_name": dbName,
		})

		run := func(environment, sql string) (*database.TabularResult, error) {
			return deps.DBService.Execute(ctx, database.QueryRequest{
				Environment: environment,
				SQL:         sql,
			})
		}

		// 1. Schema.
		var firstTag string
		if described, err := run(args.Environment, fmt.Sprintf("DESCRIBE %s", target)); err != nil {
			r.fail("schema", err)
		} else {
			r.set("schema", map[string]any{
				"columns":      described.Data,
				"column_count": len(described.Data),
			})
		}

		// 2. Tags. The first tag's name feeds the distribution section.
		if tagInfo, err := run(args.Environment, fmt.Sprintf("SHOW TAGS FROM %s", target)); err != nil {
			r.fail("tags", err)
		} else {
			r.set("tags", map[string]any{
				"tag_columns": tagInfo.Data,
				"tag_count":   len(tagInfo.Data),
			})
			firstTag = firstTagName(tagInfo)
		}

		// 3. Performance.
		if perf, err := diagnostics.StablePerformance(ctx, deps, args.Environment, dbName, args.StableName, target); err != nil {
			r.fail("performance", err)
		} else {
			r.set("performance", perf)
		}

		// 4. Statistics.
		if stats, err := run(args.Environment, fmt.Sprintf("SELECT COUNT(*) AS row_count FROM %s", target)); err != nil {
			r.fail("statistics", err)
		} else {
			r.set("statistics", stats)
		}

		// 5. Data integrity.
		if integrity, err := diagnostics.IntegritySummary(ctx, deps, args.Environment, target, true, false); err != nil {
			r.fail("data_integrity", err)
		} else {
			r.set("data_integrity", integrity)
		}

		// 6. Sample data.
		if includeSample {
			if sample, err := run(args.Environment,
				fmt.Sprintf("SELECT * FROM %s ORDER BY ts DESC LIMIT %d", target, sampleRowLimit)); err != nil {
				r.fail("sample_data", err)
			} else {
				r.set("sample_data", map[string]any{
					"latest_records": sample.Data,
					"sample_count":   len(sample.Data),
				})
			}
		}

		// 7. Recent activity over the lookback window.
		if daysBack > 0 {
			if recent, err := run(args.Environment,
				fmt.Sprintf("SELECT COUNT(*) AS recent_count FROM %s WHERE ts >= NOW() - %dd", target, daysBack)); err != nil {
				r.fail("recent_activity", err)
			} else {
				count := any(0)
				if value, ok := recent.Scalar(); ok {
					count = value
				}
				r.set("recent_activity", map[string]any{
					"days_analyzed":       daysBack,
					"recent_record_count": count,
				})
			}
		}

		// 8. Distribution of the first tag, when the stable has tags.
		if firstTag != "" {
			if values, err := run(args.Environment,
				fmt.Sprintf("SELECT DISTINCT %s FROM %s LIMIT %d", firstTag, target, tagDistributionLimit)); err != nil {
				r.fail("tag_distribution", err)
			} else {
				r.set("tag_distribution", map[string]any{
					"tag_name":      firstTag,
					"unique_values": values.Data,
					"unique_count":  len(values.Data),
				})
			}
		}

		out, err := json.Marshal(r.payload("analysis_status"))
		if err != nil {
			return tools.FailureResult(err), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// firstTagName pulls the tag name out of a SHOW TAGS result. The tag_name
// column sits fourth; older layouts put it first, so fall back to the first
// string cell that is a valid identifier.
func firstTagName(tagInfo *database.TabularResult) string {
	if tagInfo.Empty() {
		return ""
	}
	row := tagInfo.Data[0]
	for _, idx := range []int{3, 0} {
		if idx < len(row) {
			if name, ok := row[idx].(string); ok && taosql.ValidIdentifier(name) {
				return name
			}
		}
	}
	return ""
}

// TimeSeriesDashboardDataHandler returns a handler for
// time_series_dashboard_data.
func TimeSeriesDashboardDataHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if errResult := tools.Ready(deps, "time_series_dashboard_data"); errResult != nil {
			return errResult, nil
		}
		var args TimeSeriesDashboardDataInput
		if err := request.BindArguments(&args); err != nil {
			slog.Error("error binding arguments", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		if args.StableName == "" || args.MetricColumn == "" {
			errMessage := "stable_name and metric_column parameters are required"
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

		hours := args.TimeRangeHours
		if hours <= 0 {
			hours = defaultTimeRangeHours
		}
		span := time.Duration(hours) * time.Hour

		var interval taosql.Interval
		if args.IntervalMinutes > 0 {
			interval, err = taosql.ParseInterval(fmt.Sprintf("%dm", args.IntervalMinutes))
			if err != nil {
				return tools.FailureResult(err), nil
			}
		} else {
			interval = taosql.IntervalFor(span, dashboardTargetBuckets)
		}
		if buckets := interval.Buckets(span); buckets > maxDashboardBuckets {
			return tools.FailureResult(database.NewError(database.KindInvalidInterval,
				"interval %s over %dh implies %d buckets, more than the %d bucket cap",
				interval, hours, buckets, maxDashboardBuckets)), nil
		}

		var groupByTags []string
		if args.GroupByTag != "" {
			tag, err := taosql.Identifier("tag name", args.GroupByTag)
			if err != nil {
				return tools.FailureResult(err), nil
			}
			groupByTags = []string{tag}
		}

		window := fmt.Sprintf("%dh", hours)
		r := newReport(map[string]any{
			"stable_name":      args.StableName,
			"database_name":    dbName,
			"metric_column":    args.MetricColumn,
			"time_range_hours": hours,
			"interval":         interval.String(),
			"group_by_tag":     args.GroupByTag,
		})

		series := func(section, fn string, bucketed bool) {
			spec := taosql.AggregateSpec{
				Target:         target,
				Function:       fn,
				Column:         args.MetricColumn,
				GroupByTags:    groupByTags,
				RelativeWindow: window,
			}
			if bucketed {
				spec.Interval = &interval
			}
			sql, err := taosql.BuildAggregateQuery(spec)
			if err != nil {
				r.fail(section, err)
				return
			}
			result, err := deps.DBService.Execute(ctx, database.QueryRequest{
				Environment: args.Environment,
				SQL:         sql,
			})
			if err != nil {
				r.fail(section, err)
				return
			}
			r.set(section, result)
		}

		series("avg_time_series", "avg", true)
		series("max_time_series", "max", true)
		series("min_time_series", "min", true)
		series("overall_average", "avg", false)
		series("overall_count", "count", false)

		if latest, err := deps.DBService.Execute(ctx, database.QueryRequest{
			Environment: args.Environment,
			SQL:         fmt.Sprintf("SELECT * FROM %s ORDER BY ts DESC LIMIT 1", target),
		}); err != nil {
			r.fail("latest_value", err)
		} else {
			r.set("latest_value", latest)
		}

		if args.GroupByTag != "" {
			if values, err := deps.DBService.Execute(ctx, database.QueryRequest{
				Environment: args.Environment,
				SQL: fmt.Sprintf("SELECT DISTINCT %s FROM %s LIMIT %d",
					groupByTags[0], target, dashboardTagLimit),
			}); err != nil {
				r.fail("tag_distribution", err)
			} else {
				r.set("tag_distribution", values)
			}
		}

		out, err := json.Marshal(r.payload("analysis_status"))
		if err != nil {
			return tools.FailureResult(err), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}
