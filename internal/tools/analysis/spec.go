// Package analysis implements the two composite tools. Each fans out to a
// fixed sequence of primitive queries, records every section independently
// and always assembles a full report: one failing section never aborts the
// others.
package analysis

import "github.com/mark3labs/mcp-go/mcp"

// ComprehensiveStableAnalysisInput configures the full stable report.
type ComprehensiveStableAnalysisInput struct {
	Environment       string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName            string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
	StableName        string `json:"stable_name" jsonschema:"description=The name of the stable to analyze"`
	IncludeSampleData *bool  `json:"include_sample_data,omitempty" jsonschema:"description=Whether to include a small sample of the latest rows. Default is true"`
	DaysBack          *int   `json:"days_back,omitempty" jsonschema:"description=Lookback window in days for the recent-activity section. Default is 7"`
}

// TimeSeriesDashboardDataInput configures the dashboard series report.
type TimeSeriesDashboardDataInput struct {
	Environment     string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName          string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
	StableName      string `json:"stable_name" jsonschema:"description=The name of the stable"`
	MetricColumn    string `json:"metric_column" jsonschema:"description=The measurement column the series are computed over"`
	TimeRangeHours  int    `json:"time_range_hours,omitempty" jsonschema:"description=Lookback window in hours. Default is 24"`
	IntervalMinutes int    `json:"interval_minutes,omitempty" jsonschema:"description=Bucket width in minutes. Omit to derive a sane interval from the window"`
	GroupByTag      string `json:"group_by_tag,omitempty" jsonschema:"description=Tag column to split the series by. Default is no grouping"`
}

func ComprehensiveStableAnalysisSpec() mcp.Tool {
	return mcp.NewTool("comprehensive_stable_analysis",
		mcp.WithDescription("Run a full analysis of one stable: schema, tags, performance, statistics, data integrity, a bounded sample of recent rows, recent activity over a lookback window and the distribution of the first tag. Sections that fail are reported as failure markers; the rest of the report still completes."),
		mcp.WithInputSchema[ComprehensiveStableAnalysisInput](),
		mcp.WithTitleAnnotation("Comprehensive Stable Analysis"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func TimeSeriesDashboardDataSpec() mcp.Tool {
	return mcp.NewTool("time_series_dashboard_data",
		mcp.WithDescription("Generate dashboard-ready series for one metric: avg/max/min downsampled over the lookback window, overall statistics, the latest value and optionally one series per tag value. Bucket width defaults to a sane interval for the window; configurations implying more than 10000 buckets are rejected."),
		mcp.WithInputSchema[TimeSeriesDashboardDataInput](),
		mcp.WithTitleAnnotation("Time Series Dashboard Data"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
