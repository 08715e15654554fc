// Package aggregate implements the downsampling aggregate query tool.
package aggregate

import "github.com/mark3labs/mcp-go/mcp"

// AggregateQueryInput describes one aggregation over a stable or table.
type AggregateQueryInput struct {
	Environment string   `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName      string   `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
	StableName  string   `json:"stable_name,omitempty" jsonschema:"description=The name of the stable to aggregate over"`
	TableName   string   `json:"table_name,omitempty" jsonschema:"description=The name of the table to aggregate over, as an alternative to stable_name"`
	AggFunction string   `json:"agg_function" jsonschema:"description=Aggregation function: avg, sum, min, max, count, first, last, spread or stddev"`
	ColumnName  string   `json:"column_name" jsonschema:"description=The column the aggregation function applies to"`
	Interval    string   `json:"interval,omitempty" jsonschema:"description=Downsampling interval such as '10m' or '1h'. Units: s, m, h, d. Omit for a single overall value"`
	GroupByTags []string `json:"group_by_tags,omitempty" jsonschema:"description=Tag names to group the aggregation by"`
	StartTime   string   `json:"start_time,omitempty" jsonschema:"description=Start time filter (inclusive) in format 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'"`
	EndTime     string   `json:"end_time,omitempty" jsonschema:"description=End time filter (exclusive) in format 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'"`
}

func AggregateQuerySpec() mcp.Tool {
	return mcp.NewTool("aggregate_query",
		mcp.WithDescription("Run an aggregation (avg, sum, min, max, count, first, last, spread, stddev) over a column, optionally downsampled into time buckets with INTERVAL and grouped by tags with PARTITION BY. With an interval, each row carries the bucket's window start timestamp."),
		mcp.WithInputSchema[AggregateQueryInput](),
		mcp.WithTitleAnnotation("Aggregate Query"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
