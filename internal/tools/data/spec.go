// Package data implements the filtered retrieval tools: latest rows,
// time-range windows and tag-value distributions.
package data

import "github.com/mark3labs/mcp-go/mcp"

// GetLatestDataInput names the stable or table whose newest rows are
// fetched. Exactly one of stable_name and table_name must be given.
type GetLatestDataInput struct {
	Environment string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName      string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
	StableName  string `json:"stable_name,omitempty" jsonschema:"description=The name of the stable to read from"`
	TableName   string `json:"table_name,omitempty" jsonschema:"description=The name of the table to read from, as an alternative to stable_name"`
	Limit       int    `json:"limit,omitempty" jsonschema:"description=The number of latest records to retrieve. Default is 10"`
}

// GetDataByTimeRangeInput carries a half-open time window [start_time,
// end_time) over the target's timestamp column.
type GetDataByTimeRangeInput struct {
	Environment string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName      string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
	StableName  string `json:"stable_name,omitempty" jsonschema:"description=The name of the stable to read from"`
	TableName   string `json:"table_name,omitempty" jsonschema:"description=The name of the table to read from, as an alternative to stable_name"`
	StartTime   string `json:"start_time" jsonschema:"description=Start time (inclusive) in format 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'"`
	EndTime     string `json:"end_time" jsonschema:"description=End time (exclusive) in format 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'"`
	Limit       int    `json:"limit,omitempty" jsonschema:"description=Maximum number of records to retrieve. Defaults to the server-wide row cap"`
}

// GetTagValuesInput names the tag whose distinct values are listed.
type GetTagValuesInput struct {
	Environment string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName      string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
	StableName  string `json:"stable_name" jsonschema:"description=The name of the stable"`
	TagName     string `json:"tag_name" jsonschema:"description=The name of the tag"`
	Limit       int    `json:"limit,omitempty" jsonschema:"description=Maximum number of unique tag values. Default is 100"`
}

func GetLatestDataSpec() mcp.Tool {
	return mcp.NewTool("get_latest_data",
		mcp.WithDescription("Get the most recent records from a stable or table, ordered by timestamp descending."),
		mcp.WithInputSchema[GetLatestDataInput](),
		mcp.WithTitleAnnotation("Get Latest Data"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func GetDataByTimeRangeSpec() mcp.Tool {
	return mcp.NewTool("get_data_by_time_range",
		mcp.WithDescription("Get records within a half-open time window: rows with start_time <= ts < end_time, ordered by timestamp. An identical start and end is a valid empty window; a start after the end is rejected."),
		mcp.WithInputSchema[GetDataByTimeRangeInput](),
		mcp.WithTitleAnnotation("Get Data By Time Range"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func GetTagValuesSpec() mcp.Tool {
	return mcp.NewTool("get_tag_values",
		mcp.WithDescription("Get the distinct values of a tag across a stable's sub-tables, e.g. every device location. Useful before grouping an aggregate query by that tag."),
		mcp.WithInputSchema[GetTagValuesInput](),
		mcp.WithTitleAnnotation("Get Tag Values"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
