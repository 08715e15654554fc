// Package diagnostics implements the integrity and performance probe tools.
// Each tool runs a small fixed sequence of queries; an individual probe
// failure degrades its slot in the summary instead of aborting the check.
package diagnostics

import "github.com/mark3labs/mcp-go/mcp"

// GetTableStatsInput selects the stats scope: one table, one stable, or
// every stable in the database.
type GetTableStatsInput struct {
	Environment string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName      string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
	StableName  string `json:"stable_name,omitempty" jsonschema:"description=If given, report stats for this stable"`
	TableName   string `json:"table_name,omitempty" jsonschema:"description=If given, report stats for this table"`
}

// CheckDataIntegrityInput configures the integrity probes for one stable.
type CheckDataIntegrityInput struct {
	Environment     string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName          string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
	StableName      string `json:"stable_name" jsonschema:"description=The name of the stable"`
	CheckNulls      *bool  `json:"check_nulls,omitempty" jsonschema:"description=Whether to count NULL values per column. Default is true"`
	CheckDuplicates bool   `json:"check_duplicates,omitempty" jsonschema:"description=Whether to look for duplicate timestamps. Default is false"`
}

// AnalyzePerformanceInput selects one stable, or the whole database when
// stable_name is omitted.
type AnalyzePerformanceInput struct {
	Environment string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName      string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
	StableName  string `json:"stable_name,omitempty" jsonschema:"description=The stable to analyze. Omit to summarize every stable in the database"`
}

func GetTableStatsSpec() mcp.Tool {
	return mcp.NewTool("get_table_stats",
		mcp.WithDescription("Get row-count statistics for a table, a stable, or every stable in a database."),
		mcp.WithInputSchema[GetTableStatsInput](),
		mcp.WithTitleAnnotation("Get Table Stats"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func CheckDataIntegritySpec() mcp.Tool {
	return mcp.NewTool("check_data_integrity",
		mcp.WithDescription("Check a stable for NULL values per column and optionally duplicate timestamps. Probes that cannot run report 'unavailable' instead of failing the whole check."),
		mcp.WithInputSchema[CheckDataIntegrityInput](),
		mcp.WithTitleAnnotation("Check Data Integrity"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func AnalyzePerformanceSpec() mcp.Tool {
	return mcp.NewTool("analyze_performance",
		mcp.WithDescription("Analyze a stable's data distribution: time range, record count, sub-table count and a sampled query latency. Without a stable, summarizes sub-table counts per stable."),
		mcp.WithInputSchema[AnalyzePerformanceInput](),
		mcp.WithTitleAnnotation("Analyze Performance"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
