// Package query implements the raw read-only SQL passthrough tool. The
// statement still crosses the policy validator and the row bound like every
// templated query, so "raw" means free-form, not unguarded.
package query

import "github.com/mark3labs/mcp-go/mcp"

// QueryTaosDbDataInput carries a caller-authored read-only statement.
type QueryTaosDbDataInput struct {
	Environment string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName      string `json:"db_name,omitempty" jsonschema:"description=The database to execute against. Default is the environment's configured database"`
	SQL         string `json:"sql" jsonschema:"description=The SQL statement to execute. Only SELECT / SHOW / DESCRIBE statements are accepted"`
	Limit       int    `json:"limit,omitempty" jsonschema:"description=Maximum rows to return. Defaults to the server-wide row cap"`
}

func QueryTaosDbDataSpec() mcp.Tool {
	return mcp.NewTool("query_taos_db_data",
		mcp.WithDescription("Execute a read-only SQL statement (SELECT, SHOW, DESCRIBE) against TDengine and return the tabular result. Mutating statements are rejected before reaching the database. Results are capped at the configured row limit."),
		mcp.WithInputSchema[QueryTaosDbDataInput](),
		mcp.WithTitleAnnotation("Query TDengine Data"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
