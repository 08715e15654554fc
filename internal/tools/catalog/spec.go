// Package catalog implements the discovery tools: environments, databases,
// stables, sub-tables and existence checks.
package catalog

import "github.com/mark3labs/mcp-go/mcp"

// ListEnvironmentsInput has no arguments; the struct exists so the tool
// schema is explicit about that.
type ListEnvironmentsInput struct{}

// GetAllDbsInput selects the target environment.
type GetAllDbsInput struct {
	Environment string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
}

// GetDbInfoInput selects a database to describe.
type GetDbInfoInput struct {
	Environment string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName      string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
}

// GetAllStablesInput selects a database to enumerate stables in.
type GetAllStablesInput struct {
	Environment string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName      string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
}

// GetAllTablesInput optionally narrows the listing to one stable's
// sub-tables.
type GetAllTablesInput struct {
	Environment string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName      string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
	StableName  string `json:"stable_name,omitempty" jsonschema:"description=Restrict the listing to sub-tables of this stable"`
}

// TestTableExistsInput names the stable to probe for.
type TestTableExistsInput struct {
	Environment string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName      string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
	StableName  string `json:"stable_name" jsonschema:"description=The name of the stable to check for"`
}

func ListEnvironmentsSpec() mcp.Tool {
	return mcp.NewTool("list_environments",
		mcp.WithDescription("List the configured TDengine environments (e.g. local, production) and which one is the default. Every other tool accepts an optional 'environment' argument naming one of these."),
		mcp.WithInputSchema[ListEnvironmentsInput](),
		mcp.WithTitleAnnotation("List Environments"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

func GetAllDbsSpec() mcp.Tool {
	return mcp.NewTool("get_all_dbs",
		mcp.WithDescription("Get all databases visible in the target TDengine environment."),
		mcp.WithInputSchema[GetAllDbsInput](),
		mcp.WithTitleAnnotation("Get All Databases"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func GetDbInfoSpec() mcp.Tool {
	return mcp.NewTool("get_db_info",
		mcp.WithDescription("Get detailed information about a database including its configuration and retention settings."),
		mcp.WithInputSchema[GetDbInfoInput](),
		mcp.WithTitleAnnotation("Get Database Info"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func GetAllStablesSpec() mcp.Tool {
	return mcp.NewTool("get_all_stables",
		mcp.WithDescription("Get all stables (super tables) in a database. A stable is the schema template shared by many concrete sub-tables."),
		mcp.WithInputSchema[GetAllStablesInput](),
		mcp.WithTitleAnnotation("Get All Stables"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func GetAllTablesSpec() mcp.Tool {
	return mcp.NewTool("get_all_tables",
		mcp.WithDescription("Get all tables (sub-tables) in a database, optionally restricted to one stable's sub-tables."),
		mcp.WithInputSchema[GetAllTablesInput](),
		mcp.WithTitleAnnotation("Get All Tables"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func TestTableExistsSpec() mcp.Tool {
	return mcp.NewTool("test_table_exists",
		mcp.WithDescription("Check whether a stable exists in the target database. A missing stable is reported as {\"exists\": false}, not as an error."),
		mcp.WithInputSchema[TestTableExistsInput](),
		mcp.WithTitleAnnotation("Test Table Exists"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
