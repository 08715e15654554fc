// Package schema implements the stable schema discovery tools: column and
// tag metadata.
package schema

import "github.com/mark3labs/mcp-go/mcp"

// GetFieldInfosInput names the stable whose columns are described.
type GetFieldInfosInput struct {
	Environment string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName      string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
	StableName  string `json:"stable_name" jsonschema:"description=The name of the stable"`
}

// GetTagInfosInput names the stable whose tags are described.
type GetTagInfosInput struct {
	Environment string `json:"environment,omitempty" jsonschema:"description=Named target environment. Default is the configured default environment"`
	DbName      string `json:"db_name,omitempty" jsonschema:"description=The database name. Default is the environment's configured database"`
	StableName  string `json:"stable_name" jsonschema:"description=The name of the stable"`
}

func GetFieldInfosSpec() mcp.Tool {
	return mcp.NewTool("get_field_infos",
		mcp.WithDescription("Get the column definitions (name, type, length, note) of a stable. Columns marked TAG in the note are tag columns shared by all of the stable's sub-tables."),
		mcp.WithInputSchema[GetFieldInfosInput](),
		mcp.WithTitleAnnotation("Get Field Infos"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func GetTagInfosSpec() mcp.Tool {
	return mcp.NewTool("get_tag_infos",
		mcp.WithDescription("Get the tag definitions of a stable. Tags label sub-tables (e.g. device id, location) and are what aggregate queries can group by."),
		mcp.WithInputSchema[GetTagInfosInput](),
		mcp.WithTitleAnnotation("Get Tag Infos"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
