package guidance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools"
)

// NewRecipeHandler creates a handler function for a guidance recipe. Recipe
// tools never touch the database: they hand back the enriched description.
func NewRecipeHandler(config *RecipeConfig, deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if deps.AnalyticsService != nil {
			deps.AnalyticsService.EmitEvent(
				deps.AnalyticsService.NewToolsEvent(config.Name),
			)
		}

		slog.Info("guidance recipe called", "recipe", config.Name, "category", config.Category)

		return mcp.NewToolResultText(buildEnrichedDescription(config)), nil
	}
}

// buildEnrichedDescription renders every semantic field of the recipe into
// one guidance document.
func buildEnrichedDescription(config *RecipeConfig) string {
	var sb strings.Builder

	sb.WriteString(config.Description)

	if config.Intent != "" {
		sb.WriteString("\n\n## Intent\n")
		sb.WriteString(config.Intent)
	}

	if len(config.ExpectedFindings) > 0 {
		sb.WriteString("\n\n## Expected Findings\n")
		for _, f := range config.ExpectedFindings {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", f.Subject, f.Signal))
			if len(f.Columns) > 0 {
				sb.WriteString(fmt.Sprintf("  Columns: %v\n", f.Columns))
			}
		}
	}

	if config.ReferenceSQL != "" {
		sb.WriteString("\n\n## Reference SQL\n```sql\n")
		sb.WriteString(config.ReferenceSQL)
		sb.WriteString("\n```\n")
	}

	if config.ReferenceSchema != nil {
		sb.WriteString("\n\n## Reference Schema\n")
		if len(config.ReferenceSchema.Stables) > 0 {
			sb.WriteString(fmt.Sprintf("- Stables: %v\n", config.ReferenceSchema.Stables))
		}
		if len(config.ReferenceSchema.Columns) > 0 {
			sb.WriteString(fmt.Sprintf("- Columns: %v\n", config.ReferenceSchema.Columns))
		}
		if len(config.ReferenceSchema.Tags) > 0 {
			sb.WriteString(fmt.Sprintf("- Tags: %v\n", config.ReferenceSchema.Tags))
		}
	}

	if len(config.Parameters) > 0 {
		sb.WriteString("\n\n## Parameters\n")
		for _, p := range config.Parameters {
			sb.WriteString(fmt.Sprintf("- `%s` (%s)", p.Name, p.Type))
			if p.Default != nil {
				sb.WriteString(fmt.Sprintf(" [default: %v]", p.Default))
			}
			if p.Description != "" {
				sb.WriteString(fmt.Sprintf(": %s", p.Description))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
