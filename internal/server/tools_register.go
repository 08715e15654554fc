package server

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	embedded "github.com/GHOST-LOVE-YOU/tdengine-mcp/tools"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/aggregate"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/analysis"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/catalog"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/data"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/diagnostics"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/guidance"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/query"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/schema"
)

// registerTools registers every enabled MCP tool. The server is a read-only
// gateway, so the readonly filter is always applied: a tool that is not
// annotated readonly never reaches the MCP server, whatever registered it.
func (s *TDengineMCPServer) registerTools() (int, error) {
	enabled := s.getEnabledTools()
	s.MCPServer.AddTools(enabled...)
	return len(enabled), nil
}

type toolFilter func(tools []ToolDefinition) []ToolDefinition

type toolCategory int

const (
	catalogCategory     toolCategory = 0
	schemaCategory      toolCategory = 1
	queryCategory       toolCategory = 2
	dataCategory        toolCategory = 3
	aggregateCategory   toolCategory = 4
	diagnosticsCategory toolCategory = 5
	analysisCategory    toolCategory = 6 // Composite orchestrator tools
	guidanceCategory    toolCategory = 7 // Config-based guidance tools
)

type ToolDefinition struct {
	category   toolCategory
	definition server.ServerTool
	readonly   bool
}

func (s *TDengineMCPServer) getEnabledTools() []server.ServerTool {
	// Every statement the server issues is a read; filtering on the
	// readonly annotation is unconditional rather than a config choice.
	filters := []toolFilter{filterWriteTools}

	deps := &tools.ToolDependencies{
		DBService:        s.dbService,
		AnalyticsService: s.anService,
	}
	toolDefs := s.getAllToolsDefs(deps)

	for _, filter := range filters {
		toolDefs = filter(toolDefs)
	}
	enabledTools := make([]server.ServerTool, 0, len(toolDefs))
	for _, toolDef := range toolDefs {
		enabledTools = append(enabledTools, toolDef.definition)
	}
	return enabledTools
}

func filterWriteTools(tools []ToolDefinition) []ToolDefinition {
	readOnlyTools := make([]ToolDefinition, 0, len(tools))
	for _, t := range tools {
		if t.readonly {
			readOnlyTools = append(readOnlyTools, t)
		}
	}
	return readOnlyTools
}

// getAllToolsDefs returns all available tools with their specs and handlers
func (s *TDengineMCPServer) getAllToolsDefs(deps *tools.ToolDependencies) []ToolDefinition {
	toolDefs := []ToolDefinition{
		// Catalog Category/Section
		{
			category: catalogCategory,
			definition: server.ServerTool{
				Tool:    catalog.ListEnvironmentsSpec(),
				Handler: catalog.ListEnvironmentsHandler(deps),
			},
			readonly: true,
		},
		{
			category: catalogCategory,
			definition: server.ServerTool{
				Tool:    catalog.GetAllDbsSpec(),
				Handler: catalog.GetAllDbsHandler(deps),
			},
			readonly: true,
		},
		{
			category: catalogCategory,
			definition: server.ServerTool{
				Tool:    catalog.GetDbInfoSpec(),
				Handler: catalog.GetDbInfoHandler(deps),
			},
			readonly: true,
		},
		{
			category: catalogCategory,
			definition: server.ServerTool{
				Tool:    catalog.GetAllStablesSpec(),
				Handler: catalog.GetAllStablesHandler(deps),
			},
			readonly: true,
		},
		{
			category: catalogCategory,
			definition: server.ServerTool{
				Tool:    catalog.GetAllTablesSpec(),
				Handler: catalog.GetAllTablesHandler(deps),
			},
			readonly: true,
		},
		{
			category: catalogCategory,
			definition: server.ServerTool{
				Tool:    catalog.TestTableExistsSpec(),
				Handler: catalog.TestTableExistsHandler(deps),
			},
			readonly: true,
		},
		// Schema Category/Section
		{
			category: schemaCategory,
			definition: server.ServerTool{
				Tool:    schema.GetFieldInfosSpec(),
				Handler: schema.GetFieldInfosHandler(deps),
			},
			readonly: true,
		},
		{
			category: schemaCategory,
			definition: server.ServerTool{
				Tool:    schema.GetTagInfosSpec(),
				Handler: schema.GetTagInfosHandler(deps),
			},
			readonly: true,
		},
		// Raw Query Category/Section
		{
			category: queryCategory,
			definition: server.ServerTool{
				Tool:    query.QueryTaosDbDataSpec(),
				Handler: query.QueryTaosDbDataHandler(deps),
			},
			readonly: true,
		},
		// Data Retrieval Category/Section
		{
			category: dataCategory,
			definition: server.ServerTool{
				Tool:    data.GetLatestDataSpec(),
				Handler: data.GetLatestDataHandler(deps),
			},
			readonly: true,
		},
		{
			category: dataCategory,
			definition: server.ServerTool{
				Tool:    data.GetDataByTimeRangeSpec(),
				Handler: data.GetDataByTimeRangeHandler(deps),
			},
			readonly: true,
		},
		{
			category: dataCategory,
			definition: server.ServerTool{
				Tool:    data.GetTagValuesSpec(),
				Handler: data.GetTagValuesHandler(deps),
			},
			readonly: true,
		},
		// Aggregation Category/Section
		{
			category: aggregateCategory,
			definition: server.ServerTool{
				Tool:    aggregate.AggregateQuerySpec(),
				Handler: aggregate.AggregateQueryHandler(deps),
			},
			readonly: true,
		},
		// Diagnostics Category/Section
		{
			category: diagnosticsCategory,
			definition: server.ServerTool{
				Tool:    diagnostics.GetTableStatsSpec(),
				Handler: diagnostics.GetTableStatsHandler(deps),
			},
			readonly: true,
		},
		{
			category: diagnosticsCategory,
			definition: server.ServerTool{
				Tool:    diagnostics.CheckDataIntegritySpec(),
				Handler: diagnostics.CheckDataIntegrityHandler(deps),
			},
			readonly: true,
		},
		{
			category: diagnosticsCategory,
			definition: server.ServerTool{
				Tool:    diagnostics.AnalyzePerformanceSpec(),
				Handler: diagnostics.AnalyzePerformanceHandler(deps),
			},
			readonly: true,
		},
		// Composite Analysis Category/Section
		{
			category: analysisCategory,
			definition: server.ServerTool{
				Tool:    analysis.ComprehensiveStableAnalysisSpec(),
				Handler: analysis.ComprehensiveStableAnalysisHandler(deps),
			},
			readonly: true,
		},
		{
			category: analysisCategory,
			definition: server.ServerTool{
				Tool:    analysis.TimeSeriesDashboardDataSpec(),
				Handler: analysis.TimeSeriesDashboardDataHandler(deps),
			},
			readonly: true,
		},
	}

	// Load guidance recipes from the embedded config directory
	guidanceTools := s.loadGuidanceTools(deps)
	toolDefs = append(toolDefs, guidanceTools...)

	return toolDefs
}

// loadGuidanceTools loads tools from YAML recipes in tools/config/ directory
func (s *TDengineMCPServer) loadGuidanceTools(deps *tools.ToolDependencies) []ToolDefinition {
	guidance.EmbeddedFS = embedded.ConfigFiles
	registry := guidance.NewRecipeRegistry("tools/config")

	if err := registry.LoadRecipes(); err != nil {
		slog.Error("failed to load guidance recipes", "error", err)
		return []ToolDefinition{}
	}

	if registry.RecipeCount() == 0 {
		slog.Info("no guidance recipes found in config directory")
		return []ToolDefinition{}
	}

	slog.Info("loaded guidance recipes", "count", registry.RecipeCount())

	serverTools := registry.ServerTools(deps)
	toolDefs := make([]ToolDefinition, 0, len(serverTools))

	for _, serverTool := range serverTools {
		// Recipes are pure guidance; they never touch the database and
		// are always read-only.
		toolDef := ToolDefinition{
			category:   guidanceCategory,
			definition: serverTool,
			readonly:   true,
		}
		toolDefs = append(toolDefs, toolDef)
	}

	return toolDefs
}
