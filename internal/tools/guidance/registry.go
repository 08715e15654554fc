package guidance

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools"
)

// RecipeRegistry manages the loading and registration of guidance recipes.
type RecipeRegistry struct {
	configDir string
	configs   []*RecipeConfig
}

// NewRecipeRegistry creates a new recipe registry.
func NewRecipeRegistry(configDir string) *RecipeRegistry {
	return &RecipeRegistry{
		configDir: configDir,
		configs:   make([]*RecipeConfig, 0),
	}
}

// LoadRecipes loads all recipe definitions from the config directory.
func (r *RecipeRegistry) LoadRecipes() error {
	configs, err := WalkConfigDirectory(r.configDir)
	if err != nil {
		return fmt.Errorf("failed to load recipes from config directory: %w", err)
	}

	r.configs = configs
	slog.Info("loaded guidance recipes", "count", len(configs), "configDir", r.configDir)
	return nil
}

// RecipeCount returns the number of loaded recipes.
func (r *RecipeRegistry) RecipeCount() int {
	return len(r.configs)
}

// Recipes returns all loaded recipe definitions.
func (r *RecipeRegistry) Recipes() []*RecipeConfig {
	return r.configs
}

// ServerTools converts all loaded recipes into MCP server tools.
func (r *RecipeRegistry) ServerTools(deps *tools.ToolDependencies) []server.ServerTool {
	serverTools := make([]server.ServerTool, 0, len(r.configs))
	for _, config := range r.configs {
		serverTools = append(serverTools, r.buildServerTool(config, deps))
	}
	return serverTools
}

// buildServerTool creates an MCP server tool from a recipe. Every recipe
// tool is readonly, idempotent and non-destructive: it only returns text.
func (r *RecipeRegistry) buildServerTool(config *RecipeConfig, deps *tools.ToolDependencies) server.ServerTool {
	description := buildEnrichedDescription(config)

	mcpTool := mcp.NewTool(config.Name,
		mcp.WithDescription(description),
		mcp.WithTitleAnnotation(config.Name),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)

	slog.Debug("built guidance tool", "name", config.Name, "category", config.Category)

	return server.ServerTool{
		Tool:    mcpTool,
		Handler: NewRecipeHandler(config, deps),
	}
}

// Category returns the category for a given recipe name.
func (r *RecipeRegistry) Category(recipeName string) string {
	for _, config := range r.configs {
		if config.Name == recipeName {
			return config.Category
		}
	}
	return "unknown"
}

// RecipesByCategory returns all recipes in a specific category.
func (r *RecipeRegistry) RecipesByCategory(category string) []*RecipeConfig {
	matched := make([]*RecipeConfig, 0)
	for _, config := range r.configs {
		if config.Category == category {
			matched = append(matched, config)
		}
	}
	return matched
}

// ListCategories returns all unique categories.
func (r *RecipeRegistry) ListCategories() []string {
	categoryMap := make(map[string]bool)
	for _, config := range r.configs {
		categoryMap[config.Category] = true
	}

	categories := make([]string, 0, len(categoryMap))
	for category := range categoryMap {
		categories = append(categories, category)
	}
	return categories
}
