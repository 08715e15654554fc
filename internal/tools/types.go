package tools

import (
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/analytics"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
)

// ToolDependencies contains all dependencies needed by tools
type ToolDependencies struct {
	DBService        database.Service
	AnalyticsService analytics.Service
}
