package analytics

//go:generate mockgen -destination=mocks/mock_analytics.go -package=analytics_mocks github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/analytics Service

// Service records anonymous usage events for the server's own diagnostics.
// Events never leave the process; they are logged and counted so operators
// can see which tools an agent leans on.
type Service interface {
	Disable()
	Enable()
	EmitEvent(event TrackEvent)
	NewStartupEvent(info StartupEventInfo) TrackEvent
	NewToolsEvent(toolName string) TrackEvent
}

// TrackEvent is one recorded usage event.
type TrackEvent struct {
	Name       string
	Properties map[string]any
}

// StartupEventInfo captures what the server announced at boot.
type StartupEventInfo struct {
	Version      string
	Transport    string
	Environments int
	ToolCount    int
}
