package analytics

import (
	"log/slog"
	"sync"
)

// logService is the default Service: slog-backed accounting of tool usage.
type logService struct {
	mu       sync.Mutex
	enabled  bool
	toolHits map[string]int
}

// NewService creates the default usage tracker.
func NewService() Service {
	return &logService{enabled: true, toolHits: make(map[string]int)}
}

func (s *logService) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = false
}

func (s *logService) Enable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = true
}

func (s *logService) EmitEvent(event TrackEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}
	if tool, ok := event.Properties["tool"].(string); ok {
		s.toolHits[tool]++
		slog.Debug("tool invoked", "tool", tool, "total_invocations", s.toolHits[tool])
		return
	}
	slog.Debug("usage event", "event", event.Name)
}

func (s *logService) NewStartupEvent(info StartupEventInfo) TrackEvent {
	return TrackEvent{
		Name: "server_startup",
		Properties: map[string]any{
			"version":      info.Version,
			"transport":    info.Transport,
			"environments": info.Environments,
			"tool_count":   info.ToolCount,
		},
	}
}

func (s *logService) NewToolsEvent(toolName string) TrackEvent {
	return TrackEvent{
		Name:       "tool_invocation",
		Properties: map[string]any{"tool": toolName},
	}
}
