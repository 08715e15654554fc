package analysis

import (
	"log/slog"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
)

// Status values for the assembled report.
const (
	StatusCompleted = "completed"
	StatusPartial   = "partial"
	StatusFailed    = "failed"
)

// report collects named sections and tracks per-section outcomes so the
// overall status can be derived at the end. Sections keep insertion order
// out of scope: the payload is a JSON object keyed by section name.
type report struct {
	sections  map[string]any
	succeeded int
	failed    int
}

func newReport(base map[string]any) *report {
	sections := map[string]any{}
	for k, v := range base {
		sections[k] = v
	}
	return &report{sections: sections}
}

// set records a successful section.
func (r *report) set(name string, value any) {
	r.sections[name] = value
	r.succeeded++
}

// fail downgrades a section failure to a marker carrying the error kind,
// leaving sibling sections untouched.
func (r *report) fail(name string, err error) {
	slog.Warn("analysis section failed", "section", name, "error", err)
	r.sections[name] = map[string]any{
		"error": map[string]any{
			"kind":    string(database.KindOf(err)),
			"message": err.Error(),
		},
	}
	r.failed++
}

// status is completed when every section succeeded, failed when every
// section failed, partial otherwise.
func (r *report) status() string {
	switch {
	case r.failed == 0:
		return StatusCompleted
	case r.succeeded == 0:
		return StatusFailed
	default:
		return StatusPartial
	}
}

// payload finalizes the report with its status attached.
func (r *report) payload(statusKey string) map[string]any {
	r.sections[statusKey] = r.status()
	return r.sections
}
