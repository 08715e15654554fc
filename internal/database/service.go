package database

//go:generate mockgen -destination=mocks/mock_database.go -package=database_mocks github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database Service

import (
	"context"
	"encoding/json"
	"fmt"
)

// QueryRequest describes one statement execution. Constructed per call and
// discarded afterwards.
type QueryRequest struct {
	// Environment names the target deployment; empty means the default.
	Environment string
	// Database scopes the statement; empty means the environment default.
	Database string
	// SQL is the raw statement text, validated before execution.
	SQL string
	// Limit bounds the result set. Zero applies the default cap.
	Limit int
	// TimeoutSeconds overrides the environment's statement timeout.
	TimeoutSeconds int
}

// Service is the query gateway surface the tool layer depends on. The
// executor is the production implementation; handler tests mock it.
type Service interface {
	// Execute validates, runs and normalizes one statement.
	Execute(ctx context.Context, req QueryRequest) (*TabularResult, error)

	// DefaultEnvironment returns the environment used when a call names none.
	DefaultEnvironment() string

	// DefaultDatabase returns the configured default database of an
	// environment (the default environment when name is empty).
	DefaultDatabase(environment string) string

	// Environments lists the configured environment names.
	Environments() []string

	// ResultToJSON renders a result as the JSON object returned to callers.
	ResultToJSON(result *TabularResult) (string, error)
}

// resultToJSON is shared by the executor and tests.
func resultToJSON(result *TabularResult) (string, error) {
	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to serialize result: %w", err)
	}
	return string(out), nil
}
