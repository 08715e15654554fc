package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/sqlguard"
)

const (
	// DefaultMaxRows caps result sets when the caller neither includes a
	// LIMIT clause nor passes a row limit.
	DefaultMaxRows = 10000

	// DefaultQueryTimeout bounds execution when neither the request nor the
	// environment sets one.
	DefaultQueryTimeout = 30 * time.Second
)

// Executor is the production Service: policy validation, pool checkout, row
// bounding, timeout enforcement and failure classification around a single
// statement. Stateless apart from the injected registry, so one instance
// serves all concurrent invocations.
type Executor struct {
	registry   *Registry
	defaultEnv string
}

var _ Service = (*Executor)(nil)

// NewExecutor builds an executor over the registry. defaultEnv is used when
// a request names no environment.
func NewExecutor(registry *Registry, defaultEnv string) *Executor {
	return &Executor{registry: registry, defaultEnv: defaultEnv}
}

// Execute runs one validated statement through the environment's pool. The
// acquired connection is returned on every exit path; a timed-out connection
// is discarded rather than reused, since its state is indeterminate.
func (e *Executor) Execute(ctx context.Context, req QueryRequest) (*TabularResult, error) {
	if err := sqlguard.Validate(req.SQL); err != nil {
		slog.Warn("statement rejected by read-only policy", "error", err)
		return nil, err
	}

	env := req.Environment
	if env == "" {
		env = e.defaultEnv
	}
	pool, err := e.registry.Resolve(env)
	if err != nil {
		return nil, err
	}
	cfg, err := e.registry.Environment(env)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if req.TimeoutSeconds > 0 {
		timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}

	conn, err := pool.Acquire(ctx, timeout)
	if err != nil {
		return nil, err
	}

	sql := boundRows(req.SQL, req.Limit)
	queryID := uuid.NewString()
	slog.Debug("executing statement",
		"query_id", queryID,
		"environment", env,
		"database", req.Database,
		"timeout", timeout)

	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	result, err := conn.Query(queryCtx, req.Database, sql)
	elapsed := time.Since(started)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || queryCtx.Err() != nil {
			// The statement may still be running server-side; drop the
			// connection instead of handing it back out.
			pool.Discard(conn)
			slog.Warn("statement timed out", "query_id", queryID, "elapsed", elapsed)
			return nil, NewError(KindTimeout, "statement exceeded %s budget", timeout)
		}
		pool.Release(conn)
		return nil, classifyExecutionError(err)
	}
	pool.Release(conn)

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("malformed result: %w", err)
	}
	slog.Debug("statement completed", "query_id", queryID, "rows", result.Rows, "elapsed", elapsed)
	return result, nil
}

func (e *Executor) DefaultEnvironment() string {
	return e.defaultEnv
}

func (e *Executor) DefaultDatabase(environment string) string {
	if environment == "" {
		environment = e.defaultEnv
	}
	cfg, err := e.registry.Environment(environment)
	if err != nil {
		return ""
	}
	return cfg.Database
}

func (e *Executor) Environments() []string {
	return e.registry.EnvironmentNames()
}

func (e *Executor) ResultToJSON(result *TabularResult) (string, error) {
	return resultToJSON(result)
}

// classifyExecutionError maps transport failures onto ConnectFailed and
// leaves classified gateway errors untouched. Everything else is a
// database-reported error passed through verbatim.
func classifyExecutionError(err error) error {
	var gw *Error
	if errors.As(err, &gw) {
		return err
	}
	return NewError(KindConnectFailed, "connection failed during execution: %v", err)
}

// boundRows appends a bounding LIMIT to SELECT statements that do not carry
// one, preventing unbounded result sets. SHOW and DESCRIBE output is small
// and left untouched.
func boundRows(sql string, limit int) string {
	trimmed := strings.TrimRight(strings.TrimSpace(sql), "; \t\n")
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") {
		return trimmed
	}
	if limit <= 0 {
		limit = DefaultMaxRows
	}
	if hasTopLevelLimit(upper) {
		return trimmed
	}
	return fmt.Sprintf("%s LIMIT %d", trimmed, limit)
}

// hasTopLevelLimit reports whether LIMIT appears outside string literals and
// backtick-quoted identifiers.
func hasTopLevelLimit(upperSQL string) bool {
	inQuote := byte(0)
	for i := 0; i+5 <= len(upperSQL); i++ {
		ch := upperSQL[i]
		if inQuote != 0 {
			if ch == inQuote {
				inQuote = 0
			}
			continue
		}
		if ch == '\'' || ch == '"' || ch == '`' {
			inQuote = ch
			continue
		}
		if strings.HasPrefix(upperSQL[i:], "LIMIT") {
			before := i == 0 || !isWordByte(upperSQL[i-1])
			after := i+5 == len(upperSQL) || !isWordByte(upperSQL[i+5])
			if before && after {
				return true
			}
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
