// Package dberr defines the gateway's failure taxonomy. It sits below both
// the database layer and the SQL policy validator, so either can classify a
// failure without importing the other.
package dberr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is a stable, machine-readable classification of a gateway failure.
// Callers (including the composite analysis tools) branch on Kind, never on
// message text.
type Kind string

const (
	// KindValidationRejected is returned when the SQL policy validator refuses
	// a statement before it reaches the database.
	KindValidationRejected Kind = "ValidationRejected"

	// KindInvalidRange is returned when a time-range argument has start > end.
	KindInvalidRange Kind = "InvalidRange"

	// KindInvalidInterval is returned when a downsampling interval does not
	// match the duration grammar or implies an excessive bucket count.
	KindInvalidInterval Kind = "InvalidInterval"

	// KindEnvironmentNotConfigured is returned when a query names an
	// environment absent from the registry.
	KindEnvironmentNotConfigured Kind = "EnvironmentNotConfigured"

	// KindPoolExhausted is returned when no pooled connection became free
	// within the acquire timeout.
	KindPoolExhausted Kind = "PoolExhausted"

	// KindConnectFailed is returned when opening or replacing a connection
	// failed after the bounded retry budget.
	KindConnectFailed Kind = "ConnectFailed"

	// KindTimeout is returned when statement execution exceeded its budget.
	// The statement's effect is indeterminate; it is never retried.
	KindTimeout Kind = "Timeout"

	// KindExecutionError is returned for database-reported errors. The
	// database's message is passed through verbatim for diagnosability.
	KindExecutionError Kind = "ExecutionError"

	// KindNotFound marks an existence probe that matched nothing. It is a
	// valid negative result, not a failure.
	KindNotFound Kind = "NotFound"
)

// Error is the structured failure surfaced at the tool boundary. Reason is
// only set for ValidationRejected and names the specific policy violation
// ("empty", "multi-statement", "non-read-only keyword").
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds a classified gateway error.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the classification from err, or KindExecutionError when err
// carries no classification. A nil err has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var gw *Error
	if errors.As(err, &gw) {
		return gw.Kind
	}
	return KindExecutionError
}

// Marshal renders err as the JSON error object promised to the caller:
// {"kind": ..., "message": ...}. Used by handlers so that even failures are
// well-formed structured data.
func Marshal(err error) string {
	var gw *Error
	if !errors.As(err, &gw) {
		gw = &Error{Kind: KindExecutionError, Message: err.Error()}
	}
	out, marshalErr := json.Marshal(gw)
	if marshalErr != nil {
		return fmt.Sprintf(`{"kind":%q,"message":"unrenderable error"}`, gw.Kind)
	}
	return string(out)
}
