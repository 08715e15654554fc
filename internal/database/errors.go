package database

import "github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/dberr"

// The failure taxonomy lives in internal/dberr: the SQL policy validator
// constructs classified errors too, and this package depends on the
// validator. These aliases keep the taxonomy addressable where callers of
// the database layer already look for it.

type (
	// Kind classifies a gateway failure. See dberr.Kind.
	Kind = dberr.Kind

	// Error is the structured failure surfaced at the tool boundary.
	Error = dberr.Error
)

const (
	KindValidationRejected       = dberr.KindValidationRejected
	KindInvalidRange             = dberr.KindInvalidRange
	KindInvalidInterval          = dberr.KindInvalidInterval
	KindEnvironmentNotConfigured = dberr.KindEnvironmentNotConfigured
	KindPoolExhausted            = dberr.KindPoolExhausted
	KindConnectFailed            = dberr.KindConnectFailed
	KindTimeout                  = dberr.KindTimeout
	KindExecutionError           = dberr.KindExecutionError
	KindNotFound                 = dberr.KindNotFound
)

// NewError builds a classified gateway error.
func NewError(kind Kind, format string, args ...any) *Error {
	return dberr.New(kind, format, args...)
}

// KindOf extracts the classification from err, or KindExecutionError when err
// carries no classification. A nil err has no kind.
func KindOf(err error) Kind {
	return dberr.KindOf(err)
}

// MarshalError renders err as the JSON error object promised to the caller:
// {"kind": ..., "message": ...}.
func MarshalError(err error) string {
	return dberr.Marshal(err)
}
