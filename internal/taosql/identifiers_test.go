package taosql_test

import (
	"testing"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/taosql"
)

func TestValidIdentifier(t *testing.T) {
	valid := []string{"meters", "d1001", "power_2024", "_private", "Location"}
	for _, s := range valid {
		if !taosql.ValidIdentifier(s) {
			t.Errorf("ValidIdentifier(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"1meters",
		"db.meters",
		"meters; DROP TABLE x",
		"meters'",
		"me ters",
		"meters-v2",
	}
	for _, s := range invalid {
		if taosql.ValidIdentifier(s) {
			t.Errorf("ValidIdentifier(%q) = true, want false", s)
		}
	}
}

func TestIdentifierRejectsWithArgumentName(t *testing.T) {
	_, err := taosql.Identifier("database name", "bad.name")
	if err == nil {
		t.Fatal("expected rejection")
	}
	if kind := database.KindOf(err); kind != database.KindValidationRejected {
		t.Errorf("kind = %s, want ValidationRejected", kind)
	}
}

func TestQualifiedTable(t *testing.T) {
	got, err := taosql.QualifiedTable("power", "meters")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "power.meters" {
		t.Errorf("got %q, want power.meters", got)
	}

	got, err = taosql.QualifiedTable("", "meters")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "meters" {
		t.Errorf("got %q, want bare table name", got)
	}

	if _, err := taosql.QualifiedTable("power", "me;ters"); err == nil {
		t.Error("malformed table name accepted")
	}
	if _, err := taosql.QualifiedTable("po wer", "meters"); err == nil {
		t.Error("malformed database name accepted")
	}
}

func TestQuoteLiteral(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"beijing", "'beijing'"},
		{"it's", "'it''s'"},
		{`back\slash`, `'back\\slash'`},
		{"", "''"},
	}
	for _, tc := range tests {
		if got := taosql.QuoteLiteral(tc.in); got != tc.want {
			t.Errorf("QuoteLiteral(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseTimeRange(t *testing.T) {
	r, err := taosql.ParseTimeRange("2024-01-01 00:00:00", "2024-01-02 00:00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "ts >= '2024-01-01 00:00:00.000' AND ts < '2024-01-02 00:00:00.000'"
	if got := r.SQL("ts"); got != want {
		t.Errorf("SQL = %q, want %q", got, want)
	}

	// Equal bounds are a valid empty window.
	if _, err := taosql.ParseTimeRange("2024-01-01", "2024-01-01"); err != nil {
		t.Errorf("equal bounds rejected: %v", err)
	}

	_, err = taosql.ParseTimeRange("2024-01-02", "2024-01-01")
	if kind := database.KindOf(err); kind != database.KindInvalidRange {
		t.Errorf("reversed bounds kind = %s, want InvalidRange", kind)
	}

	_, err = taosql.ParseTimeRange("yesterday", "2024-01-01")
	if kind := database.KindOf(err); kind != database.KindValidationRejected {
		t.Errorf("malformed timestamp kind = %s, want ValidationRejected", kind)
	}
}

func TestParseTimeAcceptedLayouts(t *testing.T) {
	layouts := []string{
		"2024-06-15 10:30:00.250",
		"2024-06-15 10:30:00",
		"2024-06-15",
		"2024-06-15T10:30:00Z",
	}
	for _, value := range layouts {
		if _, err := taosql.ParseTime("start_time", value); err != nil {
			t.Errorf("ParseTime(%q) = %v, want nil", value, err)
		}
	}
}
