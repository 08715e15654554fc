package database

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTabularResultValidate(t *testing.T) {
	good := &TabularResult{
		Status: "succ",
		Head:   []string{"ts", "current"},
		Data:   [][]any{{"2024-01-01 00:00:00.000", 10.5}},
		Rows:   1,
	}
	if err := good.Validate(); err != nil {
		t.Errorf("valid result rejected: %v", err)
	}

	badCount := &TabularResult{Head: []string{"ts"}, Data: [][]any{{"a"}}, Rows: 2}
	if err := badCount.Validate(); err == nil {
		t.Error("row-count mismatch accepted")
	}

	badWidth := &TabularResult{Head: []string{"ts", "current"}, Data: [][]any{{"a"}}, Rows: 1}
	if err := badWidth.Validate(); err == nil {
		t.Error("column-width mismatch accepted")
	}
}

func TestTabularResultScalar(t *testing.T) {
	result := &TabularResult{Head: []string{"count(*)"}, Data: [][]any{{float64(42)}}, Rows: 1}
	v, ok := result.Scalar()
	if !ok {
		t.Fatal("scalar not found")
	}
	if v.(float64) != 42 {
		t.Errorf("scalar = %v, want 42", v)
	}

	empty := &TabularResult{Head: []string{"count(*)"}}
	if _, ok := empty.Scalar(); ok {
		t.Error("scalar reported on empty result")
	}
	if !empty.Empty() {
		t.Error("empty result not reported as empty")
	}
	var nilResult *TabularResult
	if !nilResult.Empty() {
		t.Error("nil result not reported as empty")
	}
}

func TestColumnMetaWireShape(t *testing.T) {
	meta := ColumnMeta{Name: "current", Type: "FLOAT", Length: 4}
	out, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `["current","FLOAT",4]` {
		t.Errorf("wire shape = %s, want [name, type, length] array", out)
	}

	var parsed ColumnMeta
	if err := json.Unmarshal([]byte(`["ts","TIMESTAMP",8]`), &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if parsed.Name != "ts" || parsed.Type != "TIMESTAMP" || parsed.Length != 8 {
		t.Errorf("parsed = %+v", parsed)
	}

	if err := json.Unmarshal([]byte(`["ts","TIMESTAMP"]`), &parsed); err == nil {
		t.Error("two-element column meta accepted")
	}
}

func TestErrorClassification(t *testing.T) {
	err := NewError(KindTimeout, "statement exceeded %s budget", "30s")
	if KindOf(err) != KindTimeout {
		t.Errorf("KindOf = %s, want Timeout", KindOf(err))
	}
	if KindOf(nil) != "" {
		t.Error("nil error has a kind")
	}
	if KindOf(errors.New("plain")) != KindExecutionError {
		t.Error("unclassified error did not default to ExecutionError")
	}

	out := MarshalError(err)
	var decoded struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
	if jsonErr := json.Unmarshal([]byte(out), &decoded); jsonErr != nil {
		t.Fatalf("marshaled error is not JSON: %v", jsonErr)
	}
	if decoded.Kind != "Timeout" {
		t.Errorf("kind = %q, want Timeout", decoded.Kind)
	}
	if decoded.Message == "" {
		t.Error("message is empty")
	}
}
