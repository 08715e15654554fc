package database

import (
	"encoding/json"
	"fmt"
)

// ColumnMeta describes one result column: name, declared TDengine type and
// declared length, in the database's column order.
type ColumnMeta struct {
	Name   string
	Type   string
	Length int
}

// MarshalJSON keeps the wire shape of the TDengine REST API: a 3-element
// array [name, type, length] per column.
func (c ColumnMeta) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Name, c.Type, c.Length})
}

// UnmarshalJSON accepts the REST API's [name, type, length] array form.
func (c *ColumnMeta) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("column meta must have 3 elements, got %d", len(raw))
	}
	name, ok := raw[0].(string)
	if !ok {
		return fmt.Errorf("column meta name must be a string, got %T", raw[0])
	}
	typ, ok := raw[1].(string)
	if !ok {
		return fmt.Errorf("column meta type must be a string, got %T", raw[1])
	}
	length, ok := raw[2].(float64)
	if !ok {
		return fmt.Errorf("column meta length must be a number, got %T", raw[2])
	}
	c.Name = name
	c.Type = typ
	c.Length = int(length)
	return nil
}

// TabularResult is the canonical tabular response every query normalizes
// into, matching the shape the TDengine REST API historically returned
// (status/head/column_meta/data/rows). Invariants: Rows == len(Data) and
// every row has exactly len(Head) values.
type TabularResult struct {
	Status     string       `json:"status"`
	Head       []string     `json:"head"`
	ColumnMeta []ColumnMeta `json:"column_meta"`
	Data       [][]any      `json:"data"`
	Rows       int          `json:"rows"`
}

// Validate checks the row/column-count invariants.
func (r *TabularResult) Validate() error {
	if r.Rows != len(r.Data) {
		return fmt.Errorf("row count %d does not match data length %d", r.Rows, len(r.Data))
	}
	for i, row := range r.Data {
		if len(row) != len(r.Head) {
			return fmt.Errorf("row %d has %d values, expected %d columns", i, len(row), len(r.Head))
		}
	}
	return nil
}

// Empty reports whether the result carries no rows. An empty result is a
// valid outcome, not an error.
func (r *TabularResult) Empty() bool {
	return r == nil || len(r.Data) == 0
}

// Scalar returns the first value of the first row, which is how the
// diagnostics tools read COUNT(*)-style probes. Returns false on an empty
// result.
func (r *TabularResult) Scalar() (any, bool) {
	if r.Empty() || len(r.Data[0]) == 0 {
		return nil, false
	}
	return r.Data[0][0], true
}
