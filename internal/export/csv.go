// Package export encodes mapped entities as CSV files for download.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Column binds a record key to the header written for it.
type Column struct {
	Key    string
	Header string
}

// Record is one row keyed by JSON field name.
type Record map[string]any

// GenerateCSV writes a header line and one line per row, joined with "\n"
// and without a trailing newline. Missing and null values become empty
// fields.
func GenerateCSV(rows []Record, columns []Column) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinFields(lo.Map(columns, func(c Column, _ int) string { return c.Header })))
	for _, row := range rows {
		lines = append(lines, joinFields(lo.Map(columns, func(c Column, _ int) string {
			return stringify(row[c.Key])
		})))
	}
	return strings.Join(lines, "\n")
}

// Escape quotes a field, doubling inner quotes, only when it contains a
// comma, a double quote or a newline.
func Escape(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func joinFields(fields []string) string {
	return strings.Join(lo.Map(fields, func(f string, _ int) string { return Escape(f) }), ",")
}

// Records converts a slice of view models to records through their JSON
// encoding, so column keys are the json tag names.
func Records(v any) ([]Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode rows: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var rows []Record
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	return rows, nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case []any:
		return strings.Join(lo.Map(val, func(item any, _ int) string { return stringify(item) }), ", ")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
