package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"limsrules/internal/core"
)

// CSVTable is one parsed CSV file: its header row as written, and the
// data rows keyed by header.
type CSVTable struct {
	Headers []string
	Rows    []Row
}

// Row maps header name to the trimmed cell value.
type Row map[string]string

// ReadCSV reads a CSV file into header-keyed rows. A UTF-8 BOM on the
// first header is stripped, every cell is whitespace-trimmed, and rows
// that are blank after trimming are skipped.
func ReadCSV(path string, delim rune) (*CSVTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, &core.StructureError{Path: path, Message: "CSV has no header row"}
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	table := &CSVTable{Headers: headers}
	for _, record := range records[1:] {
		row := make(Row, len(headers))
		blank := true
		for i, h := range headers {
			var cell string
			if i < len(record) {
				cell = strings.TrimSpace(record[i])
			}
			if cell != "" {
				blank = false
			}
			row[h] = cell
		}
		if blank {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// MergeCSVs reads several CSV files of the same kind into one row
// list. All files must carry the same column set after lowercasing
// and trimming header names; a differing set is a hard error while a
// differing order only produces a warning. Rows are deduplicated
// across all files by their full cell content, first occurrence wins.
func MergeCSVs(paths []string, delim rune, kind string) ([]Row, []string, error) {
	if len(paths) == 0 {
		return nil, nil, nil
	}

	var (
		refNormalized []string
		refHeaders    []string
		allRows       []Row
		warnings      []string
	)

	for _, path := range paths {
		table, err := ReadCSV(path, delim)
		if err != nil {
			return nil, nil, err
		}

		normalized := make([]string, len(table.Headers))
		for i, h := range table.Headers {
			normalized[i] = strings.ToLower(strings.TrimSpace(h))
		}

		if refNormalized == nil {
			refNormalized = normalized
			refHeaders = table.Headers
		} else {
			if !sameHeaderSet(refNormalized, normalized) {
				return nil, nil, &core.MergeError{
					Reference: strings.Join(refHeaders, ", "),
					Current:   strings.Join(table.Headers, ", "),
					Message:   fmt.Sprintf("incompatible columns between CSV files for %s (%s vs %s)", kind, paths[0], path),
				}
			}
			if !equalStrings(refNormalized, normalized) {
				warnings = append(warnings, fmt.Sprintf("column order differs between %s and %s, continuing", paths[0], path))
			}
		}

		allRows = append(allRows, table.Rows...)
	}

	seen := make(map[string]struct{}, len(allRows))
	deduped := make([]Row, 0, len(allRows))
	for _, row := range allRows {
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, row)
	}

	return deduped, warnings, nil
}

// rowKey builds a stable identity for a row from its sorted cells.
func rowKey(row Row) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(row[k])
		b.WriteByte('\x1f')
	}
	return b.String()
}

func sameHeaderSet(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, h := range a {
		set[h] = struct{}{}
	}
	other := make(map[string]struct{}, len(b))
	for _, h := range b {
		other[h] = struct{}{}
	}
	if len(set) != len(other) {
		return false
	}
	for h := range set {
		if _, ok := other[h]; !ok {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
