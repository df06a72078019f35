package normalizer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dataclean/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	inputDelimiter  = ';'
	outputDelimiter = ','
	unnamedPrefix   = "unnamed"
)

// CSV errors.
var (
	ErrEmptyInput = errors.New("input has no header row")
)

// missingMarkers are the literal cell values read as absent. Matching is exact.
var missingMarkers = map[string]struct{}{
	"": {}, "NaN": {}, "N/A": {}, "NA": {}, "nan": {}, "--": {}, "inf": {},
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {}, "-nan": {},
	"1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "NULL": {}, "None": {}, "n/a": {}, "null": {},
}

var headerLower = cases.Lower(language.Und)

// LoadResult is the table read from a source file plus reader diagnostics.
type LoadResult struct {
	Table          *models.Table
	RowsRead       int
	DroppedColumns []string
	OverlongRows   int
}

// NormalizeHeader trims, lowercases and replaces spaces with underscores.
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(norm.NFC.String(h))
	h = headerLower.String(h)

	return strings.ReplaceAll(h, " ", "_")
}

func keepColumn(name string) bool {
	return name != "" && !strings.HasPrefix(name, unnamedPrefix)
}

// ReadTable parses semicolon-delimited UTF-8 text (optionally BOM-prefixed).
// Every field is kept as text; missing-value markers become absent fields.
func ReadTable(r io.Reader) (*LoadResult, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.Comma = inputDelimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	res := &LoadResult{Table: &models.Table{}}

	// index in the raw row -> column name
	type binding struct {
		index int
		name  string
	}

	var bindings []binding

	used := make(map[string]int)

	for i, raw := range header {
		name := NormalizeHeader(raw)
		if !keepColumn(name) {
			res.DroppedColumns = append(res.DroppedColumns, raw)
			continue
		}

		if n, dup := used[name]; dup {
			used[name] = n + 1
			name = name + "." + strconv.Itoa(n)
		} else {
			used[name] = 1
		}

		bindings = append(bindings, binding{index: i, name: name})
		res.Table.Columns = append(res.Table.Columns, name)
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", res.RowsRead+1, err)
		}

		res.RowsRead++

		if len(row) > len(header) {
			res.OverlongRows++
		}

		rec := make(models.Record, len(bindings))

		for _, b := range bindings {
			if b.index >= len(row) {
				rec[b.name] = models.Absent()
				continue
			}

			rec[b.name] = parseCell(row[b.index])
		}

		res.Table.Records = append(res.Table.Records, rec)
	}

	return res, nil
}

func parseCell(raw string) models.Field {
	if _, missing := missingMarkers[raw]; missing {
		return models.Absent()
	}

	return models.Present(raw)
}

// WriteTable serializes the table as comma-delimited text with a header row.
// Absent fields are written empty.
func WriteTable(w io.Writer, table *models.Table) error {
	writer := csv.NewWriter(w)
	writer.Comma = outputDelimiter

	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(table.Columns))

	for _, rec := range table.Records {
		for i, col := range table.Columns {
			row[i] = rec[col].String()
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}
