package normalizer

import (
	"dataclean/internal/models"
	"dataclean/pkg/fingerprint"
	"dataclean/pkg/utils"
)

// Validator applies the row-level filtering rules: blank rows, identity
// column, and exact duplicates.
type Validator struct {
	identity string
}

// NewValidator creates a new validator requiring the "nom" identity column.
func NewValidator() *Validator {
	return &Validator{identity: ColumnNom}
}

// MarkBlankAbsent turns whitespace-only fields into absent values.
func (v *Validator) MarkBlankAbsent(table *models.Table) {
	for _, rec := range table.Records {
		for col, f := range rec {
			if f.Valid && utils.IsBlank(f.Value) {
				rec[col] = models.Absent()
			}
		}
	}
}

// DropEmptyRecords removes records where every field is absent.
func (v *Validator) DropEmptyRecords(table *models.Table) int {
	return table.Filter(func(rec models.Record) bool {
		for _, col := range table.Columns {
			if rec[col].Valid {
				return true
			}
		}

		return false
	})
}

// DropMissingIdentity removes records whose identity column is absent or empty.
// Tables without the identity column are left alone.
func (v *Validator) DropMissingIdentity(table *models.Table) int {
	if !table.HasColumn(v.identity) {
		return 0
	}

	return table.Filter(func(rec models.Record) bool {
		f := rec[v.identity]
		return f.Valid && f.Value != ""
	})
}

// Deduplicate removes records identical to an earlier one across all columns.
func (v *Validator) Deduplicate(table *models.Table) int {
	seen := make(map[string]struct{}, table.Len())

	return table.Filter(func(rec models.Record) bool {
		key := rowKey(table, rec)
		if _, dup := seen[key]; dup {
			return false
		}

		seen[key] = struct{}{}

		return true
	})
}

func rowKey(table *models.Table, rec models.Record) string {
	fields := table.Values(rec)
	values := make([]string, len(fields))
	valid := make([]bool, len(fields))

	for i, f := range fields {
		values[i] = f.Value
		valid[i] = f.Valid
	}

	return fingerprint.Row(values, valid)
}
