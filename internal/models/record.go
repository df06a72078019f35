// Package models holds the tabular record and log collection types.
package models

// Field is one cell of a record. Valid is false when the value is absent,
// which is not the same thing as an empty string.
type Field struct {
	Value string
	Valid bool
}

// Present returns a valid field holding s.
func Present(s string) Field {
	return Field{Value: s, Valid: true}
}

// Absent returns the "no valid value" field.
func Absent() Field {
	return Field{}
}

// String renders the field the way it is written to CSV: absent values are empty.
func (f Field) String() string {
	if !f.Valid {
		return ""
	}

	return f.Value
}

// Record maps a normalized column name to its field.
type Record map[string]Field

// Table is an ordered list of records sharing one ordered column list.
type Table struct {
	Columns []string
	Records []Record
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}

	return false
}

// Values returns the record's fields in column order.
func (t *Table) Values(r Record) []Field {
	out := make([]Field, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = r[c]
	}

	return out
}

// Filter keeps the records for which keep returns true, preserving order.
// It returns the number of records removed.
func (t *Table) Filter(keep func(Record) bool) int {
	kept := t.Records[:0]
	for _, r := range t.Records {
		if keep(r) {
			kept = append(kept, r)
		}
	}

	removed := len(t.Records) - len(kept)
	t.Records = kept

	return removed
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}
