// Package normalizer cleans semicolon-delimited customer exports into a
// comma-delimited table with validated, normalized columns.
package normalizer

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"dataclean/internal/logger"
	"dataclean/internal/models"
	"dataclean/pkg/fingerprint"

	"github.com/spf13/afero"
)

// ErrMissingInput is returned when the input file does not exist.
var ErrMissingInput = errors.New("input file not found")

// Summary describes one normalization run.
type Summary struct {
	Input       string
	Output      string
	RowsBefore  int
	RowsAfter   int
	RowsRemoved int
	Checksum    string
	Table       *models.Table
}

// String renders the three-line row count summary.
func (s *Summary) String() string {
	return fmt.Sprintf("Rows before: %d\nRows after: %d\nRows removed: %d",
		s.RowsBefore, s.RowsAfter, s.RowsRemoved)
}

// Stats counts what each pipeline stage removed or degraded.
type Stats struct {
	EmptyRemoved    int
	IdentityRemoved int
	Duplicates      int
	Degraded        map[string]int
}

// Processor runs the normalization pipeline.
type Processor struct {
	fs          afero.Fs
	log         *logger.Logger
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor(fsys afero.Fs, log *logger.Logger) *Processor {
	return &Processor{
		fs:          fsys,
		log:         log.With("component", "normalizer"),
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}
}

// Normalize reads inputPath, cleans it and writes the result to outputPath.
func Normalize(fsys afero.Fs, inputPath, outputPath string, log *logger.Logger) (*Summary, error) {
	return NewProcessor(fsys, log).Run(inputPath, outputPath)
}

// Process applies the in-memory stages to a loaded table, mutating it in place.
func (p *Processor) Process(table *models.Table) Stats {
	// 1. Blank rows
	p.validator.MarkBlankAbsent(table)
	stats := Stats{EmptyRemoved: p.validator.DropEmptyRecords(table)}

	// 2. Trim, then identity filter
	p.transformer.TrimFields(table)
	stats.IdentityRemoved = p.validator.DropMissingIdentity(table)

	// 3. Column cleaning
	stats.Degraded = p.transformer.Transform(table)

	// 4. Deduplication
	stats.Duplicates = p.validator.Deduplicate(table)

	return stats
}

// Run loads, processes and saves. Nothing is written if the input is missing.
func (p *Processor) Run(inputPath, outputPath string) (*Summary, error) {
	if _, err := p.fs.Stat(inputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, inputPath)
		}

		return nil, fmt.Errorf("failed to stat input: %w", err)
	}

	loaded, err := p.load(inputPath)
	if err != nil {
		return nil, err
	}

	if len(loaded.DroppedColumns) > 0 {
		p.log.Debug("dropped unnamed columns", "count", len(loaded.DroppedColumns))
	}

	if loaded.OverlongRows > 0 {
		p.log.Warn("rows with more fields than the header were truncated", "rows", loaded.OverlongRows)
	}

	table := loaded.Table
	stats := p.Process(table)

	p.log.Debug("pipeline stats",
		"empty_removed", stats.EmptyRemoved,
		"identity_removed", stats.IdentityRemoved,
		"duplicates", stats.Duplicates,
	)

	for col, n := range stats.Degraded {
		p.log.Debug("values set to absent", "column", col, "count", n)
	}

	checksum, err := p.save(outputPath, table)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Input:       inputPath,
		Output:      outputPath,
		RowsBefore:  loaded.RowsRead,
		RowsAfter:   table.Len(),
		RowsRemoved: loaded.RowsRead - table.Len(),
		Checksum:    checksum,
		Table:       table,
	}

	p.log.Info("clean file saved",
		"output", outputPath,
		"rows_before", summary.RowsBefore,
		"rows_after", summary.RowsAfter,
		"rows_removed", summary.RowsRemoved,
		"checksum", summary.Checksum,
	)

	return summary, nil
}

func (p *Processor) load(path string) (*LoadResult, error) {
	f, err := p.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	loaded, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return loaded, nil
}

func (p *Processor) save(path string, table *models.Table) (string, error) {
	if err := p.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteTable(&buf, table); err != nil {
		return "", err
	}

	if err := afero.WriteFile(p.fs, path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}

	return fingerprint.Content(buf.Bytes()), nil
}
