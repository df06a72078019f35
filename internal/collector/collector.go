// Package collector gathers error lines from raw log files into a single
// timestamped report and archives the processed files.
package collector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"dataclean/internal/logger"
	"dataclean/internal/models"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
)

const (
	// DefaultPattern selects the files to scan.
	DefaultPattern = "*.log"
	// DefaultMarker is the case-sensitive substring identifying an error line.
	DefaultMarker = "ERROR"

	reportPrefix    = "errors_"
	reportExtension = ".log"
	timestampLayout = "20060102_150405"
	suffixLength    = 8
)

// ErrInvalidPattern is returned when the file pattern is not a valid glob.
var ErrInvalidPattern = errors.New("invalid file pattern")

// Options tunes a collector run.
type Options struct {
	Pattern      string
	Marker       string
	UniqueSuffix bool
	ShowProgress bool
	Now          func() time.Time
}

// DefaultOptions returns the options matching the plain `*.log` / "ERROR" behaviour.
func DefaultOptions() Options {
	return Options{
		Pattern: DefaultPattern,
		Marker:  DefaultMarker,
		Now:     time.Now,
	}
}

// Collector scans a directory of log files.
type Collector struct {
	fs   afero.Fs
	opts Options
	log  *logger.Logger
}

// New creates a collector. Zero-valued options fall back to the defaults.
func New(fsys afero.Fs, opts Options, log *logger.Logger) *Collector {
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}

	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Collector{
		fs:   fsys,
		opts: opts,
		log:  log.With("component", "collector"),
	}
}

// Collect writes every marker line from the log files in rawDir into a new
// report under outputDir, then moves each file into archiveDir. Files are
// handled one at a time: an error leaves earlier files archived and their
// lines in the report.
func (c *Collector) Collect(rawDir, outputDir, archiveDir string) (*models.CollectResult, error) {
	if !doublestar.ValidatePattern(c.opts.Pattern) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, c.opts.Pattern)
	}

	for _, dir := range []string{outputDir, archiveDir} {
		if err := c.fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	result := &models.CollectResult{
		ReportPath: filepath.Join(outputDir, c.reportName()),
	}

	report, err := c.fs.OpenFile(result.ReportPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	defer report.Close()

	files, err := c.discover(rawDir, result.ReportPath)
	if err != nil {
		return nil, err
	}

	c.log.Debug("log files found", "dir", rawDir, "count", len(files))

	bar := c.progress(len(files))
	w := bufio.NewWriter(report)

	for _, path := range files {
		lf, err := c.readLogFile(path)
		if err != nil {
			return result, err
		}

		matched, err := writeMatches(w, lf, c.opts.Marker)
		if err != nil {
			return result, fmt.Errorf("failed to write report lines for %s: %w", lf.Name, err)
		}

		if err := w.Flush(); err != nil {
			return result, fmt.Errorf("failed to flush report: %w", err)
		}

		move := models.ArchiveMove{From: path, To: filepath.Join(archiveDir, lf.Name)}
		if err := c.move(move); err != nil {
			return result, fmt.Errorf("failed to archive %s: %w", lf.Name, err)
		}

		result.Files = append(result.Files, lf.Name)
		result.Moves = append(result.Moves, move)
		result.Matched += matched

		c.log.Debug("log file processed", "file", lf.Name, "matched", matched)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if err := report.Sync(); err != nil {
		return result, fmt.Errorf("failed to sync report: %w", err)
	}

	c.log.Info("errors collected",
		"report", result.ReportPath,
		"files", len(result.Files),
		"lines", result.Matched,
	)

	return result, nil
}

// Collect runs a collector with default options.
func Collect(fsys afero.Fs, rawDir, outputDir, archiveDir string, log *logger.Logger) (*models.CollectResult, error) {
	return New(fsys, DefaultOptions(), log).Collect(rawDir, outputDir, archiveDir)
}

func (c *Collector) reportName() string {
	name := reportPrefix + c.opts.Now().Format(timestampLayout)
	if c.opts.UniqueSuffix {
		name += "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLength]
	}

	return name + reportExtension
}

// discover lists regular files directly under dir whose name matches the
// pattern, sorted by name. A missing dir yields no files.
func (c *Collector) discover(dir, exclude string) ([]string, error) {
	entries, err := afero.ReadDir(c.fs, dir)
	if errors.Is(err, fs.ErrNotExist) {
		c.log.Warn("raw log directory not found", "dir", dir)
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []string

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}

		if ok, _ := doublestar.Match(c.opts.Pattern, name); !ok {
			continue
		}

		path := filepath.Join(dir, name)
		if filepath.Clean(path) == filepath.Clean(exclude) {
			continue
		}

		files = append(files, path)
	}

	return files, nil
}

func (c *Collector) readLogFile(path string) (models.LogFile, error) {
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return models.LogFile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return models.LogFile{
		Name:  filepath.Base(path),
		Path:  path,
		Lines: splitLines(string(data)),
	}, nil
}

// splitLines splits on \n, \r\n and \r. A trailing line break does not
// produce an empty last line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")

	return strings.Split(s, "\n")
}

func writeMatches(w io.Writer, lf models.LogFile, marker string) (int, error) {
	matched := 0

	for _, line := range lf.Lines {
		if !strings.Contains(line, marker) {
			continue
		}

		if _, err := fmt.Fprintf(w, "%s: %s\n", lf.Name, line); err != nil {
			return matched, err
		}

		matched++
	}

	return matched, nil
}

// move renames the file into the archive, replacing any file of the same
// name. Renames across devices fall back to copy and remove.
func (c *Collector) move(m models.ArchiveMove) error {
	err := c.fs.Rename(m.From, m.To)
	if err == nil {
		return nil
	}

	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	data, err := afero.ReadFile(c.fs, m.From)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(c.fs, m.To, data, 0644); err != nil {
		return err
	}

	return c.fs.Remove(m.From)
}

func (c *Collector) progress(total int) *progressbar.ProgressBar {
	if !c.opts.ShowProgress || total == 0 {
		return nil
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("collecting errors"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
