package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dataclean/internal/collector"
	"dataclean/internal/logger"

	"github.com/spf13/afero"
)

func TestCollector_RawLogsDirectory(t *testing.T) {
	root := t.TempDir()
	raw := filepath.Join(root, "raw_logs")
	output := filepath.Join(root, "output")
	archive := filepath.Join(root, "archive")

	for _, name := range []string{"api.log", "db.log", "notes.txt"} {
		copyFixture(t, filepath.Join("raw_logs", name), filepath.Join(raw, name))
	}

	opts := collector.DefaultOptions()
	opts.Now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	result, err := collector.New(afero.NewOsFs(), opts, logger.Discard()).Collect(raw, output, archive)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	wantReport := filepath.Join(output, "errors_20240501_123000.log")
	if result.ReportPath != wantReport {
		t.Errorf("Expected report %s, got %s", wantReport, result.ReportPath)
	}

	report, err := os.ReadFile(result.ReportPath)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	want := "api.log: 2024-05-01 10:00:05 ERROR connection refused\n" +
		"db.log: 2024-05-01 11:00:00 ERROR disk full\n" +
		"db.log: 2024-05-01 11:00:01 ERROR write failed\n"
	if string(report) != want {
		t.Errorf("Unexpected report:\n%s\nwant:\n%s", report, want)
	}

	for _, name := range []string{"api.log", "db.log"} {
		if _, err := os.Stat(filepath.Join(archive, name)); err != nil {
			t.Errorf("Expected %s in archive: %v", name, err)
		}

		if _, err := os.Stat(filepath.Join(raw, name)); !os.IsNotExist(err) {
			t.Errorf("Expected %s removed from raw logs, stat returned %v", name, err)
		}
	}

	if _, err := os.Stat(filepath.Join(raw, "notes.txt")); err != nil {
		t.Errorf("Expected notes.txt left in place: %v", err)
	}
}

func TestCollector_SecondRunFindsNothing(t *testing.T) {
	root := t.TempDir()
	raw := filepath.Join(root, "raw_logs")
	output := filepath.Join(root, "output")
	archive := filepath.Join(root, "archive")

	copyFixture(t, filepath.Join("raw_logs", "db.log"), filepath.Join(raw, "db.log"))

	fsys := afero.NewOsFs()

	if _, err := collector.Collect(fsys, raw, output, archive, logger.Discard()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	opts := collector.DefaultOptions()
	opts.UniqueSuffix = true

	result, err := collector.New(fsys, opts, logger.Discard()).Collect(raw, output, archive)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if len(result.Files) != 0 {
		t.Errorf("Expected no files on second run, got %v", result.Files)
	}

	report, err := os.ReadFile(result.ReportPath)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	if len(report) != 0 {
		t.Errorf("Expected empty report, got %q", report)
	}

	if !strings.HasPrefix(filepath.Base(result.ReportPath), "errors_") {
		t.Errorf("Unexpected report name %s", result.ReportPath)
	}
}
