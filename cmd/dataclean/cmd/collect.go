package cmd

import (
	"fmt"

	"dataclean/internal/collector"

	"github.com/spf13/cobra"
)

var (
	collectRawLogs string
	collectOutput  string
	collectArchive string
	collectUnique  bool
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Gather ERROR lines from log files and archive them",
	Long: `Scans the raw log directory (non-recursive) for files matching the
configured pattern, appends every line containing the marker to
<output>/errors_<YYYYMMDD_HHMMSS>.log prefixed with the file name, and moves
each processed file into the archive directory.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectRawLogs, "raw-logs", "", "directory holding the raw log files (default from config)")
	collectCmd.Flags().StringVar(&collectOutput, "output", "", "report directory (default from config)")
	collectCmd.Flags().StringVar(&collectArchive, "archive", "", "archive directory (default from config)")
	collectCmd.Flags().BoolVar(&collectUnique, "unique", false, "append a random suffix to the report name")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(_ *cobra.Command, _ []string) error {
	return collect(
		firstNonEmpty(collectRawLogs, cfg.Collector.RawLogs),
		firstNonEmpty(collectOutput, cfg.Collector.Output),
		firstNonEmpty(collectArchive, cfg.Collector.Archive),
	)
}

func collect(rawLogs, output, archive string) error {
	opts := collector.Options{
		Pattern:      cfg.Collector.Pattern,
		Marker:       cfg.Collector.Marker,
		UniqueSuffix: cfg.Collector.UniqueSuffix || collectUnique,
		ShowProgress: cfg.Logging.ShowProgress,
	}

	result, err := collector.New(fsys, opts, log).Collect(rawLogs, output, archive)
	if err != nil {
		log.Error("log collection failed", "error", err)
		return err
	}

	fmt.Printf("✓ Errors collected in: %s\n", result.ReportPath)

	return nil
}
