package cmd

import (
	"github.com/spf13/cobra"
)

var runRoot string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Normalize the customer CSV, then collect error logs",
	Long: `Runs both jobs against a project directory:

  <root>/data/data.csv    -> <root>/output/clean_data.csv
  <root>/raw_logs/*.log   -> <root>/output/errors_<ts>.log, <root>/archive/

Relative paths from the config file are resolved against --root.`,
	RunE: runAll,
}

func init() {
	runCmd.Flags().StringVar(&runRoot, "root", ".", "project root directory")
	rootCmd.AddCommand(runCmd)
}

func runAll(_ *cobra.Command, _ []string) error {
	resolved := cfg.ResolvePaths(runRoot)

	if err := normalize(resolved.Normalizer.Input, resolved.Normalizer.Output); err != nil {
		return err
	}

	return collect(resolved.Collector.RawLogs, resolved.Collector.Output, resolved.Collector.Archive)
}
