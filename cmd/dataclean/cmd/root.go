package cmd

import (
	"fmt"
	"os"
	"strings"

	"dataclean/internal/config"
	"dataclean/internal/logger"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "configs/dataclean.yaml"

var (
	cfgFile  string
	logLevel string

	// set by setup before any subcommand runs
	cfg  *config.Config
	log  *logger.Logger
	fsys afero.Fs = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:   "dataclean",
	Short: "Customer CSV normalizer and error log collector",
	Long: `dataclean runs two independent batch jobs:

  normalize - clean a semicolon-delimited customer export into a comma CSV
  collect   - gather ERROR lines from *.log files into a report and archive them
  run       - normalize then collect, using the project directory layout`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+defaultConfigPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func setup(_ *cobra.Command, _ []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}

	if logLevel != "" {
		loaded.Logging.Level = logLevel
		if err := loaded.Validate(); err != nil {
			return err
		}
	}

	cfg = loaded
	log = newLogger(cfg)
	log.Debug("configuration loaded", "config", cfg.String())

	return nil
}

func newLogger(c *config.Config) *logger.Logger {
	if strings.EqualFold(c.Logging.Format, "json") {
		return logger.New(os.Stderr, c.Logging.Level, "json")
	}

	return logger.NewLogger(c.Logging.Level)
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadConfig(cfgFile)
	}

	exists, err := afero.Exists(fsys, defaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", defaultConfigPath, err)
	}

	if !exists {
		return config.Default(), nil
	}

	return config.LoadConfig(defaultConfigPath)
}
