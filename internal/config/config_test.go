package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	return configPath
}

// validConfigYAML is a complete valid configuration.
const validConfigYAML = `
normalizer:
  input: "in/customers.csv"
  output: "out/customers_clean.csv"
collector:
  raw_logs: "logs/raw"
  output: "out"
  archive: "logs/archive"
  pattern: "*.log"
  marker: "ERROR"
  unique_suffix: true
logging:
  level: "debug"
  format: "json"
  show_progress: true
features:
  enable_preview: true
  preview_rows: 5
`

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "in/customers.csv", cfg.Normalizer.Input)
	assert.Equal(t, "logs/archive", cfg.Collector.Archive)
	assert.True(t, cfg.Collector.UniqueSuffix)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.ShowProgress)
	assert.Equal(t, 5, cfg.Features.PreviewRows)
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	configPath := createTempConfigFile(t, "logging:\n  level: warn\n")

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, def.Logging.Format, cfg.Logging.Format)
	assert.Equal(t, def.Normalizer, cfg.Normalizer)
	assert.Equal(t, def.Collector, cfg.Collector)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	require.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	require.Error(t, err)
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	configPath := createTempConfigFile(t, "logging:\n  level: verbose\n")

	_, err := LoadConfig(configPath)
	require.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"missing input", func(c *Config) { c.Normalizer.Input = "" }, ErrMissingInputPath},
		{"missing output", func(c *Config) { c.Normalizer.Output = "" }, ErrMissingOutputPath},
		{"same input and output", func(c *Config) { c.Normalizer.Output = "./data/data.csv" }, ErrSameInputOutput},
		{"missing raw logs", func(c *Config) { c.Collector.RawLogs = "" }, ErrMissingRawLogsDir},
		{"missing report dir", func(c *Config) { c.Collector.Output = "" }, ErrMissingReportDir},
		{"missing archive", func(c *Config) { c.Collector.Archive = "" }, ErrMissingArchiveDir},
		{"archive is raw logs", func(c *Config) { c.Collector.Archive = "raw_logs/" }, ErrArchiveIsRawLogsDir},
		{"bad pattern", func(c *Config) { c.Collector.Pattern = "[a-" }, ErrInvalidPattern},
		{"empty marker", func(c *Config) { c.Collector.Marker = "" }, ErrEmptyMarker},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, ErrInvalidLogLevel},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
		{"bad preview rows", func(c *Config) { c.Features.PreviewRows = 0 }, ErrInvalidPreviewRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestConfig_ResolvePaths(t *testing.T) {
	cfg := Default()
	cfg.Collector.Archive = "/var/archive"

	resolved := cfg.ResolvePaths("/srv/project")

	assert.Equal(t, filepath.Join("/srv/project", "data", "data.csv"), resolved.Normalizer.Input)
	assert.Equal(t, filepath.Join("/srv/project", "raw_logs"), resolved.Collector.RawLogs)
	assert.Equal(t, "/var/archive", resolved.Collector.Archive)

	// receiver untouched
	assert.Equal(t, filepath.Join("data", "data.csv"), cfg.Normalizer.Input)
}

func TestConfig_SaveAndReload(t *testing.T) {
	cfg := Default()
	cfg.Features.EnablePreview = true

	savePath := filepath.Join(t.TempDir(), "saved_config.yaml")
	require.NoError(t, cfg.SaveConfig(savePath))

	loaded, err := LoadConfig(savePath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_String(t *testing.T) {
	s := Default().String()
	assert.Contains(t, s, "data.csv")
	assert.Contains(t, s, "archive")
}
