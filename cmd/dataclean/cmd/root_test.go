package cmd

import (
	"testing"

	"dataclean/internal/config"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFs(t *testing.T, f afero.Fs) {
	t.Helper()

	prev := fsys
	fsys = f
	t.Cleanup(func() { fsys = prev })
}

func TestLoadConfig_DefaultWhenFileAbsent(t *testing.T) {
	withFs(t, afero.NewMemMapFs())
	cfgFile = ""

	got, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), got)
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	withFs(t, afero.NewMemMapFs())
	cfgFile = "does/not/exist.yaml"
	t.Cleanup(func() { cfgFile = "" })

	_, err := loadConfig()
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"text", "json", "JSON"} {
		t.Run(format, func(t *testing.T) {
			c := config.Default()
			c.Logging.Format = format
			c.Logging.Level = "debug"

			assert.NotNil(t, newLogger(c))
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "flag", firstNonEmpty("flag", "config"))
	assert.Equal(t, "config", firstNonEmpty("", "config"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
