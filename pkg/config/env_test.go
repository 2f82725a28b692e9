package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(mapLookup(map[string]string{
		"DOCRENDER_MODE":                 "descriptive",
		"DOCRENDER_ONLY_RETURN_FAILURES": "true",
		"DOCRENDER_PARALLELISM":          "8",
		"DOCRENDER_FORMAT":               " yaml ",
		"DOCRENDER_LOG_FORMAT":           "console",
		"DOCRENDER_LOG_FILE":             "/var/log/docrender.json",
		"DOCRENDER_TITLE":                "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "descriptive", cfg.Mode)
	assert.True(t, cfg.OnlyReturnFailures)
	assert.Equal(t, 8, cfg.Parallelism)
	assert.Equal(t, FormatYAML, cfg.Format)
	assert.Equal(t, LogFormatConsole, cfg.LogFormat)
	assert.Equal(t, "/var/log/docrender.json", cfg.LogFile)
	assert.Empty(t, cfg.Title)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv_ProcessEnvironment(t *testing.T) {
	t.Setenv("DOCRENDER_FILTER", "kind != 'x'")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(nil))
	assert.Equal(t, "kind != 'x'", cfg.Filter)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(mapLookup(map[string]string{"DOCRENDER_PARALLELISM": "many"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOCRENDER_PARALLELISM")

	err = cfg.ApplyEnv(mapLookup(map[string]string{"DOCRENDER_ONLY_RETURN_FAILURES": "sometimes"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOCRENDER_ONLY_RETURN_FAILURES")
}
