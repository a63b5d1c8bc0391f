package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/envhunter/pkg/types"
)

func clearTokenEnv(t *testing.T) {
	t.Helper()
	t.Setenv(TokenEnv, "")
	t.Setenv(EnvPrefix+"_TOKEN", "")
}

func TestLoad_Defaults(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv(TokenEnv, "ghp_test")

	cfg, err := Load(viper.New(), "")

	require.NoError(t, err)
	assert.Equal(t, "ghp_test", cfg.Token)
	assert.Equal(t, types.ModeCode, cfg.ScanMode())
	assert.Equal(t, 100, cfg.Limit)
	assert.Equal(t, 30, cfg.PerPage)
	assert.Equal(t, "", cfg.Output)
	assert.Equal(t, FormatYAML, cfg.ReportFormat())
}

func TestLoad_MissingToken(t *testing.T) {
	clearTokenEnv(t)

	cfg, err := Load(viper.New(), "")

	assert.ErrorIs(t, err, ErrMissingToken)
	assert.Nil(t, cfg)
	assert.Equal(t, "GITHUB_TOKEN environment variable is not set", err.Error())
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv(TokenEnv, "from-env")

	fs := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	fs.String("token", "", "")
	fs.String("mode", DefaultMode, "")
	fs.Int("limit", DefaultLimit, "")
	require.NoError(t, fs.Parse([]string{"--token", "from-flag", "--mode", "gists", "--limit", "5"}))

	v := viper.New()
	require.NoError(t, v.BindPFlags(fs))

	cfg, err := Load(v, "")

	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Token)
	assert.Equal(t, types.ModeGists, cfg.ScanMode())
	assert.Equal(t, 5, cfg.Limit)
}

func TestLoad_ReposAlias(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv(TokenEnv, "ghp_test")

	v := viper.New()
	v.Set("mode", "repos")

	cfg, err := Load(v, "")

	require.NoError(t, err)
	assert.Equal(t, "code", cfg.Mode)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv(TokenEnv, "ghp_test")

	path := filepath.Join(t.TempDir(), "envhunter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: gists\nlimit: 7\nper-page: 50\noutput: found.json\n"), 0o600))

	cfg, err := Load(viper.New(), path)

	require.NoError(t, err)
	assert.Equal(t, types.ModeGists, cfg.ScanMode())
	assert.Equal(t, 7, cfg.Limit)
	assert.Equal(t, 50, cfg.PerPage)
	assert.Equal(t, FormatJSON, cfg.ReportFormat())
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv(TokenEnv, "ghp_test")

	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "unknown mode", key: "mode", value: "issues"},
		{name: "zero limit", key: "limit", value: 0},
		{name: "page too large", key: "per-page", value: 101},
		{name: "unknown format", key: "format", value: "xml"},
		{name: "bad api url", key: "api-url", value: "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTokenEnv(t)
			t.Setenv(TokenEnv, "ghp_test")

			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := Load(v, "")
			assert.Error(t, err)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("results.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("results.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("results"))
	assert.Equal(t, FormatJSON, FormatForPath("results.JSON"))
	assert.Equal(t, FormatSARIF, FormatForPath("out/results.sarif"))
}

func TestReportFormat_Explicit(t *testing.T) {
	cfg := &Config{Output: "results.json", Format: FormatSARIF}
	assert.Equal(t, FormatSARIF, cfg.ReportFormat())
}
