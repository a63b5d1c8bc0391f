// Package config resolves scan settings from flags, environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/praetorian-inc/envhunter/pkg/types"
)

// EnvPrefix prefixes environment overrides, e.g. ENVHUNTER_LIMIT.
const EnvPrefix = "ENVHUNTER"

// TokenEnv is the environment variable holding the GitHub credential.
const TokenEnv = "GITHUB_TOKEN"

// ErrMissingToken is returned when no GitHub credential is configured.
var ErrMissingToken = errors.New(TokenEnv + " environment variable is not set")

// Report formats.
const (
	FormatYAML  = "yaml"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// Defaults.
const (
	DefaultMode    = "code"
	DefaultLimit   = types.DefaultLimit
	DefaultPerPage = 30
)

// Config holds the settings of one scan.
type Config struct {
	Token     string `mapstructure:"token" validate:"required"`
	Mode      string `mapstructure:"mode" validate:"oneof=code gists"`
	Output    string `mapstructure:"output"`
	Format    string `mapstructure:"format" validate:"omitempty,oneof=yaml json sarif"`
	Limit     int    `mapstructure:"limit" validate:"min=1"`
	PerPage   int    `mapstructure:"per-page" validate:"min=1,max=100"`
	Keyword   string `mapstructure:"keyword"`
	Datastore string `mapstructure:"datastore"`
	APIURL    string `mapstructure:"api-url" validate:"omitempty,url"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mode", DefaultMode)
	v.SetDefault("limit", DefaultLimit)
	v.SetDefault("per-page", DefaultPerPage)
}

// Load resolves a Config from v. When file is set it is read first; flags
// bound to v and environment variables take precedence over it.
// A missing credential is reported before any other validation error.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("token", EnvPrefix+"_TOKEN", TokenEnv); err != nil {
		return nil, fmt.Errorf("binding token env: %w", err)
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Token = strings.TrimSpace(cfg.Token)
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

	mode, err := types.ParseMode(strings.TrimSpace(cfg.Mode))
	if err != nil {
		return nil, err
	}
	cfg.Mode = mode.String()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// ScanMode returns the configured search mode.
func (c *Config) ScanMode() types.Mode {
	m, _ := types.ParseMode(c.Mode)
	return m
}

// ReportFormat returns the configured report format, inferring it from the
// output file extension when unset.
func (c *Config) ReportFormat() string {
	if c.Format != "" {
		return c.Format
	}
	return FormatForPath(c.Output)
}

// FormatForPath infers a report format from a file extension.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".sarif":
		return FormatSARIF
	default:
		return FormatYAML
	}
}
