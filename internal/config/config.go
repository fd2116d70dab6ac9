// Package config loads and validates sentimind configuration from viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/sentimind/internal/common"
	"github.com/Veraticus/sentimind/internal/engine"
	"github.com/Veraticus/sentimind/internal/local"
	"github.com/Veraticus/sentimind/internal/model"
	"github.com/Veraticus/sentimind/internal/remote"
)

// EnvPrefix is prepended to every environment override, e.g. SENTIMIND_CLASSIFIER_MODE.
const EnvPrefix = "SENTIMIND"

// Provider names accepted by classifier.provider and classifier.fallback_provider.
const (
	ProviderLocal  = "local"
	ProviderRemote = "remote"
)

// Config is the full application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Local      LocalConfig      `mapstructure:"local"`
	Remote     RemoteConfig     `mapstructure:"remote"`
}

// ClassifierConfig selects the provider tiers and the selection policy.
type ClassifierConfig struct {
	Mode               string  `mapstructure:"mode" validate:"oneof=auto rules-only"`
	Provider           string  `mapstructure:"provider" validate:"oneof=local remote"`
	FallbackProvider   string  `mapstructure:"fallback_provider" validate:"omitempty,oneof=local remote,nefield=Provider"`
	HypothesisTemplate string  `mapstructure:"hypothesis_template" validate:"required"`
	RelativeThreshold  float64 `mapstructure:"relative_threshold" validate:"gt=0,lte=1"`
	MaxEmotions        int     `mapstructure:"max_emotions" validate:"min=1"`
}

// RemoteConfig configures the hosted inference client.
type RemoteConfig struct {
	URL               string        `mapstructure:"url" validate:"required,url"`
	Token             string        `mapstructure:"token"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RetryDelay        time.Duration `mapstructure:"retry_delay" validate:"gte=0"`
	RateLimitWait     time.Duration `mapstructure:"rate_limit_wait" validate:"gt=0"`
	MaxColdStartWait  time.Duration `mapstructure:"max_cold_start_wait" validate:"gt=0"`
	MaxRetries        int           `mapstructure:"max_retries" validate:"min=1"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" validate:"min=0"`
}

// LocalConfig configures the local model adapter.
type LocalConfig struct {
	BaseURL     string        `mapstructure:"base_url" validate:"required,url"`
	Models      []string      `mapstructure:"models" validate:"required,min=1,dive,required"`
	LoadTimeout time.Duration `mapstructure:"load_timeout" validate:"gt=0"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// SetDefaults registers every key with its default value. Keys must be known
// to viper for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	remoteDefaults := remote.DefaultConfig()
	localDefaults := local.DefaultConfig()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("database.path", "~/.local/share/sentimind/sentimind.db")

	v.SetDefault("classifier.mode", string(engine.ModeAuto))
	v.SetDefault("classifier.provider", ProviderLocal)
	v.SetDefault("classifier.fallback_provider", "")
	v.SetDefault("classifier.hypothesis_template", model.DefaultHypothesisTemplate)
	v.SetDefault("classifier.relative_threshold", 0.90)
	v.SetDefault("classifier.max_emotions", 3)

	v.SetDefault("remote.url", remoteDefaults.URL)
	v.SetDefault("remote.token", "")
	v.SetDefault("remote.timeout", remoteDefaults.Timeout)
	v.SetDefault("remote.retry_delay", remoteDefaults.RetryDelay)
	v.SetDefault("remote.rate_limit_wait", remoteDefaults.RateLimitWait)
	v.SetDefault("remote.max_cold_start_wait", remoteDefaults.MaxColdStartWait)
	v.SetDefault("remote.max_retries", remoteDefaults.MaxRetries)
	v.SetDefault("remote.requests_per_minute", 0)

	v.SetDefault("local.base_url", localDefaults.BaseURL)
	v.SetDefault("local.models", localDefaults.Models)
	v.SetDefault("local.load_timeout", localDefaults.LoadTimeout)
	v.SetDefault("local.timeout", localDefaults.Timeout)
}

// BindEnv makes every key overridable through SENTIMIND_* variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the process environment. Missing files are ignored; existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	if cfg.Remote.Token == "" {
		cfg.Remote.Token = os.Getenv("HF_TOKEN")
	}
	cfg.Database.Path = ExpandPath(cfg.Database.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s fails %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s fails %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(msgs, "; "))
}

// EngineMode returns the classifier mode as an engine mode.
func (c *Config) EngineMode() engine.Mode {
	return engine.Mode(c.Classifier.Mode)
}

// RemoteClientConfig converts the remote section for remote.NewClient.
func (c *Config) RemoteClientConfig() remote.Config {
	return remote.Config{
		URL:               c.Remote.URL,
		Token:             c.Remote.Token,
		Timeout:           c.Remote.Timeout,
		RetryDelay:        c.Remote.RetryDelay,
		RateLimitWait:     c.Remote.RateLimitWait,
		MaxColdStartWait:  c.Remote.MaxColdStartWait,
		MaxRetries:        c.Remote.MaxRetries,
		RequestsPerMinute: c.Remote.RequestsPerMinute,
	}
}

// LocalAdapterConfig converts the local section for local.NewAdapter.
func (c *Config) LocalAdapterConfig() local.Config {
	cfg := local.DefaultConfig()
	cfg.BaseURL = c.Local.BaseURL
	cfg.Models = append([]string(nil), c.Local.Models...)
	cfg.LoadTimeout = c.Local.LoadTimeout
	cfg.Timeout = c.Local.Timeout
	return cfg
}
