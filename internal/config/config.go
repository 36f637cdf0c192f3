// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Scanner ScannerConfig `mapstructure:"scanner" yaml:"scanner"`
	Planner PlannerConfig `mapstructure:"planner" yaml:"planner"`
	LLM     LLMConfig     `mapstructure:"llm" yaml:"llm"`
	Profile ProfileConfig `mapstructure:"profile" yaml:"profile"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// BrowserConfig holds settings for the headless browser sessions.
type BrowserConfig struct {
	Headless          bool          `mapstructure:"headless" yaml:"headless"`
	DisableCache      bool          `mapstructure:"disable_cache" yaml:"disable_cache"`
	IgnoreTLSErrors   bool          `mapstructure:"ignore_tls_errors" yaml:"ignore_tls_errors"`
	Args              []string      `mapstructure:"args" yaml:"args"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	PostLoadWait      time.Duration `mapstructure:"post_load_wait" yaml:"post_load_wait"`
	ScreenshotOnDone  bool          `mapstructure:"screenshot_on_done" yaml:"screenshot_on_done"`
	ScreenshotDir     string        `mapstructure:"screenshot_dir" yaml:"screenshot_dir"`
}

// ScannerConfig bounds the field discovery pass. The caps keep scan payloads
// (and downstream LLM prompts) from growing without limit on pathological pages.
type ScannerConfig struct {
	MaxFields        int `mapstructure:"max_fields" yaml:"max_fields"`
	MaxPerFrame      int `mapstructure:"max_per_frame" yaml:"max_per_frame"`
	FrameConcurrency int `mapstructure:"frame_concurrency" yaml:"frame_concurrency"`
}

// PlannerConfig configures plan building and the fallback chain.
type PlannerConfig struct {
	AliasFile       string   `mapstructure:"alias_file" yaml:"alias_file"`
	DenylistKeys    []string `mapstructure:"denylist_keys" yaml:"denylist_keys"`
	AliasConfidence float64  `mapstructure:"alias_confidence" yaml:"alias_confidence"`
}

// LLMConfig configures the generative fill-plan provider.
type LLMConfig struct {
	Enabled        bool          `mapstructure:"enabled" yaml:"enabled"`
	APIKey         string        `mapstructure:"api_key" yaml:"-"`
	Model          string        `mapstructure:"model" yaml:"model"`
	Temperature    float32       `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens      int           `mapstructure:"max_tokens" yaml:"max_tokens"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// ProfileConfig points at the applicant profile file consumed by the CLI.
type ProfileConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "autopilot")
	v.SetDefault("logger.log_file", "autopilot.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Browser --
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.disable_cache", true)
	v.SetDefault("browser.ignore_tls_errors", false)
	v.SetDefault("browser.navigation_timeout", "90s")
	v.SetDefault("browser.post_load_wait", "2s")
	v.SetDefault("browser.screenshot_on_done", false)
	v.SetDefault("browser.screenshot_dir", ".")

	// -- Scanner --
	v.SetDefault("scanner.max_fields", 300)
	v.SetDefault("scanner.max_per_frame", 80)
	v.SetDefault("scanner.frame_concurrency", 4)

	// -- Planner --
	v.SetDefault("planner.alias_file", "")
	v.SetDefault("planner.denylist_keys", []string{"cover_letter"})
	v.SetDefault("planner.alias_confidence", 0.75)

	// -- LLM --
	v.SetDefault("llm.enabled", false)
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 8192)
	v.SetDefault("llm.request_timeout", "45s")

	// -- Profile --
	v.SetDefault("profile.path", "profile.yaml")
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// Bind environment variables for sensitive data.
	v.BindEnv("llm.api_key", "AUTOPILOT_LLM_API_KEY")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field consistency of the loaded configuration.
func (c *Config) Validate() error {
	if c.Scanner.MaxFields <= 0 {
		return fmt.Errorf("scanner.max_fields must be positive, got %d", c.Scanner.MaxFields)
	}
	if c.Scanner.MaxPerFrame <= 0 {
		return fmt.Errorf("scanner.max_per_frame must be positive, got %d", c.Scanner.MaxPerFrame)
	}
	if c.Planner.AliasConfidence <= 0 || c.Planner.AliasConfidence > 1 {
		return fmt.Errorf("planner.alias_confidence must be in (0, 1], got %f", c.Planner.AliasConfidence)
	}
	if c.LLM.Enabled && c.LLM.APIKey == "" {
		return fmt.Errorf("llm.enabled is set but llm.api_key is empty (set AUTOPILOT_LLM_API_KEY)")
	}
	return nil
}
