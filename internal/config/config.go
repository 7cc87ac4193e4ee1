package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
// This centralizes default values and descriptions in one place.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// Configure Viper search paths. If SetConfigFile was provided upstream,
	// it takes precedence; these paths are harmless fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "answerview"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "answerview"))
		}
		v.AddConfigPath(".")
	}

	// Apply centralized defaults (lowest precedence)
	applyDefaults(v)

	// A missing file is fine; a broken one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && v.ConfigFileUsed() != "" {
			return err
		}
	}

	// Environment variables: ANSWERVIEW_* (highest among these sources)
	v.SetEnvPrefix("answerview")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Normalize a few dependent values post-merge
	v.Set("output", strings.ToLower(strings.TrimSpace(v.GetString("output"))))
	v.Set("log.level", strings.ToLower(strings.TrimSpace(v.GetString("log.level"))))
	return nil
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "answerview", "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "output", Default: "pretty", Comment: "Output mode: pretty, plain, html, json or tui"},

		{Key: "pretty.style", Default: "dracula", Comment: "Glamour style for terminal markdown (dracula, dark, light, notty, ...)"},
		{Key: "pretty.word_wrap", Default: 80, Comment: "Wrap terminal markdown at this many columns"},
		{Key: "html.sanitize", Default: true, Comment: "Sanitize converted markdown with a UGC policy"},

		{Key: "http_addr", Default: ":8080", Comment: "HTTP listen address for the render service"},
		{Key: "auth.token", Default: "", Comment: "Bearer token required by the render service; empty disables auth"},

		{Key: "log.level", Default: "info", Comment: "Log level: trace, debug, info, warn, error"},
		{Key: "log.format", Default: "console", Comment: "Log format: console or json"},
	}
}
