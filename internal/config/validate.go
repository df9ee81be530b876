package config

import (
	"fmt"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue
	add := func(path, format string, args ...any) {
		issues = append(issues, ValidationIssue{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	// Server validation
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		add("server.port", "port must be 0-65535, got %d", cfg.Server.Port)
	}

	validBinds := []string{"loopback", "lan", "custom"}
	if cfg.Server.Bind != "" && !slices.Contains(validBinds, cfg.Server.Bind) {
		add("server.bind", "must be one of %v, got %q", validBinds, cfg.Server.Bind)
	}
	if cfg.Server.Bind == "custom" && cfg.Server.CustomBindHost == "" {
		add("server.customBindHost", "required when bind: custom")
	}
	if cfg.Server.MaxUploadBytes < 0 {
		add("server.maxUploadBytes", "must not be negative, got %d", cfg.Server.MaxUploadBytes)
	}
	if cfg.Server.ShutdownTimeoutSeconds < 0 {
		add("server.shutdownTimeoutSeconds", "must not be negative, got %d", cfg.Server.ShutdownTimeoutSeconds)
	}

	// OpenAI validation
	validProviders := []string{"openai", "mock"}
	if !slices.Contains(validProviders, cfg.OpenAI.Provider) {
		add("openai.provider", "must be one of %v, got %q", validProviders, cfg.OpenAI.Provider)
	}
	if cfg.OpenAI.Provider == "openai" && cfg.OpenAI.APIKey == "" {
		add("openai.apiKey", "required when provider: openai (set OPENAI_API_KEY)")
	}
	if cfg.OpenAI.TimeoutSeconds <= 0 {
		add("openai.timeoutSeconds", "must be positive, got %d", cfg.OpenAI.TimeoutSeconds)
	}
	validFormats := []string{"wav", "mp3", "flac", "opus", "pcm16"}
	if !slices.Contains(validFormats, cfg.OpenAI.ResponseFormat) {
		add("openai.responseFormat", "must be one of %v, got %q", validFormats, cfg.OpenAI.ResponseFormat)
	}

	// Logging validation
	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		add("logging.level", "must be one of %v, got %q", validLogLevels, cfg.Logging.Level)
	}
	validConsoleStyles := []string{"pretty", "compact", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validConsoleStyles, cfg.Logging.ConsoleStyle) {
		add("logging.consoleStyle", "must be one of %v, got %q", validConsoleStyles, cfg.Logging.ConsoleStyle)
	}

	// Practice validation
	if cfg.Practice.Width != 0 && cfg.Practice.Width < 20 {
		add("practice.width", "must be at least 20, got %d", cfg.Practice.Width)
	}
	validColors := []string{"auto", "always", "never"}
	if cfg.Practice.Color != "" && !slices.Contains(validColors, cfg.Practice.Color) {
		add("practice.color", "must be one of %v, got %q", validColors, cfg.Practice.Color)
	}

	return issues
}
