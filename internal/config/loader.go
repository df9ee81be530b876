package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	cfg.OpenAI.APIKey = expandEnvVars(cfg.OpenAI.APIKey)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	d := Defaults()
	if cfg.Server.Port == 0 {
		cfg.Server.Port = d.Server.Port
	}
	if cfg.Server.Bind == "" {
		cfg.Server.Bind = d.Server.Bind
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = d.Server.MaxUploadBytes
	}
	if cfg.Server.ShutdownTimeoutSeconds == 0 {
		cfg.Server.ShutdownTimeoutSeconds = d.Server.ShutdownTimeoutSeconds
	}
	if cfg.OpenAI.Provider == "" {
		cfg.OpenAI.Provider = d.OpenAI.Provider
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = d.OpenAI.BaseURL
	}
	if cfg.OpenAI.ConversationModel == "" {
		cfg.OpenAI.ConversationModel = d.OpenAI.ConversationModel
	}
	if cfg.OpenAI.TranscriptionModel == "" {
		cfg.OpenAI.TranscriptionModel = d.OpenAI.TranscriptionModel
	}
	if cfg.OpenAI.Voice == "" {
		cfg.OpenAI.Voice = d.OpenAI.Voice
	}
	if cfg.OpenAI.ResponseFormat == "" {
		cfg.OpenAI.ResponseFormat = d.OpenAI.ResponseFormat
	}
	if cfg.OpenAI.TimeoutSeconds == 0 {
		cfg.OpenAI.TimeoutSeconds = d.OpenAI.TimeoutSeconds
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = d.Logging.Level
	}
	if cfg.Logging.ConsoleStyle == "" {
		cfg.Logging.ConsoleStyle = d.Logging.ConsoleStyle
	}
	if cfg.Practice.Width == 0 {
		cfg.Practice.Width = d.Practice.Width
	}
	if cfg.Practice.Color == "" {
		cfg.Practice.Color = d.Practice.Color
	}
}

// applyEnvOverrides reads the service environment and KAIWA_* variables and
// overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("FRONTEND_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = ParseOrigins(v)
	}
	if v := os.Getenv("KAIWA_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("KAIWA_BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv("KAIWA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("KAIWA_PROVIDER"); v != "" {
		cfg.OpenAI.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("KAIWA_OPENAI_BASE_URL"); v != "" {
		cfg.OpenAI.BaseURL = v
	}
}

// ParseOrigins turns a comma separated origin list into a slice. A lone "*"
// (or an empty value) means any origin.
func ParseOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
