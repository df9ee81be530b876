package config

import (
	"fmt"
	"time"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Default values.
const (
	DefaultPort               = 8000
	DefaultMaxUploadBytes     = 25 << 20
	DefaultBaseURL            = "https://api.openai.com/v1"
	DefaultConversationModel  = "gpt-4o-mini"
	DefaultTranscriptionModel = "gpt-4o-mini-transcribe"
	DefaultVoice              = "alloy"
	DefaultResponseFormat     = "wav"
	DefaultWidth              = 72
)

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:                   DefaultPort,
			Bind:                   "loopback",
			MaxUploadBytes:         DefaultMaxUploadBytes,
			ShutdownTimeoutSeconds: 10,
		},
		OpenAI: OpenAIConfig{
			Provider:           "openai",
			BaseURL:            DefaultBaseURL,
			ConversationModel:  DefaultConversationModel,
			TranscriptionModel: DefaultTranscriptionModel,
			Voice:              DefaultVoice,
			ResponseFormat:     DefaultResponseFormat,
			TimeoutSeconds:     60,
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
		Practice: PracticeConfig{
			Width: DefaultWidth,
			Color: "auto",
		},
	}
}

// Timeout is the bound applied to each upstream call.
func (c OpenAIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ShutdownTimeout is how long the server waits for in-flight requests on exit.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Redacted returns a copy of cfg that is safe to print.
func (c Config) Redacted() Config {
	out := c
	out.Server.AllowedOrigins = append([]string(nil), c.Server.AllowedOrigins...)
	if out.OpenAI.APIKey != "" {
		out.OpenAI.APIKey = "********"
	}
	return out
}
