package config

// Config is the root configuration for the kaiwa programs.
type Config struct {
	Server   ServerConfig   `yaml:"server,omitempty"`
	OpenAI   OpenAIConfig   `yaml:"openai,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Practice PracticeConfig `yaml:"practice,omitempty"`
}

// ServerConfig controls the web backend's HTTP listener.
type ServerConfig struct {
	Port                   int      `yaml:"port,omitempty"`
	Bind                   string   `yaml:"bind,omitempty"` // "loopback" | "lan" | "custom"
	CustomBindHost         string   `yaml:"customBindHost,omitempty"`
	AllowedOrigins         []string `yaml:"allowedOrigins,omitempty"` // empty or "*" allows any origin without credentials
	MaxUploadBytes         int64    `yaml:"maxUploadBytes,omitempty"`
	ShutdownTimeoutSeconds int      `yaml:"shutdownTimeoutSeconds,omitempty"`
}

// OpenAIConfig selects and configures the conversational AI provider.
type OpenAIConfig struct {
	Provider           string `yaml:"provider,omitempty"` // "openai" | "mock"
	APIKey             string `yaml:"apiKey,omitempty"`
	BaseURL            string `yaml:"baseUrl,omitempty"`
	ConversationModel  string `yaml:"conversationModel,omitempty"`
	TranscriptionModel string `yaml:"transcriptionModel,omitempty"`
	Voice              string `yaml:"voice,omitempty"`
	ResponseFormat     string `yaml:"responseFormat,omitempty"` // "wav" | "mp3" | "flac" | "opus" | "pcm16"
	TimeoutSeconds     int    `yaml:"timeoutSeconds,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"`        // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "compact" | "json"
}

// PracticeConfig controls the terminal practice program.
type PracticeConfig struct {
	Width int    `yaml:"width,omitempty"`
	Color string `yaml:"color,omitempty"` // "auto" | "always" | "never"
}

// AllowsAnyOrigin reports whether CORS should accept every origin. Credentials
// are only allowed when it returns false.
func (s ServerConfig) AllowsAnyOrigin() bool {
	if len(s.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range s.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
