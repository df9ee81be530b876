package llm

import (
	"fmt"

	"github.com/soyeahso/kaiwa/internal/config"
	"github.com/soyeahso/kaiwa/internal/logging"
)

// NewClient builds the provider selected by cfg.Provider.
func NewClient(cfg config.OpenAIConfig, log *logging.Logger) (Client, error) {
	switch cfg.Provider {
	case "openai", "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		log.Info().
			Str("provider", "openai").
			Str("baseUrl", cfg.BaseURL).
			Str("conversationModel", cfg.ConversationModel).
			Str("transcriptionModel", cfg.TranscriptionModel).
			Msg("LLM provider configured")
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Timeout()), nil
	case "mock":
		log.Warn().Msg("using mock LLM provider; replies are canned")
		return &MockClient{}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
