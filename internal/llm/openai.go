package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient talks to the OpenAI API. Transcription goes through the
// go-openai SDK; the multimodal Responses endpoint, which the SDK does not
// cover, is called directly.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	sdk     *openai.Client
	http    *http.Client
}

// NewOpenAIClient creates a client for baseURL (e.g. https://api.openai.com/v1).
func NewOpenAIClient(apiKey, baseURL string, timeout time.Duration) *OpenAIClient {
	httpClient := &http.Client{Timeout: timeout}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = httpClient

	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: cfg.BaseURL,
		sdk:     openai.NewClientWithConfig(cfg),
		http:    httpClient,
	}
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Transcribe uploads recorded speech and returns the recognized text.
func (c *OpenAIClient) Transcribe(ctx context.Context, req TranscriptionRequest) (string, error) {
	resp, err := c.sdk.CreateTranscription(ctx, openai.AudioRequest{
		Model:    req.Model,
		FilePath: req.Filename,
		Reader:   bytes.NewReader(req.Audio),
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return resp.Text, nil
}

// CreateResponse sends one request to the Responses endpoint.
func (c *OpenAIClient) CreateResponse(ctx context.Context, req ResponseRequest) (*Response, error) {
	payload, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	return ParseResponse(body)
}

func parseAPIError(status int, body []byte) error {
	var envelope struct {
		Error *struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := sonic.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return &APIError{StatusCode: status, Type: envelope.Error.Type, Message: envelope.Error.Message}
	}
	return &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
}
