package llm

import "context"

// MockClient is a test double for Client. It also backs the "mock" provider
// so the server can run without credentials.
type MockClient struct {
	ProviderName       string
	TranscribeFunc     func(ctx context.Context, req TranscriptionRequest) (string, error)
	CreateResponseFunc func(ctx context.Context, req ResponseRequest) (*Response, error)
}

func (m *MockClient) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

func (m *MockClient) Transcribe(ctx context.Context, req TranscriptionRequest) (string, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, req)
	}
	return "mock transcript", nil
}

func (m *MockClient) CreateResponse(ctx context.Context, req ResponseRequest) (*Response, error) {
	if m.CreateResponseFunc != nil {
		return m.CreateResponseFunc(ctx, req)
	}
	return &Response{
		Output: []OutputItem{{
			Type:    "message",
			Role:    RoleAssistant,
			Content: []Content{TextContent{Text: "mock response"}},
		}},
	}, nil
}
