package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewOpenAIClient("sk-test", ts.URL+"/v1/", 5*time.Second)
}

func TestOpenAITranscribe(t *testing.T) {
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "gpt-4o-mini-transcribe", r.FormValue("model"))

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		assert.Equal(t, "speech.webm", header.Filename)
		data, _ := io.ReadAll(file)
		assert.Equal(t, []byte("fake-audio"), data)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"I'd like a latte, please."}`))
	})

	text, err := client.Transcribe(context.Background(), TranscriptionRequest{
		Model:    "gpt-4o-mini-transcribe",
		Filename: "speech.webm",
		Audio:    []byte("fake-audio"),
	})
	require.NoError(t, err)
	assert.Equal(t, "I'd like a latte, please.", text)
}

func TestOpenAITranscribeError(t *testing.T) {
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	})

	_, err := client.Transcribe(context.Background(), TranscriptionRequest{Model: "m", Filename: "speech.wav", Audio: []byte("x")})
	assert.Error(t, err)
}

func TestOpenAICreateResponse(t *testing.T) {
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/responses", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		assert.Equal(t, []any{"text", "audio"}, body["modalities"])
		assert.Equal(t, map[string]any{"voice": "alloy", "format": "wav"}, body["audio"])

		input := body["input"].([]any)
		if !assert.Len(t, input, 2) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		last := input[1].(map[string]any)
		assert.Equal(t, "user", last["role"])
		part := last["content"].([]any)[0].(map[string]any)
		assert.Equal(t, "input_audio", part["type"])
		assert.Equal(t, map[string]any{"format": "webm", "data": "AAAA"}, part["audio"])
		assert.NotContains(t, part, "text")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"resp_1","output":[{"type":"message","role":"assistant","content":[{"type":"output_text","text":"Hello!"}]}]}`))
	})

	resp, err := client.CreateResponse(context.Background(), ResponseRequest{
		Model: "gpt-4o-mini",
		Input: []InputMessage{
			{Role: RoleSystem, Content: []InputContent{{Type: ContentInputText, Text: "be kind"}}},
			{Role: RoleUser, Content: []InputContent{{Type: ContentInputAudio, Audio: &InputAudio{Format: "webm", Data: "AAAA"}}}},
		},
		Modalities: []string{ModalityText, ModalityAudio},
		Audio:      &AudioOptions{Voice: "alloy", Format: "wav"},
	})
	require.NoError(t, err)
	assert.Equal(t, "resp_1", resp.ID)
	assert.Equal(t, TextContent{Text: "Hello!"}, resp.Output[0].Content[0])
}

func TestOpenAICreateResponseAPIError(t *testing.T) {
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	})

	_, err := client.CreateResponse(context.Background(), ResponseRequest{Model: "gpt-4o-mini"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid_request_error", apiErr.Type)
	assert.Equal(t, "Incorrect API key provided", apiErr.Message)
}

func TestOpenAICreateResponsePlainError(t *testing.T) {
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway\n"))
	})

	_, err := client.CreateResponse(context.Background(), ResponseRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestOpenAICreateResponseContextCanceled(t *testing.T) {
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.CreateResponse(ctx, ResponseRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}
