// Package llm is the boundary to the conversational AI service: speech
// transcription and multimodal responses.
package llm

import (
	"context"
)

// Role constants for request messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ContentType tags request and response content parts.
type ContentType string

const (
	ContentInputText   ContentType = "input_text"
	ContentInputAudio  ContentType = "input_audio"
	ContentOutputText  ContentType = "output_text"
	ContentOutputAudio ContentType = "output_audio"
)

// Modalities requested from the conversational endpoint.
const (
	ModalityText  = "text"
	ModalityAudio = "audio"
)

// InputAudio is base64 audio sent as part of a request message.
type InputAudio struct {
	Format string `json:"format"`
	Data   string `json:"data"`
}

// InputContent is one part of a request message.
type InputContent struct {
	Type  ContentType `json:"type"`
	Text  string      `json:"text,omitempty"`
	Audio *InputAudio `json:"audio,omitempty"`
}

// InputMessage is one entry of the request history.
type InputMessage struct {
	Role    string         `json:"role"`
	Content []InputContent `json:"content"`
}

// AudioOptions selects the voice and encoding of the spoken reply.
type AudioOptions struct {
	Voice  string `json:"voice"`
	Format string `json:"format"`
}

// ResponseRequest is the input to CreateResponse.
type ResponseRequest struct {
	Model      string         `json:"model"`
	Input      []InputMessage `json:"input"`
	Modalities []string       `json:"modalities,omitempty"`
	Audio      *AudioOptions  `json:"audio,omitempty"`
}

// TranscriptionRequest is the input to Transcribe. Filename carries the
// extension the service uses to detect the container format.
type TranscriptionRequest struct {
	Model    string
	Filename string
	Audio    []byte
}

// Transcriber turns recorded speech into text.
type Transcriber interface {
	Transcribe(ctx context.Context, req TranscriptionRequest) (string, error)
}

// Responder produces a conversational reply.
type Responder interface {
	CreateResponse(ctx context.Context, req ResponseRequest) (*Response, error)
}

// Client is the interface all providers must implement.
type Client interface {
	Transcriber
	Responder

	// Name returns the provider name (e.g., "openai", "mock").
	Name() string
}
