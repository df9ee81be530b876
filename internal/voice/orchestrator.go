// Package voice performs one spoken exchange with the conversational AI
// service: transcription of the learner's audio, the multimodal reply call
// and extraction of the reply's text and audio.
package voice

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/soyeahso/kaiwa/internal/config"
	"github.com/soyeahso/kaiwa/internal/domain"
	"github.com/soyeahso/kaiwa/internal/llm"
	"github.com/soyeahso/kaiwa/internal/logging"
)

// DefaultUploadMIME is assumed for uploads that carry no content type.
const DefaultUploadMIME = "audio/webm"

// Config holds the model and voice settings of an Orchestrator.
type Config struct {
	ConversationModel  string
	TranscriptionModel string
	Voice              string
	ResponseFormat     string
	Timeout            time.Duration // per upstream call; zero means unbounded
}

// ConfigFrom derives orchestrator settings from the service configuration.
func ConfigFrom(c config.OpenAIConfig) Config {
	return Config{
		ConversationModel:  c.ConversationModel,
		TranscriptionModel: c.TranscriptionModel,
		Voice:              c.Voice,
		ResponseFormat:     c.ResponseFormat,
		Timeout:            c.Timeout(),
	}
}

// Reply is the extracted answer of the conversational call. Audio is base64
// and empty when the service sent no audio.
type Reply struct {
	Text  string
	Audio string
}

// Orchestrator runs the upstream side of a voice submission.
type Orchestrator struct {
	client llm.Client
	cfg    Config
	log    *logging.Logger
}

// New creates an Orchestrator.
func New(client llm.Client, cfg Config, log *logging.Logger) *Orchestrator {
	return &Orchestrator{
		client: client,
		cfg:    cfg,
		log:    log.Sub("voice"),
	}
}

// BuildHistory converts a transcript into request messages. Only text is
// replayed: messages without text are skipped, and audio of earlier turns is
// never resent.
func (o *Orchestrator) BuildHistory(messages []domain.Message) []llm.InputMessage {
	history := make([]llm.InputMessage, 0, len(messages))
	for _, m := range messages {
		if !m.Role.Valid() || m.Text == "" {
			continue
		}
		partType := llm.ContentInputText
		if m.Role == domain.RoleAssistant {
			partType = llm.ContentOutputText
		}
		history = append(history, llm.InputMessage{
			Role:    string(m.Role),
			Content: []llm.InputContent{{Type: partType, Text: m.Text}},
		})
	}
	return history
}

// Transcribe returns the text spoken in audio. Failure is not fatal to a
// submission: it is logged and reported as ok == false.
func (o *Orchestrator) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, bool) {
	ctx, cancel := o.callContext(ctx)
	defer cancel()

	text, err := o.client.Transcribe(ctx, llm.TranscriptionRequest{
		Model:    o.cfg.TranscriptionModel,
		Filename: "speech." + ExtensionFromMIME(mimeType),
		Audio:    audio,
	})
	if err != nil {
		o.log.Warn().Err(err).Str("mime", mimeType).Msg("transcription failed; continuing without transcript")
		return "", false
	}
	return text, true
}

// SendAudioMessage asks the service for a spoken reply to audio, given the
// prior transcript. Any failure is returned wrapped in domain.ErrUpstream.
func (o *Orchestrator) SendAudioMessage(ctx context.Context, history []domain.Message, audio []byte, audioFormat string) (Reply, error) {
	input := o.BuildHistory(history)
	input = append(input, llm.InputMessage{
		Role: llm.RoleUser,
		Content: []llm.InputContent{{
			Type:  llm.ContentInputAudio,
			Audio: &llm.InputAudio{Format: audioFormat, Data: base64.StdEncoding.EncodeToString(audio)},
		}},
	})

	ctx, cancel := o.callContext(ctx)
	defer cancel()

	start := time.Now()
	resp, err := o.client.CreateResponse(ctx, llm.ResponseRequest{
		Model:      o.cfg.ConversationModel,
		Input:      input,
		Modalities: []string{llm.ModalityText, llm.ModalityAudio},
		Audio:      &llm.AudioOptions{Voice: o.cfg.Voice, Format: o.cfg.ResponseFormat},
	})
	if err != nil {
		o.log.Error().Err(err).Str("provider", o.client.Name()).Msg("conversation request failed")
		return Reply{}, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}

	reply := ExtractReply(resp)
	o.log.Debug().
		Int("history", len(input)-1).
		Int("replyChars", len(reply.Text)).
		Bool("replyAudio", reply.Audio != "").
		Dur("duration", time.Since(start)).
		Msg("conversation reply received")
	return reply, nil
}

// ReplyMIME is the MIME type of audio produced by SendAudioMessage.
func (o *Orchestrator) ReplyMIME() string {
	return "audio/" + o.cfg.ResponseFormat
}

// callContext bounds an upstream call by the configured timeout. The call is
// detached from the caller's cancellation so a disconnecting client does not
// abort it.
func (o *Orchestrator) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if o.cfg.Timeout <= 0 {
		return context.WithCancel(detached)
	}
	return context.WithTimeout(detached, o.cfg.Timeout)
}

// ExtractReply concatenates the text parts of resp in order and takes the
// first audio part that carries data. When there are no text parts the
// response's flattened output_text is used.
func ExtractReply(resp *llm.Response) Reply {
	var (
		text  strings.Builder
		audio string
	)
	for _, item := range resp.Output {
		for _, c := range item.Content {
			switch c := c.(type) {
			case llm.TextContent:
				text.WriteString(c.Text)
			case llm.AudioContent:
				if audio == "" {
					audio = c.Data
				}
			case llm.UnknownContent:
				// skipped
			}
		}
	}

	out := strings.TrimSpace(text.String())
	if out == "" {
		out = strings.TrimSpace(resp.OutputText)
	}
	return Reply{Text: out, Audio: audio}
}

// BuildAudioPayload wraps base64 data, returning nil when there is none.
func BuildAudioPayload(data, mimeType string) *domain.AudioPayload {
	if data == "" {
		return nil
	}
	return &domain.AudioPayload{MimeType: mimeType, Data: data}
}

// ExtensionFromMIME derives a file extension from a MIME type: the part
// before any ';' and after the last '/'.
func ExtensionFromMIME(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSpace(base)
	if base == "" {
		return ExtensionFromMIME(DefaultUploadMIME)
	}
	return base
}

// AudioFormatFromMIME is the format name sent with input audio. Browsers
// report mp3 as audio/mpeg.
func AudioFormatFromMIME(mimeType string) string {
	ext := ExtensionFromMIME(mimeType)
	if ext == "mpeg" {
		return "mp3"
	}
	return ext
}
