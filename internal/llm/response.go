package llm

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Content is one tagged part of a response output item. It is one of
// TextContent, AudioContent or UnknownContent.
type Content interface {
	contentType() ContentType
}

// TextContent is an output_text part.
type TextContent struct {
	Text string
}

// AudioContent is an output_audio part. Data is empty when the service sent
// the part without audio.
type AudioContent struct {
	Data       string
	Transcript string
}

// UnknownContent is any part kind this package does not model.
type UnknownContent struct {
	Type ContentType
}

func (TextContent) contentType() ContentType { return ContentOutputText }

func (AudioContent) contentType() ContentType { return ContentOutputAudio }

func (c UnknownContent) contentType() ContentType { return c.Type }

// OutputItem is one entry of a response's output list.
type OutputItem struct {
	Type    string
	Role    string
	Content []Content
}

// Response is a parsed reply from the conversational endpoint.
type Response struct {
	ID         string
	Model      string
	Output     []OutputItem
	OutputText string
}

type wireResponse struct {
	ID         string           `json:"id"`
	Model      string           `json:"model"`
	Output     []wireOutputItem `json:"output"`
	OutputText string           `json:"output_text"`
}

type wireOutputItem struct {
	Type    string        `json:"type"`
	Role    string        `json:"role"`
	Content []wireContent `json:"content"`
}

type wireContent struct {
	Type  ContentType `json:"type"`
	Text  string      `json:"text"`
	Audio *struct {
		Data       string `json:"data"`
		Transcript string `json:"transcript"`
	} `json:"audio"`
}

// ParseResponse decodes a response body.
func ParseResponse(data []byte) (*Response, error) {
	var raw wireResponse
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	resp := &Response{
		ID:         raw.ID,
		Model:      raw.Model,
		OutputText: raw.OutputText,
		Output:     make([]OutputItem, 0, len(raw.Output)),
	}
	for _, item := range raw.Output {
		out := OutputItem{Type: item.Type, Role: item.Role}
		for _, c := range item.Content {
			out.Content = append(out.Content, c.toContent())
		}
		resp.Output = append(resp.Output, out)
	}
	return resp, nil
}

func (c wireContent) toContent() Content {
	switch c.Type {
	case ContentOutputText:
		return TextContent{Text: c.Text}
	case ContentOutputAudio:
		a := AudioContent{}
		if c.Audio != nil {
			a.Data = c.Audio.Data
			a.Transcript = c.Audio.Transcript
		}
		return a
	default:
		return UnknownContent{Type: c.Type}
	}
}
