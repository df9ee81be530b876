package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")
	require.NotNil(t, log)

	log.Info().Msg("server ready")
	assert.Contains(t, buf.String(), "server ready")
}

func TestSub(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")
	sub := log.Sub("tutor")
	require.NotNil(t, sub)

	sub.Info().Str("sessionId", "s-1").Msg("voice message complete")
	output := buf.String()
	assert.Contains(t, output, "voice message complete")
	assert.Contains(t, output, "tutor")
	assert.Contains(t, output, "s-1")
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Debug().Msg("debug msg")
	log.Info().Msg("info msg")
	assert.Empty(t, buf.String(), "debug and info should be filtered at warn level")

	log.Warn().Msg("warn msg")
	assert.Contains(t, buf.String(), "warn msg")

	buf.Reset()
	log.Error().Msg("error msg")
	assert.Contains(t, buf.String(), "error msg")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"silent", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"unknown", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel}, // case-sensitive, defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestSilentLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "silent")

	log.Debug().Msg("should not appear")
	log.Info().Msg("should not appear")
	log.Warn().Msg("should not appear")
	log.Error().Msg("should not appear")

	assert.Empty(t, buf.String())
}

func TestNewWithStyleJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithStyle(&buf, "info", StyleJSON)

	log.Sub("gateway").Info().Str("path", "/health").Msg("http request")
	out := buf.String()
	assert.Contains(t, out, `"message":"http request"`)
	assert.Contains(t, out, `"subsystem":"gateway"`)
	assert.Contains(t, out, `"path":"/health"`)
}

func TestNewWithStyleConsole(t *testing.T) {
	for _, style := range []string{StylePretty, StyleCompact, "unknown"} {
		t.Run(style, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithStyle(&buf, "debug", style)
			log.Debug().Msg("console line")
			assert.Contains(t, buf.String(), "console line")
			assert.NotContains(t, buf.String(), `"message"`)
		})
	}
}
