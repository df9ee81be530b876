package hooks

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/soyeahso/kaiwa/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *Manager {
	return NewManager(logging.New(nil, "silent"))
}

func TestManager_On_And_Emit(t *testing.T) {
	m := testManager()

	var got Payload
	m.On(EventConversationStarted, "test", func(_ context.Context, p Payload) error {
		got = p
		return nil
	})

	m.Emit(context.Background(), Payload{
		Event:     EventConversationStarted,
		SessionID: "s-1",
		Data:      map[string]any{"scenario": "coffee-shop"},
	})
	assert.Equal(t, EventConversationStarted, got.Event)
	assert.Equal(t, "s-1", got.SessionID)
	assert.Equal(t, "coffee-shop", got.Data["scenario"])
}

func TestManager_Emit_Order(t *testing.T) {
	m := testManager()

	var order []string
	m.On(EventVoiceProcessed, "first", func(_ context.Context, _ Payload) error {
		order = append(order, "first")
		return nil
	})
	m.On(EventVoiceProcessed, "second", func(_ context.Context, _ Payload) error {
		order = append(order, "second")
		return nil
	})

	m.Emit(context.Background(), Payload{Event: EventVoiceProcessed})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestManager_Emit_HandlerError(t *testing.T) {
	m := testManager()

	var secondCalled bool
	m.On(EventServerStart, "failing", func(_ context.Context, _ Payload) error {
		return errors.New("handler broke")
	})
	m.On(EventServerStart, "second", func(_ context.Context, _ Payload) error {
		secondCalled = true
		return nil
	})

	m.Emit(context.Background(), Payload{Event: EventServerStart})
	assert.True(t, secondCalled)
}

func TestManager_Emit_OtherEventIgnored(t *testing.T) {
	m := testManager()

	var called bool
	m.On(EventServerStart, "test", func(_ context.Context, _ Payload) error {
		called = true
		return nil
	})

	m.Emit(context.Background(), Payload{Event: EventServerStop})
	assert.False(t, called)
}

func TestManager_OnAll(t *testing.T) {
	m := testManager()
	m.OnAll("audit", func(_ context.Context, _ Payload) error { return nil })

	for _, event := range AllEvents {
		assert.Equal(t, 1, m.Count(event), event)
	}
}

func TestManager_Nil(t *testing.T) {
	var m *Manager
	require.NotPanics(t, func() {
		m.Emit(context.Background(), Payload{Event: EventServerStart})
	})
	assert.Equal(t, 0, m.Count(EventServerStart))
}

func TestAuditHandler(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithStyle(&buf, "info", "json")

	m := NewManager(log)
	m.OnAll("audit", AuditHandler(log))
	m.Emit(context.Background(), Payload{
		Event:     EventVoiceFailed,
		SessionID: "s-9",
		Data:      map[string]any{"error": "upstream"},
	})

	out := buf.String()
	assert.Contains(t, out, `"event":"voice_failed"`)
	assert.Contains(t, out, `"sessionId":"s-9"`)
	assert.Contains(t, out, `"error":"upstream"`)
	assert.Contains(t, out, `"subsystem":"audit"`)
}
