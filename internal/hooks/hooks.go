// Package hooks dispatches server lifecycle events (startup, new
// conversations, processed voice turns) to registered observers.
package hooks

import (
	"context"
	"sync"

	"github.com/soyeahso/kaiwa/internal/logging"
)

// Event names.
const (
	EventServerStart         = "server_start"
	EventServerStop          = "server_stop"
	EventConversationStarted = "conversation_started"
	EventVoiceProcessed      = "voice_processed"
	EventVoiceFailed         = "voice_failed"
)

// AllEvents lists all known event names.
var AllEvents = []string{
	EventServerStart,
	EventServerStop,
	EventConversationStarted,
	EventVoiceProcessed,
	EventVoiceFailed,
}

// Payload carries event data to handlers.
type Payload struct {
	Event     string         `json:"event"`
	SessionID string         `json:"sessionId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// Handler handles one event. Returning an error logs the failure but does not
// stop other handlers.
type Handler func(ctx context.Context, p Payload) error

// Manager keeps handler registrations and dispatches events. A nil *Manager
// drops every event.
type Manager struct {
	mu       sync.RWMutex
	handlers map[string][]namedHandler
	log      *logging.Logger
}

type namedHandler struct {
	name    string
	handler Handler
}

// NewManager creates a hook manager.
func NewManager(log *logging.Logger) *Manager {
	return &Manager{
		handlers: make(map[string][]namedHandler),
		log:      log.Sub("hooks"),
	}
}

// On registers a handler for event under name.
func (m *Manager) On(event, name string, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[event] = append(m.handlers[event], namedHandler{name: name, handler: handler})
	m.log.Debug().Str("event", event).Str("handler", name).Msg("hook registered")
}

// OnAll registers handler for every known event.
func (m *Manager) OnAll(name string, handler Handler) {
	for _, event := range AllEvents {
		m.On(event, name, handler)
	}
}

// Emit calls the handlers for p.Event synchronously in registration order.
func (m *Manager) Emit(ctx context.Context, p Payload) {
	if m == nil {
		return
	}

	m.mu.RLock()
	handlers := make([]namedHandler, len(m.handlers[p.Event]))
	copy(handlers, m.handlers[p.Event])
	m.mu.RUnlock()

	for _, h := range handlers {
		if err := h.handler(ctx, p); err != nil {
			m.log.Warn().
				Err(err).
				Str("event", p.Event).
				Str("handler", h.name).
				Msg("hook handler error")
		}
	}
}

// Count returns the number of handlers registered for an event.
func (m *Manager) Count(event string) int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[event])
}

// AuditHandler writes every event it receives to log at info level.
func AuditHandler(log *logging.Logger) Handler {
	audit := log.Sub("audit")
	return func(_ context.Context, p Payload) error {
		ev := audit.Info().Str("event", p.Event)
		if p.SessionID != "" {
			ev = ev.Str("sessionId", p.SessionID)
		}
		ev.Fields(p.Data).Msg("lifecycle event")
		return nil
	}
}
