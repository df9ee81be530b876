// Package store keeps practice conversations in memory for the lifetime of
// the process.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/soyeahso/kaiwa/internal/domain"
	"github.com/soyeahso/kaiwa/internal/logging"
	"github.com/soyeahso/kaiwa/internal/scenario"
)

// Session is a copy of one conversation: its scenario and ordered transcript.
type Session struct {
	ID       string
	Scenario scenario.Scenario
	Messages []domain.Message
}

// State renders the session as a client snapshot.
func (s Session) State() domain.ConversationState {
	msgs := make([]domain.Message, len(s.Messages))
	copy(msgs, s.Messages)
	return domain.ConversationState{
		SessionID: s.ID,
		Scenario:  s.Scenario.Resource(),
		Messages:  msgs,
	}
}

type entry struct {
	// turn serializes multi-step submissions against one session.
	turn    sync.Mutex
	session Session
}

// ConversationStore owns every live session. All access goes through the
// session id; callers only ever receive copies.
type ConversationStore struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	log      *logging.Logger
	now      func() time.Time
}

// NewConversationStore creates an empty store.
func NewConversationStore(log *logging.Logger) *ConversationStore {
	return &ConversationStore{
		sessions: make(map[string]*entry),
		log:      log.Sub("store"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateSession starts a conversation for scenarioID, or for the default
// scenario when scenarioID is empty. The new session holds exactly one
// system message.
func (s *ConversationStore) CreateSession(scenarioID string) (Session, error) {
	sc, err := scenario.Resolve(scenarioID)
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		ID:       uuid.New().String(),
		Scenario: sc,
		Messages: []domain.Message{s.newMessage(domain.RoleSystem, sc.SystemPrompt(), nil)},
	}

	s.mu.Lock()
	s.sessions[sess.ID] = &entry{session: sess}
	s.mu.Unlock()

	s.log.Debug().
		Str("session", sess.ID).
		Str("scenario", sc.ID).
		Msg("session created")

	return copySession(sess), nil
}

// GetSession returns a copy of the session.
func (s *ConversationStore) GetSession(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	if !ok {
		return Session{}, domain.UnknownSession(id)
	}
	return copySession(e.session), nil
}

// AppendMessage adds a message to the end of a session's transcript and
// returns it.
func (s *ConversationStore) AppendMessage(sessionID string, role domain.Role, text string, audio *domain.AudioPayload) (domain.Message, error) {
	if !role.Valid() {
		return domain.Message{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return domain.Message{}, domain.UnknownSession(sessionID)
	}

	if audio != nil {
		a := *audio
		audio = &a
	}
	msg := s.newMessage(role, text, audio)
	e.session.Messages = append(e.session.Messages, msg)
	return msg, nil
}

// ConversationState returns a snapshot of the session.
func (s *ConversationStore) ConversationState(sessionID string) (domain.ConversationState, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return domain.ConversationState{}, err
	}
	return sess.State(), nil
}

// LockSession acquires the session's turn lock. Reads and single appends do
// not take it; callers that read history, call out and then append do, so
// concurrent submissions to one session run one after another.
func (s *ConversationStore) LockSession(sessionID string) (unlock func(), err error) {
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.UnknownSession(sessionID)
	}

	e.turn.Lock()
	return e.turn.Unlock, nil
}

// Len returns the number of live sessions.
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *ConversationStore) newMessage(role domain.Role, text string, audio *domain.AudioPayload) domain.Message {
	return domain.Message{
		ID:        uuid.New().String(),
		Role:      role,
		Text:      text,
		Audio:     audio,
		CreatedAt: s.now(),
	}
}

func copySession(sess Session) Session {
	msgs := make([]domain.Message, len(sess.Messages))
	copy(msgs, sess.Messages)
	sess.Messages = msgs
	return sess
}
