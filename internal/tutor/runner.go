// Package tutor drives a learner's voice submission through transcription,
// the conversational reply and persistence of both sides of the exchange.
package tutor

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/soyeahso/kaiwa/internal/domain"
	"github.com/soyeahso/kaiwa/internal/logging"
	"github.com/soyeahso/kaiwa/internal/store"
	"github.com/soyeahso/kaiwa/internal/voice"
)

// ErrNoAudio is returned for a submission without audio bytes.
var ErrNoAudio = fmt.Errorf("%w: no audio provided", domain.ErrInvalidInput)

// SessionStore is the part of the conversation store the runner needs.
type SessionStore interface {
	GetSession(id string) (store.Session, error)
	AppendMessage(sessionID string, role domain.Role, text string, audio *domain.AudioPayload) (domain.Message, error)
	ConversationState(sessionID string) (domain.ConversationState, error)
	LockSession(sessionID string) (unlock func(), err error)
}

// Phase is a step of one voice submission.
type Phase string

const (
	PhaseReceived     Phase = "received"
	PhaseTranscribing Phase = "transcribing"
	PhaseCallingModel Phase = "calling_model"
	PhasePersisting   Phase = "persisting"
	PhaseDone         Phase = "done"
)

// VoiceSubmission is one recorded learner utterance for a session.
type VoiceSubmission struct {
	SessionID string
	Audio     []byte
	MimeType  string
}

// VoiceResult is the outcome of a successful submission. Transcript is nil
// when transcription failed.
type VoiceResult struct {
	Conversation domain.ConversationState `json:"conversation"`
	Transcript   *string                  `json:"transcript"`
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPhaseObserver registers fn to be called as a submission enters each phase.
func WithPhaseObserver(fn func(sessionID string, p Phase)) RunnerOption {
	return func(r *Runner) {
		r.onPhase = fn
	}
}

// Runner executes voice submissions. Submissions for the same session run one
// at a time so each user message is immediately followed by its reply.
type Runner struct {
	sessions SessionStore
	voice    *voice.Orchestrator
	log      *logging.Logger
	onPhase  func(sessionID string, p Phase)
}

// NewRunner creates a Runner.
func NewRunner(sessions SessionStore, orchestrator *voice.Orchestrator, log *logging.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		sessions: sessions,
		voice:    orchestrator,
		log:      log.Sub("tutor"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SubmitVoice runs one submission. Unknown sessions fail with
// domain.ErrNotFound, empty audio with domain.ErrInvalidInput and a failed
// conversational call with domain.ErrUpstream; in all three cases the session
// is left untouched.
func (r *Runner) SubmitVoice(ctx context.Context, sub VoiceSubmission) (*VoiceResult, error) {
	start := time.Now()

	unlock, err := r.sessions.LockSession(sub.SessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	session, err := r.sessions.GetSession(sub.SessionID)
	if err != nil {
		return nil, err
	}
	r.phase(sub.SessionID, PhaseReceived)

	if len(sub.Audio) == 0 {
		return nil, ErrNoAudio
	}

	mimeType := sub.MimeType
	if mimeType == "" {
		mimeType = voice.DefaultUploadMIME
	}

	r.log.Info().
		Str("sessionId", sub.SessionID).
		Str("scenario", session.Scenario.ID).
		Str("mime", mimeType).
		Int("bytes", len(sub.Audio)).
		Int("historyLen", len(session.Messages)).
		Msg("processing voice message")

	r.phase(sub.SessionID, PhaseTranscribing)
	transcript, transcribed := r.voice.Transcribe(ctx, sub.Audio, mimeType)

	r.phase(sub.SessionID, PhaseCallingModel)
	reply, err := r.voice.SendAudioMessage(ctx, session.Messages, sub.Audio, voice.AudioFormatFromMIME(mimeType))
	if err != nil {
		return nil, err
	}

	r.phase(sub.SessionID, PhasePersisting)
	userAudio := voice.BuildAudioPayload(base64.StdEncoding.EncodeToString(sub.Audio), mimeType)
	if _, err := r.sessions.AppendMessage(sub.SessionID, domain.RoleUser, transcript, userAudio); err != nil {
		return nil, fmt.Errorf("recording user message: %w", err)
	}
	replyAudio := voice.BuildAudioPayload(reply.Audio, r.voice.ReplyMIME())
	if _, err := r.sessions.AppendMessage(sub.SessionID, domain.RoleAssistant, reply.Text, replyAudio); err != nil {
		return nil, fmt.Errorf("recording assistant message: %w", err)
	}

	state, err := r.sessions.ConversationState(sub.SessionID)
	if err != nil {
		return nil, err
	}
	r.phase(sub.SessionID, PhaseDone)

	r.log.Info().
		Str("sessionId", sub.SessionID).
		Bool("transcribed", transcribed).
		Int("messages", len(state.Messages)).
		Dur("duration", time.Since(start)).
		Msg("voice message complete")

	result := &VoiceResult{Conversation: state}
	if transcribed {
		result.Transcript = &transcript
	}
	return result, nil
}

func (r *Runner) phase(sessionID string, p Phase) {
	r.log.Debug().Str("sessionId", sessionID).Str("phase", string(p)).Msg("voice submission")
	if r.onPhase != nil {
		r.onPhase(sessionID, p)
	}
}
