package gateway

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/soyeahso/kaiwa/internal/domain"
	"github.com/soyeahso/kaiwa/internal/hooks"
	"github.com/soyeahso/kaiwa/internal/scenario"
	"github.com/soyeahso/kaiwa/internal/tutor"
)

// uploadField is the multipart field carrying the recorded audio.
const uploadField = "file"

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// ScenarioListResponse lists every scenario in catalog order.
type ScenarioListResponse struct {
	Scenarios []domain.ScenarioResource `json:"scenarios"`
}

// PhrasebookResponse groups phrasebook entries by scenario title.
type PhrasebookResponse struct {
	Sections []domain.PhrasebookSection `json:"sections"`
}

// CreateConversationRequest is the body of POST /api/conversations.
type CreateConversationRequest struct {
	ScenarioID string `json:"scenario_id"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleListScenarios(c echo.Context) error {
	catalog := scenario.List()
	resp := ScenarioListResponse{Scenarios: make([]domain.ScenarioResource, 0, len(catalog))}
	for _, sc := range catalog {
		resp.Scenarios = append(resp.Scenarios, sc.Resource())
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePhrasebook(c echo.Context) error {
	return c.JSON(http.StatusOK, PhrasebookResponse{Sections: scenario.PhrasebookSections()})
}

func (s *Server) handleCreateConversation(c echo.Context) error {
	var req CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	sess, err := s.sessions.CreateSession(req.ScenarioID)
	if err != nil {
		return err
	}

	s.log.Info().
		Str("sessionId", sess.ID).
		Str("scenario", sess.Scenario.ID).
		Msg("conversation started")
	s.hooks.Emit(c.Request().Context(), hooks.Payload{
		Event:     hooks.EventConversationStarted,
		SessionID: sess.ID,
		Data:      map[string]any{"scenario": sess.Scenario.ID},
	})

	return c.JSON(http.StatusOK, sess.State())
}

func (s *Server) handleGetConversation(c echo.Context) error {
	state, err := s.sessions.ConversationState(c.Param("session_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}

func (s *Server) handleSubmitVoice(c echo.Context) error {
	if s.runner == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "voice conversations are unavailable")
	}

	sessionID := c.Param("session_id")
	if _, err := s.sessions.GetSession(sessionID); err != nil {
		return err
	}

	audio, mimeType, err := readUpload(c)
	if err != nil {
		return err
	}

	result, err := s.runner.SubmitVoice(c.Request().Context(), tutor.VoiceSubmission{
		SessionID: sessionID,
		Audio:     audio,
		MimeType:  mimeType,
	})
	if err != nil {
		s.hooks.Emit(c.Request().Context(), hooks.Payload{
			Event:     hooks.EventVoiceFailed,
			SessionID: sessionID,
			Data:      map[string]any{"error": err.Error()},
		})
		return err
	}
	s.hooks.Emit(c.Request().Context(), hooks.Payload{
		Event:     hooks.EventVoiceProcessed,
		SessionID: sessionID,
		Data: map[string]any{
			"messages":    len(result.Conversation.Messages),
			"transcribed": result.Transcript != nil,
		},
	})
	return c.JSON(http.StatusOK, result)
}

// readUpload returns the bytes and declared content type of the uploaded
// audio part. A missing part reads as empty audio.
func readUpload(c echo.Context) ([]byte, string, error) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, "", nil
		}
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid multipart upload").SetInternal(err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("reading upload: %w", err)
	}
	return data, fh.Header.Get(echo.HeaderContentType), nil
}

// handleNotFound returns a 404 for unknown routes.
func handleNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]string{
		"error": "not found",
		"path":  c.Request().URL.Path,
	})
}
