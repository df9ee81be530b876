package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/soyeahso/kaiwa/internal/domain"
	"github.com/soyeahso/kaiwa/internal/tutor"
)

// Public messages for failures whose internal detail is not shown to clients.
const (
	msgNoAudio  = "No audio provided."
	msgUpstream = "OpenAI voice conversation request failed."
	msgInternal = "internal server error"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// httpError maps err to a status code and client-facing message.
func httpError(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code, fmt.Sprint(he.Message)
	case errors.Is(err, domain.ErrNotFound):
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return http.StatusNotFound, nf.Error()
		}
		return http.StatusNotFound, err.Error()
	case errors.Is(err, tutor.ErrNoAudio):
		return http.StatusBadRequest, msgNoAudio
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, msgUpstream
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// handleError is the echo HTTPErrorHandler. Handlers return errors and this
// writes the JSON error body.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, msg := httpError(err)
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).
			Str("path", c.Request().URL.Path).
			Int("status", status).
			Msg("request failed")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, ErrorResponse{Error: msg})
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to write error response")
	}
}
