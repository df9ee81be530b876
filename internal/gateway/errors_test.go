package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/soyeahso/kaiwa/internal/domain"
	"github.com/soyeahso/kaiwa/internal/tutor"
	"github.com/stretchr/testify/assert"
)

func TestHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"unknown scenario", domain.UnknownScenario("x"), http.StatusNotFound, "unknown scenario id: x"},
		{"wrapped session", fmt.Errorf("lookup: %w", domain.UnknownSession("s1")), http.StatusNotFound, "unknown session: s1"},
		{"no audio", tutor.ErrNoAudio, http.StatusBadRequest, "No audio provided."},
		{"invalid input", fmt.Errorf("%w: bad role", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: bad role"},
		{"upstream", fmt.Errorf("%w: timeout", domain.ErrUpstream), http.StatusBadGateway, "OpenAI voice conversation request failed."},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := httpError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
