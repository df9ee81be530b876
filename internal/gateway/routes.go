package gateway

import (
	"github.com/labstack/echo/v4"
)

// registerRoutes sets up all HTTP routes on the echo instance.
func (s *Server) registerRoutes(e *echo.Echo) {
	e.GET("/health", s.handleHealth)

	api := e.Group("/api")
	api.GET("/scenarios", s.handleListScenarios)
	api.GET("/phrasebook", s.handlePhrasebook)
	api.POST("/conversations", s.handleCreateConversation)
	api.GET("/conversations/:session_id", s.handleGetConversation)
	api.POST("/conversations/:session_id/voice", s.handleSubmitVoice)

	// Catch-all for unknown routes
	e.RouteNotFound("/*", handleNotFound)
}
