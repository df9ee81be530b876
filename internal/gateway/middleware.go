package gateway

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/soyeahso/kaiwa/internal/config"
	"github.com/soyeahso/kaiwa/internal/logging"
)

// useMiddleware installs the standard middleware chain.
func (s *Server) useMiddleware(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(requestIDMiddleware())
	e.Use(loggingMiddleware(s.log))
	e.Use(corsMiddleware(s.cfg))
	if s.cfg.MaxUploadBytes > 0 {
		e.Use(middleware.BodyLimit(strconv.FormatInt(s.cfg.MaxUploadBytes, 10) + "B"))
	}
}

// requestIDMiddleware keeps a caller supplied X-Request-Id or assigns a UUID.
func requestIDMiddleware() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	})
}

// loggingMiddleware logs each HTTP request.
func loggingMiddleware(log *logging.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			evt := log.Debug()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Warn()
			}
			if v.Error != nil {
				evt = evt.Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("path", v.URIPath).
				Str("route", v.RoutePath).
				Int("status", v.Status).
				Dur("duration", v.Latency).
				Str("requestId", v.RequestID).
				Str("remote", v.RemoteIP).
				Msg("http request")
			return nil
		},
	})
}

// corsMiddleware handles CORS headers. An empty or "*" origin list allows any
// origin without credentials; an explicit list allows credentials.
func corsMiddleware(cfg config.ServerConfig) echo.MiddlewareFunc {
	c := middleware.CORSConfig{
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
	}
	if cfg.AllowsAnyOrigin() {
		c.AllowOrigins = []string{"*"}
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
		c.AllowCredentials = true
	}
	return middleware.CORSWithConfig(c)
}
