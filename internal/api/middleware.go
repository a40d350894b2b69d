package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger logs one line per request at logLevel, raised to warn for 4xx
// and to error for 5xx responses.
func RequestLogger(logger zerolog.Logger, logLevel zerolog.Level) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		HandleError:     true,
		LogMethod:       true,
		LogURI:          true,
		LogRemoteIP:     true,
		LogStatus:       true,
		LogResponseSize: true,
		LogLatency:      true,
		LogUserAgent:    true,
		LogRequestID:    true,
		LogError:        true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			level := logLevel
			if v.Status >= http.StatusInternalServerError && level < zerolog.ErrorLevel {
				level = zerolog.ErrorLevel
			} else if v.Status >= http.StatusBadRequest && level < zerolog.WarnLevel {
				level = zerolog.WarnLevel
			}

			event := logger.WithLevel(level).
				Str("Method", v.Method).
				Str("URI", v.URI).
				Str("RemoteAddr", v.RemoteIP).
				Int("StatusCode", v.Status).
				Int64("Size", v.ResponseSize).
				Dur("Duration", v.Latency).
				Str("UserAgent", v.UserAgent).
				Str("RequestID", v.RequestID)
			if v.Error != nil {
				event = event.Err(v.Error)
			}
			event.Send()
			return nil
		},
	})
}
