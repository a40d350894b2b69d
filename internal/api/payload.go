package api

import (
	"github.com/labstack/echo/v4"
)

// Payload is the JSON envelope of every non-image response. Data and Error
// are mutually exclusive; a bare status (the not-found fallback) carries
// neither.
type Payload struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// DecodeResponse is the data of a successful decode.
type DecodeResponse struct {
	Message string `json:"message"`
}

// CapacityResponse is the data of a successful capacity query. Capacity maps
// strategy name to the longest message in bytes, -1 when none fits.
type CapacityResponse struct {
	Width             int            `json:"width"`
	Height            int            `json:"height"`
	TransparentPixels int            `json:"transparentPixels"`
	Capacity          map[string]int `json:"capacity"`
}

// HealthResponse is the data of the health check.
type HealthResponse struct {
	Status string `json:"status"`
}

const jsonIndent = "    "

func respond(c echo.Context, code int, data interface{}) error {
	return c.JSONPretty(code, Payload{StatusCode: code, Data: data}, jsonIndent)
}

func respondError(c echo.Context, code int, message string) error {
	return c.JSONPretty(code, Payload{StatusCode: code, Error: message}, jsonIndent)
}
