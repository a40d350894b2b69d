package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/ironsheep/image-steg/internal/raster"
	"github.com/ironsheep/image-steg/internal/steg"
)

const (
	msgEncodeRequired = "A valid image and message are required."
	msgDecodeRequired = "A valid image is required."
	msgCorruptImage   = "Invalid image format: the file may be corrupt."
	msgInternalPrefix = "An internal error occurred: "
)

// StatusFor maps an error returned by a handler to a status code and the
// message shown to the client. A zero-length message means the payload carries
// only the status.
func StatusFor(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		switch httpErr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return http.StatusNotFound, ""
		}
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, message

	case errors.Is(err, raster.ErrCorruptImage):
		return http.StatusUnprocessableEntity, msgCorruptImage

	case errors.Is(err, steg.ErrInsufficientCapacity), errors.Is(err, steg.ErrNoMessageFound):
		return http.StatusUnprocessableEntity, err.Error()

	default:
		return http.StatusInternalServerError, msgInternalPrefix + err.Error()
	}
}

// ErrorHandler renders handler errors as Payload JSON.
func ErrorHandler(err error, c echo.Context) {
	// Already rendered by the request logger.
	if c.Response().Committed {
		return
	}

	code, message := StatusFor(err)

	var responseErr error
	switch {
	case c.Request().Method == http.MethodHead:
		responseErr = c.NoContent(code)
	case message == "":
		responseErr = c.JSONPretty(code, Payload{StatusCode: code}, jsonIndent)
	default:
		responseErr = respondError(c, code, message)
	}

	if responseErr != nil {
		log.Error().Err(responseErr).
			Str("original_error", err.Error()).
			Msg("Failed to send error response")
	}
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}
