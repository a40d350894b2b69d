package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/ironsheep/image-steg/internal/raster"
	"github.com/ironsheep/image-steg/internal/steg"
)

type ErrorHandlerTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (suite *ErrorHandlerTestSuite) SetupTest() {
	suite.echo = echo.New()
	suite.echo.HTTPErrorHandler = ErrorHandler
}

func (suite *ErrorHandlerTestSuite) TestStatusFor() {
	for _, tc := range []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request",
			err:     badRequest(msgDecodeRequired),
			code:    http.StatusBadRequest,
			message: "A valid image is required.",
		},
		{
			name: "not found",
			err:  echo.ErrNotFound,
			code: http.StatusNotFound,
		},
		{
			name: "method not allowed",
			err:  echo.ErrMethodNotAllowed,
			code: http.StatusNotFound,
		},
		{
			name:    "http error without string message",
			err:     echo.NewHTTPError(http.StatusConflict, 42),
			code:    http.StatusConflict,
			message: "Conflict",
		},
		{
			name:    "corrupt image",
			err:     fmt.Errorf("failed to open image: %w", raster.ErrCorruptImage),
			code:    http.StatusUnprocessableEntity,
			message: msgCorruptImage,
		},
		{
			name:    "insufficient capacity",
			err:     &steg.Error{Kind: steg.ErrInsufficientCapacity, Message: "Not enough pixels to write the message."},
			code:    http.StatusUnprocessableEntity,
			message: "Not enough pixels to write the message.",
		},
		{
			name:    "no message",
			err:     &steg.Error{Kind: steg.ErrNoMessageFound, Message: "No message in image."},
			code:    http.StatusUnprocessableEntity,
			message: "No message in image.",
		},
		{
			name:    "unexpected",
			err:     &steg.Error{Kind: steg.ErrUnexpected, Message: "Unexpected error."},
			code:    http.StatusInternalServerError,
			message: "An internal error occurred: Unexpected error.",
		},
		{
			name:    "unknown",
			err:     errors.New("disk on fire"),
			code:    http.StatusInternalServerError,
			message: "An internal error occurred: disk on fire",
		},
	} {
		suite.Run(tc.name, func() {
			code, message := StatusFor(tc.err)
			suite.Equal(tc.code, code)
			suite.Equal(tc.message, message)
		})
	}
}

func (suite *ErrorHandlerTestSuite) TestRendersPayload() {
	req := httptest.NewRequest(http.MethodPost, "/bit/encode", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	ErrorHandler(&steg.Error{Kind: steg.ErrNoMessageFound, Message: "No message in image."}, c)

	suite.Equal(http.StatusUnprocessableEntity, rec.Code)

	var p Payload
	suite.Require().NoError(json.NewDecoder(rec.Body).Decode(&p))
	suite.Equal(http.StatusUnprocessableEntity, p.StatusCode)
	suite.Equal("No message in image.", p.Error)
	suite.Nil(p.Data)
}

func (suite *ErrorHandlerTestSuite) TestHeadRequest() {
	req := httptest.NewRequest(http.MethodHead, "/", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	ErrorHandler(errors.New("test error"), c)

	suite.Equal(http.StatusInternalServerError, rec.Code)
	suite.Empty(rec.Body.String())
}

func (suite *ErrorHandlerTestSuite) TestCommittedResponseUntouched() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	suite.Require().NoError(c.String(http.StatusAccepted, "done"))
	ErrorHandler(errors.New("late error"), c)

	suite.Equal(http.StatusAccepted, rec.Code)
	suite.Equal("done", rec.Body.String())
}

func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}
