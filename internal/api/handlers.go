package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ironsheep/image-steg/internal/steg"
)

const (
	formImage   = "image"
	formMessage = "message"

	operationEncode   = "encode"
	operationDecode   = "decode"
	operationCapacity = "capacity"

	mimePNG = "image/png"
)

// encode embeds the "message" form field into the uploaded "image" and
// responds with the resulting PNG.
func (s *Server) encode(name string, enc steg.Encoder) echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := uploadForm(c, msgEncodeRequired)
		if err != nil {
			return err
		}
		message, fh := formValue(form, formMessage), formFile(form)
		if message == "" || fh == nil {
			return badRequest(msgEncodeRequired)
		}

		start := time.Now()
		out, err := s.encodeUpload(fh, enc, []byte(message))
		s.metrics.observe(name, operationEncode, start, len(message), err)
		if err != nil {
			return err
		}

		return c.Blob(http.StatusOK, mimePNG, out)
	}
}

// decode recovers the message hidden in the uploaded "image".
func (s *Server) decode(name string, enc steg.Encoder) echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := uploadForm(c, msgDecodeRequired)
		if err != nil {
			return err
		}
		fh := formFile(form)
		if fh == nil {
			return badRequest(msgDecodeRequired)
		}

		start := time.Now()
		msg, err := decodeUpload(fh, enc)
		s.metrics.observe(name, operationDecode, start, len(msg), err)
		if err != nil {
			return err
		}

		return respond(c, http.StatusOK, DecodeResponse{Message: string(msg)})
	}
}

// capacity reports how many message bytes each strategy can hide in the
// uploaded "image".
func (s *Server) capacity(c echo.Context) error {
	form, err := uploadForm(c, msgDecodeRequired)
	if err != nil {
		return err
	}
	fh := formFile(form)
	if fh == nil {
		return badRequest(msgDecodeRequired)
	}

	start := time.Now()
	r, err := loadUpload(fh)
	s.metrics.observe("all", operationCapacity, start, -1, err)
	if err != nil {
		return err
	}

	resp := CapacityResponse{
		Width:             r.Width,
		Height:            r.Height,
		TransparentPixels: r.TransparentPixels(),
		Capacity:          make(map[string]int),
	}
	for _, name := range steg.Strategies() {
		enc, err := steg.Lookup(name)
		if err != nil {
			return err
		}
		resp.Capacity[name] = enc.Capacity(r)
	}

	return respond(c, http.StatusOK, resp)
}

func (s *Server) healthz(c echo.Context) error {
	return respond(c, http.StatusOK, HealthResponse{Status: "OK"})
}

func (s *Server) fallback(echo.Context) error {
	return echo.ErrNotFound
}
