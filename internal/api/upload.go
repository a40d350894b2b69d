package api

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/labstack/echo/v4"

	"github.com/ironsheep/image-steg/internal/raster"
	"github.com/ironsheep/image-steg/internal/steg"
)

// uploadForm parses the multipart body. HTTP errors raised while reading it,
// such as the body limit, are returned as they are; any other parse failure
// becomes a 400 with missing.
func uploadForm(c echo.Context, missing string) (*multipart.Form, error) {
	form, err := c.MultipartForm()
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return nil, httpErr
		}
		return nil, badRequest(missing)
	}
	return form, nil
}

func formValue(form *multipart.Form, name string) string {
	if v := form.Value[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func formFile(form *multipart.Form) *multipart.FileHeader {
	if fhs := form.File[formImage]; len(fhs) > 0 {
		return fhs[0]
	}
	return nil
}

func loadUpload(fh *multipart.FileHeader) (*raster.Raster, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	return raster.Decode(f)
}

func (s *Server) encodeUpload(fh *multipart.FileHeader, enc steg.Encoder, msg []byte) ([]byte, error) {
	r, err := loadUpload(fh)
	if err != nil {
		return nil, err
	}

	out, err := enc.Encode(r, msg)
	if err != nil {
		return nil, err
	}

	return raster.Serialize(out, raster.WithCompression(s.compression))
}

func decodeUpload(fh *multipart.FileHeader, enc steg.Encoder) ([]byte, error) {
	r, err := loadUpload(fh)
	if err != nil {
		return nil, err
	}
	return enc.Decode(r)
}
