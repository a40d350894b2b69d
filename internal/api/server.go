// Package api serves the steganography encoders over HTTP.
//
// Every strategy listed by steg.Strategies gets a route group named after it
// with two multipart endpoints: POST /<strategy>/encode takes the fields
// "image" and "message" and answers with a PNG; POST /<strategy>/decode takes
// "image" and answers with the recovered message. All other responses are
// Payload JSON. Unknown routes answer 404 with a bare status.
package api

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ironsheep/image-steg/internal/config"
	"github.com/ironsheep/image-steg/internal/steg"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Params configures NewServer.
type Params struct {
	API config.API
	PNG config.PNG

	// Logger receives one line per request. Defaults to the global logger.
	Logger *zerolog.Logger
}

// Server is the HTTP front end.
type Server struct {
	router      *echo.Echo
	config      config.API
	compression png.CompressionLevel
	metrics     *Metrics
}

// NewServer builds the router and registers every route.
func NewServer(params Params) (*Server, error) {
	logger := log.Logger
	if params.Logger != nil {
		logger = *params.Logger
	}

	s := &Server{
		router:      echo.New(),
		config:      params.API,
		compression: params.PNG.Level(),
		metrics:     NewMetrics(),
	}

	s.router.HideBanner = true
	s.router.HidePort = true
	s.router.HTTPErrorHandler = ErrorHandler

	s.router.Use(
		middleware.Recover(),
		middleware.RequestID(),
		RequestLogger(logger, zerolog.InfoLevel),
		middleware.BodyLimit(params.API.MaxUpload.String()),
	)

	for _, name := range steg.Strategies() {
		enc, err := steg.Lookup(name)
		if err != nil {
			return nil, err
		}
		g := s.router.Group("/" + name)
		g.POST("/encode", s.encode(name, enc))
		g.POST("/decode", s.decode(name, enc))
	}

	s.router.POST("/capacity", s.capacity)
	s.router.GET("/healthz", s.healthz)
	s.router.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	s.router.RouteNotFound("/*", s.fallback)

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// GetURI returns the HTTP URI that the server is listening on.
func (s *Server) GetURI() string {
	return fmt.Sprintf("http://%s", s.config.Address())
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Handler:           s.router,
		Addr:              s.config.Address(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
	}

	shutdownErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			shutdownErr <- srv.Shutdown(shutdownCtx)
		case <-done:
		}
	}()

	log.Ctx(ctx).Info().Msgf("API server listening on %s", srv.Addr)

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		log.Ctx(ctx).Info().Msg("API server stopped")
		return <-shutdownErr
	}
	return err
}
