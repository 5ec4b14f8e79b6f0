// Package httpapi exposes the server's HTTP endpoints.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fadhilmh/fadhil-app-api/internal/logging"
	"github.com/fadhilmh/fadhil-app-api/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address string
	engine  *gin.Engine
	logger  logging.Logger
	users   *services.UserService
}

func NewHTTPServer(address string, l logging.Logger, us *services.UserService) *HTTPServer {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &HTTPServer{
		address: address,
		engine:  engine,
		logger:  l.With("module", "http_server"),
		users:   us,
	}

	engine.Use(requestLogger(s.logger))
	s.routes()

	return s
}

func (s *HTTPServer) routes() {
	s.engine.GET("/", s.root)
	s.engine.POST("/login", s.login)
	s.engine.POST("/register", s.register)
	s.engine.GET("/me", s.me)
}

// Handler exposes the underlying handler, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
