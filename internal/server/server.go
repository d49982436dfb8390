// Package server exposes the placement pipeline over a JSON HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/placementlabs/cpms/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Server holds the API's shared dependencies.
type Server struct {
	db  *gorm.DB
	cfg config.ServerConfig
	log *logrus.Logger
}

// New builds a Server. A nil logger falls back to the logrus standard logger.
func New(gdb *gorm.DB, cfg config.ServerConfig, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{db: gdb, cfg: cfg, log: log}
}

// tokenTTL returns the configured session token lifetime.
func (s *Server) tokenTTL() time.Duration {
	return time.Duration(s.cfg.TokenTTLHours) * time.Hour
}

// Start runs the API server. It blocks until ctx is cancelled, then shuts
// down gracefully.
func Start(ctx context.Context, srv *Server) error {
	if srv.db == nil {
		return fmt.Errorf("server: db is required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := srv.Router()

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", srv.cfg.Port),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	srv.log.WithField("port", srv.cfg.Port).Info("placement API listening")

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// requestLogger logs each request with method, path, status and latency.
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}
