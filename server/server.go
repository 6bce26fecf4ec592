// Package server serves the compiled client and a small status API.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"relman/checker"
	"relman/logger"
)

// StatusChecker is the probe behind /api/status.
type StatusChecker interface {
	CheckSystem(ctx context.Context) (checker.SystemStatus, error)
}

// Server routes /api/ to gin and everything else to the go-app handler.
type Server struct {
	addr      string
	app       http.Handler
	status    StatusChecker
	log       *logger.Logger
	server    *http.Server
	startTime time.Time
}

func New(addr string, app http.Handler, status StatusChecker, log *logger.Logger) *Server {
	if addr == "" {
		addr = ":8080"
	}
	return &Server{
		addr:      addr,
		app:       app,
		status:    status,
		log:       log,
		startTime: time.Now(),
	}
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", s.apiRouter())
	mux.Handle("/", s.app)
	return mux
}

func (s *Server) apiRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog)

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/status", s.handleStatus)
	return r
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	s.startTime = time.Now()

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error(err, "server stopped")
		}
	}()
	s.log.Info("listening on " + listener.Addr().String())
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).Truncate(time.Second).String(),
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	status, err := s.status.CheckSystem(c.Request.Context())
	if err != nil {
		s.log.Error(err, "failed to get system status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get system status"})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) requestLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.WithFields(map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}).Debug("api request")
}
