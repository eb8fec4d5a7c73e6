// Package server exposes the tracker over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/accounts"
	"github.com/spigell/job-tracker/internal/applications"
	"github.com/spigell/job-tracker/internal/assistant"
	"github.com/spigell/job-tracker/internal/board"
	"github.com/spigell/job-tracker/internal/logger"
	"github.com/spigell/job-tracker/internal/resume"
)

const shutdownTimeout = 5 * time.Second

type Config struct {
	Addr           string
	AllowedOrigins []string
	// StaticDir holds a built web client served for non-API paths. Optional.
	StaticDir string
	Debug     bool
}

// Deps are the services behind the handlers.
type Deps struct {
	Accounts     *accounts.Service
	Applications *applications.Service
	Board        *board.Board
	Assistant    *assistant.Assistant
	History      *assistant.History
	Resumes      *resume.Store
	Logger       *zap.Logger
}

type Server struct {
	cfg    Config
	deps   Deps
	engine *gin.Engine
	logger *zap.Logger
}

func New(cfg Config, deps Deps) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: logger.Named(deps.Logger, "http"),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = s.deps.Resumes.MaxSize()

	r.Use(requestLogger(s.logger), recovery(s.logger), cors(s.cfg.AllowedOrigins))

	api := r.Group("/api")
	api.GET("/health", s.health)

	auth := api.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.POST("/logout", s.logout)
	auth.GET("/verify", s.verify)

	private := api.Group("", s.requireAuth)

	private.GET("/jobs", s.listJobs)
	private.GET("/jobs/best-matches", s.bestMatches)

	private.POST("/resume/upload", s.uploadResume)
	private.GET("/resume", s.getResume)
	private.DELETE("/resume", s.deleteResume)

	private.GET("/applications", s.listApplications)
	private.POST("/applications", s.createApplication)
	private.PATCH("/applications/:id", s.updateApplication)
	private.GET("/applications/job/:jobId", s.applicationByJob)

	private.POST("/assistant/chat", s.chat)
	private.POST("/assistant/clear", s.clearChat)

	r.NoRoute(s.notFound)

	return r
}
