// Package server exposes quickhire over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/julianstephens/quickhire/internal/constants"
	"github.com/julianstephens/quickhire/internal/logger"
	"github.com/julianstephens/quickhire/internal/planner"
	"github.com/julianstephens/quickhire/internal/services"
	"github.com/julianstephens/quickhire/internal/storage"
)

type Config struct {
	Addr string
	// AllowOrigins lists CORS origins; empty allows all.
	AllowOrigins []string
	Debug        bool
}

type Deps struct {
	Store     storage.Provider
	Generator *planner.Generator
	Services  *services.Services
	Now       func() time.Time
}

type Server struct {
	router *gin.Engine
	http   *http.Server
}

func New(cfg Config, deps Deps) *Server {
	if cfg.Addr == "" {
		cfg.Addr = constants.DefaultListenAddr
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	router := NewRouter(cfg, deps)
	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: constants.ReadHeaderTimeout,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Addr() string {
	return s.http.Addr
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	logger.Info("HTTP server shutting down")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func NewRouter(cfg Config, deps Deps) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsCfg))

	h := &handlers{deps: deps}
	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, codeNotFound, errors.New("route not found"))
	})

	api := router.Group("/api/v1")
	{
		api.GET("/health", h.health)
		api.GET("/technologies", h.listTechnologies)

		api.POST("/plans/generate", h.generatePlan)
		api.POST("/plans", h.createPlan)
		api.GET("/plans", h.listPlans)
		api.GET("/plans/:id", h.getPlan)
		api.DELETE("/plans/:id", h.deletePlan)
		api.POST("/plans/:id/restore", h.restorePlan)
		api.PATCH("/plans/:id/days/:day", h.setDayCompleted)
		api.GET("/plans/:id/progress", h.planProgress)

		api.GET("/experiences", h.listExperiences)
		api.POST("/experiences", h.createExperience)
		api.GET("/experiences/:id", h.getExperience)
		api.PUT("/experiences/:id", h.updateExperience)
		api.DELETE("/experiences/:id", h.deleteExperience)

		api.GET("/jobs", h.listJobs)
		api.POST("/jobs", h.createJob)
		api.GET("/jobs/:id", h.getJob)
		api.DELETE("/jobs/:id", h.deleteJob)

		api.GET("/events", h.listEvents)
		api.POST("/events", h.createEvent)
		api.GET("/events/upcoming", h.upcomingEvents)
		api.GET("/events/:id", h.getEvent)
		api.DELETE("/events/:id", h.deleteEvent)
	}
	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
