package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"openday/internal/config"
	"openday/internal/enroll"
	"openday/internal/metrics"
)

type Server struct {
	cfg     config.Config
	svc     *enroll.Service
	logger  *zap.Logger
	metrics *metrics.Metrics
	limiter *ipLimiter

	engine *gin.Engine
	http   *http.Server
}

func New(cfg config.Config, svc *enroll.Service, logger *zap.Logger, m *metrics.Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.IsDev() && gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		svc:     svc,
		logger:  logger,
		metrics: m,
		limiter: newIPLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	// ClientIP must come from RemoteAddr unless a proxy is configured in front.
	_ = r.SetTrustedProxies(nil)
	r.Use(s.correlationID(), s.requestLog(), s.rateLimit())

	r.NoRoute(func(c *gin.Context) {
		respond(c, http.StatusNotFound, msgRouteNotFound, nil)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	api.POST("/enroll/check", s.handleCheck)
	api.POST("/enroll", s.handleConfirm)
	api.POST("/enroll/update", s.handleUpdate)
	api.POST("/cancel", s.handleCancel)

	admin := r.Group("/admin", s.requireExportToken())
	admin.GET("/roster", s.handleRoster)
	admin.GET("/registrations.csv", s.handleExportCSV)

	s.engine = r
	s.http = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Addr() string { return s.http.Addr }

// ListenAndServe blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) ListenAndServe() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
