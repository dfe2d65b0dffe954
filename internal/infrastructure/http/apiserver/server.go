package apiserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/netip"
	"time"

	"github.com/alchemorsel/nutriplan/internal/infrastructure/config"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/monitoring"
	"github.com/alchemorsel/nutriplan/internal/ports/inbound"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Server is the JSON API HTTP server
type Server struct {
	config         *config.Config
	logger         *zap.Logger
	server         *http.Server
	router         *chi.Mux
	handlers       *handlers.NutritionAPIHandlers
	metrics        *monitoring.NutritionMetrics
	openAPIHandler *OpenAPIHandler
	healthChecks   map[string]HealthCheck
	started        time.Time
}

// NewServer creates a new API server instance
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	service inbound.NutritionService,
	metrics *monitoring.NutritionMetrics,
	healthChecks map[string]HealthCheck,
) *Server {
	log = log.Named("api-server")
	server := &Server{
		config:         cfg,
		logger:         log,
		handlers:       handlers.NewNutritionAPIHandlers(service, log),
		metrics:        metrics,
		openAPIHandler: NewOpenAPIHandler(log),
		healthChecks:   healthChecks,
		started:        time.Now(),
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:           cfg.GetServerAddr(),
		Handler:        server.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return server
}

// setupRoutes configures the JSON API routes
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RealIP(s.trustedProxies()))
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	if s.metrics != nil && s.config.Monitoring.EnableMetrics {
		r.Use(middleware.Metrics(s.metrics))
	}
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	if s.config.RateLimit.Enable {
		r.Use(middleware.RateLimit(s.config.RateLimit.RequestsPerMin, s.config.RateLimit.BurstSize))
	}
	if s.config.Server.WriteTimeout > 0 {
		r.Use(chimiddleware.Timeout(s.config.Server.WriteTimeout))
	}
	if s.config.Server.EnableCompression {
		r.Use(chimiddleware.Compress(5))
	}

	r.Get(s.config.Monitoring.HealthCheckPath, s.handleHealthCheck)
	if s.metrics != nil && s.config.Monitoring.EnableMetrics {
		r.Method(http.MethodGet, s.config.Monitoring.MetricsPath, s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/openapi.yaml", s.openAPIHandler.ServeOpenAPISpec)
		r.Get("/openapi.json", s.openAPIHandler.ServeOpenAPIJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JSONOnly())
			s.setupAPIV1Routes(r)
		})
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *Server) setupAPIV1Routes(r chi.Router) {
	h := s.handlers

	// Stateless planning
	r.Post("/plan", h.Plan)
	r.Post("/adjust", h.Adjust)

	// Profiles
	r.Route("/profiles", func(r chi.Router) {
		r.Post("/", h.CreateProfile)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetProfile)
			r.Put("/", h.UpdateProfile)
			r.Get("/report", h.GetReport)
			r.Get("/weeks/{week}", h.AdjustWeek)
			r.Get("/weeks/{week}/days/{day}", h.AdjustDay)
		})
	})

	// Catalog
	r.Post("/recipes", h.AddRecipe)
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting NutriPlan API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.server.Shutdown(ctx)
}

type healthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// trustedProxies returns the peers allowed to set the client address
func (s *Server) trustedProxies() []netip.Prefix {
	prefixes, err := s.config.TrustedProxyPrefixes()
	if err != nil {
		s.logger.Warn("Ignoring invalid trusted proxies", zap.Error(err))
		return nil
	}
	return prefixes
}

// handleHealthCheck reports service status and runs every dependency check
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:    "healthy",
		Service:   s.config.App.Name,
		Version:   s.config.App.Version,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if len(s.healthChecks) > 0 {
		resp.Checks = make(map[string]string, len(s.healthChecks))
		for name, check := range s.healthChecks {
			if err := check(ctx); err != nil {
				s.logger.Warn("Health check failed", zap.String("check", name), zap.Error(err))
				resp.Checks[name] = "unhealthy"
				resp.Status = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "healthy"
		}
	}

	writeHealth(w, s.logger, status, resp)
}

func writeHealth(w http.ResponseWriter, logger *zap.Logger, status int, resp healthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode health response", zap.Error(err))
	}
}
