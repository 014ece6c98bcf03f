package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/avinava/panelhost/internal/api/http"
	"github.com/avinava/panelhost/internal/api/middleware"
	"github.com/avinava/panelhost/internal/api/ws"
	"github.com/avinava/panelhost/internal/infrastructure/config"
	"github.com/avinava/panelhost/internal/infrastructure/logging"
	"github.com/avinava/panelhost/internal/infrastructure/monitoring"
	"github.com/avinava/panelhost/internal/markup"
	"github.com/avinava/panelhost/internal/notify"
	"github.com/avinava/panelhost/internal/panel"
	"github.com/avinava/panelhost/internal/registry"
	"github.com/avinava/panelhost/internal/router"
	"github.com/avinava/panelhost/internal/source"
	"github.com/avinava/panelhost/internal/state"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	panels  *panel.Manager
	kinds   *registry.Registry
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing panel host",
		zap.String("port", cfg.Server.Port),
		zap.String("manifest", cfg.Panels.ManifestPath),
		zap.String("asset_root", cfg.Panels.AssetRoot),
	)

	metrics := monitoring.NewMetrics()

	// Panel kinds: manifest first, built-in default when nothing declared.
	kinds := registry.New()
	if err := kinds.LoadManifestFile(cfg.Panels.ManifestPath); err != nil {
		return nil, fmt.Errorf("failed to load panel manifest: %w", err)
	}
	kinds.SeedDefault()
	logger.Info("Panel kinds registered", zap.Int("count", len(kinds.List())))

	generator := markup.NewGenerator(kinds, cfg.Panels.AssetRoot, "/assets", connectSrc(cfg))
	states := state.NewStore(cfg.Panels.StateDir)
	data := source.New(cfg.Data.UpstreamURL, cfg.Data.Timeout, logger.Logger)
	notifier := notify.NewLogged(logger.Logger, metrics)

	messageRouter := router.New(data, states, notifier, logger.Logger).WithObserver(metrics)
	pending := router.NewPending(cfg.Panels.ReplyTimeout)

	wsHandler := ws.NewHandler(messageRouter, pending, logger.Logger).WithMetrics(metrics)
	panels := panel.NewManager(wsHandler, generator).WithObserver(metrics)
	wsHandler.SetManager(panels)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(monitoring.Middleware(metrics))
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(panels, kinds, wsHandler, notifier, logger.Logger)

	engine.GET("/", handlers.Root)
	engine.GET("/health", handlers.Health)

	// Panel management
	engine.GET("/kinds", handlers.ListKinds)
	engine.GET("/panels", handlers.ListPanels)
	engine.POST("/panels/:kind/open", handlers.OpenPanel)
	engine.DELETE("/panels/:kind", handlers.ClosePanel)
	engine.GET("/panels/:kind/view", handlers.PanelView)

	// Bundled surface assets
	engine.Static("/assets", cfg.Panels.AssetRoot)

	// Surface message channel
	engine.GET("/stream", wsHandler.HandleConnection)

	// Metrics
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:  engine,
		panels:  panels,
		kinds:   kinds,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server: every live panel is disposed so
// its cleanup actions run before exit.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	s.panels.DisposeAll()
	s.metrics.Close()

	s.logger.Sync()
	return nil
}

// connectSrc is the sole origin a surface may open its channel to under
// the content policy.
func connectSrc(cfg *config.Config) string {
	host := cfg.Server.Host
	if host == "0.0.0.0" || host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("ws://%s:%s", host, cfg.Server.Port)
}
