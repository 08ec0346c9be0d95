package server

import (
	"context"
	"fmt"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/agent"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/extractor"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/storage"
)

type Config struct {
	Port         int
	HistoryLimit int
}

// Server exposes the agent over HTTP and websocket.
type Server struct {
	app     *fiber.App
	agent   *agent.Agent
	catalog storage.CatalogStore
	ext     *extractor.Extractor
	cfg     Config
	logger  *zap.Logger
}

func New(cfg Config, ag *agent.Agent, catalog storage.CatalogStore, ext *extractor.Extractor, logger *zap.Logger) *Server {
	s := &Server{
		agent:   ag,
		catalog: catalog,
		ext:     ext,
		cfg:     cfg,
		logger:  logger,
	}

	app := fiber.New(fiber.Config{
		AppName:               "zuschat",
		DisableStartupMessage: true,
	})
	s.app = app
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Use(s.requestMetrics)

	s.app.Get("/health", s.handleHealth)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	s.app.Post("/chat", s.handleChat)
	s.app.Get("/products", s.handleProducts)
	s.app.Get("/outlets", s.handleOutlets)
	s.app.Get("/sessions/:id", s.handleSession)

	s.app.Use("/ws", s.upgradeWebsocket)
	s.app.Get("/ws", websocket.New(s.handleWebsocket))
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("http server listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
