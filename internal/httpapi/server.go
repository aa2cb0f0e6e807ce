// Package httpapi serves the query engine over HTTP.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/cognicore/dinebot/pkg/dinebot"
	"github.com/cognicore/dinebot/pkg/dinebot/menu"
	"github.com/cognicore/dinebot/pkg/dinebot/respond"
)

// maxQueryLen bounds the text of one question.
const maxQueryLen = 1000

// Server provides HTTP endpoints for the engine.
type Server struct {
	echo    *echo.Echo
	engine  *dinebot.Engine
	logger  *zap.Logger
	config  *Config
	metrics http.Handler
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int

	// Metrics, when set, is mounted at /metrics.
	Metrics http.Handler
}

// NewServer creates a new HTTP server.
func NewServer(engine *dinebot.Engine, logger *zap.Logger, cfg *Config) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8080,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:    e,
		engine:  engine,
		logger:  logger,
		config:  cfg,
		metrics: cfg.Metrics,
	}
	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics))
	}

	v1 := s.echo.Group("/api/v1")
	v1.POST("/query", s.handleQuery)
	v1.GET("/menu", s.handleMenu)
	v1.GET("/menu/:name", s.handleMenuItem)
	v1.GET("/restaurant", s.handleRestaurant)
}

// QueryRequest is the request body for POST /api/v1/query.
type QueryRequest struct {
	Query string `json:"query"`

	// Explain includes the classification, entities and filter trace.
	Explain bool `json:"explain,omitempty"`
}

// QueryResponse is the response body for POST /api/v1/query.
type QueryResponse struct {
	Reply  respond.Reply   `json:"reply"`
	Answer *dinebot.Answer `json:"answer,omitempty"`
}

// MenuResponse is the response body for GET /api/v1/menu.
type MenuResponse struct {
	Items []menu.Item `json:"items"`
	Count int         `json:"count"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Items: s.engine.Catalog().Len()})
}

func (s *Server) handleQuery(c echo.Context) error {
	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid query request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query field is required")
	}
	if len(req.Query) > maxQueryLen {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "query too long")
	}

	ans, err := s.engine.Ask(c.Request().Context(), req.Query)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "request cancelled")
	}

	resp := QueryResponse{Reply: ans.Reply}
	if req.Explain {
		resp.Answer = &ans
	}
	return c.JSON(http.StatusOK, resp)
}

// handleMenu lists the menu, optionally narrowed by ?category=.
func (s *Server) handleMenu(c echo.Context) error {
	cat := s.engine.Catalog()
	items := cat.Items()

	if raw := c.QueryParam("category"); raw != "" {
		category := menu.Category(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", "_")))
		if !category.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown category %q", raw))
		}
		items = cat.ByCategory(category)
	}
	if items == nil {
		items = []menu.Item{}
	}
	return c.JSON(http.StatusOK, MenuResponse{Items: items, Count: len(items)})
}

func (s *Server) handleMenuItem(c echo.Context) error {
	name := c.Param("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	it, ok := s.engine.Catalog().Lookup(name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("no menu item named %q", name))
	}
	return c.JSON(http.StatusOK, it)
}

func (s *Server) handleRestaurant(c echo.Context) error {
	return c.JSON(http.StatusOK, s.engine.Restaurant())
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
