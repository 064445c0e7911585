// Package server assembles the echo HTTP server: middleware, the
// compliance-gated API group and route registration.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/marialabs/mari-gateway/internal/compliance"
	"github.com/marialabs/mari-gateway/internal/config"
	"github.com/marialabs/mari-gateway/internal/handlers"
)

// RateLimitMessage is the fixed body returned to throttled clients.
const RateLimitMessage = "Muitas requisições. Por favor, tente novamente mais tarde."

type Server struct {
	echo *echo.Echo
	addr string
}

// NewServer builds the echo instance. The compliance middleware guards the
// /api group only; health and status endpoints stay open.
func NewServer(log *slog.Logger, cfg config.ServerConfig, filter *compliance.Filter, messageHandler *handlers.MessageHandler, healthHandler *handlers.HealthHandler, pingHandler *handlers.PingHandler, logsHandler *handlers.LogsHandler) *Server {
	if log == nil {
		log = slog.Default()
	}
	addr := cfg.Addr
	if addr == "" {
		addr = config.DefaultHTTPAddr
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Use(middleware.Recover())
	e.Use(requestLogger(log))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(rateLimiter(log, cfg))

	if pingHandler != nil {
		pingHandler.Register(e)
	}
	if healthHandler != nil {
		healthHandler.Register(e)
	}
	if logsHandler != nil {
		logsHandler.Register(e)
	}

	api := e.Group("/api", compliance.Middleware(filter, log))
	if messageHandler != nil {
		messageHandler.Register(api)
	}

	return &Server{
		echo: e,
		addr: addr,
	}
}

func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routed http.Handler for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				log.LogAttrs(c.Request().Context(), slog.LevelError, "request", attrs...)
				return nil
			}
			log.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	})
}

// rateLimiter throttles per client IP over the configured window.
func rateLimiter(log *slog.Logger, cfg config.ServerConfig) echo.MiddlewareFunc {
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = config.DefaultRateLimit
	}
	windowMins := cfg.RateWindowMins
	if windowMins <= 0 {
		windowMins = config.DefaultRateWindowMins
	}
	window := time.Duration(windowMins) * time.Minute

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(limit) / window.Seconds()),
			Burst:     limit,
			ExpiresIn: window,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, map[string]string{
				"status":  "error",
				"message": RateLimitMessage,
			})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			log.Warn("rate limit exceeded",
				slog.String("ip", identifier),
				slog.String("endpoint", c.Request().URL.Path),
			)
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"status":  "error",
				"message": RateLimitMessage,
			})
		},
	})
}
