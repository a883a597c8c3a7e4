package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

// RouterOptions configures the middleware stack.
type RouterOptions struct {
	// RateLimitRPS caps requests per second per client IP. Zero disables limiting.
	RateLimitRPS float64
	// CORSAllowedOrigins lists the browser origins allowed to call the API. Empty allows any.
	CORSAllowedOrigins []string
	Logger             *slog.Logger
}

// NewRouter builds the echo instance serving the API, health check and Swagger UI.
func NewRouter(ctx context.Context, server *Server, opts RouterOptions) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	if err = registerSwagger(doc); err != nil {
		return nil, err
	}
	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)

	e.Use(middleware.Recover())
	e.Use(accessLog(opts.Logger))
	e.Use(cors(opts.CORSAllowedOrigins))
	if opts.RateLimitRPS > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(opts.RateLimitRPS))))
	}

	e.GET("/health", server.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", validator)
	api.GET("/catalog", server.GetCatalog)
	api.POST("/price", server.CalculatePrice)
	api.GET("/orders", server.ListOrders)
	api.POST("/orders", server.CreateOrder)
	api.GET("/orders/:id", server.GetOrder)
	api.POST("/orders/:id/process", server.ProcessOrder)

	return e, nil
}

func cors(origins []string) echo.MiddlewareFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  origins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAccept},
		ExposeHeaders: []string{echo.HeaderContentDisposition, RenderFailuresHeader},
	})
}

func accessLog(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
