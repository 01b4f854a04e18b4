// Package router builds the echo instance: shared middleware, the service
// routes and one /api group per resource.
package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/ticketr/internal/config"
	"github.com/iliyamo/ticketr/internal/handler"
	"github.com/iliyamo/ticketr/internal/middleware"
	"github.com/iliyamo/ticketr/internal/validation"
)

// Handlers groups one handler per resource.
type Handlers struct {
	Service  *handler.ServiceHandler
	Users    *handler.UserHandler
	Orgs     *handler.OrganizationHandler
	Events   *handler.EventHandler
	Tickets  *handler.TicketHandler
	Payments *handler.PaymentHandler
	Ads      *handler.AdvertisementHandler
	Chats    *handler.ChatHandler
}

// Options carries the optional Redis-backed middleware. A nil Redis client
// turns both the rate limiter and the cache into no-ops.
type Options struct {
	Redis     *redis.Client
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig
}

// New returns a fully wired echo instance.
func New(cfg config.Config, h Handlers, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.Validator = validation.New()
	e.HTTPErrorHandler = errorHandler(e, log)

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSAllowOrigins}))

	RegisterRoutes(e, h.Service)

	api := e.Group("/api", middleware.NewTokenBucket(opts.RateLimit, opts.Redis, log))
	cache := middleware.NewRedisCache(opts.Cache, opts.Redis, log)

	RegisterUsers(api, h.Users, cfg.JWTSecret)
	RegisterOrganizations(api, h.Orgs, cfg.JWTSecret)
	RegisterEvents(api, h.Events, cache)
	RegisterTickets(api, h.Tickets)
	RegisterPayments(api, h.Payments)
	RegisterAdvertisements(api, h.Ads)
	RegisterChats(api, h.Chats)
	return e
}

// RegisterRoutes registers the unauthenticated service endpoints.
func RegisterRoutes(e *echo.Echo, svc *handler.ServiceHandler) {
	e.GET("/", handler.Index)
	e.GET("/healthz", handler.Health)
	e.GET("/test-db", svc.TestDB)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// errorHandler keeps echo's own errors (404 route, 405, bind failures) in the
// {"error": ...} shape the handlers use.
func errorHandler(e *echo.Echo, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := http.StatusText(code)
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			} else {
				msg = http.StatusText(code)
			}
		} else {
			log.Error().Err(err).Str("route", c.Path()).Msg("unhandled error")
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, echo.Map{"error": msg})
		}
		if err != nil {
			e.Logger.Error(err)
		}
	}
}
