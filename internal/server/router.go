package server

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/catci/catci-server/internal/cache"
	"github.com/catci/catci-server/internal/server/routes"
	"github.com/catci/catci-server/internal/version"
)

// StaticHandler describes the component that serves files from the public
// root. It allows injecting fake handlers during tests.
type StaticHandler interface {
	Handle(fiber.Ctx) error
	ClearCache()
	Stats() cache.Stats
}

// AppOptions controls how the Fiber application should behave.
type AppOptions struct {
	Logger         *logrus.Logger
	Static         StaticHandler
	ClearCachePath string
}

const (
	contextKeyRequestID = "_catci_request_id"

	clearCacheBody = "Cache cleared"
)

// NewApp builds a Fiber application with request-id middleware, panic
// recovery, the /-/cache diagnostics route, the cache-clear admin route and
// the catch-all static route. Diagnostics are registered before the
// catch-all so every other path, including /-/ ones, reaches the static handler.
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Static == nil {
		return nil, errors.New("static handler is required")
	}
	if opts.ClearCachePath == "" {
		opts.ClearCachePath = "/clearcache"
	}

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		StrictRouting: true,
		ServerHeader:  version.Short(),
	})

	app.Use(recover.New())
	app.Use(requestContextMiddleware())

	routes.RegisterDiagnosticsRoutes(app, opts.Static)

	app.All("/*", func(c fiber.Ctx) error {
		// 与请求行完全一致才触发清理，带查询串的请求按普通静态路径处理。
		if c.Method() == fiber.MethodGet && string(c.Request().RequestURI()) == opts.ClearCachePath {
			return clearCache(c, opts)
		}
		return opts.Static.Handle(c)
	})

	return app, nil
}

// requestContextMiddleware 为每个请求生成请求 ID 并回写到响应头。
func requestContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals(contextKeyRequestID, reqID)
		c.Set("X-Request-ID", reqID)
		return c.Next()
	}
}

func clearCache(c fiber.Ctx, opts AppOptions) error {
	opts.Static.ClearCache()
	opts.Logger.WithFields(logrus.Fields{
		"action":     "clear_cache",
		"request_id": RequestID(c),
		"ip":         c.IP(),
	}).Info("clear_cache_requested")

	c.Set(fiber.HeaderContentType, "text/plain")
	return c.Status(fiber.StatusOK).SendString(clearCacheBody)
}

// RequestID returns the request identifier stored by the router middleware.
func RequestID(c fiber.Ctx) string {
	if value := c.Locals(contextKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}
