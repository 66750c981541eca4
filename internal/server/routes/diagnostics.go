package routes

import (
	"github.com/gofiber/fiber/v3"

	"github.com/catci/catci-server/internal/cache"
)

// StatsProvider 暴露缓存占用情况，通常由 static.Handler 实现。
type StatsProvider interface {
	Stats() cache.Stats
}

// RegisterDiagnosticsRoutes 暴露 /-/cache 诊断接口，只返回计数，不泄露文件路径。
func RegisterDiagnosticsRoutes(app *fiber.App, provider StatsProvider) {
	if app == nil || provider == nil {
		return
	}

	app.Get("/-/cache", func(c fiber.Ctx) error {
		return c.JSON(encodeStats(provider.Stats()))
	})
}

type cacheStatsPayload struct {
	Entries int   `json:"entries"`
	Bytes   int64 `json:"bytes"`
}

func encodeStats(stats cache.Stats) cacheStatsPayload {
	return cacheStatsPayload{
		Entries: stats.Entries,
		Bytes:   stats.Bytes,
	}
}
