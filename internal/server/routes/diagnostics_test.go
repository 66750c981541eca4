package routes

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/catci/catci-server/internal/cache"
)

type fixedStats cache.Stats

func (f fixedStats) Stats() cache.Stats { return cache.Stats(f) }

func TestCacheDiagnosticsReturnsCounts(t *testing.T) {
	app := fiber.New()
	RegisterDiagnosticsRoutes(app, fixedStats{Entries: 3, Bytes: 2048})

	resp, err := app.Test(httptest.NewRequest("GET", "/-/cache", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var payload cacheStatsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode payload: %v (%s)", err, string(body))
	}
	if payload.Entries != 3 || payload.Bytes != 2048 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestRegisterDiagnosticsIgnoresNil(t *testing.T) {
	RegisterDiagnosticsRoutes(nil, fixedStats{})
	app := fiber.New()
	RegisterDiagnosticsRoutes(app, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/-/cache", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 without provider, got %d", resp.StatusCode)
	}
}
