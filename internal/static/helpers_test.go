package static

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/catci/catci-server/internal/cache"
	"github.com/catci/catci-server/internal/logging"
	"github.com/catci/catci-server/internal/server"
)

type staticApp struct {
	*fiber.App
	handler *Handler
	root    string
}

// newStaticApp 以 t.TempDir()/public 为根目录组装完整的 Fiber 应用。
func newStaticApp(t *testing.T, files map[string]string) *staticApp {
	t.Helper()

	root := filepath.Join(t.TempDir(), "public")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir public: %v", err)
	}
	for rel, content := range files {
		writePublicFile(t, root, rel, content, time.Time{})
	}

	handler, err := NewHandler(root, cache.NewStore(), logging.Discard())
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	app, err := server.NewApp(server.AppOptions{
		Logger:         logging.Discard(),
		Static:         handler,
		ClearCachePath: "/clearcache",
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return &staticApp{App: app, handler: handler, root: root}
}

// writePublicFile 写入文件并可选地固定 mtime，便于构造确定的缓存快照。
func writePublicFile(t *testing.T, root, rel, content string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	if !modTime.IsZero() {
		if err := os.Chtimes(path, modTime, modTime); err != nil {
			t.Fatalf("chtimes %s: %v", rel, err)
		}
	}
	return path
}

func (a *staticApp) get(t *testing.T, target string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	return a.do(t, http.MethodGet, target, headers)
}

func (a *staticApp) do(t *testing.T, method, target string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := a.Test(req)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}
