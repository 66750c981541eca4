package static

import (
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/catci/catci-server/internal/cache"
	"github.com/catci/catci-server/internal/logging"
	"github.com/catci/catci-server/internal/server"
)

// ErrNotFound 表示请求路径（以及 .html 回退路径）都不是普通文件。
var ErrNotFound = errors.New("static file not found")

// Handler 负责 orchestrate “路径解析 → stat → 缓存校验/回填 → 条件请求 → 压缩协商” 的全流程，
// 每个请求恰好写出一次响应。
type Handler struct {
	root   string
	store  cache.Store
	pages  *ErrorPages
	logger *logrus.Logger
}

// NewHandler 以 root 为静态资源根目录构建 handler，store 由调用方注入以便测试隔离。
func NewHandler(root string, store cache.Store, logger *logrus.Logger) (*Handler, error) {
	if root == "" {
		return nil, errors.New("public dir required")
	}
	if store == nil {
		return nil, errors.New("cache store is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve public dir: %w", err)
	}

	return &Handler{
		root:   filepath.Clean(abs),
		store:  store,
		pages:  NewErrorPages(abs),
		logger: logger,
	}, nil
}

// Root 返回规范化后的静态资源根目录。
func (h *Handler) Root() string {
	return h.root
}

// ClearCache 清空文件缓存并重新加载错误页，不与进行中的请求协调。
func (h *Handler) ClearCache() {
	h.store.Clear()
	loaded := h.pages.Reload()
	h.logger.WithFields(logrus.Fields{
		"action":      "clear_cache",
		"error_pages": loaded,
	}).Info("cache_cleared")
}

// Stats 返回缓存占用情况。
func (h *Handler) Stats() cache.Stats {
	return h.store.Stats()
}

// requestState 记录单次请求用于日志的观测字段。
// 压缩正文在 handler 返回后才写出，因此这里提前拷贝，避免在回调中访问已回收的 fiber.Ctx。
type requestState struct {
	started   time.Time
	method    string
	path      string
	requestID string
	cacheHit  bool
	encoding  Encoding
}

// Handle 实现 server.StaticHandler。
func (h *Handler) Handle(c fiber.Ctx) error {
	state := &requestState{
		started:   time.Now(),
		method:    c.Method(),
		path:      string(c.Request().URI().PathOriginal()),
		requestID: server.RequestID(c),
	}

	if state.method != fiber.MethodGet && state.method != fiber.MethodHead {
		c.Set(fiber.HeaderAllow, "GET, HEAD")
		return h.serveError(c, state, fiber.StatusMethodNotAllowed, "Method Not Allowed", nil)
	}

	resolved, err := Resolve(h.root, state.path)
	if err != nil {
		return h.serveError(c, state, fiber.StatusForbidden, "Forbidden", err)
	}

	target, ext, info, err := h.locate(resolved)
	if err != nil {
		return h.serveError(c, state, fiber.StatusNotFound, "Not Found", err)
	}

	entry, hit, err := h.load(target, ext, info)
	if err != nil {
		return h.serveError(c, state, fiber.StatusInternalServerError, "Internal Server Error", err)
	}
	state.cacheHit = hit

	return h.serveEntry(c, state, entry, ext)
}

// locate 执行 stat：普通文件直接返回；目录一律 404；stat 失败时尝试 <path>.html。
func (h *Handler) locate(resolved ResolvedRequest) (string, string, os.FileInfo, error) {
	info, err := os.Stat(resolved.FilePath)
	switch {
	case err == nil && info.Mode().IsRegular():
		return resolved.FilePath, resolved.Ext, info, nil
	case err == nil && info.IsDir():
		return "", "", nil, fmt.Errorf("%w: directory listing disabled", ErrNotFound)
	case err == nil:
		return "", "", nil, fmt.Errorf("%w: not a regular file", ErrNotFound)
	}

	fallback, ok := resolved.HTMLFallback()
	if !ok {
		return "", "", nil, ErrNotFound
	}
	fallbackInfo, fallbackErr := os.Stat(fallback)
	if fallbackErr != nil || !fallbackInfo.Mode().IsRegular() {
		return "", "", nil, ErrNotFound
	}
	return fallback, htmlExt, fallbackInfo, nil
}

// load 命中且 (mtime, size) 一致时复用缓存，否则整文件读取并整体替换条目。
func (h *Handler) load(target, ext string, info os.FileInfo) (*cache.Entry, bool, error) {
	if entry, ok := h.store.Get(target); ok && entry.Matches(info.ModTime(), info.Size()) {
		return entry, true, nil
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, false, fmt.Errorf("read file: %w", err)
	}

	entry := newEntry(data, ext, info)
	h.store.Put(target, entry)
	return entry, false, nil
}

func newEntry(data []byte, ext string, info os.FileInfo) *cache.Entry {
	etag := cache.ETag(data)
	header := make(http.Header, 5)
	header.Set(fiber.HeaderContentType, contentType(ext, data))
	header.Set(fiber.HeaderContentLength, strconv.Itoa(len(data)))
	header.Set(fiber.HeaderLastModified, info.ModTime().UTC().Format(http.TimeFormat))
	header.Set(fiber.HeaderETag, etag)
	header.Set(fiber.HeaderCacheControl, cacheControl(ext))

	return &cache.Entry{
		Data:    data,
		ETag:    etag,
		ModTime: info.ModTime(),
		Size:    info.Size(),
		Header:  header,
	}
}

func (h *Handler) serveEntry(c fiber.Ctx, state *requestState, entry *cache.Entry, ext string) error {
	ifNoneMatch := c.Get(fiber.HeaderIfNoneMatch)
	ifModifiedSince := c.Get(fiber.HeaderIfModifiedSince)
	if notModified(entry, ifNoneMatch, ifModifiedSince) {
		applyHeaders(c, entry.Header)
		if isCompressible(ext) {
			c.Set(fiber.HeaderVary, fiber.HeaderAcceptEncoding)
		}
		c.Status(fiber.StatusNotModified)
		h.logResult(state, fiber.StatusNotModified, nil)
		return nil
	}

	if isCompressible(ext) {
		state.encoding = Negotiate(c.Get(fiber.HeaderAcceptEncoding))
	}

	applyHeaders(c, entry.Header)
	c.Status(fiber.StatusOK)

	if state.encoding == EncodingIdentity {
		h.logResult(state, fiber.StatusOK, nil)
		return c.Send(entry.Data)
	}

	c.Set(fiber.HeaderContentEncoding, string(state.encoding))
	c.Set(fiber.HeaderVary, fiber.HeaderAcceptEncoding)

	if state.method == fiber.MethodHead {
		c.Response().Header.SetContentLength(-1)
		h.logResult(state, fiber.StatusOK, nil)
		return nil
	}

	c.Response().SetBodyStreamWriter(h.streamBody(state, entry.Data))
	return nil
}

// streamBody 返回压缩并写出正文的回调，正文写完（或失败）后记录一次结果。
func (h *Handler) streamBody(state *requestState, data []byte) func(w *bufio.Writer) {
	return func(w *bufio.Writer) {
		err := compressTo(w, state.encoding, data)
		if err == nil {
			err = w.Flush()
		}
		h.logResult(state, fiber.StatusOK, err)
	}
}

// applyHeaders 写入条目预计算的响应头；Content-Length 交由 fasthttp 按实际正文计算，
// 压缩或 304 时自然省略。
func applyHeaders(c fiber.Ctx, header http.Header) {
	for key, values := range header {
		if key == fiber.HeaderContentLength || len(values) == 0 {
			continue
		}
		c.Set(key, values[0])
	}
}

// serveError 优先返回 <status>.html，否则输出纯文本消息；不会泄露内部路径。
func (h *Handler) serveError(c fiber.Ctx, state *requestState, status int, message string, cause error) error {
	h.logResult(state, status, cause)
	c.Status(status)
	if page, ok := h.pages.Lookup(status); ok {
		c.Set(fiber.HeaderContentType, "text/html")
		return c.Send(page)
	}
	c.Set(fiber.HeaderContentType, "text/plain")
	return c.SendString(message)
}

func (h *Handler) logResult(state *requestState, status int, err error) {
	fields := logging.RequestFields(state.method, state.path, status, state.cacheHit, string(state.encoding))
	fields["elapsed_ms"] = time.Since(state.started).Milliseconds()
	if state.requestID != "" {
		fields["request_id"] = state.requestID
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	entry := h.logger.WithFields(fields)
	switch {
	case status >= fiber.StatusInternalServerError:
		entry.Error("serve_failed")
	case err != nil && status == fiber.StatusOK:
		entry.Warn("serve_stream_failed")
	case status >= fiber.StatusBadRequest:
		entry.Warn("serve_rejected")
	default:
		entry.Info("serve_complete")
	}
}
