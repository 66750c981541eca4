package static

import "github.com/gabriel-vasile/mimetype"

const (
	cacheControlNoStore   = "no-store"
	cacheControlImmutable = "public, max-age=31536000, immutable"
	htmlExt               = ".html"
)

var contentTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".json": "application/json",
	".txt":  "text/plain",
}

var compressibleExts = map[string]struct{}{
	".html": {},
	".css":  {},
	".js":   {},
	".json": {},
	".svg":  {},
	".txt":  {},
}

// contentType 优先使用扩展名映射，未知扩展名时按内容嗅探。
func contentType(ext string, data []byte) string {
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	return mimetype.Detect(data).String()
}

func isCompressible(ext string) bool {
	_, ok := compressibleExts[ext]
	return ok
}

// cacheControl: HTML 每次都需要重新校验，其余静态资源依赖调用方的文件名哈希策略长期缓存。
func cacheControl(ext string) string {
	if ext == htmlExt {
		return cacheControlNoStore
	}
	return cacheControlImmutable
}
