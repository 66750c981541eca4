package static

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrForbidden 表示请求路径无法解码或解析后落在根目录之外。
var ErrForbidden = errors.New("path escapes public root")

// ResolvedRequest 是单次请求派生出的路径信息，不跨请求复用。
type ResolvedRequest struct {
	// URLPath 为去掉查询串并完成百分号解码后的路径，"/" 已替换为 "/index.html"。
	URLPath string
	// FilePath 为拼接到根目录后的绝对路径。
	FilePath string
	// Ext 为小写扩展名，包含前导点。
	Ext string
	// Contained 记录 FilePath 是否仍位于根目录内。
	Contained bool

	root string
}

// Resolve 将原始（未解码）请求路径映射到 root 下的文件。解码先于包含性校验，
// 因此 %2e%2e 之类的编码穿越序列同样会被拒绝。
func Resolve(root, rawPath string) (ResolvedRequest, error) {
	if idx := strings.IndexAny(rawPath, "?#"); idx >= 0 {
		rawPath = rawPath[:idx]
	}

	decoded, err := url.PathUnescape(rawPath)
	if err != nil {
		return ResolvedRequest{root: root}, fmt.Errorf("%w: %v", ErrForbidden, err)
	}
	if strings.IndexByte(decoded, 0) >= 0 {
		return ResolvedRequest{root: root}, fmt.Errorf("%w: NUL byte in path", ErrForbidden)
	}
	if decoded == "" || decoded == "/" {
		decoded = "/index.html"
	}
	if !strings.HasPrefix(decoded, "/") {
		decoded = "/" + decoded
	}

	filePath := filepath.Join(root, filepath.FromSlash(decoded))
	resolved := ResolvedRequest{
		URLPath:   decoded,
		FilePath:  filePath,
		Ext:       strings.ToLower(filepath.Ext(filePath)),
		Contained: withinRoot(root, filePath),
		root:      root,
	}
	if !resolved.Contained {
		return resolved, ErrForbidden
	}
	return resolved, nil
}

// HTMLFallback 返回在原始请求路径后追加 .html 的候选文件，例如 /about -> about.html。
func (r ResolvedRequest) HTMLFallback() (string, bool) {
	candidate := filepath.Join(r.root, filepath.FromSlash(r.URLPath+".html"))
	return candidate, withinRoot(r.root, candidate)
}

// withinRoot 比较规范化后的绝对路径，要求 target 等于 root 或以 root+分隔符开头，
// 避免 /public-evil 被当作 /public 的前缀。
func withinRoot(root, target string) bool {
	root = filepath.Clean(root)
	target = filepath.Clean(target)
	if target == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}
	return strings.HasPrefix(target, prefix)
}
