package static

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// errorPageStatuses 为启动时探测的自定义错误页状态码。
var errorPageStatuses = []int{403, 404, 405, 500}

// ErrorPages 缓存 <status>.html 的内容，避免每次出错都探测磁盘。
type ErrorPages struct {
	root string

	mu    sync.RWMutex
	pages map[int][]byte
}

// NewErrorPages 立即加载 root 下存在的错误页。
func NewErrorPages(root string) *ErrorPages {
	p := &ErrorPages{root: root}
	p.Reload()
	return p
}

// Reload 重新读取全部错误页，返回成功加载的数量。
func (p *ErrorPages) Reload() int {
	pages := make(map[int][]byte, len(errorPageStatuses))
	for _, status := range errorPageStatuses {
		data, err := os.ReadFile(filepath.Join(p.root, fmt.Sprintf("%d.html", status)))
		if err != nil {
			continue
		}
		pages[status] = data
	}

	p.mu.Lock()
	p.pages = pages
	p.mu.Unlock()
	return len(pages)
}

// Lookup 返回状态码对应的自定义页面。
func (p *ErrorPages) Lookup(status int) ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	data, ok := p.pages[status]
	return data, ok
}
