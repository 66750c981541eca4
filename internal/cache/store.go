package cache

import (
	"net/http"
	"time"
)

// Store 负责管理内存中的文件缓存，键为解析后的绝对文件路径。
type Store interface {
	// Get 为纯查找，不做任何 I/O。
	Get(path string) (*Entry, bool)

	// Put 无条件替换 path 对应的条目。
	Put(path string, entry *Entry)

	// Clear 清空所有条目，仅由管理接口触发。
	Clear()

	// Stats 返回当前条目数量与缓存字节数，供诊断接口使用。
	Stats() Stats
}

// Entry 表示某个文件最近一次被读取时的状态。Entry 一经 Put 即视为只读，
// 调用方需要变更时构造新的 Entry 整体替换。
type Entry struct {
	Data    []byte
	ETag    string
	ModTime time.Time
	Size    int64
	// Header 为每次命中复用的基础响应头。
	Header http.Header
}

// Matches 判断文件系统当前的 (mtime, size) 是否与快照一致。
func (e *Entry) Matches(modTime time.Time, size int64) bool {
	if e == nil {
		return false
	}
	return e.Size == size && e.ModTime.Equal(modTime)
}

// Stats 汇总缓存占用情况。
type Stats struct {
	Entries int   `json:"entries"`
	Bytes   int64 `json:"bytes"`
}
