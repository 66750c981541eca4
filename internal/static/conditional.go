package static

import (
	"net/http"
	"strings"
	"time"

	"github.com/catci/catci-server/internal/cache"
)

// notModified 判断条件请求是否可以直接返回 304：If-None-Match 命中当前 ETag，
// 或 If-Modified-Since 不早于文件修改时间（HTTP 日期只有秒级精度）。
func notModified(entry *cache.Entry, ifNoneMatch, ifModifiedSince string) bool {
	if entry == nil {
		return false
	}
	if ifNoneMatch != "" && etagListMatches(ifNoneMatch, entry.ETag) {
		return true
	}
	if ifModifiedSince == "" {
		return false
	}
	since, err := http.ParseTime(ifModifiedSince)
	if err != nil {
		return false
	}
	return !since.Before(entry.ModTime.Truncate(time.Second))
}

// etagListMatches 支持单个值、逗号分隔列表、"*" 以及 W/ 弱校验前缀。
func etagListMatches(header, etag string) bool {
	if etag == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == etag {
			return true
		}
	}
	return false
}
