package cache

import (
	"crypto/sha1"
	"encoding/base64"
	"strings"
)

// ETag 基于内容计算强校验值：sha1 摘要的 base64 形式（去掉尾部 '='）并加引号。
func ETag(data []byte) string {
	sum := sha1.Sum(data)
	encoded := strings.TrimRight(base64.StdEncoding.EncodeToString(sum[:]), "=")
	return `"` + encoded + `"`
}
