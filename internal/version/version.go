// Package version 记录构建时注入的版本信息。
package version

import "fmt"

const productName = "catci-server"

// Version/Commit 可在构建时通过 -ldflags "-X" 注入。
var (
	Version = "0.1.0"
	Commit  = "dev"
)

// Short 返回 "catci-server/<version>"，用作 Server 响应头。
func Short() string {
	return productName + "/" + Version
}

// Full 额外包含提交哈希，供 -version 输出与启动日志使用。
func Full() string {
	return fmt.Sprintf("%s %s (%s)", productName, Version, Commit)
}
