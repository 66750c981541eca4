package config

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	g := c.Global
	if g.ListenPort <= 0 || g.ListenPort > 65535 {
		return newFieldError("Global.ListenPort", "必须在 1-65535")
	}
	if strings.TrimSpace(g.PublicDir) == "" {
		return newFieldError("Global.PublicDir", "不能为空")
	}
	if err := validateRoutePath(g.ClearCachePath); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(g.LogLevel); err != nil {
		return newFieldError("Global.LogLevel", "无法识别的日志级别 "+g.LogLevel)
	}
	if g.LogMaxSize < 0 {
		return newFieldError("Global.LogMaxSize", "不能为负数")
	}
	if g.LogMaxBackups < 0 {
		return newFieldError("Global.LogMaxBackups", "不能为负数")
	}
	if g.ShutdownTimeout.DurationValue() < 0 {
		return newFieldError("Global.ShutdownTimeout", "不能为负数")
	}
	return nil
}

func validateRoutePath(route string) error {
	if !strings.HasPrefix(route, "/") {
		return newFieldError("Global.ClearCachePath", "必须以 / 开头")
	}
	if strings.ContainsAny(route, " ?#") {
		return newFieldError("Global.ClearCachePath", "不允许包含空格、? 或 #")
	}
	if route == "/" {
		return newFieldError("Global.ClearCachePath", "不能为根路径")
	}
	return nil
}
