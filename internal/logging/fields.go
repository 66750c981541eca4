package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// RequestFields 提供请求路径、状态与缓存命中字段，供静态资源请求日志复用。
func RequestFields(method, path string, status int, cacheHit bool, encoding string) logrus.Fields {
	fields := logrus.Fields{
		"action":    "serve",
		"method":    method,
		"path":      path,
		"status":    status,
		"cache_hit": cacheHit,
	}
	if encoding != "" {
		fields["encoding"] = encoding
	}
	return fields
}
