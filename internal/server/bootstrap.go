package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Serve 在 :port 上监听（绑定所有网卡），ctx 取消后在 shutdownTimeout 内优雅退出。
func Serve(ctx context.Context, app *fiber.App, port int, shutdownTimeout time.Duration, logger *logrus.Logger) error {
	if app == nil {
		return fmt.Errorf("fiber app is required")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(fmt.Sprintf(":%d", port), fiber.ListenConfig{
			DisableStartupMessage: true,
		})
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.WithFields(logrus.Fields{
		"action":  "shutdown",
		"timeout": shutdownTimeout.String(),
	}).Info("收到退出信号，等待进行中的请求完成")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
