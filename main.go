package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/catci/catci-server/internal/cache"
	"github.com/catci/catci-server/internal/config"
	"github.com/catci/catci-server/internal/logging"
	"github.com/catci/catci-server/internal/server"
	"github.com/catci/catci-server/internal/static"
	"github.com/catci/catci-server/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
}

const defaultConfigFile = "config.toml"

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(ctx context.Context, opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg.Global)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["public_dir"] = cfg.Global.PublicDir
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	// 启动顺序为“配置 → 缓存 → 静态 handler → Fiber app”，所有请求共享同一份缓存实例。
	handler, err := static.NewHandler(cfg.Global.PublicDir, cache.NewStore(), logger)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化静态资源 handler 失败: %v\n", err)
		return 1
	}
	if info, statErr := os.Stat(handler.Root()); statErr != nil || !info.IsDir() {
		logger.WithFields(logrus.Fields{
			"action":     "startup",
			"public_dir": handler.Root(),
		}).Warn("静态资源目录不存在，所有请求将返回 404")
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["listen_port"] = cfg.Global.ListenPort
	fields["public_dir"] = handler.Root()
	fields["clear_cache_path"] = cfg.Global.ClearCachePath
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	if err := startHTTPServer(ctx, cfg, handler, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
// 未显式指定时，仅当当前目录存在 config.toml 才读取它，否则全部使用默认值。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("catci-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.toml，可被 CATCI_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("CATCI_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}, nil
}

func startHTTPServer(ctx context.Context, cfg *config.Config, handler *static.Handler, logger *logrus.Logger) error {
	app, err := server.NewApp(server.AppOptions{
		Logger:         logger,
		Static:         handler,
		ClearCachePath: cfg.Global.ClearCachePath,
	})
	if err != nil {
		return err
	}

	port := cfg.Global.ListenPort
	logger.WithFields(logrus.Fields{
		"action": "listen",
		"port":   port,
	}).Info("Fiber 服务启动")

	return server.Serve(ctx, app, port, cfg.Global.ShutdownTimeout.DurationValue(), logger)
}

// printVersion 输出注入的版本 + 提交信息。
func printVersion() {
	fmt.Fprintln(stdOut, version.Full())
}
