// Package app 组装并运行 champ 节点
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/fx"

	internalconfig "github.com/billy1624/champ/internal/config"
	"github.com/billy1624/champ/pkg/types"
)

// ConfigPathEnv 配置文件路径环境变量
const ConfigPathEnv = "CHAMP_CONFIG_PATH"

const (
	startTimeout = 30 * time.Second
	// 需要给 Badger 留出刷盘时间
	stopTimeout = 60 * time.Second
)

// App 是 champ 应用的对外接口
type App interface {
	// Stop 停止应用
	Stop() error

	// Wait 阻塞直到收到退出信号，然后停止应用
	Wait()
}

// internalApp App 的内部实现
type internalApp struct {
	fxApp *fx.App
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := a.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}

// Wait 阻塞直到收到退出信号
func (a *internalApp) Wait() {
	sig := WaitForSignal()
	fmt.Printf("\n收到信号 %v，正在优雅退出...\n", sig)
	if err := a.Stop(); err != nil {
		fmt.Printf("停止应用时出错: %v\n", err)
	}
}

// Start 构建并启动应用
func Start(appOptions ...Option) (App, error) {
	fxApp, err := New(appOptions...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := fxApp.Start(ctx); err != nil {
		return nil, fmt.Errorf("启动应用失败: %w", err)
	}
	return &internalApp{fxApp: fxApp}, nil
}

// New 解析配置并构建 fx 应用，不启动
func New(appOptions ...Option) (*fx.App, error) {
	opts := newOptions(appOptions...)

	appConfig, err := resolveAppConfig(opts)
	if err != nil {
		return nil, err
	}
	opts.appConfig = appConfig

	if err := createDataDirectories(appConfig); err != nil {
		return nil, err
	}

	fxApp := fx.New(NewBootstrap(opts).Options()...)
	if err := fxApp.Err(); err != nil {
		return nil, fmt.Errorf("创建应用失败: %w", err)
	}
	return fxApp, nil
}

// resolveAppConfig 配置来源优先级：显式配置 > 嵌入配置 > 配置文件 > 环境变量指定的文件 > 默认值
func resolveAppConfig(opts *options) (*types.AppConfig, error) {
	switch {
	case opts.appConfig != nil:
		return opts.appConfig, nil
	case len(opts.embeddedConfig) > 0:
		return internalconfig.Parse(opts.embeddedConfig)
	case opts.configFilePath != "":
		return internalconfig.LoadFromFile(opts.configFilePath)
	}
	if envPath := os.Getenv(ConfigPathEnv); envPath != "" {
		return internalconfig.LoadFromFile(envPath)
	}
	return &types.AppConfig{}, nil
}

// createDataDirectories 根据配置创建数据目录与日志目录
func createDataDirectories(appConfig *types.AppConfig) error {
	var directories []string

	if s := appConfig.Storage; s != nil && s.DataRoot != nil && *s.DataRoot != "" {
		if s.InMemory == nil || !*s.InMemory {
			directories = append(directories, *s.DataRoot)
		}
	}
	if l := appConfig.Log; l != nil && l.FilePath != nil && *l.FilePath != "" {
		directories = append(directories, filepath.Dir(*l.FilePath))
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建目录 %s 失败: %w", dir, err)
		}
	}
	return nil
}

// WaitForSignal 等待退出信号
func WaitForSignal() os.Signal {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	return <-signals
}
