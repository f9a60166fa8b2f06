package core

import (
	"reflect"
	"sync"

	"github.com/gocrud/ioc/config"
	"github.com/gocrud/ioc/di"
	"github.com/gocrud/ioc/hosting"
	"github.com/gocrud/ioc/logging"
)

// Configurator 配置器函数类型
// 配置器用于扩展应用程序，可以注册 bean、添加托管服务等
type Configurator func(*BuildContext)

// BuildContext 构建上下文
// 提供给配置器的上下文环境，包含容器、配置、日志等核心组件
type BuildContext struct {
	container      di.Container
	configuration  config.Configuration
	logger         logging.Logger
	environment    Environment
	hostedServices []hosting.HostedService
	cleanups       map[string]func()
	mu             sync.Mutex
}

// Container 返回底层的 DI 容器
// 可以直接使用 di.Register[T](ctx.Container(), ...) 注册 bean
func (c *BuildContext) Container() di.Container {
	return c.container
}

// Scan 扫描并注册带 di.Component 标记的候选类型
func (c *BuildContext) Scan(candidates ...any) error {
	return c.container.Scan(candidates...)
}

// Register 注册单个 bean（构造函数、结构体指针或 reflect.Type）
func (c *BuildContext) Register(target any, opts ...di.Option) error {
	return c.container.Register(target, opts...)
}

// ResolveService 从容器中解析服务
// 注意：构建阶段容器尚未初始化，仅在必要时使用
func (c *BuildContext) ResolveService(serviceType reflect.Type) (any, error) {
	return c.container.GetByType(serviceType)
}

// AddHostedService 添加托管服务
func (c *BuildContext) AddHostedService(service hosting.HostedService) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hostedServices = append(c.hostedServices, service)
}

// SetCleanup 设置资源清理函数，应用停止时执行
func (c *BuildContext) SetCleanup(key string, cleanup func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanups[key] = cleanup
}

// GetLogger 获取日志记录器
func (c *BuildContext) GetLogger() logging.Logger {
	return c.logger
}

// GetConfiguration 获取配置对象
func (c *BuildContext) GetConfiguration() config.Configuration {
	return c.configuration
}

// GetEnvironment 获取环境信息
func (c *BuildContext) GetEnvironment() Environment {
	return c.environment
}
