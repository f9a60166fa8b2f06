package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gocrud/ioc/config"
	"github.com/gocrud/ioc/di"
	"github.com/gocrud/ioc/hosting"
	"github.com/gocrud/ioc/logging"
)

// ApplicationBuilder 应用程序构建器
type ApplicationBuilder struct {
	environment     string
	configBuilder   *config.ConfigurationBuilder
	loggingBuilder  *logging.LoggingBuilder
	configurators   []Configurator
	shutdownTimeout time.Duration
	mu              sync.Mutex
}

// NewApplicationBuilder 创建应用程序构建器
func NewApplicationBuilder() *ApplicationBuilder {
	return &ApplicationBuilder{
		environment:     "development",
		configBuilder:   config.NewConfigurationBuilder(),
		loggingBuilder:  logging.NewLoggingBuilder(),
		configurators:   make([]Configurator, 0),
		shutdownTimeout: 30 * time.Second,
	}
}

// UseEnvironment 设置环境
func (b *ApplicationBuilder) UseEnvironment(env string) *ApplicationBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.environment = env
	return b
}

// ConfigureConfiguration 配置配置系统
func (b *ApplicationBuilder) ConfigureConfiguration(configure func(*config.ConfigurationBuilder)) *ApplicationBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	if configure != nil {
		configure(b.configBuilder)
	}
	return b
}

// ConfigureLogging 配置日志系统
func (b *ApplicationBuilder) ConfigureLogging(configure func(*logging.LoggingBuilder)) *ApplicationBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	if configure != nil {
		configure(b.loggingBuilder)
	}
	return b
}

// Configure 添加配置器（支持链式调用和可变参数）
func (b *ApplicationBuilder) Configure(configurators ...Configurator) *ApplicationBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.configurators = append(b.configurators, configurators...)
	return b
}

// AddTask 添加一个简单的后台任务
func (b *ApplicationBuilder) AddTask(task func(ctx context.Context) error) *ApplicationBuilder {
	return b.Configure(func(ctx *BuildContext) {
		ctx.AddHostedService(&functionalService{task: task})
	})
}

// functionalService 函数式托管服务
type functionalService struct {
	task func(ctx context.Context) error
}

func (f *functionalService) Start(ctx context.Context) error {
	return f.task(ctx)
}

func (f *functionalService) Stop(ctx context.Context) error {
	return nil
}

// UseShutdownTimeout 设置关闭超时
func (b *ApplicationBuilder) UseShutdownTimeout(timeout time.Duration) *ApplicationBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shutdownTimeout = timeout
	return b
}

// Build 构建应用程序
// 依次执行：构建配置、构建日志、注册核心 bean、执行配置器、初始化容器
func (b *ApplicationBuilder) Build() (Application, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	configuration, err := b.configBuilder.Build()
	if err != nil {
		return nil, fmt.Errorf("core: building configuration: %w", err)
	}

	logger := b.loggingBuilder.Build().WithCategory("Application")

	logger.Info("Building application",
		logging.Field{Key: "environment", Value: b.environment})

	container := di.NewContainer()
	env := NewEnvironment(b.environment)

	// 注册核心服务，配置器和业务 bean 可以直接注入它们
	di.Register[config.Configuration](container, di.WithValue(configuration))
	di.Register[logging.Logger](container, di.WithValue(logger))
	di.Register[di.Container](container, di.WithValue(container))
	di.Register[Environment](container, di.WithValue(env))

	buildContext := &BuildContext{
		container:      container,
		configuration:  configuration,
		logger:         logger,
		environment:    env,
		hostedServices: make([]hosting.HostedService, 0),
		cleanups:       make(map[string]func()),
	}

	for _, configurator := range b.configurators {
		configurator(buildContext)
	}

	// 初始化容器：按注册顺序实例化所有单例 bean
	if err := container.Initialize(); err != nil {
		return nil, fmt.Errorf("core: initializing container: %w", err)
	}

	logger.Info("DI container initialized",
		logging.Field{Key: "beans", Value: len(container.BeanNames())})

	return &application{
		container:       container,
		configuration:   configuration,
		logger:          logger,
		environment:     env,
		hostedServices:  buildContext.hostedServices,
		cleanups:        buildContext.cleanups,
		shutdownTimeout: b.shutdownTimeout,
		stopCh:          make(chan struct{}),
	}, nil
}

// MustBuild 构建应用程序，失败时 panic
func (b *ApplicationBuilder) MustBuild() Application {
	app, err := b.Build()
	if err != nil {
		panic(err)
	}
	return app
}
