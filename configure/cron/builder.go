package cron

import (
	"fmt"
	"reflect"

	"github.com/gocrud/ioc/di"
	"github.com/gocrud/ioc/hosting"
	"github.com/gocrud/ioc/logging"
)

// Builder Cron 配置构建器
type Builder struct {
	enableSeconds    bool
	enableCronLogger bool
	jobs             []jobDefinition
}

// jobDefinition 任务定义
type jobDefinition struct {
	spec    string
	name    string
	handler any // func() 或参数由容器解析的任意函数
}

// NewBuilder 创建 Cron 构建器
func NewBuilder() *Builder {
	return &Builder{}
}

// WithSeconds 启用秒级精度
func (b *Builder) WithSeconds() *Builder {
	b.enableSeconds = true
	return b
}

// EnableCronLogger 启用 cron 库的内部调度日志
func (b *Builder) EnableCronLogger() *Builder {
	b.enableCronLogger = true
	return b
}

// AddJob 添加简单任务（无依赖注入）
func (b *Builder) AddJob(spec, name string, handler func()) *Builder {
	b.jobs = append(b.jobs, jobDefinition{spec: spec, name: name, handler: handler})
	return b
}

// AddJobWithDI 添加带依赖注入的任务
// handler 可以是任何函数，参数在每次触发时按类型从容器解析
//
// 示例：
//
//	b.AddJobWithDI("*/5 * * * *", "sync-data", func(svc *DataService, logger logging.Logger) {
//	    svc.Sync()
//	})
func (b *Builder) AddJobWithDI(spec, name string, handler any) *Builder {
	b.jobs = append(b.jobs, jobDefinition{spec: spec, name: name, handler: handler})
	return b
}

// build 构建 Cron 托管服务
func (b *Builder) build(container di.Container, logger logging.Logger) (hosting.HostedService, error) {
	svc := newService(logger, options{
		EnableSeconds:    b.enableSeconds,
		EnableCronLogger: b.enableCronLogger,
	})

	for _, job := range b.jobs {
		var handler func()
		switch h := job.handler.(type) {
		case func():
			handler = h
		default:
			wrapped, err := wrapHandler(container, logger, h)
			if err != nil {
				return nil, fmt.Errorf("job %q: %w", job.name, err)
			}
			handler = wrapped
		}

		if err := svc.addJob(job.spec, job.name, handler); err != nil {
			return nil, err
		}
	}

	return svc, nil
}

// wrapHandler 包装处理函数，触发时按类型从容器解析参数
func wrapHandler(container di.Container, logger logging.Logger, handler any) (func(), error) {
	handlerValue := reflect.ValueOf(handler)
	handlerType := handlerValue.Type()

	if handlerType.Kind() != reflect.Func {
		return nil, fmt.Errorf("handler must be a function, got %v", handlerType.Kind())
	}

	return func() {
		args := make([]reflect.Value, handlerType.NumIn())
		for i := range args {
			paramType := handlerType.In(i)

			instance, err := container.GetByType(paramType)
			if err != nil {
				logger.Error(fmt.Sprintf("Failed to resolve parameter %d (%v) for cron job", i, paramType),
					logging.Field{Key: "error", Value: err.Error()})
				return
			}
			args[i] = reflect.ValueOf(instance)
		}

		defer func() {
			if r := recover(); r != nil {
				logger.Error("Cron job panicked",
					logging.Field{Key: "panic", Value: r})
			}
		}()

		handlerValue.Call(args)
	}, nil
}
