package cron

import (
	"context"
	"fmt"
	"sync"

	"github.com/gocrud/ioc/logging"
	"github.com/robfig/cron/v3"
)

// service Cron 定时任务托管服务
// 实现 hosting.HostedService，随应用启动和停止
type service struct {
	cron   *cron.Cron
	logger logging.Logger
	mu     sync.Mutex
	jobs   map[string]cron.EntryID
}

// options Cron 服务配置选项
type options struct {
	// Location 时区设置，默认 UTC
	Location string
	// EnableSeconds 是否启用秒级精度（默认分钟级）
	EnableSeconds bool
	// EnableCronLogger 是否启用 cron 库的内部调度日志
	EnableCronLogger bool
}

// newService 创建 Cron 托管服务
func newService(logger logging.Logger, opt options) *service {
	logger = logger.WithCategory("Cron")

	cronOpts := []cron.Option{
		cron.WithChain(cron.Recover(newCronLogger(logger))),
	}
	if opt.EnableCronLogger {
		cronOpts = append(cronOpts, cron.WithLogger(newCronLogger(logger)))
	}
	if opt.EnableSeconds {
		cronOpts = append(cronOpts, cron.WithSeconds())
	}

	return &service{
		cron:   cron.New(cronOpts...),
		logger: logger,
		jobs:   make(map[string]cron.EntryID),
	}
}

// addJob 添加定时任务
// spec: cron 表达式，如 "*/5 * * * *" 或启用秒级后的 "0 */5 * * * *"
func (s *service) addJob(spec, name string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, err := s.cron.AddFunc(spec, func() {
		s.logger.Debug(fmt.Sprintf("Cron job %q started", name))
		defer s.logger.Debug(fmt.Sprintf("Cron job %q completed", name))
		job()
	})
	if err != nil {
		return fmt.Errorf("adding cron job %q: %w", name, err)
	}

	s.jobs[name] = entryID
	s.logger.Info("Cron job registered",
		logging.Field{Key: "name", Value: name},
		logging.Field{Key: "spec", Value: spec})
	return nil
}

// Start 实现 hosting.HostedService
func (s *service) Start(ctx context.Context) error {
	s.logger.Info("Cron service starting",
		logging.Field{Key: "jobs", Value: len(s.jobs)})
	s.cron.Start()

	<-ctx.Done()
	return ctx.Err()
}

// Stop 实现 hosting.HostedService，等待正在运行的任务完成
func (s *service) Stop(ctx context.Context) error {
	s.logger.Info("Cron service stopping")

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		s.logger.Info("Cron service stopped gracefully")
	case <-ctx.Done():
		s.logger.Warn("Cron service stop timeout, forcing shutdown")
	}
	return nil
}

// cronLogger 适配器：将框架日志接口适配到 cron 的日志接口
type cronLogger struct {
	logger logging.Logger
}

func newCronLogger(logger logging.Logger) cron.Logger {
	return &cronLogger{logger: logger}
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, convertToFields(keysAndValues)...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := convertToFields(keysAndValues)
	fields = append(fields, logging.Field{Key: "error", Value: err.Error()})
	l.logger.Error(msg, fields...)
}

func convertToFields(keysAndValues []interface{}) []logging.Field {
	fields := make([]logging.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields = append(fields, logging.Field{
			Key:   fmt.Sprintf("%v", keysAndValues[i]),
			Value: keysAndValues[i+1],
		})
	}
	return fields
}
