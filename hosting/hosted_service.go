package hosting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gocrud/ioc/logging"
)

// HostedService 托管服务接口
// 框架会自动在 goroutine 中调用 Start，用户无需自己启动 goroutine
type HostedService interface {
	// Start 启动服务。该方法应阻塞执行，直到 context 被取消或发生错误。
	Start(ctx context.Context) error

	// Stop 执行优雅关闭逻辑。
	// 当 Start 的 context 被取消时服务应自动停止，Stop 用于额外的清理工作。
	Stop(ctx context.Context) error
}

// HostedServiceManager 托管服务管理器
type HostedServiceManager struct {
	services []HostedService
	logger   logging.Logger
	mu       sync.Mutex
	wg       sync.WaitGroup
}

// NewHostedServiceManager 创建托管服务管理器
func NewHostedServiceManager(logger logging.Logger) *HostedServiceManager {
	return &HostedServiceManager{
		logger: logger.WithCategory("Hosting"),
	}
}

// Add 添加托管服务
func (m *HostedServiceManager) Add(service HostedService) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services = append(m.services, service)
}

// StartAll 在独立 goroutine 中并发启动所有托管服务
// 返回的通道用于接收启动失败的错误，缓冲区大小等于服务数量
func (m *HostedServiceManager) StartAll(ctx context.Context) <-chan error {
	m.mu.Lock()
	defer m.mu.Unlock()

	errCh := make(chan error, len(m.services))

	m.logger.Info("Starting hosted services",
		logging.Field{Key: "count", Value: len(m.services)})

	for i, service := range m.services {
		m.wg.Add(1)
		go func(index int, svc HostedService) {
			defer m.wg.Done()

			if err := svc.Start(ctx); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					m.logger.Debug(fmt.Sprintf("Hosted service %d stopped (context done)", index+1))
					return
				}
				m.logger.Error(fmt.Sprintf("Hosted service %d error", index+1),
					logging.Field{Key: "error", Value: err.Error()})
				errCh <- err
				return
			}

			m.logger.Debug(fmt.Sprintf("Hosted service %d completed", index+1))
		}(i, service)
	}

	return errCh
}

// StopAll 并发停止所有托管服务
func (m *HostedServiceManager) StopAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Stopping hosted services",
		logging.Field{Key: "count", Value: len(m.services)})

	var wg sync.WaitGroup
	for i := len(m.services) - 1; i >= 0; i-- {
		wg.Add(1)
		go func(index int, svc HostedService) {
			defer wg.Done()
			if err := svc.Stop(ctx); err != nil {
				m.logger.Error(fmt.Sprintf("Failed to stop hosted service %d", index+1),
					logging.Field{Key: "error", Value: err.Error()})
			}
		}(i, m.services[i])
	}
	wg.Wait()

	return nil
}

// Wait 等待所有服务的 Start goroutine 退出
func (m *HostedServiceManager) Wait() {
	m.wg.Wait()
}

// TimedHostedService 定时托管服务，按固定间隔执行任务
type TimedHostedService struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error
	logger   logging.Logger
}

// NewTimedHostedService 创建定时托管服务
func NewTimedHostedService(name string, interval time.Duration, task func(ctx context.Context) error, logger logging.Logger) *TimedHostedService {
	return &TimedHostedService{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger.WithCategory("TimedService"),
	}
}

// Start 按间隔执行任务直到 context 取消
func (s *TimedHostedService) Start(ctx context.Context) error {
	s.logger.Info("Timed service running",
		logging.Field{Key: "name", Value: s.name},
		logging.Field{Key: "interval", Value: s.interval.String()})

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.task(ctx); err != nil {
				s.logger.Error("Timed task failed",
					logging.Field{Key: "name", Value: s.name},
					logging.Field{Key: "error", Value: err.Error()})
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop 停止定时服务
func (s *TimedHostedService) Stop(ctx context.Context) error {
	return nil
}
