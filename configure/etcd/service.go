package etcd

import (
	"fmt"
	"sync"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdClientOptions Etcd 客户端配置选项
type EtcdClientOptions struct {
	Name               string        // 客户端名称，同时作为容器中的 bean 名称
	Endpoints          []string      // etcd 节点地址列表
	Username           string        // 用户名（可选）
	Password           string        // 密码（可选）
	DialTimeout        time.Duration // 连接超时时间
	AutoSyncInterval   time.Duration // 节点列表自动同步间隔
	MaxCallSendMsgSize int           // 单次请求最大字节数
}

// NewDefaultOptions 创建默认配置
func NewDefaultOptions(name string) *EtcdClientOptions {
	return &EtcdClientOptions{
		Name:        name,
		Endpoints:   []string{"localhost:2379"},
		DialTimeout: 5 * time.Second,
	}
}

// Validate 验证配置
func (o *EtcdClientOptions) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("etcd client name is required")
	}
	if len(o.Endpoints) == 0 {
		return fmt.Errorf("etcd endpoints are required")
	}
	return nil
}

// EtcdClientFactory Etcd 客户端工厂
// 客户端非阻塞建立，首次调用时才真正连接 etcd 集群
type EtcdClientFactory struct {
	clients map[string]*clientv3.Client
	mu      sync.RWMutex
}

// NewEtcdClientFactory 创建客户端工厂
func NewEtcdClientFactory() *EtcdClientFactory {
	return &EtcdClientFactory{
		clients: make(map[string]*clientv3.Client),
	}
}

// Register 按配置创建并登记 Etcd 客户端
func (f *EtcdClientFactory) Register(opts EtcdClientOptions) (*clientv3.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.clients[opts.Name]; exists {
		return nil, fmt.Errorf("etcd client %q already registered", opts.Name)
	}

	client, err := clientv3.New(clientv3.Config{
		Endpoints:          opts.Endpoints,
		Username:           opts.Username,
		Password:           opts.Password,
		DialTimeout:        opts.DialTimeout,
		AutoSyncInterval:   opts.AutoSyncInterval,
		MaxCallSendMsgSize: opts.MaxCallSendMsgSize,
	})
	if err != nil {
		return nil, fmt.Errorf("creating etcd client %q: %w", opts.Name, err)
	}

	f.clients[opts.Name] = client
	return client, nil
}

// Get 获取指定名称的 Etcd 客户端
func (f *EtcdClientFactory) Get(name string) (*clientv3.Client, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	client, exists := f.clients[name]
	if !exists {
		return nil, fmt.Errorf("etcd client %q not found", name)
	}
	return client, nil
}

// Names 返回所有已登记客户端的名称
func (f *EtcdClientFactory) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.clients))
	for name := range f.clients {
		names = append(names, name)
	}
	return names
}

// Close 关闭所有 Etcd 客户端
func (f *EtcdClientFactory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for name, client := range f.clients {
		if err := client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing client %q: %w", name, err))
		}
	}
	f.clients = make(map[string]*clientv3.Client)

	if len(errs) > 0 {
		return fmt.Errorf("errors closing etcd clients: %v", errs)
	}
	return nil
}
