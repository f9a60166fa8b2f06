package mongodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoOptions MongoDB 客户端配置选项
type MongoOptions struct {
	Name        string        // 客户端名称，同时作为容器中的 bean 名称
	Uri         string        // 连接字符串 mongodb://...
	Database    string        // 默认数据库名称（可选）
	Username    string        // 用户名（可选，未在 Uri 中给出时使用）
	Password    string        // 密码（可选）
	MaxPoolSize uint64        // 最大连接池大小
	MinPoolSize uint64        // 最小连接池大小
	Timeout     time.Duration // 操作超时时间
}

// NewDefaultOptions 创建默认配置
func NewDefaultOptions(name, uri string) *MongoOptions {
	return &MongoOptions{
		Name:        name,
		Uri:         uri,
		MaxPoolSize: 100,
		MinPoolSize: 5,
		Timeout:     10 * time.Second,
	}
}

// Validate 验证配置
func (o *MongoOptions) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("mongo client name is required")
	}
	if o.Uri == "" {
		return fmt.Errorf("mongo uri is required")
	}
	return nil
}

// MongoClientFactory MongoDB 客户端工厂
// 驱动惰性建立连接，首个操作时才真正连接服务器
type MongoClientFactory struct {
	clients   map[string]*mongo.Client
	databases map[string]*mongo.Database
	mu        sync.RWMutex
}

// NewMongoClientFactory 创建客户端工厂
func NewMongoClientFactory() *MongoClientFactory {
	return &MongoClientFactory{
		clients:   make(map[string]*mongo.Client),
		databases: make(map[string]*mongo.Database),
	}
}

// Register 按配置创建并登记 MongoDB 客户端
func (f *MongoClientFactory) Register(opts MongoOptions) (*mongo.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.clients[opts.Name]; exists {
		return nil, fmt.Errorf("mongo client %q already registered", opts.Name)
	}

	clientOpts := options.Client().
		ApplyURI(opts.Uri).
		SetMaxPoolSize(opts.MaxPoolSize).
		SetMinPoolSize(opts.MinPoolSize).
		SetTimeout(opts.Timeout)

	if opts.Username != "" {
		clientOpts = clientOpts.SetAuth(options.Credential{
			Username: opts.Username,
			Password: opts.Password,
		})
	}

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("creating mongo client %q: %w", opts.Name, err)
	}

	f.clients[opts.Name] = client
	if opts.Database != "" {
		f.databases[opts.Name] = client.Database(opts.Database)
	}
	return client, nil
}

// Get 获取指定名称的 MongoDB 客户端
func (f *MongoClientFactory) Get(name string) (*mongo.Client, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	client, exists := f.clients[name]
	if !exists {
		return nil, fmt.Errorf("mongo client %q not found", name)
	}
	return client, nil
}

// Database 获取指定客户端的默认数据库
func (f *MongoClientFactory) Database(name string) (*mongo.Database, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	db, exists := f.databases[name]
	if !exists {
		return nil, fmt.Errorf("mongo client %q has no default database configured", name)
	}
	return db, nil
}

// Names 返回所有已登记客户端的名称
func (f *MongoClientFactory) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.clients))
	for name := range f.clients {
		names = append(names, name)
	}
	return names
}

// Close 断开所有 MongoDB 客户端
func (f *MongoClientFactory) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for name, client := range f.clients {
		if err := client.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("disconnecting client %q: %w", name, err))
		}
	}
	f.clients = make(map[string]*mongo.Client)
	f.databases = make(map[string]*mongo.Database)

	if len(errs) > 0 {
		return fmt.Errorf("errors closing mongo clients: %v", errs)
	}
	return nil
}
