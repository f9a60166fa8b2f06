package redis

import (
	"fmt"

	"github.com/gocrud/ioc/config"
	"github.com/gocrud/ioc/logging"
)

// Builder Redis 客户端配置构建器
type Builder struct {
	configs []RedisClientOptions
	errors  []error
}

// NewBuilder 创建 Redis 构建器
func NewBuilder() *Builder {
	return &Builder{}
}

// AddClient 添加一个 Redis 客户端配置
func (b *Builder) AddClient(name string, configure func(*RedisClientOptions)) *Builder {
	opts := NewDefaultOptions(name)
	if configure != nil {
		configure(opts)
	}

	if err := opts.Validate(); err != nil {
		b.errors = append(b.errors, fmt.Errorf("invalid redis configuration for %q: %w", name, err))
		return b
	}

	b.configs = append(b.configs, *opts)
	return b
}

// AddClientFromConfiguration 从配置节读取客户端配置
// 配置节字段使用 yaml 标签（addr、password、db 等）
func (b *Builder) AddClientFromConfiguration(name string, cfg config.Configuration, section string) *Builder {
	return b.AddClient(name, func(o *RedisClientOptions) {
		if err := cfg.Bind(section, o); err != nil {
			b.errors = append(b.errors, fmt.Errorf("binding redis section %q: %w", section, err))
		}
		o.Name = name
	})
}

// Build 构建 Redis 客户端工厂
func (b *Builder) Build(logger logging.Logger) (*RedisClientFactory, error) {
	if len(b.errors) > 0 {
		return nil, fmt.Errorf("redis configuration errors: %v", b.errors)
	}
	if len(b.configs) == 0 {
		return nil, nil // 没有配置任何 Redis 客户端
	}

	factory := NewRedisClientFactory()
	for _, opts := range b.configs {
		if _, err := factory.Register(opts); err != nil {
			return nil, fmt.Errorf("registering redis client %q: %w", opts.Name, err)
		}

		logger.Info("Redis client registered",
			logging.Field{Key: "name", Value: opts.Name},
			logging.Field{Key: "addr", Value: opts.Addr},
			logging.Field{Key: "db", Value: opts.DB})
	}

	return factory, nil
}
