package mongodb

import (
	"fmt"

	"github.com/gocrud/ioc/logging"
)

// Builder MongoDB 客户端配置构建器
type Builder struct {
	configs []MongoOptions
	errors  []error
}

// NewBuilder 创建 MongoDB 构建器
func NewBuilder() *Builder {
	return &Builder{}
}

// AddClient 添加一个 MongoDB 客户端配置
func (b *Builder) AddClient(name, uri string, configure func(*MongoOptions)) *Builder {
	for _, existing := range b.configs {
		if existing.Name == name {
			b.errors = append(b.errors, fmt.Errorf("mongo client %q already configured", name))
			return b
		}
	}

	opts := NewDefaultOptions(name, uri)
	if configure != nil {
		configure(opts)
	}

	if err := opts.Validate(); err != nil {
		b.errors = append(b.errors, fmt.Errorf("invalid mongo configuration for %q: %w", name, err))
		return b
	}

	b.configs = append(b.configs, *opts)
	return b
}

// Build 构建 MongoDB 客户端工厂
func (b *Builder) Build(logger logging.Logger) (*MongoClientFactory, error) {
	if len(b.errors) > 0 {
		return nil, fmt.Errorf("mongo configuration errors: %v", b.errors)
	}
	if len(b.configs) == 0 {
		return nil, nil // 没有配置任何 MongoDB 客户端
	}

	factory := NewMongoClientFactory()
	for _, opts := range b.configs {
		if _, err := factory.Register(opts); err != nil {
			return nil, err
		}

		logger.Info("Mongo client registered",
			logging.Field{Key: "name", Value: opts.Name},
			logging.Field{Key: "database", Value: opts.Database})
	}

	return factory, nil
}
