package config

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Configuration 配置接口
type Configuration interface {
	// Get 获取配置值，key 使用 "." 分层，如 "redis.addr"
	Get(key string) string
	// GetWithDefault 获取配置值，如果不存在则返回默认值
	GetWithDefault(key, defaultValue string) string
	// GetInt 获取整数配置值
	GetInt(key string) (int, error)
	// GetBool 获取布尔配置值
	GetBool(key string) (bool, error)
	// GetSection 获取配置节
	GetSection(key string) Configuration
	// Bind 将配置节绑定到结构体（yaml 标签）
	Bind(key string, target any) error
	// GetAll 获取所有配置（嵌套结构）
	GetAll() map[string]any
}

// ConfigurationBuilder 配置构建器。按添加顺序合并配置源，后加入的覆盖先前的。
type ConfigurationBuilder struct {
	sources []ConfigurationSource
	mu      sync.Mutex
}

// ConfigurationSource 配置源接口
type ConfigurationSource interface {
	Load() (map[string]any, error)
	Name() string
}

// NewConfigurationBuilder 创建配置构建器
func NewConfigurationBuilder() *ConfigurationBuilder {
	return &ConfigurationBuilder{}
}

// Add 添加配置源
func (b *ConfigurationBuilder) Add(source ConfigurationSource) *ConfigurationBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sources = append(b.sources, source)
	return b
}

// AddYamlFile 添加 YAML 文件配置源
func (b *ConfigurationBuilder) AddYamlFile(path string, optional ...bool) *ConfigurationBuilder {
	isOptional := len(optional) > 0 && optional[0]
	return b.Add(&YamlFileSource{Path: path, Optional: isOptional})
}

// AddEnvironmentVariables 添加环境变量配置源
// 前缀会被剥离，其余部分转小写并以 "_" 作为层级分隔：
// APP_REDIS_ADDR=... -> redis.addr
func (b *ConfigurationBuilder) AddEnvironmentVariables(prefix string) *ConfigurationBuilder {
	return b.Add(&EnvironmentVariableSource{Prefix: prefix})
}

// AddInMemory 添加内存配置源（测试和默认值）
func (b *ConfigurationBuilder) AddInMemory(data map[string]any) *ConfigurationBuilder {
	return b.Add(&InMemorySource{Data: data})
}

// Build 加载所有配置源并合并
func (b *ConfigurationBuilder) Build() (Configuration, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	merged := make(map[string]any)
	for _, source := range b.sources {
		data, err := source.Load()
		if err != nil {
			return nil, fmt.Errorf("config: loading source %s: %w", source.Name(), err)
		}
		merge(merged, data)
	}

	cfg := &configuration{store: NewValueStore()}
	cfg.store.Store(merged)
	return cfg, nil
}

// configuration Configuration 的实现，数据存储在 ValueStore 中
type configuration struct {
	store *ValueStore
}

func (c *configuration) Get(key string) string {
	val, ok := lookup(c.store.Load(), key)
	if !ok || val == nil {
		return ""
	}
	if _, nested := val.(map[string]any); nested {
		return "" // 节本身没有标量表示
	}
	return fmt.Sprint(val)
}

func (c *configuration) GetWithDefault(key, defaultValue string) string {
	if v := c.Get(key); v != "" {
		return v
	}
	return defaultValue
}

func (c *configuration) GetInt(key string) (int, error) {
	raw := c.Get(key)
	if raw == "" {
		return 0, fmt.Errorf("config: key %q not found", key)
	}
	return strconv.Atoi(raw)
}

func (c *configuration) GetBool(key string) (bool, error) {
	raw := c.Get(key)
	if raw == "" {
		return false, fmt.Errorf("config: key %q not found", key)
	}
	return strconv.ParseBool(raw)
}

func (c *configuration) GetSection(key string) Configuration {
	section := make(map[string]any)
	if val, ok := lookup(c.store.Load(), key); ok {
		if m, isMap := val.(map[string]any); isMap {
			section = m
		}
	}
	store := NewValueStore()
	store.Store(section)
	return &configuration{store: store}
}

func (c *configuration) Bind(key string, target any) error {
	data := c.store.Load()
	if key != "" {
		val, ok := lookup(data, key)
		if !ok {
			return fmt.Errorf("config: section %q not found", key)
		}
		m, isMap := val.(map[string]any)
		if !isMap {
			return fmt.Errorf("config: key %q is not a section", key)
		}
		data = m
	}

	// 经由 yaml 往返完成到结构体的绑定
	raw, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, target)
}

func (c *configuration) GetAll() map[string]any {
	return c.store.Load()
}

// lookup 按 "." 分层在嵌套 map 中查找
func lookup(data map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := any(data)
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// merge 深度合并 src 到 dst，标量后者覆盖
func merge(dst, src map[string]any) {
	for key, srcVal := range src {
		if srcMap, srcIsMap := srcVal.(map[string]any); srcIsMap {
			if dstMap, dstIsMap := dst[key].(map[string]any); dstIsMap {
				merge(dstMap, srcMap)
				continue
			}
		}
		dst[key] = srcVal
	}
}
