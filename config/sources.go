package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YamlFileSource 从 YAML 文件加载配置
type YamlFileSource struct {
	Path string
	// Optional 为 true 时文件不存在不视为错误
	Optional bool
}

func (s *YamlFileSource) Load() (map[string]any, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) && s.Optional {
			return map[string]any{}, nil
		}
		return nil, err
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Path, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return normalizeKeys(data), nil
}

func (s *YamlFileSource) Name() string {
	return "yaml:" + s.Path
}

// EnvironmentVariableSource 从环境变量加载配置
// APP_REDIS_ADDR=localhost:6379 （前缀 "APP_"）映射为 redis.addr
type EnvironmentVariableSource struct {
	Prefix string
}

func (s *EnvironmentVariableSource) Load() (map[string]any, error) {
	result := make(map[string]any)
	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if s.Prefix != "" {
			if !strings.HasPrefix(name, s.Prefix) {
				continue
			}
			name = strings.TrimPrefix(name, s.Prefix)
		}
		if name == "" {
			continue
		}
		key := strings.ToLower(strings.ReplaceAll(name, "_", "."))
		setNested(result, key, value)
	}
	return result, nil
}

func (s *EnvironmentVariableSource) Name() string {
	return "env:" + s.Prefix
}

// InMemorySource 内存配置源，key 可使用 "." 分层
type InMemorySource struct {
	Data map[string]any
}

func (s *InMemorySource) Load() (map[string]any, error) {
	result := make(map[string]any)
	for key, value := range s.Data {
		if m, isMap := value.(map[string]any); isMap {
			setNested(result, key, normalizeKeys(m))
			continue
		}
		setNested(result, key, value)
	}
	return result, nil
}

func (s *InMemorySource) Name() string {
	return "memory"
}

// setNested 按 "." 分层写入嵌套 map
func setNested(data map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// normalizeKeys 将 yaml 解析出的 map[any]any 统一为 map[string]any
func normalizeKeys(data map[string]any) map[string]any {
	result := make(map[string]any, len(data))
	for key, value := range data {
		result[key] = normalizeValue(value)
	}
	return result
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeKeys(v)
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			m[fmt.Sprint(k)] = normalizeValue(item)
		}
		return m
	case []any:
		for i, item := range v {
			v[i] = normalizeValue(item)
		}
		return v
	default:
		return value
	}
}
