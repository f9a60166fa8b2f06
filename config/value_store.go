package config

import "sync/atomic"

// ValueStore 持有配置数据快照，读多写少场景下无锁读取
type ValueStore struct {
	value atomic.Value
}

func NewValueStore() *ValueStore {
	return &ValueStore{}
}

// Store 替换整份配置数据
func (s *ValueStore) Store(data map[string]any) {
	s.value.Store(data)
}

// Load 读取当前配置数据快照
func (s *ValueStore) Load() map[string]any {
	data, _ := s.value.Load().(map[string]any)
	if data == nil {
		return map[string]any{}
	}
	return data
}
