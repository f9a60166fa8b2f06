package di

import (
	"fmt"
	"reflect"
)

// registry 持有 bean 名称到定义的权威映射，并保留注册顺序，
// 保证 Initialize 的急切构造顺序可复现。
type registry struct {
	definitions map[string]*BeanDefinition
	order       []string
}

func newRegistry() *registry {
	return &registry{
		definitions: make(map[string]*BeanDefinition),
	}
}

// register 插入一个定义。名称冲突返回 ErrDuplicateBean。
func (r *registry) register(def *BeanDefinition) error {
	if _, exists := r.definitions[def.Name]; exists {
		return fmt.Errorf("%w: %q (%v)", ErrDuplicateBean, def.Name, def.Type)
	}
	r.definitions[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// byName 按名称查找定义。
func (r *registry) byName(name string) (*BeanDefinition, error) {
	def, ok := r.definitions[name]
	if !ok {
		return nil, fmt.Errorf("%w: name %q", ErrBeanNotFound, name)
	}
	return def, nil
}

// byType 按类型查找定义。
// 精确类型匹配优先；接口类型收集所有实现。匹配多于一个时，
// 恰好一个 primary 的定义胜出，否则返回 ErrAmbiguousBean。
func (r *registry) byType(t reflect.Type) (*BeanDefinition, error) {
	matches := r.matchType(t)

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: type %v", ErrBeanNotFound, t)
	case 1:
		return matches[0], nil
	}

	var primary *BeanDefinition
	for _, def := range matches {
		if !def.Primary {
			continue
		}
		if primary != nil {
			// 多个 primary 与没有 primary 同样无法消歧
			primary = nil
			break
		}
		primary = def
	}
	if primary != nil {
		return primary, nil
	}

	return nil, fmt.Errorf("%w: type %v matches %d beans (%s)", ErrAmbiguousBean, t, len(matches), matchNames(matches))
}

// matchType 按注册顺序返回所有匹配 t 的定义。
func (r *registry) matchType(t reflect.Type) []*BeanDefinition {
	var matches []*BeanDefinition
	for _, name := range r.order {
		def := r.definitions[name]
		if r.assignable(def, t) {
			matches = append(matches, def)
		}
	}
	return matches
}

func (r *registry) assignable(def *BeanDefinition, t reflect.Type) bool {
	if def.Type == t {
		return true
	}
	if t.Kind() == reflect.Interface {
		if def.ImplType != nil && def.ImplType.Implements(t) {
			return true
		}
		return def.Type.Implements(t)
	}
	return false
}

// names 返回注册顺序的名称序列（副本）。
func (r *registry) names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func matchNames(defs []*BeanDefinition) string {
	s := ""
	for i, def := range defs {
		if i > 0 {
			s += ", "
		}
		s += def.Name
	}
	return s
}
