package di

import (
	"fmt"
	"reflect"
)

// injectFields 构造完成后填充实例上带 `di` 标签的字段。
// 按名称（标签首段）或按声明类型解析，直接通过反射赋值。
// 必选字段解析失败对整个构造过程是致命的；optional 字段静默跳过。
func (c *container) injectFields(instance any, def *BeanDefinition) error {
	if def.Schema == nil || len(def.Schema.Fields) == 0 {
		return nil
	}

	val := reflect.ValueOf(instance)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return nil // 非结构体实例（接口值、函数返回的标量等）没有字段注入点
	}
	structVal := val.Elem()

	for _, field := range def.Schema.Fields {
		target := structVal.Field(field.Index)
		if !target.IsZero() {
			continue // 构造函数已经赋值的字段不重复注入
		}

		depVal, err := c.resolveField(field)
		if err != nil {
			if field.Optional {
				continue
			}
			return fmt.Errorf("bean %q field %s: %w", def.Name, field.Name, err)
		}

		if !target.CanSet() {
			return fmt.Errorf("bean %q field %s: %w: field is not settable", def.Name, field.Name, ErrUnresolvableDependency)
		}

		// 按名称解析不经过类型匹配，赋值前必须校验可赋值性
		depRV := reflect.ValueOf(depVal)
		if !depRV.Type().AssignableTo(target.Type()) {
			mismatch := fmt.Errorf("%w: bean %q of type %v is not assignable to %v",
				ErrUnresolvableDependency, field.BeanName, depRV.Type(), target.Type())
			if field.Optional {
				continue
			}
			return fmt.Errorf("bean %q field %s: %w", def.Name, field.Name, mismatch)
		}
		target.Set(depRV)
	}
	return nil
}

func (c *container) resolveField(field FieldInjection) (any, error) {
	if field.BeanName != "" {
		def, err := c.registry.byName(field.BeanName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnresolvableDependency, err)
		}
		return c.resolveDefinition(def)
	}
	return c.resolveDependency(field.Type)
}
