package di

import (
	"fmt"
	"reflect"
)

// resolveDefinition 产出 def 的一个实例。
//
// 顺序即约束：单例缓存命中直接返回；进入循环守卫；构造；字段注入；
// 注入成功后才写入单例缓存（半成品实例绝不入缓存）；守卫通过 defer
// 在任何退出路径上释放。
func (c *container) resolveDefinition(def *BeanDefinition) (any, error) {
	if def.Singleton {
		if inst, cached := c.singletons[def.Name]; cached {
			return inst, nil
		}
	}

	if err := c.guard.enter(def.Name); err != nil {
		return nil, err
	}
	defer c.guard.leave(def.Name)

	inst, err := c.instantiate(def)
	if err != nil {
		return nil, err
	}

	if def.IsValue {
		// 预创建实例只在显式开启时注入字段
		if def.InjectFields {
			if err := c.injectFields(inst, def); err != nil {
				return nil, err
			}
		}
	} else if err := c.injectFields(inst, def); err != nil {
		return nil, err
	}

	if def.Singleton {
		c.singletons[def.Name] = inst
	}
	return inst, nil
}

// instantiate 选择构造方式并创建实例：
// 预创建值 > 显式构造函数 > 零值结构体构造。
func (c *container) instantiate(def *BeanDefinition) (any, error) {
	if def.IsValue {
		return def.Value, nil
	}
	if def.hasConstructor() {
		return c.invokeConstructor(def)
	}
	return c.newStruct(def)
}

// invokeConstructor 按声明顺序解析构造函数参数并调用。
func (c *container) invokeConstructor(def *BeanDefinition) (any, error) {
	args := make([]reflect.Value, len(def.Schema.Args))
	for i, argType := range def.Schema.Args {
		argVal, err := c.resolveDependency(argType)
		if err != nil {
			return nil, fmt.Errorf("bean %q constructor arg %d: %w", def.Name, i, err)
		}
		args[i] = reflect.ValueOf(argVal)
	}

	results := def.Constructor.Call(args)

	if len(results) == 2 && !results[1].IsNil() {
		return nil, fmt.Errorf("bean %q constructor: %w", def.Name, results[1].Interface().(error))
	}

	first := results[0]
	if (first.Kind() == reflect.Ptr || first.Kind() == reflect.Interface) && first.IsNil() {
		return nil, fmt.Errorf("bean %q: constructor returned nil instance", def.Name)
	}
	return first.Interface(), nil
}

// newStruct 零值构造。始终通过 reflect.New 创建指针，字段可寻址。
func (c *container) newStruct(def *BeanDefinition) (any, error) {
	elem := def.ImplType
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	return reflect.New(elem).Interface(), nil
}

// resolveDependency 解析依赖位置（构造参数或注入字段）的类型。
// 查找失败（缺失或歧义）统一归为 ErrUnresolvableDependency；
// 循环依赖错误原样向上传播。
func (c *container) resolveDependency(t reflect.Type) (any, error) {
	def, err := c.registry.byType(t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnresolvableDependency, err)
	}
	return c.resolveDefinition(def)
}
