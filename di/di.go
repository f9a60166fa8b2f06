package di

import (
	"fmt"
	"reflect"
)

// Register 以类型参数 T 作为服务类型注册 bean。
// 接口类型配合 WithValue 使用；结构体指针类型走零值构造 + 字段注入。
// 注册失败视为编程错误，直接 panic（与应用启动期的使用场景一致）。
func Register[T any](c Container, opts ...Option) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if err := c.Register(typ, opts...); err != nil {
		panic(fmt.Sprintf("di: failed to register %v: %v", typ, err))
	}
}

// Get 按类型 T 从容器获取实例。
func Get[T any](c Container) (T, error) {
	var zero T
	typ := reflect.TypeOf((*T)(nil)).Elem()

	val, err := c.GetByType(typ)
	if err != nil {
		return zero, err
	}

	out, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("di: resolved value is %T, expected %v", val, typ)
	}
	return out, nil
}

// GetNamed 按名称获取实例并断言为 T。
func GetNamed[T any](c Container, name string) (T, error) {
	var zero T

	val, err := c.GetByName(name)
	if err != nil {
		return zero, err
	}

	out, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("di: bean %q is %T, expected %v", name, val, reflect.TypeOf((*T)(nil)).Elem())
	}
	return out, nil
}

// MustGet 按类型获取实例，失败时 panic。用于启动完成后的处理路径。
func MustGet[T any](c Container) T {
	out, err := Get[T](c)
	if err != nil {
		panic(err)
	}
	return out
}

// TypeOf 获取类型 T 的 reflect.Type（泛型辅助函数）。
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
