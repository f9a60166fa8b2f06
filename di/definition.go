package di

import (
	"reflect"
)

// Component 组件标记。嵌入此结构体的类型在 Scan 时会被识别为可注入组件。
// 标记字段上的 `di` 标签携带类型级选项：
//
//	type UserRepository struct {
//	    di.Component `di:"name=userRepo,primary"`
//	}
//
// 支持的标签项：
//   - name=xxx    显式指定 bean 名称（默认由类型名小驼峰派生）
//   - prototype   原型作用域，每次获取都创建新实例
//   - primary     同类型多个实现时的首选项
type Component struct{}

var componentMarker = reflect.TypeOf(Component{})

// FieldInjection 需要注入的结构体字段的元数据。
type FieldInjection struct {
	Index    int
	Name     string // 字段名
	Type     reflect.Type
	BeanName string // 按名称注入时的 bean 名称，空表示按类型
	Optional bool
}

// InjectionSchema 注册时预计算的注入元数据，解析阶段不再反射扫描标签。
type InjectionSchema struct {
	Fields []FieldInjection // 字段注入点
	Args   []reflect.Type   // 构造函数参数类型（声明顺序）
}

// BeanDefinition 一个可注册类型的元数据。
// 在 Scan/Register 阶段创建，此后不可变，与容器同生命周期。
type BeanDefinition struct {
	// Name 容器内唯一的 bean 名称
	Name string

	// Type 对外暴露的服务类型（构造函数的首个返回值类型，
	// 或结构体指针类型）
	Type reflect.Type

	// ImplType 用于可赋值性判断的具体实现类型
	ImplType reflect.Type

	// Singleton 单例作用域；false 表示原型作用域（每次请求新实例）
	Singleton bool

	// Primary 同类型歧义时的首选实现
	Primary bool

	// Constructor 显式注册的构造函数（标记构造函数），零值表示
	// 直接按 ImplType 零值构造
	Constructor reflect.Value

	// IsValue 预创建实例，直接复用，不再构造
	IsValue bool
	Value   any

	// InjectFields 是否对 IsValue 实例执行字段注入
	InjectFields bool

	// Schema 预计算的注入点
	Schema *InjectionSchema
}

// hasConstructor 是否注册了显式构造函数。
func (d *BeanDefinition) hasConstructor() bool {
	return d.Constructor.IsValid()
}

// hasComponentMarker 判断类型（解引用指针后）是否嵌入了 di.Component。
// 返回标记字段的 `di` 标签内容。
func hasComponentMarker(t reflect.Type) (reflect.StructTag, bool) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return "", false
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type == componentMarker {
			return field.Tag, true
		}
	}
	return "", false
}
