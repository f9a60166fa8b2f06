package di

// Option 配置一次注册。
type Option func(*BeanDefinition)

// WithName 显式指定 bean 名称，覆盖由类型名派生的默认名称。
func WithName(name string) Option {
	return func(d *BeanDefinition) {
		d.Name = name
	}
}

// WithPrototype 原型作用域：每次获取都创建新实例，不进入单例缓存。
func WithPrototype() Option {
	return func(d *BeanDefinition) {
		d.Singleton = false
	}
}

// WithSingleton 单例作用域（默认）。
func WithSingleton() Option {
	return func(d *BeanDefinition) {
		d.Singleton = true
	}
}

// WithPrimary 同类型存在多个实现时，按类型查找优先返回此定义。
func WithPrimary() Option {
	return func(d *BeanDefinition) {
		d.Primary = true
	}
}

// WithValue 注册预创建实例作为单例，不再构造。
func WithValue(v any) Option {
	return func(d *BeanDefinition) {
		d.IsValue = true
		d.Value = v
		d.Singleton = true
	}
}

// WithFields 对预创建实例强制开启字段注入。
// 实例类型带 `di` 标签字段时会自动开启，此选项用于显式声明。
func WithFields() Option {
	return func(d *BeanDefinition) {
		d.InjectFields = true
	}
}
