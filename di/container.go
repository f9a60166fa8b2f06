package di

import (
	"fmt"
	"reflect"
)

// Container 是 bean 容器的接口。
//
// 生命周期：Scan（注册候选类型）→ Initialize（急切构造所有单例）→
// GetByType / GetByName（获取装配完成的实例）。
//
// 容器不是并发安全的：Scan、Initialize 与 Get 系列方法都假定在
// 单个 goroutine 上同步调用。解析过程中的递归只是普通的嵌套函数调用。
type Container interface {
	// Scan 注册一组候选。候选可以是：
	//   1. 构造函数 func(deps...) T 或 func(deps...) (T, error)，
	//      参数按类型从容器解析；
	//   2. reflect.Type 或结构体指针（如 (*UserService)(nil)），
	//      类型必须嵌入 di.Component 标记，否则跳过。
	Scan(candidates ...any) error

	// Register 显式注册单个目标，并可附加选项（名称、作用域、primary、
	// 预创建值）。显式注册不要求组件标记。
	Register(target any, opts ...Option) error

	// Initialize 按注册顺序急切构造所有尚未缓存的单例 bean。
	// 之后任何注册操作都会失败。
	Initialize() error

	// GetByType 按类型获取实例。单例返回缓存实例，原型每次新建。
	GetByType(t reflect.Type) (any, error)

	// GetByName 按名称获取实例。
	GetByName(name string) (any, error)

	// BeanNames 返回注册顺序的 bean 名称列表，诊断用。
	BeanNames() []string
}

type container struct {
	registry    *registry
	singletons  map[string]any // 单例缓存：name -> 实例，每名称只写一次
	guard       *cycleGuard
	initialized bool
}

// NewContainer 创建一个空容器。
func NewContainer() Container {
	return &container{
		registry:   newRegistry(),
		singletons: make(map[string]any),
		guard:      newCycleGuard(),
	}
}

func (c *container) Scan(candidates ...any) error {
	if c.initialized {
		return ErrContainerInitialized
	}

	for _, candidate := range candidates {
		def, err := c.analyze(candidate, true)
		if err != nil {
			return err
		}
		if def == nil {
			continue // 无组件标记的类型，跳过
		}
		if err := c.registry.register(def); err != nil {
			return err
		}
	}
	return nil
}

func (c *container) Register(target any, opts ...Option) error {
	if c.initialized {
		return ErrContainerInitialized
	}

	// WithValue 这类选项会改变分析方式，先走一遍选项收集
	pending := &BeanDefinition{Singleton: true}
	for _, opt := range opts {
		opt(pending)
	}

	var def *BeanDefinition
	if pending.IsValue {
		d, err := c.analyzeValue(target, pending)
		if err != nil {
			return err
		}
		def = d
	} else {
		d, err := c.analyze(target, false)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("%w: %T", ErrInvalidCandidate, target)
		}
		def = d
		// 显式选项覆盖标记标签的设置
		for _, opt := range opts {
			opt(def)
		}
	}

	return c.registry.register(def)
}

// analyze 将候选转换为定义。requireMarker 为 true 时（Scan 路径），
// 无标记的类型候选返回 (nil, nil)。
func (c *container) analyze(candidate any, requireMarker bool) (*BeanDefinition, error) {
	// reflect.Type 候选
	if typ, ok := candidate.(reflect.Type); ok {
		return c.analyzeType(typ, requireMarker)
	}

	val := reflect.ValueOf(candidate)
	switch val.Kind() {
	case reflect.Func:
		return c.analyzeConstructor(candidate)
	case reflect.Ptr:
		return c.analyzeType(val.Type(), requireMarker)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidCandidate, candidate)
	}
}

// analyzeConstructor 注册构造函数候选：服务类型取首个返回值，
// 第二个返回值（如存在）必须是 error。
func (c *container) analyzeConstructor(fn any) (*BeanDefinition, error) {
	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()

	if fnType.NumOut() == 0 || fnType.NumOut() > 2 {
		return nil, fmt.Errorf("%w: constructor must return (T) or (T, error)", ErrInvalidCandidate)
	}
	if fnType.NumOut() == 2 && !fnType.Out(1).Implements(errType) {
		return nil, fmt.Errorf("%w: second return value must be error", ErrInvalidCandidate)
	}

	outType := fnType.Out(0)
	def := &BeanDefinition{
		Name:        beanName(outType),
		Type:        outType,
		ImplType:    outType,
		Singleton:   true,
		Constructor: fnVal,
	}

	// 返回类型上的组件标记标签同样生效（name= / prototype / primary）
	if tag, ok := hasComponentMarker(outType); ok {
		parseMarkerTag(tag, def)
	}

	def.Schema = buildSchema(fnType, outType)
	return def, nil
}

// analyzeType 注册类型候选（零值构造 + 字段注入）。
func (c *container) analyzeType(typ reflect.Type, requireMarker bool) (*BeanDefinition, error) {
	base := typ
	if base.Kind() == reflect.Ptr {
		base = base.Elem()
	}
	if base.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v is not a struct type", ErrInvalidCandidate, typ)
	}

	tag, marked := hasComponentMarker(typ)
	if !marked && requireMarker {
		return nil, nil
	}

	// 统一以指针形式实例化，保证字段注入可寻址
	ptrType := typ
	if ptrType.Kind() != reflect.Ptr {
		ptrType = reflect.PtrTo(typ)
	}

	def := &BeanDefinition{
		Name:      beanName(ptrType),
		Type:      ptrType,
		ImplType:  ptrType,
		Singleton: true,
	}
	if marked {
		parseMarkerTag(tag, def)
	}

	def.Schema = buildSchema(nil, ptrType)
	return def, nil
}

// analyzeValue 注册预创建实例。带 di 标签字段时自动开启字段注入。
// target 为 reflect.Type 时作为对外服务类型（通常是接口），
// 否则服务类型取值本身的类型。
func (c *container) analyzeValue(target any, pending *BeanDefinition) (*BeanDefinition, error) {
	value := pending.Value
	serviceType, targetIsType := target.(reflect.Type)
	if value == nil {
		if targetIsType {
			return nil, fmt.Errorf("%w: nil value", ErrInvalidCandidate)
		}
		value = target
	}
	valType := reflect.TypeOf(value)
	if valType == nil {
		return nil, fmt.Errorf("%w: nil value", ErrInvalidCandidate)
	}

	def := &BeanDefinition{
		Name:      pending.Name,
		ImplType:  valType,
		Singleton: true,
		Primary:   pending.Primary,
		IsValue:   true,
		Value:     value,
	}
	if targetIsType {
		def.Type = serviceType
	} else {
		def.Type = valType
	}
	if def.Name == "" {
		def.Name = beanName(def.Type)
	}

	def.Schema = buildSchema(nil, valType)
	def.InjectFields = pending.InjectFields || len(def.Schema.Fields) > 0
	return def, nil
}

func (c *container) Initialize() error {
	if c.initialized {
		return nil
	}

	for _, name := range c.registry.names() {
		def, err := c.registry.byName(name)
		if err != nil {
			return err
		}
		if !def.Singleton {
			continue
		}
		if _, cached := c.singletons[name]; cached {
			continue
		}
		if _, err := c.resolveDefinition(def); err != nil {
			return fmt.Errorf("initializing bean %q: %w", name, err)
		}
	}

	c.initialized = true
	return nil
}

func (c *container) GetByType(t reflect.Type) (any, error) {
	def, err := c.registry.byType(t)
	if err != nil {
		return nil, err
	}
	return c.resolveDefinition(def)
}

func (c *container) GetByName(name string) (any, error) {
	def, err := c.registry.byName(name)
	if err != nil {
		return nil, err
	}
	return c.resolveDefinition(def)
}

func (c *container) BeanNames() []string {
	return c.registry.names()
}

var errType = reflect.TypeOf((*error)(nil)).Elem()
