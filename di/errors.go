package di

import "errors"

// 容器的错误种类。所有错误都通过 fmt.Errorf("%w: ...") 包装后同步返回给
// Scan / Initialize / GetByType / GetByName 的调用方，使用 errors.Is 判断。
var (
	// ErrDuplicateBean 注册时派生出的 bean 名称已存在。
	ErrDuplicateBean = errors.New("di: duplicate bean")

	// ErrBeanNotFound 按名称或类型查找时没有任何匹配的定义。
	ErrBeanNotFound = errors.New("di: bean not found")

	// ErrAmbiguousBean 按类型查找时匹配到多个定义，且没有唯一的 primary。
	ErrAmbiguousBean = errors.New("di: ambiguous bean")

	// ErrCircularDependency 构造链路中出现循环依赖。
	// 错误信息包含完整的依赖链，例如 "serviceA -> serviceB -> serviceA"。
	ErrCircularDependency = errors.New("di: circular dependency")

	// ErrUnresolvableDependency 构造函数参数或注入字段的类型无法解析为
	// 恰好一个 bean。对所在的整个构造过程是致命的。
	ErrUnresolvableDependency = errors.New("di: unresolvable dependency")

	// ErrContainerInitialized Initialize 之后继续注册。
	ErrContainerInitialized = errors.New("di: container already initialized")

	// ErrInvalidCandidate Scan 收到无法识别的候选（既不是构造函数，
	// 也不是类型或结构体指针）。
	ErrInvalidCandidate = errors.New("di: invalid scan candidate")
)
