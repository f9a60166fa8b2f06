package di

import (
	"reflect"
	"strings"
)

// buildSchema 预计算一个定义的注入点：构造函数的参数类型（fnType 非 nil 时）
// 和实现类型上带 `di` 标签的字段。解析阶段直接按 schema 走，不再扫描标签。
func buildSchema(fnType reflect.Type, implType reflect.Type) *InjectionSchema {
	schema := &InjectionSchema{}

	if fnType != nil {
		for i := 0; i < fnType.NumIn(); i++ {
			schema.Args = append(schema.Args, fnType.In(i))
		}
	}

	structType := implType
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return schema
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Anonymous && field.Type == componentMarker {
			continue // 组件标记本身不是注入点
		}
		tagValue, hasTag := field.Tag.Lookup("di")
		if !hasTag {
			continue
		}

		injection := FieldInjection{
			Index: i,
			Name:  field.Name,
			Type:  field.Type,
		}

		// 标签格式: "beanName,optional"，两部分都可省略
		for idx, part := range strings.Split(tagValue, ",") {
			part = strings.TrimSpace(part)
			if part == "optional" || part == "?" {
				injection.Optional = true
				continue
			}
			if idx == 0 && part != "" {
				injection.BeanName = part
			}
		}

		schema.Fields = append(schema.Fields, injection)
	}

	return schema
}
