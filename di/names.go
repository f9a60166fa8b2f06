package di

import (
	"reflect"
	"strings"
	"unicode"
)

// beanName 由类型名派生 bean 名称：解引用指针，取类型名并小驼峰化。
// *UserService -> "userService"，HTTPClient -> "httpClient"。
func beanName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		// 匿名类型退化为完整字符串表示
		return t.String()
	}
	return lowerCamel(name)
}

// lowerCamel 首字母小写。连续的大写前缀整体小写（HTTPClient -> httpClient），
// 与常见的 JSON 字段命名习惯保持一致。
func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	// 统计开头连续的大写字母
	upper := 0
	for _, r := range runes {
		if !unicode.IsUpper(r) {
			break
		}
		upper++
	}
	switch {
	case upper == 0:
		return s
	case upper == 1:
		return string(unicode.ToLower(runes[0])) + string(runes[1:])
	case upper == len(runes):
		return strings.ToLower(s)
	default:
		// HTTPClient: 保留最后一个大写字母作为下一个单词的首字母
		head := strings.ToLower(string(runes[:upper-1]))
		return head + string(runes[upper-1:])
	}
}

// parseMarkerTag 解析组件标记上的 `di` 标签，填充定义的名称、作用域和 primary。
// 标签格式: "name=xxx,prototype,primary"。
func parseMarkerTag(tag reflect.StructTag, def *BeanDefinition) {
	value, ok := tag.Lookup("di")
	if !ok || value == "" {
		return
	}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "name="):
			def.Name = strings.TrimPrefix(part, "name=")
		case part == "prototype":
			def.Singleton = false
		case part == "primary":
			def.Primary = true
		}
	}
}
