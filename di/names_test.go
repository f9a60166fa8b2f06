package di

import (
	"reflect"
	"testing"
)

type UserService struct{}
type HTTPClient struct{}
type DB struct{}

func TestBeanNameDerivation(t *testing.T) {
	cases := []struct {
		typ  reflect.Type
		want string
	}{
		{reflect.TypeOf(&UserService{}), "userService"},
		{reflect.TypeOf(UserService{}), "userService"},
		{reflect.TypeOf(&HTTPClient{}), "httpClient"},
		{reflect.TypeOf(&DB{}), "db"},
	}

	for _, tc := range cases {
		if got := beanName(tc.typ); got != tc.want {
			t.Errorf("beanName(%v) = %q, want %q", tc.typ, got, tc.want)
		}
	}
}

func TestParseMarkerTag(t *testing.T) {
	def := &BeanDefinition{Name: "orig", Singleton: true}
	parseMarkerTag(`di:"name=custom,prototype,primary"`, def)

	if def.Name != "custom" {
		t.Errorf("name = %q, want custom", def.Name)
	}
	if def.Singleton {
		t.Error("prototype tag should clear singleton flag")
	}
	if !def.Primary {
		t.Error("primary tag should set primary flag")
	}
}

func TestParseMarkerTagEmpty(t *testing.T) {
	def := &BeanDefinition{Name: "orig", Singleton: true}
	parseMarkerTag(``, def)

	if def.Name != "orig" || !def.Singleton || def.Primary {
		t.Error("empty tag must not change the definition")
	}
}
