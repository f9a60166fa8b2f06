package di_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/gocrud/ioc/di"
)

// ---------------- 测试用的组件 ----------------

type OrderRepo struct {
	di.Component
}

type OrderService struct {
	Repo *OrderRepo
}

func NewOrderService(repo *OrderRepo) *OrderService {
	return &OrderService{Repo: repo}
}

type OrderController struct {
	di.Component
	Service *OrderService `di:""`
}

// PrototypeBean 原型作用域组件
type PrototypeBean struct {
	di.Component `di:"prototype"`
}

func TestLinearChainWiring(t *testing.T) {
	c := di.NewContainer()

	// Repo（零值构造）、Service（构造函数注入）、Controller（字段注入）
	if err := c.Scan((*OrderRepo)(nil), NewOrderService, (*OrderController)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	ctrl, err := di.Get[*OrderController](c)
	if err != nil {
		t.Fatalf("Get controller failed: %v", err)
	}
	svc, err := di.Get[*OrderService](c)
	if err != nil {
		t.Fatalf("Get service failed: %v", err)
	}
	repo, err := di.Get[*OrderRepo](c)
	if err != nil {
		t.Fatalf("Get repo failed: %v", err)
	}

	if ctrl.Service == nil {
		t.Fatal("field injection failed: ctrl.Service is nil")
	}
	if ctrl.Service != svc {
		t.Error("ctrl.Service is not the container's Service instance")
	}
	if svc.Repo != repo {
		t.Error("svc.Repo is not the container's Repo instance")
	}
}

func TestSingletonIdentity(t *testing.T) {
	c := di.NewContainer()
	if err := c.Scan((*OrderRepo)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	a, err := di.Get[*OrderRepo](c)
	if err != nil {
		t.Fatalf("first Get failed: %v", err)
	}
	b, _ := di.Get[*OrderRepo](c)
	if a != b {
		t.Error("expected identical instance for singleton bean")
	}
}

func TestPrototypeDistinct(t *testing.T) {
	c := di.NewContainer()
	if err := c.Scan((*PrototypeBean)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	a, err := di.Get[*PrototypeBean](c)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	b, _ := di.Get[*PrototypeBean](c)
	if a == b {
		t.Error("expected distinct instances for prototype bean")
	}
}

func TestDuplicateRegistration(t *testing.T) {
	c := di.NewContainer()

	err := c.Scan((*OrderRepo)(nil), (*OrderRepo)(nil))
	if !errors.Is(err, di.ErrDuplicateBean) {
		t.Errorf("expected ErrDuplicateBean, got %v", err)
	}
}

func TestMissingDependency(t *testing.T) {
	c := di.NewContainer()

	// Service 需要 Repo，但 Repo 从未注册
	if err := c.Scan(NewOrderService); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	err := c.Initialize()
	if !errors.Is(err, di.ErrUnresolvableDependency) {
		t.Fatalf("expected ErrUnresolvableDependency, got %v", err)
	}
	if err == nil || !contains(err.Error(), "OrderRepo") {
		t.Errorf("error should identify the missing type, got %v", err)
	}
}

// ---------------- 循环依赖 ----------------

type CycleA struct {
	B *CycleB
}

type CycleB struct {
	A *CycleA
}

func NewCycleA(b *CycleB) *CycleA { return &CycleA{B: b} }
func NewCycleB(a *CycleA) *CycleB { return &CycleB{A: a} }

func TestCircularDependency(t *testing.T) {
	c := di.NewContainer()

	if err := c.Scan(NewCycleA, NewCycleB, (*OrderRepo)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	err := c.Initialize()
	if !errors.Is(err, di.ErrCircularDependency) {
		t.Fatalf("expected ErrCircularDependency, got %v", err)
	}
	if !contains(err.Error(), "cycleA -> cycleB -> cycleA") {
		t.Errorf("error should carry the dependency chain, got %v", err)
	}

	// 守卫必须干净释放：无关的 bean 仍可解析，
	// 循环 bean 再次请求仍然报循环而不是误报其他错误
	if _, err := di.Get[*OrderRepo](c); err != nil {
		t.Errorf("container unusable after cycle error: %v", err)
	}
	if _, err := di.Get[*CycleA](c); !errors.Is(err, di.ErrCircularDependency) {
		t.Errorf("expected ErrCircularDependency again, got %v", err)
	}
}

// ---------------- 歧义与 primary ----------------

type Notifier interface {
	Notify() string
}

type MailNotifier struct {
	di.Component
}

func (n *MailNotifier) Notify() string { return "mail" }

type SMSNotifier struct {
	di.Component
}

func (n *SMSNotifier) Notify() string { return "sms" }

type PrimarySMSNotifier struct {
	di.Component `di:"primary"`
}

func (n *PrimarySMSNotifier) Notify() string { return "sms" }

func TestAmbiguousBean(t *testing.T) {
	c := di.NewContainer()
	if err := c.Scan((*MailNotifier)(nil), (*SMSNotifier)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	_, err := di.Get[Notifier](c)
	if !errors.Is(err, di.ErrAmbiguousBean) {
		t.Errorf("expected ErrAmbiguousBean, got %v", err)
	}
}

func TestPrimaryResolvesAmbiguity(t *testing.T) {
	c := di.NewContainer()
	if err := c.Scan((*MailNotifier)(nil), (*PrimarySMSNotifier)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	n, err := di.Get[Notifier](c)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if n.Notify() != "sms" {
		t.Errorf("expected the primary implementation, got %q", n.Notify())
	}
}

// ---------------- 菱形依赖 ----------------

var diamondCCount int

type DiamondC struct{ n int }

func NewDiamondC() *DiamondC {
	diamondCCount++
	return &DiamondC{n: diamondCCount}
}

type DiamondA struct{ C *DiamondC }
type DiamondB struct{ C *DiamondC }
type DiamondD struct {
	A *DiamondA
	B *DiamondB
}

func NewDiamondA(c *DiamondC) *DiamondA              { return &DiamondA{C: c} }
func NewDiamondB(c *DiamondC) *DiamondB              { return &DiamondB{C: c} }
func NewDiamondD(a *DiamondA, b *DiamondB) *DiamondD { return &DiamondD{A: a, B: b} }

func TestDiamondSharesSingleton(t *testing.T) {
	diamondCCount = 0
	c := di.NewContainer()

	if err := c.Scan(NewDiamondD, NewDiamondA, NewDiamondB, NewDiamondC); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	d, err := di.Get[*DiamondD](c)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if d.A.C != d.B.C {
		t.Error("diamond dependency did not share the singleton instance")
	}
	if diamondCCount != 1 {
		t.Errorf("expected DiamondC constructed exactly once, got %d", diamondCCount)
	}
}

// ---------------- Scan / Register 行为 ----------------

type notAComponent struct{}

func TestScanSkipsUnmarkedTypes(t *testing.T) {
	c := di.NewContainer()
	if err := c.Scan((*notAComponent)(nil), (*OrderRepo)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	names := c.BeanNames()
	if len(names) != 1 || names[0] != "orderRepo" {
		t.Errorf("expected only the marked type registered, got %v", names)
	}
}

func TestBeanNamesInsertionOrder(t *testing.T) {
	c := di.NewContainer()
	if err := c.Scan((*OrderRepo)(nil), NewOrderService, (*OrderController)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []string{"orderRepo", "orderService", "orderController"}
	if got := c.BeanNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("BeanNames() = %v, want %v", got, want)
	}
}

func TestGetByName(t *testing.T) {
	c := di.NewContainer()
	if err := c.Scan((*OrderRepo)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	byName, err := di.GetNamed[*OrderRepo](c, "orderRepo")
	if err != nil {
		t.Fatalf("GetNamed failed: %v", err)
	}
	byType, _ := di.Get[*OrderRepo](c)
	if byName != byType {
		t.Error("name and type lookup returned different singleton instances")
	}

	if _, err := c.GetByName("nope"); !errors.Is(err, di.ErrBeanNotFound) {
		t.Errorf("expected ErrBeanNotFound, got %v", err)
	}
}

func TestRegisterAfterInitialize(t *testing.T) {
	c := di.NewContainer()
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if err := c.Scan((*OrderRepo)(nil)); !errors.Is(err, di.ErrContainerInitialized) {
		t.Errorf("expected ErrContainerInitialized, got %v", err)
	}
}

// ---------------- 值注册与选项 ----------------

type Settings struct {
	DSN string
}

type StoreWithSettings struct {
	di.Component
	Settings *Settings `di:""`
}

func TestValueBean(t *testing.T) {
	c := di.NewContainer()
	settings := &Settings{DSN: "sqlite://test"}

	di.Register[*Settings](c, di.WithValue(settings))
	if err := c.Scan((*StoreWithSettings)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	store, err := di.Get[*StoreWithSettings](c)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if store.Settings != settings {
		t.Error("value bean was not injected by identity")
	}
}

// 按名称注入指向类型不匹配的 bean 时必须返回错误而不是 panic
type MismatchedHolder struct {
	di.Component
	Repo *OrderRepo `di:"settings"`
}

func TestNamedInjectionTypeMismatch(t *testing.T) {
	c := di.NewContainer()
	di.Register[*Settings](c, di.WithValue(&Settings{DSN: "x"}), di.WithName("settings"))
	if err := c.Scan((*MismatchedHolder)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	err := c.Initialize()
	if !errors.Is(err, di.ErrUnresolvableDependency) {
		t.Fatalf("expected ErrUnresolvableDependency, got %v", err)
	}
	if !contains(err.Error(), "settings") || !contains(err.Error(), "OrderRepo") {
		t.Errorf("error should name the bean and the field type, got %v", err)
	}
}

type MismatchedOptionalHolder struct {
	di.Component
	Repo *OrderRepo `di:"settings,optional"`
}

func TestNamedInjectionTypeMismatchOptional(t *testing.T) {
	c := di.NewContainer()
	di.Register[*Settings](c, di.WithValue(&Settings{DSN: "x"}), di.WithName("settings"))
	if err := c.Scan((*MismatchedOptionalHolder)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	h, err := di.Get[*MismatchedOptionalHolder](c)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if h.Repo != nil {
		t.Error("optional mismatched field should stay nil")
	}
}

type OptionalHolder struct {
	di.Component
	Missing *Settings `di:",optional"`
}

func TestOptionalFieldSkipped(t *testing.T) {
	c := di.NewContainer()
	if err := c.Scan((*OptionalHolder)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	h, err := di.Get[*OptionalHolder](c)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if h.Missing != nil {
		t.Error("optional missing dependency should stay nil")
	}
}

type NamedTarget struct {
	di.Component `di:"name=customName,primary"`
}

func TestMarkerTagOptions(t *testing.T) {
	c := di.NewContainer()
	if err := c.Scan((*NamedTarget)(nil)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if _, err := c.GetByName("customName"); err != nil {
		t.Errorf("marker tag name was not honored: %v", err)
	}
}

// 构造函数返回 error 时，失败必须向上传播且不污染单例缓存
type Flaky struct{}

func TestConstructorError(t *testing.T) {
	calls := 0
	c := di.NewContainer()
	if err := c.Scan(func() (*Flaky, error) {
		calls++
		return nil, errors.New("boom")
	}); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if _, err := di.Get[*Flaky](c); err == nil {
		t.Fatal("expected constructor error")
	}
	// 失败的构造不缓存，再次请求会重新尝试
	if _, err := di.Get[*Flaky](c); err == nil {
		t.Fatal("expected constructor error on retry")
	}
	if calls != 2 {
		t.Errorf("expected 2 construction attempts, got %d", calls)
	}
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
