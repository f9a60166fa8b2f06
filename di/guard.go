package di

import (
	"fmt"
	"strings"
)

// cycleGuard 跟踪当前调用栈上正在构造的 bean 名称。
// 名称在 enter 时标记、leave 时清除；同一名称二次 enter 即为循环依赖。
// in-progress 集合只在单次顶层解析的动态范围内有效，解析结束后必须为空。
type cycleGuard struct {
	inProgress map[string]struct{}
	chain      []string // 构造链，按进入顺序，用于错误信息
}

func newCycleGuard() *cycleGuard {
	return &cycleGuard{
		inProgress: make(map[string]struct{}),
	}
}

// enter 标记 name 正在构造。重入返回 ErrCircularDependency，
// 错误信息携带完整依赖链。
func (g *cycleGuard) enter(name string) error {
	if _, busy := g.inProgress[name]; busy {
		return fmt.Errorf("%w: %s", ErrCircularDependency, g.chainString(name))
	}
	g.inProgress[name] = struct{}{}
	g.chain = append(g.chain, name)
	return nil
}

// leave 清除标记。构造的每条退出路径（成功或失败）都必须调用，
// 调用方通过 defer 保证。
func (g *cycleGuard) leave(name string) {
	delete(g.inProgress, name)
	for i := len(g.chain) - 1; i >= 0; i-- {
		if g.chain[i] == name {
			g.chain = append(g.chain[:i], g.chain[i+1:]...)
			break
		}
	}
}

// active 返回当前 in-progress 的名称数量，诊断用。
func (g *cycleGuard) active() int {
	return len(g.inProgress)
}

func (g *cycleGuard) chainString(repeated string) string {
	parts := make([]string, 0, len(g.chain)+1)
	parts = append(parts, g.chain...)
	parts = append(parts, repeated)
	return strings.Join(parts, " -> ")
}
