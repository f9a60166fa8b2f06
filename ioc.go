package ioc

import "github.com/gocrud/ioc/core"

// NewApplicationBuilder 创建应用程序构建器
// 这是创建应用程序的入口点
func NewApplicationBuilder() *core.ApplicationBuilder {
	return core.NewApplicationBuilder()
}

// Run 按给定配置器构建并运行应用程序，阻塞直到收到退出信号
//
// 使用示例：
//
//	ioc.Run(
//	    configure.Redis(func(b *redis.Builder) { ... }),
//	    func(ctx *core.BuildContext) { ctx.Scan(...) },
//	)
func Run(configurators ...core.Configurator) error {
	app, err := core.NewApplicationBuilder().
		Configure(configurators...).
		Build()
	if err != nil {
		return err
	}
	return app.Run()
}
