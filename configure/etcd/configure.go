package etcd

import (
	"github.com/gocrud/ioc/core"
	"github.com/gocrud/ioc/di"
	"github.com/gocrud/ioc/logging"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// Configure 返回 Etcd 配置器
// 每个客户端注册为命名 bean "etcd.<名称>"（带模块前缀，避免与其他
// 模块的同名客户端冲突），"default" 客户端（或唯一客户端）同时作为
// 主 bean，按类型注入 *clientv3.Client 时使用
//
// 使用示例: builder.Configure(etcd.Configure(func(b *etcd.Builder) { ... }))
func Configure(options func(*Builder)) core.Configurator {
	return func(ctx *core.BuildContext) {
		builder := NewBuilder()
		if options != nil {
			options(builder)
		}

		factory, err := builder.Build(ctx.GetLogger())
		if err != nil {
			ctx.GetLogger().Fatal("Failed to build etcd clients",
				logging.Field{Key: "error", Value: err.Error()})
		}
		if factory == nil {
			return
		}

		di.Register[*EtcdClientFactory](ctx.Container(), di.WithValue(factory))

		names := factory.Names()
		for _, name := range names {
			client, _ := factory.Get(name)

			opts := []di.Option{di.WithValue(client), di.WithName("etcd." + name)}
			if name == "default" || len(names) == 1 {
				opts = append(opts, di.WithPrimary())
			}
			if err := ctx.Register(di.TypeOf[*clientv3.Client](), opts...); err != nil {
				ctx.GetLogger().Fatal("Failed to register etcd client bean",
					logging.Field{Key: "name", Value: name},
					logging.Field{Key: "error", Value: err.Error()})
			}
		}

		ctx.SetCleanup("etcd", func() {
			ctx.GetLogger().Info("Closing etcd clients")
			if err := factory.Close(); err != nil {
				ctx.GetLogger().Error("Failed to close etcd clients",
					logging.Field{Key: "error", Value: err.Error()})
			}
		})
	}
}
