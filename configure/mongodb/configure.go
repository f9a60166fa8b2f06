package mongodb

import (
	"context"

	"github.com/gocrud/ioc/core"
	"github.com/gocrud/ioc/di"
	"github.com/gocrud/ioc/logging"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Configure 返回 MongoDB 配置器
// 每个客户端注册为命名 bean "mongodb.<名称>"（带模块前缀，避免与其他
// 模块的同名客户端冲突），"default" 客户端（或唯一客户端）同时作为
// 主 bean。配置了默认数据库的客户端额外注册 *mongo.Database，
// bean 名称为 "mongodb.<名称>.database"
//
// 使用示例: builder.Configure(mongodb.Configure(func(b *mongodb.Builder) { ... }))
func Configure(options func(*Builder)) core.Configurator {
	return func(ctx *core.BuildContext) {
		builder := NewBuilder()
		if options != nil {
			options(builder)
		}

		factory, err := builder.Build(ctx.GetLogger())
		if err != nil {
			ctx.GetLogger().Fatal("Failed to build mongo clients",
				logging.Field{Key: "error", Value: err.Error()})
		}
		if factory == nil {
			return
		}

		di.Register[*MongoClientFactory](ctx.Container(), di.WithValue(factory))

		names := factory.Names()
		for _, name := range names {
			client, _ := factory.Get(name)
			primary := name == "default" || len(names) == 1

			opts := []di.Option{di.WithValue(client), di.WithName("mongodb." + name)}
			if primary {
				opts = append(opts, di.WithPrimary())
			}
			if err := ctx.Register(di.TypeOf[*mongo.Client](), opts...); err != nil {
				ctx.GetLogger().Fatal("Failed to register mongo client bean",
					logging.Field{Key: "name", Value: name},
					logging.Field{Key: "error", Value: err.Error()})
			}

			if db, dbErr := factory.Database(name); dbErr == nil {
				dbOpts := []di.Option{di.WithValue(db), di.WithName("mongodb." + name + ".database")}
				if primary {
					dbOpts = append(dbOpts, di.WithPrimary())
				}
				if err := ctx.Register(di.TypeOf[*mongo.Database](), dbOpts...); err != nil {
					ctx.GetLogger().Fatal("Failed to register mongo database bean",
						logging.Field{Key: "name", Value: name},
						logging.Field{Key: "error", Value: err.Error()})
				}
			}
		}

		ctx.SetCleanup("mongodb", func() {
			ctx.GetLogger().Info("Disconnecting mongo clients")
			if err := factory.Close(context.Background()); err != nil {
				ctx.GetLogger().Error("Failed to disconnect mongo clients",
					logging.Field{Key: "error", Value: err.Error()})
			}
		})
	}
}
