package tests

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocrud/ioc/config"
	"github.com/gocrud/ioc/configure/cron"
	etcdcfg "github.com/gocrud/ioc/configure/etcd"
	rediscfg "github.com/gocrud/ioc/configure/redis"
	"github.com/gocrud/ioc/core"
	"github.com/gocrud/ioc/di"
	"github.com/gocrud/ioc/logging"
	goredis "github.com/redis/go-redis/v9"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// userRepo 数据访问层，通过扫描注册
type userRepo struct {
	di.Component

	Config config.Configuration `di:""`
}

func (r *userRepo) TableName() string {
	return r.Config.GetWithDefault("db.table", "users")
}

// userService 业务层，构造函数注册
type userService struct {
	repo   *userRepo
	logger logging.Logger
}

func newUserService(repo *userRepo, logger logging.Logger) *userService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Describe() string {
	return "service over " + s.repo.TableName()
}

// userController 接入层，字段注入
type userController struct {
	di.Component

	Service *userService `di:""`
}

func buildApp(t *testing.T) core.Application {
	t.Helper()

	builder := core.NewApplicationBuilder().
		UseEnvironment("development").
		ConfigureConfiguration(func(b *config.ConfigurationBuilder) {
			b.AddInMemory(map[string]any{
				"app.name": "integration",
				"db.table": "accounts",
			})
		}).
		ConfigureLogging(func(b *logging.LoggingBuilder) {
			b.SetMinimumLevel(logging.LogLevelError).SetOutput(&bytes.Buffer{})
		}).
		Configure(func(ctx *core.BuildContext) {
			require.NoError(t, ctx.Scan(
				(*userRepo)(nil),
				(*userController)(nil),
			))
			require.NoError(t, ctx.Register(newUserService))
		})

	app, err := builder.Build()
	require.NoError(t, err)
	return app
}

func TestFullWiring(t *testing.T) {
	app := buildApp(t)

	var controller *userController
	app.GetService(&controller)

	require.NotNil(t, controller.Service)
	assert.Equal(t, "service over accounts", controller.Service.Describe())
}

func TestSharedSingletonsAcrossLayers(t *testing.T) {
	app := buildApp(t)

	var controller *userController
	app.GetService(&controller)

	svc, err := di.Get[*userService](app.Services())
	require.NoError(t, err)
	assert.Same(t, controller.Service, svc, "all layers see the same singleton")

	repo, err := di.GetNamed[*userRepo](app.Services(), "userRepo")
	require.NoError(t, err)
	assert.Same(t, svc.repo, repo)
}

func TestConfigurationFlowsIntoBeans(t *testing.T) {
	app := buildApp(t)

	repo, err := di.Get[*userRepo](app.Services())
	require.NoError(t, err)

	assert.Equal(t, "accounts", repo.TableName())
	assert.Equal(t, "integration", app.Configuration().Get("app.name"))
}

func TestCronJobResolvesBeans(t *testing.T) {
	var ticks atomic.Int32

	builder := core.NewApplicationBuilder().
		ConfigureConfiguration(func(b *config.ConfigurationBuilder) {
			b.AddInMemory(map[string]any{"db.table": "accounts"})
		}).
		ConfigureLogging(func(b *logging.LoggingBuilder) {
			b.SetMinimumLevel(logging.LogLevelError).SetOutput(&bytes.Buffer{})
		}).
		Configure(func(ctx *core.BuildContext) {
			require.NoError(t, ctx.Scan((*userRepo)(nil)))
			require.NoError(t, ctx.Register(newUserService))
		}).
		Configure(cron.Configure(func(b *cron.Builder) {
			b.WithSeconds().AddJobWithDI("* * * * * *", "describe", func(svc *userService) {
				if svc.Describe() != "" {
					ticks.Add(1)
				}
			})
		}))

	app, err := builder.Build()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, app.RunAsync(ctx))

	assert.Positive(t, ticks.Load(), "cron job should have fired with injected service")
}

// 两个模块各自使用约定的 "default" 客户端名称，bean 名称带模块前缀，
// 组合使用时不得发生名称冲突
func TestModulesComposeWithDefaultClients(t *testing.T) {
	builder := core.NewApplicationBuilder().
		ConfigureLogging(func(b *logging.LoggingBuilder) {
			b.SetMinimumLevel(logging.LogLevelError).SetOutput(&bytes.Buffer{})
		}).
		Configure(rediscfg.Configure(func(b *rediscfg.Builder) {
			b.AddClient("default", nil)
		})).
		Configure(etcdcfg.Configure(func(b *etcdcfg.Builder) {
			b.AddClient("default", nil)
		}))

	app, err := builder.Build()
	require.NoError(t, err)
	defer func() {
		redisFactory, _ := di.Get[*rediscfg.RedisClientFactory](app.Services())
		_ = redisFactory.Close()
		etcdFactory, _ := di.Get[*etcdcfg.EtcdClientFactory](app.Services())
		_ = etcdFactory.Close()
	}()

	redisClient, err := di.GetNamed[*goredis.Client](app.Services(), "redis.default")
	require.NoError(t, err)
	assert.NotNil(t, redisClient)

	etcdClient, err := di.GetNamed[*clientv3.Client](app.Services(), "etcd.default")
	require.NoError(t, err)
	assert.NotNil(t, etcdClient)

	// 各自的 default 客户端仍是本类型的主 bean
	typedRedis, err := di.Get[*goredis.Client](app.Services())
	require.NoError(t, err)
	assert.Same(t, redisClient, typedRedis)

	typedEtcd, err := di.Get[*clientv3.Client](app.Services())
	require.NoError(t, err)
	assert.Same(t, etcdClient, typedEtcd)
}

func TestBeanNamesAreStable(t *testing.T) {
	app := buildApp(t)

	names := app.Services().BeanNames()

	// 核心 bean 先注册，业务 bean 按配置器内的顺序排在其后
	assert.Equal(t, []string{
		"configuration",
		"logger",
		"container",
		"environment",
		"userRepo",
		"userController",
		"userService",
	}, names)
}
