package etcd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocrud/ioc/configure/etcd"
	"github.com/gocrud/ioc/core"
	"github.com/gocrud/ioc/di"
	"github.com/gocrud/ioc/logging"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// registryService 依赖 Etcd 客户端的服务
type registryService struct {
	Master *clientv3.Client `di:"etcd.master"`
	Slave  *clientv3.Client `di:"etcd.slave,optional"`
}

func TestEtcdConfiguration(t *testing.T) {
	builder := core.NewApplicationBuilder().
		ConfigureLogging(func(b *logging.LoggingBuilder) {
			b.SetMinimumLevel(logging.LogLevelError)
		}).
		Configure(etcd.Configure(func(b *etcd.Builder) {
			b.AddClient("master", func(o *etcd.EtcdClientOptions) {
				o.Endpoints = []string{"localhost:2379"}
			})
		})).
		Configure(func(ctx *core.BuildContext) {
			require.NoError(t, ctx.Register((*registryService)(nil)))
		})

	app, err := builder.Build()
	require.NoError(t, err)
	defer func() {
		factory, _ := di.Get[*etcd.EtcdClientFactory](app.Services())
		_ = factory.Close()
	}()

	var svc *registryService
	app.GetService(&svc)

	assert.NotNil(t, svc.Master, "master client should be injected")
	assert.Nil(t, svc.Slave, "slave client is optional and not configured")

	master, err := di.GetNamed[*clientv3.Client](app.Services(), "etcd.master")
	require.NoError(t, err)
	assert.Same(t, svc.Master, master)
}

func TestEtcdBuilderErrors(t *testing.T) {
	logger := logging.NewLoggingBuilder().SetMinimumLevel(logging.LogLevelFatal).Build()

	builder := etcd.NewBuilder()
	builder.AddClient("invalid", func(o *etcd.EtcdClientOptions) {
		o.Endpoints = nil // 必填项缺失
	})
	builder.AddClient("duplicate", nil)
	builder.AddClient("duplicate", nil)

	_, err := builder.Build(logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
	assert.Contains(t, err.Error(), "duplicate")
}

func TestEtcdBuilderEmpty(t *testing.T) {
	logger := logging.NewLoggingBuilder().SetMinimumLevel(logging.LogLevelFatal).Build()

	factory, err := etcd.NewBuilder().Build(logger)
	require.NoError(t, err)
	assert.Nil(t, factory)
}
