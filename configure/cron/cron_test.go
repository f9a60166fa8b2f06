package cron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocrud/ioc/di"
	"github.com/gocrud/ioc/logging"
)

type counterService struct {
	calls int
}

func newCounterService() *counterService {
	return &counterService{}
}

func testLogger() logging.Logger {
	return logging.NewLoggingBuilder().SetMinimumLevel(logging.LogLevelFatal).Build()
}

func TestBuildRejectsInvalidSpec(t *testing.T) {
	container := di.NewContainer()

	builder := NewBuilder().AddJob("not-a-spec", "broken", func() {})

	_, err := builder.build(container, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestBuildWithSimpleJobs(t *testing.T) {
	container := di.NewContainer()

	builder := NewBuilder().
		WithSeconds().
		AddJob("*/5 * * * * *", "tick", func() {})

	svc, err := builder.build(container, testLogger())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestWrapHandlerResolvesArguments(t *testing.T) {
	container := di.NewContainer()
	require.NoError(t, container.Register(newCounterService))
	require.NoError(t, container.Initialize())

	var got *counterService
	wrapped, err := wrapHandler(container, testLogger(), func(svc *counterService) {
		svc.calls++
		got = svc
	})
	require.NoError(t, err)

	wrapped()
	wrapped()

	require.NotNil(t, got)
	assert.Equal(t, 2, got.calls, "singleton resolved on each trigger")
}

func TestWrapHandlerRejectsNonFunction(t *testing.T) {
	container := di.NewContainer()

	_, err := wrapHandler(container, testLogger(), "not a function")
	assert.Error(t, err)
}

func TestWrapHandlerMissingDependency(t *testing.T) {
	container := di.NewContainer()
	require.NoError(t, container.Initialize())

	invoked := false
	wrapped, err := wrapHandler(container, testLogger(), func(svc *counterService) {
		invoked = true
	})
	require.NoError(t, err)

	// 依赖缺失时任务被跳过而不是 panic
	wrapped()
	assert.False(t, invoked)
}

func TestWrapHandlerRecoversPanic(t *testing.T) {
	container := di.NewContainer()
	require.NoError(t, container.Initialize())

	wrapped, err := wrapHandler(container, testLogger(), func() {
		panic("job exploded")
	})
	require.NoError(t, err)

	assert.NotPanics(t, wrapped)
}
