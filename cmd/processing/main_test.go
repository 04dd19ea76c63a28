package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/internal/config"
)

// ValidateApp checks the dependency graph without running constructors,
// so no NATS or ClickHouse is needed.
func TestAppGraph(t *testing.T) {
	err := fx.ValidateApp(appOptions())
	assert.NoError(t, err)
}

func TestRegisterTracing(t *testing.T) {
	t.Run("disabled registers no hooks", func(t *testing.T) {
		cfg := &config.Config{TracingEnabled: false}
		lc := recordingLifecycle{}

		registerTracing(cfg, zap.NewNop(), &lc)

		assert.Empty(t, lc.hooks)
	})

	t.Run("enabled registers start and stop", func(t *testing.T) {
		cfg := &config.Config{TracingEnabled: true, OTLPEndpoint: "localhost:4317"}
		lc := recordingLifecycle{}

		registerTracing(cfg, zap.NewNop(), &lc)

		require.Len(t, lc.hooks, 1)
		assert.NotNil(t, lc.hooks[0].OnStart)
		assert.NotNil(t, lc.hooks[0].OnStop)
	})
}

type recordingLifecycle struct {
	hooks []fx.Hook
}

func (l *recordingLifecycle) Append(h fx.Hook) {
	l.hooks = append(l.hooks, h)
}
