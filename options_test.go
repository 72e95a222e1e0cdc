package asyncrt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveRuntimeOptions_Defaults(t *testing.T) {
	cfg := resolveRuntimeOptions(nil)
	require.Nil(t, cfg.logger)
	require.False(t, cfg.diagnostics)
	require.Equal(t, 64, cfg.scavengeBatch)
}

func TestResolveRuntimeOptions_NilOptionsAreSkipped(t *testing.T) {
	cfg := resolveRuntimeOptions([]RuntimeOption{nil, WithDiagnosticRegistry(true), nil})
	require.True(t, cfg.diagnostics)
}

func TestWithLogger_NilLoggerLeavesDefault(t *testing.T) {
	cfg := resolveRuntimeOptions([]RuntimeOption{WithLogger(nil)})
	require.Nil(t, cfg.logger)
}

func TestWithLogger_SetsLogger(t *testing.T) {
	logger := NewStderrLogger()
	cfg := resolveRuntimeOptions([]RuntimeOption{WithLogger(logger)})
	require.Same(t, logger, cfg.logger)
}

func TestWithDiagnosticRegistry_Toggles(t *testing.T) {
	cfg := resolveRuntimeOptions([]RuntimeOption{WithDiagnosticRegistry(true)})
	require.True(t, cfg.diagnostics)

	cfg = resolveRuntimeOptions([]RuntimeOption{WithDiagnosticRegistry(true), WithDiagnosticRegistry(false)})
	require.False(t, cfg.diagnostics)
}

func TestWithScavengeBatch_IgnoresNonPositive(t *testing.T) {
	cfg := resolveRuntimeOptions([]RuntimeOption{WithScavengeBatch(0), WithScavengeBatch(-5)})
	require.Equal(t, 64, cfg.scavengeBatch)
}

func TestWithScavengeBatch_OverridesDefault(t *testing.T) {
	cfg := resolveRuntimeOptions([]RuntimeOption{WithScavengeBatch(8)})
	require.Equal(t, 8, cfg.scavengeBatch)
}
