package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigWithNoFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigClampsDeadlineMargin(t *testing.T) {
	t.Setenv("PROFIT_DEADLINE_SAFETY_MARGIN_SECONDS", "10")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, 1.5, cfg.DeadlineSafetyMarginSeconds)

	t.Setenv("PROFIT_DEADLINE_SAFETY_MARGIN_SECONDS", "0.1")
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, 0.5, cfg.DeadlineSafetyMarginSeconds)
}
