package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oliverbestmann/stash/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		logger, err := New(config.Log{Level: "warn"})
		require.NoError(t, err)

		require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		require.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("development", func(t *testing.T) {
		logger, err := New(config.Log{Level: "debug", Development: true})
		require.NoError(t, err)

		require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(config.Log{Level: "loud"})
		require.ErrorContains(t, err, "parse log level")
	})
}
