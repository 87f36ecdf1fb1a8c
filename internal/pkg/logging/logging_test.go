package logging_test

import (
	"testing"

	"transportconnect/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("should default to info level json", func(t *testing.T) {
		logger, err := logging.New("", "")

		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("should honour an explicit level", func(t *testing.T) {
		logger, err := logging.New("debug", logging.FormatConsole)

		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("should reject unknown levels and formats", func(t *testing.T) {
		_, err := logging.New("loud", "")
		require.ErrorContains(t, err, "invalid log level")

		_, err = logging.New("info", "xml")
		require.ErrorContains(t, err, "invalid log format")
	})
}
