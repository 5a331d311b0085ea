package logger

import (
	"bytes"
	"testing"

	"github.com/raywall/legifrance-toolkit/pkg/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestConfigure(t *testing.T) {
	original := Output
	t.Cleanup(func() {
		Output = original
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	t.Run("Default Level Info", func(t *testing.T) {
		cfg := config.LoggingConf{Enabled: true}
		_ = Configure(cfg, "")

		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("Custom Level Debug", func(t *testing.T) {
		cfg := config.LoggingConf{Enabled: true, Level: "debug"}
		_ = Configure(cfg, "")

		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})

	t.Run("Component field", func(t *testing.T) {
		var buf bytes.Buffer
		Output = &buf

		logger := Configure(config.LoggingConf{Enabled: true, Level: "info", Format: "json"}, "client")
		logger.Info().Msg("ready")

		assert.Contains(t, buf.String(), `"component":"client"`)
		assert.Contains(t, buf.String(), `"message":"ready"`)
	})

	t.Run("Disabled Logger", func(t *testing.T) {
		var buf bytes.Buffer
		Output = &buf

		logger := Configure(config.LoggingConf{Enabled: false}, "client")
		logger.Info().Msg("teste")

		assert.Empty(t, buf.String())
	})
}
