package observability

import (
	"testing"

	"github.com/raywall/legifrance-toolkit/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMetrics(t *testing.T) {
	t.Run("Disabled returns Noop", func(t *testing.T) {
		cfg := config.MetricsConf{
			Datadog: config.DatadogConf{Enabled: false},
		}

		provider, err := SetupMetrics(cfg)
		require.NoError(t, err)

		assert.IsType(t, &NoopProvider{}, provider)
		assert.NoError(t, provider.Count("legifrance.request", 1, nil))
	})

	t.Run("Enabled returns Datadog", func(t *testing.T) {
		cfg := config.MetricsConf{
			Datadog: config.DatadogConf{
				Enabled:   true,
				Addr:      "localhost:8125",
				Namespace: "legifrance.",
			},
		}

		provider, err := SetupMetrics(cfg)
		// statsd.New usa UDP, a criação não depende do agente estar de pé
		require.NoError(t, err)

		dd, ok := provider.(*DatadogProvider)
		require.True(t, ok, "Esperado DatadogProvider, recebido %T", provider)
		assert.NoError(t, dd.Histogram("legifrance.request.duration_ms", 12, []string{"route:search"}))
		assert.NoError(t, dd.Close())
	})
}
