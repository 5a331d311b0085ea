package metrics

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por Prometheus ou Logging sem alterar a lógica de negócio.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// MetricType define os tipos suportados.
type MetricType string

const (
	TypeCount     MetricType = "count"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
)

// Nomes das métricas emitidas pelo cliente e pelos pipelines.
const (
	TokenFetch      = "legifrance.token.fetch"
	Request         = "legifrance.request"
	RequestDuration = "legifrance.request.duration_ms"
	StepDuration    = "legifrance.pipeline.step.duration_ms"
	PipelineStopped = "legifrance.pipeline.stopped"
	CacheLookup     = "legifrance.cache"
)
