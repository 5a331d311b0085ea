package metrics

import (
	"sync"
	"time"
)

// Recorder traduz eventos do domínio em chamadas ao Provider.
// Um Recorder com Provider nulo descarta tudo; erros de envio são ignorados
// para que métricas nunca interrompam uma requisição.
type Recorder struct {
	provider Provider
}

// NewRecorder cria um Recorder. provider pode ser nil.
func NewRecorder(provider Provider) *Recorder {
	return &Recorder{provider: provider}
}

// TokenFetched registra uma tentativa de obtenção de token.
func (r *Recorder) TokenFetched(outcome string) {
	r.count(TokenFetch, 1, []string{"outcome:" + outcome})
}

// RequestDone registra uma chamada à API e sua duração.
func (r *Recorder) RequestDone(route, outcome string, d time.Duration) {
	tags := []string{"route:" + route, "outcome:" + outcome}
	r.count(Request, 1, tags)
	r.histogram(RequestDuration, float64(d.Milliseconds()), tags)
}

// StepDone registra a duração de um passo do pipeline.
func (r *Recorder) StepDone(step string, d time.Duration) {
	r.histogram(StepDuration, float64(d.Milliseconds()), []string{"step:" + step})
}

// PipelineStopped registra um pipeline interrompido por erro.
func (r *Recorder) PipelineStopped(step, kind string) {
	r.count(PipelineStopped, 1, []string{"step:" + step, "kind:" + kind})
}

// CacheLookup registra hit ou miss do cache de respostas.
func (r *Recorder) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.count(CacheLookup, 1, []string{"result:" + result})
}

func (r *Recorder) count(name string, v float64, tags []string) {
	if r == nil || r.provider == nil {
		return
	}
	_ = r.provider.Count(name, v, tags)
}

func (r *Recorder) histogram(name string, v float64, tags []string) {
	if r == nil || r.provider == nil {
		return
	}
	_ = r.provider.Histogram(name, v, tags)
}

// Sample é um ponto registrado pelo MemoryProvider.
type Sample struct {
	Type  MetricType
	Name  string
	Value float64
	Tags  []string
}

// MemoryProvider guarda as métricas em memória. Útil em testes e no modo
// de depuração da CLI.
type MemoryProvider struct {
	mu      sync.Mutex
	samples []Sample
}

func (m *MemoryProvider) Count(name string, value float64, tags []string) error {
	return m.add(TypeCount, name, value, tags)
}

func (m *MemoryProvider) Gauge(name string, value float64, tags []string) error {
	return m.add(TypeGauge, name, value, tags)
}

func (m *MemoryProvider) Histogram(name string, value float64, tags []string) error {
	return m.add(TypeHistogram, name, value, tags)
}

func (m *MemoryProvider) add(t MetricType, name string, value float64, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = append(m.samples, Sample{Type: t, Name: name, Value: value, Tags: append([]string(nil), tags...)})
	return nil
}

// Samples devolve uma cópia das métricas registradas.
func (m *MemoryProvider) Samples() []Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Sample(nil), m.samples...)
}

// Total soma os valores de count registrados com o nome e a tag informados.
// tag vazia soma todos.
func (m *MemoryProvider) Total(name, tag string) float64 {
	var total float64
	for _, s := range m.Samples() {
		if s.Type != TypeCount || s.Name != name {
			continue
		}
		if tag == "" || hasTag(s.Tags, tag) {
			total += s.Value
		}
	}
	return total
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
