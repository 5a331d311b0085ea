package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/raywall/legifrance-toolkit/pkg/metrics"
	"github.com/rs/zerolog"
)

// Step é uma transformação de envelope. Etapas conferem o estágio de
// entrada e devolvem *StageMismatchError quando não o aceitam.
type Step interface {
	Name() string
	Process(ctx context.Context, in Envelope) (Envelope, error)
}

// StepFunc adapta uma função a Step.
type StepFunc struct {
	StepName string
	Fn       func(ctx context.Context, in Envelope) (Envelope, error)
}

func (s StepFunc) Name() string { return s.StepName }

func (s StepFunc) Process(ctx context.Context, in Envelope) (Envelope, error) {
	return s.Fn(ctx, in)
}

// Pipeline executa etapas em sequência. A primeira falha interrompe a
// execução e o envelope de erro é devolvido como está.
type Pipeline struct {
	steps   []Step
	log     zerolog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// Option customiza o Pipeline.
type Option func(*Pipeline)

// WithLogger injeta o logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithMetrics injeta o registrador de métricas.
func WithMetrics(r *metrics.Recorder) Option {
	return func(p *Pipeline) { p.metrics = r }
}

// New cria o pipeline com as etapas na ordem de execução.
func New(steps []Step, opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: append([]Step(nil), steps...),
		log:   zerolog.Nop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Steps devolve os nomes das etapas, na ordem.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name()
	}
	return names
}

// Execute aplica as etapas ao envelope inicial. Nunca devolve erro: falhas
// viram um envelope com StageError e um *Failure como payload.
func (p *Pipeline) Execute(ctx context.Context, in Envelope) Envelope {
	log := p.log.With().Str("execution_id", uuid.NewString()).Logger()
	log.Debug().Str("stage", string(in.Stage)).Int("steps", len(p.steps)).Msg("pipeline iniciado")

	current := in
	for i, step := range p.steps {
		if current.Stage == StageError {
			p.stopped(log, i, current)
			return current
		}

		if err := ctx.Err(); err != nil {
			current = NewError(step.Name(), i, err)
			p.stopped(log, i, current)
			return current
		}

		start := p.now()
		out, err := step.Process(ctx, current)
		p.metrics.StepDone(step.Name(), p.now().Sub(start))

		if err != nil {
			current = NewError(step.Name(), i, err)
			p.stopped(log, i, current)
			return current
		}

		log.Debug().Str("step", step.Name()).Int("index", i).Str("stage", string(out.Stage)).Msg("etapa concluída")
		current = out
	}

	if current.Stage == StageError {
		p.stopped(log, len(p.steps)-1, current)
		return current
	}
	log.Debug().Str("stage", string(current.Stage)).Msg("pipeline concluído")
	return current
}

func (p *Pipeline) stopped(log zerolog.Logger, index int, env Envelope) {
	step, kind := "", KindInternal
	if f, ok := env.Payload.(*Failure); ok {
		step, kind = f.Step, f.Kind
	}
	p.metrics.PipelineStopped(step, kind)
	log.Warn().Err(env.Err()).Int("index", index).Str("kind", kind).Msg("pipeline interrompido")
}
