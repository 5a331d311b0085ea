package pipeline

import (
	"context"
	"fmt"

	"github.com/raywall/legifrance-toolkit/pkg/client"
	"github.com/raywall/legifrance-toolkit/pkg/models"
	"golang.org/x/sync/errgroup"
)

// Poster envia um corpo JSON para uma rota da API. *client.Client o
// implementa.
type Poster interface {
	Post(ctx context.Context, route string, body interface{}) (*client.Response, error)
}

// CallAPIStep executa os descritores do envelope contra a API e devolve
// os corpos decodificados, com o estágio derivado do modelo de resposta.
type CallAPIStep struct {
	poster      Poster
	concurrency int
	validate    bool
}

// CallOption customiza o CallAPIStep.
type CallOption func(*CallAPIStep)

// WithConcurrency limita as chamadas simultâneas de um lote. O padrão 1
// executa em sequência; a ordem do resultado segue sempre a da entrada.
func WithConcurrency(n int) CallOption {
	return func(s *CallAPIStep) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithValidation valida cada descritor antes do envio.
func WithValidation() CallOption {
	return func(s *CallAPIStep) { s.validate = true }
}

// NewCallAPIStep cria a etapa sobre o executor informado.
func NewCallAPIStep(poster Poster, opts ...CallOption) *CallAPIStep {
	s := &CallAPIStep{poster: poster, concurrency: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CallAPIStep) Name() string { return "call_api" }

func (s *CallAPIStep) Process(ctx context.Context, in Envelope) (Envelope, error) {
	if in.Stage == StageError {
		return in, nil
	}
	if err := expectStage(s.Name(), in.Stage, StageSearchRequest, StageConsultRequest,
		StageArticleRequests, StageTextRequests, StageDecisionRequests); err != nil {
		return Envelope{}, err
	}

	switch payload := in.Payload.(type) {
	case models.Request:
		body, err := s.call(ctx, payload)
		if err != nil {
			return Envelope{}, err
		}
		return NewEnvelope(StageForResponse(payload.ResponseKind()), body), nil

	case []models.Request:
		if len(payload) == 0 {
			return Envelope{}, fmt.Errorf("%w: lista de requisições vazia", client.ErrInvalidArgument)
		}
		bodies, err := s.callAll(ctx, payload)
		if err != nil {
			return Envelope{}, err
		}
		return NewEnvelope(StageForResponse(payload[0].ResponseKind()), bodies), nil

	default:
		return Envelope{}, fmt.Errorf("%w: payload %T não é um descritor de requisição", client.ErrInvalidArgument, in.Payload)
	}
}

func (s *CallAPIStep) call(ctx context.Context, req models.Request) (any, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: descritor nulo", client.ErrInvalidArgument)
	}
	if s.validate {
		if err := models.Validate(req); err != nil {
			return nil, err
		}
	}
	resp, err := s.poster.Post(ctx, req.Route(), req)
	if err != nil {
		return nil, err
	}
	body, err := resp.JSON()
	if err != nil {
		return nil, &StructureError{Path: req.Route(), Reason: err.Error()}
	}
	return body, nil
}

// callAll preserva a ordem da entrada; a primeira falha cancela as
// chamadas restantes e é devolvida.
func (s *CallAPIStep) callAll(ctx context.Context, reqs []models.Request) ([]any, error) {
	bodies := make([]any, len(reqs))

	if s.concurrency <= 1 {
		for i, req := range reqs {
			body, err := s.call(ctx, req)
			if err != nil {
				return nil, fmt.Errorf("requisição %d de %d: %w", i+1, len(reqs), err)
			}
			bodies[i] = body
		}
		return bodies, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			body, err := s.call(gctx, req)
			if err != nil {
				return fmt.Errorf("requisição %d de %d: %w", i+1, len(reqs), err)
			}
			bodies[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bodies, nil
}
