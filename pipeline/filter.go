package pipeline

import (
	"context"
	"fmt"

	"github.com/raywall/legifrance-toolkit/pkg/rules"
)

// FilterStep mantém apenas os registros extraídos para os quais a
// expressão CEL é verdadeira. A expressão enxerga o registro em `record`
// e os parâmetros da busca em `query`.
type FilterStep struct {
	expr  string
	query map[string]interface{}
	rules *rules.RuleManager
}

// NewFilterStep compila a expressão e falha cedo se ela for inválida.
// query pode ser nil.
func NewFilterStep(expr string, rm *rules.RuleManager, query map[string]interface{}) (*FilterStep, error) {
	if rm == nil {
		var err error
		if rm, err = rules.NewRuleManager(); err != nil {
			return nil, err
		}
	}
	if err := rm.Check(expr); err != nil {
		return nil, err
	}
	if query == nil {
		query = map[string]interface{}{}
	}
	return &FilterStep{expr: expr, query: query, rules: rm}, nil
}

func (s *FilterStep) Name() string { return "filter" }

func (s *FilterStep) Process(_ context.Context, in Envelope) (Envelope, error) {
	if err := expectStage(s.Name(), in.Stage, StageExtracted); err != nil {
		return Envelope{}, err
	}
	records, ok := in.Payload.([]ExtractedRecord)
	if !ok {
		return Envelope{}, &StructureError{Path: "$", Reason: fmt.Sprintf("esperado []ExtractedRecord, recebido %T", in.Payload)}
	}

	kept := make([]ExtractedRecord, 0, len(records))
	for i, r := range records {
		match, err := s.rules.EvaluateBool(s.expr, map[string]interface{}{
			rules.VarRecord: r.Map(),
			rules.VarQuery:  s.query,
		})
		if err != nil {
			return Envelope{}, fmt.Errorf("filtro no registro %d: %w", i, err)
		}
		if match {
			kept = append(kept, r)
		}
	}
	return NewEnvelope(StageExtracted, kept), nil
}
