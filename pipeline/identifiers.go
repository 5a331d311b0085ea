package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/raywall/legifrance-toolkit/pkg/models"
)

// IdentifierExtraction seleciona os registros cujo identificador começa
// com o prefixo e monta um descritor de consulta para cada um.
type IdentifierExtraction struct {
	name   string
	prefix string
	field  func(ExtractedRecord) string
	build  func(id string) models.Request
	stage  Stage
}

// NewArticleIdentifiers extrai os LEGIARTI dos trechos e monta GetArticle.
func NewArticleIdentifiers() *IdentifierExtraction {
	return &IdentifierExtraction{
		name:   "article_identifiers",
		prefix: models.PrefixArticle,
		field:  func(r ExtractedRecord) string { return r.ExtractID },
		build:  func(id string) models.Request { return models.GetArticle{ID: id} },
		stage:  StageArticleRequests,
	}
}

// NewTextIdentifiers extrai os LEGITEXT dos títulos e monta LegiPart na
// data informada (zero = hoje).
func NewTextIdentifiers(date time.Time) *IdentifierExtraction {
	return &IdentifierExtraction{
		name:   "text_identifiers",
		prefix: models.PrefixText,
		field:  func(r ExtractedRecord) string { return r.TitleID },
		build:  func(id string) models.Request { return models.NewLegiPart(id, date) },
		stage:  StageTextRequests,
	}
}

// NewDecisionIdentifiers extrai os JURITEXT dos títulos e monta
// ConsultJuri com o termo procurado, que a API destaca na decisão.
func NewDecisionIdentifiers(searched string) *IdentifierExtraction {
	return &IdentifierExtraction{
		name:   "decision_identifiers",
		prefix: models.PrefixJuriText,
		field:  func(r ExtractedRecord) string { return r.TitleID },
		build:  func(id string) models.Request { return models.ConsultJuri{TextID: id, SearchedString: searched} },
		stage:  StageDecisionRequests,
	}
}

func (s *IdentifierExtraction) Name() string { return s.name }

// Prefix devolve o prefixo procurado.
func (s *IdentifierExtraction) Prefix() string { return s.prefix }

func (s *IdentifierExtraction) Process(_ context.Context, in Envelope) (Envelope, error) {
	if err := expectStage(s.Name(), in.Stage, StageExtracted); err != nil {
		return Envelope{}, err
	}
	records, ok := in.Payload.([]ExtractedRecord)
	if !ok {
		return Envelope{}, &StructureError{Path: "$", Reason: fmt.Sprintf("esperado []ExtractedRecord, recebido %T", in.Payload)}
	}

	reqs := make([]models.Request, 0, len(records))
	for _, r := range records {
		id := s.field(r)
		if !models.HasPrefix(id, s.prefix) {
			continue
		}
		reqs = append(reqs, s.build(id))
	}
	if len(reqs) == 0 {
		return Envelope{}, &NoIdentifierFoundError{Prefix: s.prefix}
	}
	return NewEnvelope(s.stage, reqs), nil
}
