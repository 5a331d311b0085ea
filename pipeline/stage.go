package pipeline

import "github.com/raywall/legifrance-toolkit/pkg/models"

// Stage identifica o formato do payload carregado por um Envelope.
// O conjunto é fechado: valores fora das constantes abaixo são inválidos.
type Stage string

const (
	StageSearchRequest     Stage = "search-request"
	StageConsultRequest    Stage = "consult-request"
	StageArticleRequests   Stage = "article-identifier-list"
	StageTextRequests      Stage = "text-identifier-list"
	StageDecisionRequests  Stage = "decision-identifier-list"
	StageSearchResult      Stage = "raw-search-result"
	StageExtracted         Stage = "extracted"
	StageArticleResponse   Stage = "article-response"
	StageTextResponse      Stage = "text-response"
	StageDecisionResponse  Stage = "decision-response"
	StageRawResponse       Stage = "raw-response"
	StageFormattedArticle  Stage = "formatted-article"
	StageFormattedText     Stage = "formatted-text"
	StageFormattedDecision Stage = "formatted-decision"
	StageError             Stage = "error"
)

// Valid informa se s pertence ao conjunto de estágios conhecidos.
func (s Stage) Valid() bool {
	switch s {
	case StageSearchRequest, StageConsultRequest, StageArticleRequests, StageTextRequests,
		StageDecisionRequests, StageSearchResult, StageExtracted, StageArticleResponse,
		StageTextResponse, StageDecisionResponse, StageRawResponse, StageFormattedArticle,
		StageFormattedText, StageFormattedDecision, StageError:
		return true
	}
	return false
}

func (s Stage) String() string { return string(s) }

// StageForResponse mapeia o modelo de resposta declarado por uma rota para
// o estágio do envelope que carrega o corpo decodificado.
func StageForResponse(kind models.ResponseKind) Stage {
	switch kind {
	case models.KindSearchResponse:
		return StageSearchResult
	case models.KindGetArticleResponse:
		return StageArticleResponse
	case models.KindConsultTextResponse:
		return StageTextResponse
	case models.KindConsultJuriResponse:
		return StageDecisionResponse
	default:
		return StageRawResponse
	}
}

// StageForRequest devolve o estágio de entrada adequado a um descritor.
func StageForRequest(req models.Request) Stage {
	switch req.(type) {
	case models.SearchRequest, *models.SearchRequest:
		return StageSearchRequest
	case models.GetArticle, *models.GetArticle:
		return StageArticleRequests
	case models.LegiPart, *models.LegiPart:
		return StageTextRequests
	case models.ConsultJuri, *models.ConsultJuri:
		return StageDecisionRequests
	}
	return StageConsultRequest
}

func expectStage(step string, got Stage, accepted ...Stage) error {
	for _, s := range accepted {
		if got == s {
			return nil
		}
	}
	return &StageMismatchError{Step: step, Got: got, Expected: accepted}
}
