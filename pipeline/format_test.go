package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/raywall/legifrance-toolkit/pkg/auth"
	"github.com/raywall/legifrance-toolkit/pkg/client"
	"github.com/raywall/legifrance-toolkit/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleResponse = `{
  "executionTime": 12,
  "article": {
    "id": "LEGIARTI000006419280",
    "cid": "LEGIARTI000006419280",
    "num": "1",
    "etat": "VIGUEUR",
    "texte": "Les lois et, lorsqu'ils sont publiés...",
    "texteHtml": "<p>Les lois</p>",
    "pathTitle": ["Code civil", "Titre préliminaire"],
    "fullSectionsTitre": "Titre préliminaire"
  }
}`

const textResponse = `{
  "cid": "LEGITEXT000006070721",
  "title": "Code civil",
  "jorfText": "ignored",
  "sections": [
    {
      "title": "Livre Ier",
      "cid": "LEGISCTA000006089697",
      "id": "ignored",
      "articles": [{"num": "7", "texte": "L'exercice des droits civils", "etat": "VIGUEUR", "id": "x"}],
      "sections": [
        {"title": "Titre Ier", "articles": []}
      ]
    }
  ]
}`

const decisionResponse = `{
  "text": {
    "id": "JURITEXT000037999394",
    "cid": "JURITEXT000037999394",
    "titre": "Cour de cassation, civile, Chambre civile 3, 16 mai 2019, 17-27.384",
    "num": "17-27384",
    "juridiction": "Cour de cassation",
    "formation": "CHAMBRE_CIVILE_3",
    "solution": "Rejet",
    "dateTexte": 1557964800000,
    "ecli": "ECLI:FR:CCASS:2019:C300418",
    "nor": "JUSC1502013L",
    "idEli": "eli/decision/2019",
    "texte": "",
    "texteHtml": "<p>Attendu que le bail</p><p>est résilié</p>"
  }
}`

func TestFormatters_Article(t *testing.T) {
	out, err := NewFormatters().Process(context.Background(), NewEnvelope(StageArticleResponse, decodeJSON(articleResponse)))
	require.NoError(t, err)
	assert.Equal(t, StageFormattedArticle, out.Stage)

	article := out.Payload.(map[string]interface{})
	assert.Len(t, article, len(ArticleKeys))
	assert.Equal(t, "1", article["num"])
	assert.Equal(t, "VIGUEUR", article["etat"])
	assert.Nil(t, article["content"], "chave ausente vira nil")
	assert.Nil(t, article["VersionArticle"])
	assert.NotContains(t, article, "texteHtml")
}

func TestFormatters_ArticleList(t *testing.T) {
	bodies := []any{decodeJSON(articleResponse), map[string]interface{}{}}
	out, err := NewFormatters().Process(context.Background(), NewEnvelope(StageArticleResponse, bodies))
	require.NoError(t, err)

	list := out.Payload.([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].(map[string]interface{})["num"])
	assert.Nil(t, list[1].(map[string]interface{})["num"], "resposta sem artigo vira chaves nulas")
}

func TestFormatters_PlainText(t *testing.T) {
	body := map[string]interface{}{"article": map[string]interface{}{
		"texte":     "",
		"texteHtml": "<p>Nul ne   peut</p><p>être <b>jugé</b></p>",
	}}

	out, err := NewFormatters(WithPlainText()).Process(context.Background(), NewEnvelope(StageArticleResponse, body))
	require.NoError(t, err)
	assert.Equal(t, "Nul ne peut être jugé", out.Payload.(map[string]interface{})["texte"])

	out, err = NewFormatters().Process(context.Background(), NewEnvelope(StageArticleResponse, body))
	require.NoError(t, err)
	assert.Equal(t, "", out.Payload.(map[string]interface{})["texte"])
}

func TestFormatters_Text(t *testing.T) {
	out, err := NewFormatters().Process(context.Background(), NewEnvelope(StageTextResponse, decodeJSON(textResponse)))
	require.NoError(t, err)
	assert.Equal(t, StageFormattedText, out.Stage)

	raw, err := json.Marshal(out.Payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{
	  "root": {"cid": "LEGITEXT000006070721", "title": "Code civil"},
	  "content": [
	    {
	      "section_data": {"title": "Livre Ier", "cid": "LEGISCTA000006089697"},
	      "articles": [{"num": "7", "texte": "L'exercice des droits civils", "etat": "VIGUEUR"}],
	      "subsections": [
	        {"section_data": {"title": "Titre Ier"}, "articles": []}
	      ]
	    }
	  ]
	}`, string(raw))
}

func TestFormatters_Decision(t *testing.T) {
	out, err := NewFormatters(WithPlainText()).Process(context.Background(), NewEnvelope(StageDecisionResponse, []any{decodeJSON(decisionResponse)}))
	require.NoError(t, err)
	assert.Equal(t, StageFormattedDecision, out.Stage)

	list := out.Payload.([]any)
	require.Len(t, list, 1)
	decision := list[0].(map[string]interface{})
	assert.Len(t, decision, len(DecisionKeys))
	assert.Equal(t, "Rejet", decision["solution"])
	assert.Equal(t, "ECLI:FR:CCASS:2019:C300418", decision["ecli"])
	assert.Equal(t, "JUSC1502013L", decision["nor"])
	assert.Equal(t, "eli/decision/2019", decision["idEli"])
	assert.Equal(t, "Attendu que le bail est résilié", decision["texte"])
	assert.Nil(t, decision["titreLong"], "chave ausente vira nil")
	assert.NotContains(t, decision, "texteHtml")

	t.Run("NOR e ELI fora do formato", func(t *testing.T) {
		body := map[string]interface{}{"text": map[string]interface{}{"nor": "123", "idEli": "decision/2019"}}
		decision := NewFormatters().FormatDecision(body)
		assert.Nil(t, decision["nor"])
		assert.Nil(t, decision["idEli"])
	})
}

func TestFormatters_UnknownStageIsIdentity(t *testing.T) {
	for _, in := range []Envelope{
		NewEnvelope(StageRawResponse, map[string]interface{}{"a": 1}),
		NewEnvelope(StageExtracted, []ExtractedRecord{{TitleID: "x"}}),
		NewError("x", 0, errors.New("boom")),
	} {
		out, err := NewFormatters().Process(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
	}{
		{"autenticação", &auth.AuthenticationError{Attempts: 3, Err: errors.New("401")}, KindAuthentication},
		{"api", &client.APIError{StatusCode: 404, Body: "not found", Outcome: client.OutcomeClientError}, KindAPI},
		{"argumento", client.ErrInvalidArgument, KindInvalidArgument},
		{"modelo", models.Validate(models.GetArticle{}), KindInvalidArgument},
		{"estágio", &StageMismatchError{Step: "x", Got: StageExtracted}, KindStageMismatch},
		{"identificador", &NoIdentifierFoundError{Prefix: "LEGIARTI"}, KindNoIdentifierFound},
		{"estrutura", &StructureError{Path: "results"}, KindMalformedResponse},
		{"outro", errors.New("x"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, NewError("s", 2, tt.err).Payload.(*Failure).Kind)
		})
	}

	t.Run("JSON estruturado", func(t *testing.T) {
		env := NewError("call_api", 3, &client.APIError{StatusCode: 503, Body: "indisponível", Route: "search", Outcome: client.OutcomeServerError})
		raw, err := json.Marshal(env)
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, "error", decoded["stage"])
		payload := decoded["payload"].(map[string]interface{})
		assert.Equal(t, "call_api", payload["step"])
		assert.Equal(t, float64(3), payload["index"])
		assert.Equal(t, KindAPI, payload["kind"])
		assert.Equal(t, float64(503), payload["statusCode"])
		assert.Equal(t, "indisponível", payload["body"])
	})
}
