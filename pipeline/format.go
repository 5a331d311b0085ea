package pipeline

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raywall/legifrance-toolkit/pkg/models"
)

// Chaves mantidas na formatação.
var (
	ArticleKeys  = []string{"pathTitle", "content", "num", "fullSectionsTitre", "texte", "etat", "VersionArticle", "cid"}
	RootKeys     = []string{"cid", "title"}
	SectionKeys  = []string{"title", "cid"}
	DecisionKeys = []string{
		"id", "cid", "titre", "titreLong", "num", "juridiction", "formation", "solution",
		"dateTexte", "ecli", "nor", "idEli", "texte",
	}
)

// Formatters simplifica respostas de artigo, de texto e de decisão. Estágios sem
// formatação conhecida passam sem alteração.
type Formatters struct {
	plainText bool
}

// FormatOption customiza o Formatters.
type FormatOption func(*Formatters)

// WithPlainText preenche "texte" a partir de "texteHtml" quando o artigo
// só traz a versão HTML.
func WithPlainText() FormatOption {
	return func(f *Formatters) { f.plainText = true }
}

// NewFormatters cria a etapa.
func NewFormatters(opts ...FormatOption) *Formatters {
	f := &Formatters{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Formatters) Name() string { return "formatters" }

func (f *Formatters) Process(_ context.Context, in Envelope) (Envelope, error) {
	switch in.Stage {
	case StageArticleResponse:
		return NewEnvelope(StageFormattedArticle, eachBody(in.Payload, f.FormatArticle)), nil
	case StageTextResponse:
		return NewEnvelope(StageFormattedText, eachBody(in.Payload, FormatText)), nil
	case StageDecisionResponse:
		return NewEnvelope(StageFormattedDecision, eachBody(in.Payload, f.FormatDecision)), nil
	default:
		return in, nil
	}
}

func eachBody(payload any, fn func(map[string]interface{}) map[string]interface{}) any {
	switch p := payload.(type) {
	case map[string]interface{}:
		return fn(p)
	case []any:
		out := make([]any, len(p))
		for i, item := range p {
			if m, ok := item.(map[string]interface{}); ok {
				out[i] = fn(m)
			} else {
				out[i] = item
			}
		}
		return out
	}
	return payload
}

// FormatArticle reduz uma GetArticleResponse às chaves de artigo. Chaves
// ausentes ficam com nil.
func (f *Formatters) FormatArticle(data map[string]interface{}) map[string]interface{} {
	article, _ := data["article"].(map[string]interface{})
	out := make(map[string]interface{}, len(ArticleKeys))
	for _, k := range ArticleKeys {
		out[k] = article[k]
	}
	if f != nil && f.plainText && isBlank(out["texte"]) {
		if html, ok := article["texteHtml"].(string); ok && html != "" {
			out["texte"] = htmlToText(html)
		}
	}
	return out
}

// FormatDecision reduz uma resposta de consult/juri às chaves de decisão.
// NOR e ELI fora do formato esperado viram nil.
func (f *Formatters) FormatDecision(data map[string]interface{}) map[string]interface{} {
	decision, _ := data["text"].(map[string]interface{})
	out := make(map[string]interface{}, len(DecisionKeys))
	for _, k := range DecisionKeys {
		out[k] = decision[k]
	}
	if nor, _ := out["nor"].(string); !models.IsNOR(nor) {
		out["nor"] = nil
	}
	if eli, _ := out["idEli"].(string); !models.IsELI(eli) {
		out["idEli"] = nil
	}
	if f != nil && f.plainText && isBlank(out["texte"]) {
		if html, ok := decision["texteHtml"].(string); ok && html != "" {
			out["texte"] = htmlToText(html)
		}
	}
	return out
}

// FormatText reduz uma ConsultTextResponse à raiz (cid, title) e à árvore
// de seções, com os artigos de cada uma.
func FormatText(data map[string]interface{}) map[string]interface{} {
	content := make([]interface{}, 0)
	for _, s := range objects(data["sections"]) {
		content = append(content, formatSection(s))
	}
	return map[string]interface{}{
		"root":    pick(data, RootKeys),
		"content": content,
	}
}

func formatSection(section map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{
		"section_data": pick(section, SectionKeys),
	}
	if _, ok := section["articles"]; ok {
		articles := make([]interface{}, 0)
		for _, a := range objects(section["articles"]) {
			articles = append(articles, pick(a, ArticleKeys))
		}
		out["articles"] = articles
	}
	if _, ok := section["sections"]; ok {
		subsections := make([]interface{}, 0)
		for _, s := range objects(section["sections"]) {
			subsections = append(subsections, formatSection(s))
		}
		out["subsections"] = subsections
	}
	return out
}

// pick copia apenas as chaves presentes.
func pick(src map[string]interface{}, keys []string) map[string]interface{} {
	out := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		if v, ok := src[k]; ok {
			out[k] = v
		}
	}
	return out
}

func isBlank(v interface{}) bool {
	s, ok := v.(string)
	return v == nil || (ok && strings.TrimSpace(s) == "")
}

func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	// Blocos viram separadores antes de juntar o texto
	doc.Find("p, div, br, li, tr").AfterHtml("\n")
	return strings.Join(strings.Fields(doc.Text()), " ")
}
