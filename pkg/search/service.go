// Package search monta e executa os pipelines de consulta à Légifrance:
// busca em códigos, busca em leis e decretos (LODA), busca na
// jurisprudência judicial (JURI) e consultas diretas de artigo, texto,
// seção e decisão.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/raywall/legifrance-toolkit/pipeline"
	"github.com/raywall/legifrance-toolkit/pkg/client"
	"github.com/raywall/legifrance-toolkit/pkg/metrics"
	"github.com/raywall/legifrance-toolkit/pkg/models"
	"github.com/raywall/legifrance-toolkit/pkg/rules"
	"github.com/rs/zerolog"
)

// CodeQuery descreve uma busca num código.
type CodeQuery struct {
	// Name é o nome oficial do código ou uma sigla conhecida (CCIV, CPEN...).
	Name string
	// Search é o termo procurado; vazio devolve o texto do código.
	Search     string
	Field      models.TypeChamp
	SearchType models.TypeRecherche
	Fond       models.Fond
	// Date é a data de vigência; zero = hoje.
	Date     time.Time
	PageSize int
	// Filter é uma expressão CEL aplicada a cada registro extraído.
	Filter string
	Format bool
}

// LodaQuery descreve uma busca em leis, decretos, ordenanças e arrêtés.
type LodaQuery struct {
	Search     string
	Natures    []models.Nature
	Field      models.TypeChamp
	SearchType models.TypeRecherche
	Fond       models.Fond
	Date       time.Time
	// Etat filtra pelo estado jurídico do texto (VIGUEUR, ABROGE...).
	Etat     string
	PageSize int
	// Articles consulta os artigos encontrados em vez dos textos.
	Articles bool
	Filter   string
	Format   bool
}

// JuriQuery descreve uma busca na jurisprudência judicial.
type JuriQuery struct {
	Search string
	// Field padrão: ALL. SearchType padrão: UN_DES_MOTS.
	Field      models.TypeChamp
	SearchType models.TypeRecherche
	// Juridictions restringe às jurisdições (Cour de cassation,
	// Juridictions d'appel...).
	Juridictions []string
	// Publication filtra pela publicação no Bulletin (T ou F).
	Publication []string
	PageSize    int
	Filter      string
	Format      bool
}

// Service é o ponto de entrada das buscas.
type Service struct {
	poster      pipeline.Poster
	log         zerolog.Logger
	metrics     *metrics.Recorder
	rules       *rules.RuleManager
	concurrency int
	pageSize    int
	filter      string
	plainText   bool
	now         func() time.Time
}

// Option customiza o Service.
type Option func(*Service)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Service) { s.metrics = r }
}

// WithConcurrency limita as consultas simultâneas de um lote.
func WithConcurrency(n int) Option {
	return func(s *Service) { s.concurrency = n }
}

// WithRules compartilha o gerenciador CEL entre os filtros.
func WithRules(rm *rules.RuleManager) Option {
	return func(s *Service) { s.rules = rm }
}

// WithDefaultFilter aplica a expressão às buscas que não trazem filtro.
func WithDefaultFilter(expr string) Option {
	return func(s *Service) { s.filter = expr }
}

// WithPageSize define o tamanho de página padrão.
func WithPageSize(n int) Option {
	return func(s *Service) { s.pageSize = n }
}

// WithPlainText preenche o texto puro de artigos e decisões formatados a
// partir do HTML.
func WithPlainText() Option {
	return func(s *Service) { s.plainText = true }
}

// WithClock define o relógio que resolve as datas zero ("hoje").
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New cria o serviço sobre o executor de requisições (normalmente um
// *client.Client).
func New(poster pipeline.Poster, opts ...Option) *Service {
	s := &Service{
		poster:      poster,
		log:         zerolog.Nop(),
		concurrency: 1,
		pageSize:    models.DefaultPageSize,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Code busca num código. Com termo de busca devolve os artigos
// encontrados; sem termo devolve o texto do código.
func (s *Service) Code(ctx context.Context, q CodeQuery) pipeline.Envelope {
	if q.Fond == "" {
		q.Fond = models.FondCodeDate
	}
	if q.Field == "" {
		q.Field = models.ChampNumArticle
	}
	date := s.date(q.Date)

	champ := models.NewChamp(q.Field, models.NewCritere(q.SearchType, q.Search))
	if strings.TrimSpace(q.Search) == "" {
		champ = models.NewChamp(models.ChampTitle, models.NewCritere(q.SearchType, " "))
	}

	var filtres []models.Filtre
	if q.Name != "" {
		filtres = append(filtres, models.NomCodeFiltre(q.Name))
	}
	filtres = append(filtres, models.DateVersionFiltre(date))

	req := models.SearchRequest{Fond: q.Fond, Recherche: models.NewRecherche([]models.Champ{champ}, filtres...)}
	req.Recherche.PageSize = s.size(q.PageSize)

	query := map[string]interface{}{"name": q.Name, "search": q.Search, "fond": string(q.Fond), "date": date.Format(models.DateLayout)}
	var ids pipeline.Step = pipeline.NewTextIdentifiers(date)
	if strings.TrimSpace(q.Search) != "" {
		ids = pipeline.NewArticleIdentifiers()
	}
	return s.runSearch(ctx, "code", req, ids, q.Filter, query, q.Format)
}

// Loda busca em textos legislativos e regulamentares.
func (s *Service) Loda(ctx context.Context, q LodaQuery) pipeline.Envelope {
	if q.Fond == "" {
		q.Fond = models.FondLodaDate
	}
	if q.Field == "" {
		q.Field = models.ChampTitle
	}
	date := s.date(q.Date)

	search := q.Search
	if strings.TrimSpace(search) == "" {
		search = " "
	}
	champ := models.NewChamp(q.Field, models.NewCritere(q.SearchType, search))

	var filtres []models.Filtre
	if len(q.Natures) > 0 {
		filtres = append(filtres, models.NatureFiltre(q.Natures...))
	}
	if q.Etat != "" {
		filtres = append(filtres, models.EtatFiltre(q.Etat))
	}
	filtres = append(filtres, models.DateVersionFiltre(date))

	req := models.SearchRequest{Fond: q.Fond, Recherche: models.NewRecherche([]models.Champ{champ}, filtres...)}
	req.Recherche.PageSize = s.size(q.PageSize)

	query := map[string]interface{}{"search": q.Search, "fond": string(q.Fond), "date": date.Format(models.DateLayout)}
	var ids pipeline.Step = pipeline.NewTextIdentifiers(date)
	if q.Articles {
		ids = pipeline.NewArticleIdentifiers()
	}
	return s.runSearch(ctx, "loda", req, ids, q.Filter, query, q.Format)
}

// Juri busca decisões da jurisprudência judicial e consulta cada
// decisão JURITEXT encontrada.
func (s *Service) Juri(ctx context.Context, q JuriQuery) pipeline.Envelope {
	if strings.TrimSpace(q.Search) == "" {
		return invalid("juri", fmt.Errorf("%w: termo de busca obrigatório", client.ErrInvalidArgument))
	}
	if q.Field == "" {
		q.Field = models.ChampALL
	}
	if q.SearchType == "" {
		q.SearchType = models.RechercheUnDesMots
	}

	var filtres []models.Filtre
	if len(q.Juridictions) > 0 {
		filtres = append(filtres, models.JuridictionFiltre(q.Juridictions...))
	}
	if len(q.Publication) > 0 {
		filtres = append(filtres, models.PublicationBulletinFiltre(q.Publication...))
	}

	champ := models.NewChamp(q.Field, models.NewCritere(q.SearchType, q.Search))
	req := models.SearchRequest{Fond: models.FondJURI, Recherche: models.NewRecherche([]models.Champ{champ}, filtres...)}
	req.Recherche.PageSize = s.size(q.PageSize)

	query := map[string]interface{}{"search": q.Search, "fond": string(models.FondJURI)}
	return s.runSearch(ctx, "juri", req, pipeline.NewDecisionIdentifiers(q.Search), q.Filter, query, q.Format)
}

// Article consulta um artigo pelo identificador LEGIARTI.
func (s *Service) Article(ctx context.Context, id string, format bool) pipeline.Envelope {
	if !models.HasPrefix(id, models.PrefixArticle) {
		return invalid("article", fmt.Errorf("%w: identificador de artigo deve começar com %s: '%s'", client.ErrInvalidArgument, models.PrefixArticle, id))
	}
	return s.consult(ctx, models.GetArticle{ID: id}, format)
}

// Text consulta um texto na data informada. Identificadores JORFTEXT são
// consultados no Journal officiel.
func (s *Service) Text(ctx context.Context, textID string, date time.Time, format bool) pipeline.Envelope {
	switch {
	case models.HasPrefix(textID, models.PrefixJorfText):
		return s.consult(ctx, models.Jorf{TextCid: textID}, format)
	case models.HasPrefix(textID, models.PrefixText):
		return s.consult(ctx, models.NewLegiPart(textID, s.date(date)), format)
	}
	return invalid("text", fmt.Errorf("%w: identificador de texto deve começar com %s ou %s: '%s'", client.ErrInvalidArgument, models.PrefixText, models.PrefixJorfText, textID))
}

// Section consulta uma seção pelo CID. A resposta não é formatada.
func (s *Service) Section(ctx context.Context, cid string) pipeline.Envelope {
	return s.consult(ctx, models.GetSectionByCid{Cid: cid}, false)
}

// Decision consulta uma decisão pelo identificador JURITEXT.
func (s *Service) Decision(ctx context.Context, id string, format bool) pipeline.Envelope {
	if !models.HasPrefix(id, models.PrefixJuriText) {
		return invalid("decision", fmt.Errorf("%w: identificador de decisão deve começar com %s: '%s'", client.ErrInvalidArgument, models.PrefixJuriText, id))
	}
	return s.consult(ctx, models.ConsultJuri{TextID: id}, format)
}

func (s *Service) runSearch(ctx context.Context, name string, req models.SearchRequest, ids pipeline.Step, filter string, query map[string]interface{}, format bool) pipeline.Envelope {
	if err := models.Validate(req); err != nil {
		return invalid(name, err)
	}

	steps := []pipeline.Step{
		pipeline.NewCallAPIStep(s.poster),
		pipeline.NewExtractSearchResult(),
	}

	if filter == "" {
		filter = s.filter
	}
	if filter != "" {
		f, err := pipeline.NewFilterStep(filter, s.rules, query)
		if err != nil {
			return invalid(name, fmt.Errorf("%w: filtro: %v", client.ErrInvalidArgument, err))
		}
		steps = append(steps, f)
	}

	steps = append(steps, ids, pipeline.NewCallAPIStep(s.poster, pipeline.WithConcurrency(s.concurrency)))
	if format {
		steps = append(steps, s.formatters())
	}

	s.log.Info().Str("search", name).Str("fond", string(req.Fond)).Int("steps", len(steps)).Msg("executando busca")
	return s.pipeline(steps).Execute(ctx, pipeline.NewEnvelope(pipeline.StageSearchRequest, req))
}

func (s *Service) consult(ctx context.Context, req models.Request, format bool) pipeline.Envelope {
	if err := models.Validate(req); err != nil {
		return invalid(req.Route(), err)
	}
	steps := []pipeline.Step{pipeline.NewCallAPIStep(s.poster)}
	if format {
		steps = append(steps, s.formatters())
	}
	return s.pipeline(steps).Execute(ctx, pipeline.NewEnvelope(pipeline.StageForRequest(req), req))
}

func (s *Service) pipeline(steps []pipeline.Step) *pipeline.Pipeline {
	return pipeline.New(steps, pipeline.WithLogger(s.log), pipeline.WithMetrics(s.metrics))
}

func (s *Service) formatters() *pipeline.Formatters {
	if s.plainText {
		return pipeline.NewFormatters(pipeline.WithPlainText())
	}
	return pipeline.NewFormatters()
}

func (s *Service) date(d time.Time) time.Time {
	if d.IsZero() {
		return s.now()
	}
	return d
}

func (s *Service) size(n int) int {
	if n > 0 {
		return n
	}
	return s.pageSize
}

func invalid(step string, err error) pipeline.Envelope {
	return pipeline.NewError(step, 0, err)
}
