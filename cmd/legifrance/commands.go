package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mitchellh/cli"
	"github.com/raywall/legifrance-toolkit/pipeline"
	"github.com/raywall/legifrance-toolkit/pkg/models"
	"github.com/raywall/legifrance-toolkit/pkg/search"
)

func commands(b *base) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"ping":     func() (cli.Command, error) { return &pingCommand{base: b}, nil },
		"code":     func() (cli.Command, error) { return &codeCommand{base: b}, nil },
		"loda":     func() (cli.Command, error) { return &lodaCommand{base: b}, nil },
		"article":  func() (cli.Command, error) { return &articleCommand{base: b}, nil },
		"text":     func() (cli.Command, error) { return &textCommand{base: b}, nil },
		"section":  func() (cli.Command, error) { return &sectionCommand{base: b}, nil },
		"juri":     func() (cli.Command, error) { return &juriCommand{base: b}, nil },
		"decision": func() (cli.Command, error) { return &decisionCommand{base: b}, nil },
	}
}

// signalContext cancela a execução em SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// run abre a sessão, executa fn e imprime o envelope.
func (b *base) run(plain bool, fn func(ctx context.Context, svc *search.Service) pipeline.Envelope) int {
	ctx, cancel := signalContext()
	defer cancel()

	var extra []search.Option
	if plain {
		extra = append(extra, search.WithPlainText())
	}
	s, err := b.connect(ctx, b.configPath, extra...)
	if err != nil {
		b.ui.Error(err.Error())
		return 1
	}
	defer s.close()

	return b.print(fn(ctx, s.service))
}

type pingCommand struct {
	*base
}

func (c *pingCommand) Synopsis() string { return "Verifica a conectividade com a API" }

func (c *pingCommand) Help() string {
	return strings.TrimSpace(`
Usage: legifrance ping [-config arquivo.yaml]

  Obtém um token e chama a rota de ping. Sai com código 0 quando a API
  responde 200.
`)
}

func (c *pingCommand) Run(args []string) int {
	f := c.flagSet("ping")
	if err := f.Parse(args); err != nil {
		return 1
	}

	ctx, cancel := signalContext()
	defer cancel()

	s, err := c.connect(ctx, c.configPath)
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	defer s.close()

	ok, err := s.client.Ping(ctx, "")
	if err != nil {
		c.ui.Error(fmt.Sprintf("ping falhou: %v", err))
		return 1
	}
	if !ok {
		c.ui.Error("ping falhou: status inesperado")
		return 1
	}
	c.ui.Output("pong")
	return 0
}

type codeCommand struct {
	*base
}

func (c *codeCommand) Synopsis() string { return "Busca artigos ou o texto de um código" }

func (c *codeCommand) Help() string {
	return strings.TrimSpace(`
Usage: legifrance code -name CCIV [-search 7] [opções]

  Busca num código. Com -search devolve os artigos encontrados; sem termo
  devolve o texto do código na data de vigência.

Options:

  -name       nome oficial ou sigla do código (CCIV, CPEN, CTRAV...)
  -search     termo procurado
  -field      campo da busca (NUM_ARTICLE, ARTICLE, TITLE, ALL)
  -type       tipo da busca (EXACTE, UN_DES_MOTS, TOUS_LES_MOTS_DANS_UN_CHAMP...)
  -date       data de vigência (padrão: hoje)
  -page-size  resultados por página
  -filter     expressão CEL aplicada a cada registro extraído
  -format     formata a resposta
  -plain      inclui o texto puro dos artigos formatados
`)
}

func (c *codeCommand) Run(args []string) int {
	var (
		q          search.CodeQuery
		field, typ string
		date       string
		plain      bool
	)
	f := c.flagSet("code")
	f.StringVar(&q.Name, "name", "", "nome ou sigla do código")
	f.StringVar(&q.Search, "search", "", "termo procurado")
	f.StringVar(&field, "field", "", "campo da busca")
	f.StringVar(&typ, "type", "", "tipo da busca")
	f.StringVar(&date, "date", "", "data de vigência")
	f.IntVar(&q.PageSize, "page-size", 0, "resultados por página")
	f.StringVar(&q.Filter, "filter", "", "expressão CEL")
	f.BoolVar(&q.Format, "format", false, "formata a resposta")
	f.BoolVar(&plain, "plain", false, "texto puro")
	if err := f.Parse(args); err != nil {
		return 1
	}

	d, err := parseDate(date)
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	q.Date = d
	q.Field = models.TypeChamp(strings.ToUpper(field))
	q.SearchType = models.TypeRecherche(strings.ToUpper(typ))

	return c.run(plain, func(ctx context.Context, svc *search.Service) pipeline.Envelope {
		return svc.Code(ctx, q)
	})
}

type lodaCommand struct {
	*base
}

func (c *lodaCommand) Synopsis() string { return "Busca em leis, decretos e ordenanças" }

func (c *lodaCommand) Help() string {
	return strings.TrimSpace(`
Usage: legifrance loda -search "travail" [opções]

  Busca no fundo LODA. Devolve os textos encontrados ou, com -articles,
  os artigos.

Options:

  -search     termo procurado
  -nature     naturezas separadas por vírgula (LOI,DECRET,ORDONNANCE,ARRETE)
  -etat       estado jurídico do texto (VIGUEUR, ABROGE...)
  -field      campo da busca (TITLE, NUM, ALL...)
  -type       tipo da busca
  -date       data de vigência (padrão: hoje)
  -page-size  resultados por página
  -articles   consulta os artigos em vez dos textos
  -filter     expressão CEL aplicada a cada registro extraído
  -format     formata a resposta
  -plain      inclui o texto puro dos artigos formatados
`)
}

func (c *lodaCommand) Run(args []string) int {
	var (
		q                  search.LodaQuery
		field, typ, nature string
		date               string
		plain              bool
	)
	f := c.flagSet("loda")
	f.StringVar(&q.Search, "search", "", "termo procurado")
	f.StringVar(&nature, "nature", "", "naturezas")
	f.StringVar(&q.Etat, "etat", "", "estado jurídico")
	f.StringVar(&field, "field", "", "campo da busca")
	f.StringVar(&typ, "type", "", "tipo da busca")
	f.StringVar(&date, "date", "", "data de vigência")
	f.IntVar(&q.PageSize, "page-size", 0, "resultados por página")
	f.BoolVar(&q.Articles, "articles", false, "consulta os artigos")
	f.StringVar(&q.Filter, "filter", "", "expressão CEL")
	f.BoolVar(&q.Format, "format", false, "formata a resposta")
	f.BoolVar(&plain, "plain", false, "texto puro")
	if err := f.Parse(args); err != nil {
		return 1
	}

	d, err := parseDate(date)
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	q.Date = d
	q.Field = models.TypeChamp(strings.ToUpper(field))
	q.SearchType = models.TypeRecherche(strings.ToUpper(typ))
	for _, n := range splitList(nature) {
		q.Natures = append(q.Natures, models.Nature(strings.ToUpper(n)))
	}

	return c.run(plain, func(ctx context.Context, svc *search.Service) pipeline.Envelope {
		return svc.Loda(ctx, q)
	})
}

type articleCommand struct {
	*base
}

func (c *articleCommand) Synopsis() string { return "Consulta um artigo pelo identificador" }

func (c *articleCommand) Help() string {
	return strings.TrimSpace(`
Usage: legifrance article -id LEGIARTI000006419283 [-format] [-plain]
`)
}

func (c *articleCommand) Run(args []string) int {
	var (
		id            string
		format, plain bool
	)
	f := c.flagSet("article")
	f.StringVar(&id, "id", "", "identificador LEGIARTI")
	f.BoolVar(&format, "format", false, "formata a resposta")
	f.BoolVar(&plain, "plain", false, "texto puro")
	if err := f.Parse(args); err != nil {
		return 1
	}

	return c.run(plain, func(ctx context.Context, svc *search.Service) pipeline.Envelope {
		return svc.Article(ctx, id, format)
	})
}

type textCommand struct {
	*base
}

func (c *textCommand) Synopsis() string { return "Consulta um texto (LEGITEXT ou JORFTEXT)" }

func (c *textCommand) Help() string {
	return strings.TrimSpace(`
Usage: legifrance text -id LEGITEXT000006070721 [-date 2026-01-01] [-format] [-plain]
`)
}

func (c *textCommand) Run(args []string) int {
	var (
		id, date      string
		format, plain bool
	)
	f := c.flagSet("text")
	f.StringVar(&id, "id", "", "identificador LEGITEXT ou JORFTEXT")
	f.StringVar(&date, "date", "", "data de vigência")
	f.BoolVar(&format, "format", false, "formata a resposta")
	f.BoolVar(&plain, "plain", false, "texto puro")
	if err := f.Parse(args); err != nil {
		return 1
	}

	d, err := parseDate(date)
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}

	return c.run(plain, func(ctx context.Context, svc *search.Service) pipeline.Envelope {
		return svc.Text(ctx, id, d, format)
	})
}

type sectionCommand struct {
	*base
}

func (c *sectionCommand) Synopsis() string { return "Consulta uma seção pelo CID" }

func (c *sectionCommand) Help() string {
	return strings.TrimSpace(`
Usage: legifrance section -cid LEGISCTA000006089696
`)
}

func (c *sectionCommand) Run(args []string) int {
	var cid string
	f := c.flagSet("section")
	f.StringVar(&cid, "cid", "", "CID da seção")
	if err := f.Parse(args); err != nil {
		return 1
	}

	return c.run(false, func(ctx context.Context, svc *search.Service) pipeline.Envelope {
		return svc.Section(ctx, cid)
	})
}

type juriCommand struct {
	*base
}

func (c *juriCommand) Synopsis() string { return "Busca decisões da jurisprudência judicial" }

func (c *juriCommand) Help() string {
	return strings.TrimSpace(`
Usage: legifrance juri -search "bail commercial" [opções]

  Busca no fundo JURI e consulta cada decisão JURITEXT encontrada.

Options:

  -search       termo procurado
  -field        campo da busca (ALL, TITLE, ABSTRATS, TEXTE, RESUMES, NUM_AFFAIRE)
  -type         tipo da busca (padrão: UN_DES_MOTS)
  -juridiction  jurisdições separadas por vírgula ("Cour de cassation",
                "Juridictions d'appel", "Juridictions du premier degré")
  -publication  publicação no Bulletin (T, F ou T,F)
  -page-size    resultados por página
  -filter       expressão CEL aplicada a cada registro extraído
  -format       formata a resposta
  -plain        inclui o texto puro das decisões formatadas
`)
}

func (c *juriCommand) Run(args []string) int {
	var (
		q                      search.JuriQuery
		field, typ             string
		juridiction, bulletins string
		plain                  bool
	)
	f := c.flagSet("juri")
	f.StringVar(&q.Search, "search", "", "termo procurado")
	f.StringVar(&field, "field", "", "campo da busca")
	f.StringVar(&typ, "type", "", "tipo da busca")
	f.StringVar(&juridiction, "juridiction", "", "jurisdições")
	f.StringVar(&bulletins, "publication", "", "publicação no Bulletin")
	f.IntVar(&q.PageSize, "page-size", 0, "resultados por página")
	f.StringVar(&q.Filter, "filter", "", "expressão CEL")
	f.BoolVar(&q.Format, "format", false, "formata a resposta")
	f.BoolVar(&plain, "plain", false, "texto puro")
	if err := f.Parse(args); err != nil {
		return 1
	}

	q.Field = models.TypeChamp(strings.ToUpper(field))
	q.SearchType = models.TypeRecherche(strings.ToUpper(typ))
	q.Juridictions = splitList(juridiction)
	for _, p := range splitList(bulletins) {
		q.Publication = append(q.Publication, strings.ToUpper(p))
	}

	return c.run(plain, func(ctx context.Context, svc *search.Service) pipeline.Envelope {
		return svc.Juri(ctx, q)
	})
}

type decisionCommand struct {
	*base
}

func (c *decisionCommand) Synopsis() string { return "Consulta uma decisão pelo identificador" }

func (c *decisionCommand) Help() string {
	return strings.TrimSpace(`
Usage: legifrance decision -id JURITEXT000037999394 [-format] [-plain]
`)
}

func (c *decisionCommand) Run(args []string) int {
	var (
		id            string
		format, plain bool
	)
	f := c.flagSet("decision")
	f.StringVar(&id, "id", "", "identificador JURITEXT")
	f.BoolVar(&format, "format", false, "formata a resposta")
	f.BoolVar(&plain, "plain", false, "texto puro")
	if err := f.Parse(args); err != nil {
		return 1
	}

	return c.run(plain, func(ctx context.Context, svc *search.Service) pipeline.Envelope {
		return svc.Decision(ctx, id, format)
	})
}

// splitList separa valores por vírgula e descarta os vazios.
func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
