package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mitchellh/cli"
	"github.com/raywall/legifrance-toolkit/pipeline"
	"github.com/raywall/legifrance-toolkit/pkg/cache"
	"github.com/raywall/legifrance-toolkit/pkg/client"
	"github.com/raywall/legifrance-toolkit/pkg/config"
	"github.com/raywall/legifrance-toolkit/pkg/credentials"
	"github.com/raywall/legifrance-toolkit/pkg/logger"
	"github.com/raywall/legifrance-toolkit/pkg/metrics"
	"github.com/raywall/legifrance-toolkit/pkg/observability"
	"github.com/raywall/legifrance-toolkit/pkg/search"
)

// session agrupa o que um comando precisa para falar com a API.
type session struct {
	client  *client.Client
	service *search.Service
	close   func()
}

// base é compartilhado por todos os comandos.
type base struct {
	ui         cli.Ui
	connect    func(ctx context.Context, configPath string, extra ...search.Option) (*session, error)
	configPath string
}

func (b *base) flagSet(name string) *flag.FlagSet {
	f := flag.NewFlagSet(name, flag.ContinueOnError)
	f.SetOutput(&uiWriter{ui: b.ui})
	f.StringVar(&b.configPath, "config", os.Getenv("LEGIFRANCE_CONFIG"), "[LEGIFRANCE_CONFIG] arquivo YAML de configuração (opcional)")
	return f
}

// print escreve o envelope em JSON e devolve 1 quando ele carrega erro.
func (b *base) print(env pipeline.Envelope) int {
	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		b.ui.Error(fmt.Sprintf("erro ao serializar resultado: %v", err))
		return 1
	}
	if env.IsError() {
		b.ui.Error(string(raw))
		return 1
	}
	b.ui.Output(string(raw))
	return 0
}

// connect monta cliente e serviço a partir da configuração.
func connect(ctx context.Context, configPath string, extra ...search.Option) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := credentials.NewInjector(cfg.Credentials.Region).Inject(ctx, cfg); err != nil {
		return nil, fmt.Errorf("erro ao resolver placeholders da configuração: %w", err)
	}
	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, err
	}

	log := logger.Configure(cfg.Logging, "cli")

	provider, err := observability.SetupMetrics(cfg.Metrics)
	if err != nil {
		return nil, err
	}
	recorder := metrics.NewRecorder(provider)

	source, err := credentials.NewSource(ctx, cfg.Credentials)
	if err != nil {
		return nil, err
	}

	opts := []client.Option{
		client.WithLogger(log),
		client.WithMetrics(recorder),
		client.WithCredentialSource(source),
	}
	respCache, err := cache.NewFromConfig(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if respCache != nil {
		opts = append(opts, client.WithCache(respCache, cfg.Cache.TTL, cfg.Cache.Routes...))
	}

	api, err := client.New(cfg.API, opts...)
	if err != nil {
		return nil, err
	}

	svc := search.New(api, append([]search.Option{
		search.WithLogger(log),
		search.WithMetrics(recorder),
		search.WithConcurrency(cfg.Search.Concurrency),
		search.WithPageSize(cfg.Search.PageSize),
		search.WithDefaultFilter(cfg.Search.Filter),
	}, extra...)...)

	return &session{
		client:  api,
		service: svc,
		close: func() {
			if err := api.Close(); err != nil {
				log.Warn().Err(err).Msg("erro ao encerrar cliente")
			}
			if c, ok := provider.(interface{ Close() error }); ok {
				_ = c.Close()
			}
		},
	}, nil
}

// parseDate aceita os formatos usuais (2026-10-01, 01/10/2026, RFC 3339...).
// Vazio devolve a data zero, que os pipelines tratam como hoje.
func parseDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseAny(value, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida '%s': %w", value, err)
	}
	return t, nil
}

// uiWriter direciona a ajuda do flag para o cli.Ui.
type uiWriter struct {
	ui cli.Ui
}

func (w *uiWriter) Write(p []byte) (int, error) {
	w.ui.Error(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
