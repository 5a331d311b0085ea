package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/raywall/legifrance-toolkit/pkg/auth"
	"github.com/raywall/legifrance-toolkit/pkg/cache"
	"github.com/raywall/legifrance-toolkit/pkg/config"
	"github.com/raywall/legifrance-toolkit/pkg/credentials"
	"github.com/raywall/legifrance-toolkit/pkg/metrics"
	"github.com/rs/zerolog"
)

// HeaderRequestID identifica cada chamada nos logs dos dois lados.
const HeaderRequestID = "X-Request-Id"

// DefaultPingRoute é a rota leve usada por Ping.
const DefaultPingRoute = "consult/ping"

// TokenProvider entrega um access token válido. Implementado por *auth.Manager.
type TokenProvider interface {
	EnsureValidToken(ctx context.Context) (string, error)
	UpdateCredentials(clientID, clientSecret string)
	Close() error
}

// Client executa chamadas autenticadas à API Légifrance.
//
// Um Client mantém um único pool de conexões, usado tanto pelo endpoint de
// token quanto pelas rotas da API, e pode ser usado por várias goroutines.
type Client struct {
	cfg        config.APIConfig
	baseURL    string
	httpClient *http.Client
	ownsHTTP   bool
	tokens     TokenProvider

	cache       cache.Cache
	cacheTTL    time.Duration
	cacheRoutes []string

	source  credentials.Source
	log     zerolog.Logger
	metrics *metrics.Recorder

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Option customiza o Client.
type Option func(*Client)

// WithHTTPClient usa um cliente HTTP externo. O Client não o encerra.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTokenProvider substitui o gerenciador de token padrão.
func WithTokenProvider(p TokenProvider) Option {
	return func(c *Client) { c.tokens = p }
}

// WithLogger injeta o logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics injeta o registrador de métricas.
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Client) { c.metrics = r }
}

// WithCache habilita o cache de respostas para as rotas cujo prefixo está
// em routes (por padrão "consult/").
func WithCache(ch cache.Cache, ttl time.Duration, routes ...string) Option {
	return func(c *Client) {
		c.cache = ch
		c.cacheTTL = ttl
		if len(routes) > 0 {
			c.cacheRoutes = routes
		}
	}
}

// WithCredentialSource define de onde UpdateAPIKeys recarrega as credenciais.
func WithCredentialSource(s credentials.Source) Option {
	return func(c *Client) { c.source = s }
}

// New cria um Client. Credenciais ausentes falham imediatamente.
func New(cfg config.APIConfig, opts ...Option) (*Client, error) {
	cfg = withDefaults(cfg)
	if err := config.NewValidator().ValidateAPI(cfg); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:         cfg,
		baseURL:     cfg.APIURL,
		source:      credentials.EnvSource{},
		log:         zerolog.Nop(),
		cacheRoutes: []string{"consult/"},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = NewHTTPClient(cfg.ConnectTimeout, cfg.ReadTimeout)
		c.ownsHTTP = true
	}

	if c.tokens == nil {
		c.tokens = auth.NewOAuth2Manager(
			auth.Credentials{
				ClientID:     cfg.ClientID,
				ClientSecret: cfg.ClientSecret,
				TokenURL:     cfg.TokenURL,
				Scope:        cfg.Scope,
			},
			c.httpClient,
			auth.WithRetryPolicy(cfg.TokenRetry.MaxAttempts, cfg.TokenRetry.Delay),
			auth.WithLogger(c.log.With().Str("component", "auth").Logger()),
			auth.WithMetrics(c.metrics),
		)
	}

	return c, nil
}

func withDefaults(cfg config.APIConfig) config.APIConfig {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Scope == "" {
		cfg.Scope = "openid"
	}
	if cfg.PingRoute == "" {
		cfg.PingRoute = DefaultPingRoute
	}
	if cfg.TokenRetry.MaxAttempts <= 0 {
		cfg.TokenRetry.MaxAttempts = auth.DefaultMaxAttempts
	}
	if cfg.TokenRetry.Delay == 0 {
		cfg.TokenRetry.Delay = auth.DefaultRetryDelay
	}
	return cfg
}

// Post envia body como JSON para a rota e devolve a resposta 2xx.
// Respostas não-2xx viram *APIError; nada é repetido automaticamente.
func (c *Client) Post(ctx context.Context, route string, body interface{}) (*Response, error) {
	if isNil(body) {
		c.log.Warn().Str("route", route).Msg("corpo nulo, requisição não enviada")
		return nil, invalidArgument("corpo da requisição é obrigatório (rota '%s')", route)
	}
	if strings.TrimSpace(route) == "" {
		return nil, invalidArgument("rota vazia")
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, invalidArgument("corpo não serializável: %v", err)
	}

	var key string
	if c.cacheable(route) {
		key = cache.Key(route, payload)
		if cached, ok := c.lookup(ctx, key); ok {
			return &Response{StatusCode: http.StatusOK, Body: cached, Outcome: OutcomeSuccess, Cached: true}, nil
		}
	}

	resp, err := c.do(ctx, http.MethodPost, route, payload, jsonHeaders)
	if err != nil {
		return nil, err
	}
	if resp.Outcome != OutcomeSuccess {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(resp.Body), Route: route, Outcome: resp.Outcome}
	}

	if key != "" {
		if err := c.cache.Set(ctx, key, resp.Body, c.cacheTTL); err != nil {
			c.log.Warn().Err(err).Str("route", route).Msg("falha ao gravar no cache")
		}
	}
	return resp, nil
}

// Get executa um GET autenticado; respostas não-2xx viram *APIError.
func (c *Client) Get(ctx context.Context, route string) (*Response, error) {
	if strings.TrimSpace(route) == "" {
		return nil, invalidArgument("rota vazia")
	}

	resp, err := c.do(ctx, http.MethodGet, route, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.Outcome != OutcomeSuccess {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(resp.Body), Route: route, Outcome: resp.Outcome}
	}
	return resp, nil
}

// Ping verifica a conectividade. Devolve true apenas para HTTP 200; outros
// status devolvem false sem erro. Falhas de transporte e de autenticação
// são retornadas como erro. route vazia usa a rota configurada.
func (c *Client) Ping(ctx context.Context, route string) (bool, error) {
	if route == "" {
		route = c.cfg.PingRoute
	}

	resp, err := c.do(ctx, http.MethodGet, route, nil, pingHeaders)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Str("body", truncate(resp.Body)).Msg("ping falhou")
		return false, nil
	}
	c.log.Info().Msg("ping ok: conexão com a API Légifrance estabelecida")
	return true, nil
}

// UpdateAPIKeys troca as credenciais. Com id e segredo informados eles são
// usados diretamente; caso contrário são recarregados da origem configurada
// (variáveis de ambiente por padrão).
func (c *Client) UpdateAPIKeys(ctx context.Context, clientID, clientSecret string) error {
	if clientID != "" && clientSecret != "" {
		c.tokens.UpdateCredentials(clientID, clientSecret)
		return nil
	}
	if c.source == nil {
		return fmt.Errorf("nenhuma origem de credenciais configurada: %w", credentials.ErrMissingCredentials)
	}

	pair, err := c.source.Credentials(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("falha ao recarregar credenciais")
		return err
	}
	c.tokens.UpdateCredentials(pair.ClientID, pair.ClientSecret)
	return nil
}

// Close libera o pool de conexões, o gerenciador de token e o cache.
// Chamadas repetidas devolvem o mesmo resultado.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)

		var result *multierror.Error
		if err := c.tokens.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("token manager: %w", err))
		}
		if c.cache != nil {
			if err := c.cache.Close(); err != nil {
				result = multierror.Append(result, fmt.Errorf("cache: %w", err))
			}
		}
		if c.ownsHTTP {
			c.httpClient.CloseIdleConnections()
		}
		c.closeErr = result.ErrorOrNil()
	})
	return c.closeErr
}

type headerFunc func(h http.Header)

func jsonHeaders(h http.Header) {
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
}

func pingHeaders(h http.Header) {
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "text/plain")
}

// do executa a troca HTTP e devolve a resposta de qualquer status.
// Apenas falhas de autenticação e de transporte viram erro aqui.
func (c *Client) do(ctx context.Context, method, route string, payload []byte, headers headerFunc) (*Response, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	token, err := c.tokens.EnsureValidToken(ctx)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(route), body)
	if err != nil {
		return nil, invalidArgument("requisição inválida para '%s': %v", route, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(HeaderRequestID, requestID)
	if headers != nil {
		headers(req.Header)
	}

	log := c.log.With().Str("method", method).Str("route", route).Str("request_id", requestID).Logger()
	log.Debug().Msg("enviando requisição")

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RequestDone(route, string(OutcomeTransportFailure), time.Since(start))
		log.Error().Err(err).Msg("falha de transporte")
		return nil, &APIError{Route: route, Outcome: OutcomeTransportFailure, Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.metrics.RequestDone(route, string(OutcomeTransportFailure), time.Since(start))
		return nil, &APIError{StatusCode: httpResp.StatusCode, Route: route, Outcome: OutcomeTransportFailure, Err: err}
	}

	outcome := Classify(httpResp.StatusCode)
	elapsed := time.Since(start)
	c.metrics.RequestDone(route, string(outcome), elapsed)

	event := log.Info()
	if outcome != OutcomeSuccess {
		event = log.Warn().Str("body", truncate(respBody))
	}
	event.Int("status", httpResp.StatusCode).Dur("elapsed", elapsed).Msg("resposta recebida")

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
		Outcome:    outcome,
		RequestID:  requestID,
	}, nil
}

func (c *Client) url(route string) string {
	if strings.HasSuffix(c.baseURL, "/") {
		return c.baseURL + strings.TrimPrefix(route, "/")
	}
	return c.baseURL + route
}

func (c *Client) cacheable(route string) bool {
	if c.cache == nil {
		return false
	}
	for _, prefix := range c.cacheRoutes {
		if strings.HasPrefix(route, prefix) {
			return true
		}
	}
	return false
}

func (c *Client) lookup(ctx context.Context, key string) ([]byte, bool) {
	val, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Msg("falha ao ler do cache")
		return nil, false
	}
	c.metrics.CacheLookup(ok)
	return val, ok
}

// isNil trata também ponteiros, mapas e slices nulos dentro de interface.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}

// IsInvalidArgument informa se err é uma falha local de argumento.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
