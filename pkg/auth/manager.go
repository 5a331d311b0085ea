package auth

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/raywall/legifrance-toolkit/pkg/metrics"
	"github.com/rs/zerolog"
)

const (
	// DefaultMaxAttempts é o número de tentativas de obtenção do token.
	DefaultMaxAttempts = 3
	// DefaultRetryDelay é a espera fixa entre tentativas, sem jitter.
	DefaultRetryDelay = 5 * time.Second
)

// TokenFetcher define a função que sabe como buscar um novo token com
// as credenciais informadas. ttl é o expires_in em segundos inteiros.
type TokenFetcher func(ctx context.Context, creds Credentials) (accessToken string, ttl time.Duration, err error)

// Manager gerencia o ciclo de vida do token de forma thread-safe.
//
// O token é obtido sob demanda: EnsureValidToken devolve o token atual se
// ainda for válido e só vai à rede quando ele está ausente ou expirado.
// Chamadas concorrentes compartilham uma única busca.
type Manager struct {
	fetcher TokenFetcher

	credMu     sync.RWMutex
	creds      Credentials
	generation uint64

	token   atomic.Pointer[Token]
	fetchMu sync.Mutex

	maxAttempts int
	delay       time.Duration
	newTimer    func() backoff.Timer
	now         func() time.Time

	httpClient *http.Client
	log        zerolog.Logger
	metrics    *metrics.Recorder

	closed    atomic.Bool
	closeOnce sync.Once
}

// Option customiza o Manager.
type Option func(*Manager)

// WithClock substitui o relógio usado na validade do token.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithRetryPolicy define o total de tentativas e a espera fixa entre elas.
func WithRetryPolicy(maxAttempts int, delay time.Duration) Option {
	return func(m *Manager) {
		if maxAttempts > 0 {
			m.maxAttempts = maxAttempts
		}
		if delay >= 0 {
			m.delay = delay
		}
	}
}

// WithTimer substitui o timer da espera entre tentativas (usado em testes).
func WithTimer(newTimer func() backoff.Timer) Option {
	return func(m *Manager) { m.newTimer = newTimer }
}

// WithLogger injeta o logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithMetrics injeta o registrador de métricas.
func WithMetrics(r *metrics.Recorder) Option {
	return func(m *Manager) { m.metrics = r }
}

// NewManager cria um gerenciador genérico.
func NewManager(creds Credentials, fetcher TokenFetcher, opts ...Option) *Manager {
	m := &Manager{
		fetcher:     fetcher,
		creds:       creds,
		maxAttempts: DefaultMaxAttempts,
		delay:       DefaultRetryDelay,
		now:         time.Now,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewOAuth2Manager é um helper que cria o Manager já configurado para
// Client Credentials sobre o cliente HTTP compartilhado.
func NewOAuth2Manager(creds Credentials, httpClient *http.Client, opts ...Option) *Manager {
	m := NewManager(creds, NewOAuth2Fetcher(httpClient), opts...)
	m.httpClient = httpClient
	return m
}

// EnsureValidToken devolve um access token válido, buscando um novo
// apenas quando necessário.
func (m *Manager) EnsureValidToken(ctx context.Context) (string, error) {
	if m.closed.Load() {
		return "", ErrClosed
	}
	if t := m.token.Load(); t != nil && t.ValidAt(m.now()) {
		return t.AccessToken, nil
	}

	m.fetchMu.Lock()
	defer m.fetchMu.Unlock()

	// Outra goroutine pode ter renovado enquanto esperávamos
	if t := m.token.Load(); t != nil && t.ValidAt(m.now()) {
		return t.AccessToken, nil
	}

	t, err := m.fetchNewToken(ctx)
	if err != nil {
		return "", err
	}
	return t.AccessToken, nil
}

// FetchNewToken busca um token novo, com até maxAttempts tentativas e
// espera fixa entre elas, e o armazena em caso de sucesso.
func (m *Manager) FetchNewToken(ctx context.Context) (Token, error) {
	m.fetchMu.Lock()
	defer m.fetchMu.Unlock()
	return m.fetchNewToken(ctx)
}

func (m *Manager) fetchNewToken(ctx context.Context) (Token, error) {
	if m.closed.Load() {
		return Token{}, ErrClosed
	}

	m.credMu.RLock()
	creds, generation := m.creds, m.generation
	m.credMu.RUnlock()

	var (
		attempt int
		tok     Token
	)
	operation := func() error {
		attempt++
		issuedAt := m.now()
		access, ttl, err := m.fetcher(ctx, creds)
		if err != nil {
			m.metrics.TokenFetched("failure")
			m.log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", m.maxAttempts).Msg("falha ao obter token")
			return err
		}
		tok = Token{AccessToken: access, IssuedAt: issuedAt, TTL: ttl}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(m.delay), uint64(m.maxAttempts-1)),
		ctx,
	)

	var timer backoff.Timer
	if m.newTimer != nil {
		timer = m.newTimer()
	}

	if err := backoff.RetryNotifyWithTimer(operation, policy, nil, timer); err != nil {
		m.log.Error().Err(err).Int("attempts", attempt).Msg("desistindo de obter token")
		return Token{}, &AuthenticationError{Attempts: attempt, Err: err}
	}

	m.metrics.TokenFetched("success")
	m.log.Debug().Dur("ttl", tok.TTL).Int("attempt", attempt).Msg("token obtido")

	m.credMu.RLock()
	stale := generation != m.generation
	m.credMu.RUnlock()
	if !stale {
		m.token.Store(&tok)
	}

	return tok, nil
}

// UpdateCredentials troca as credenciais. Se algo mudou, o token atual é
// descartado; o próximo EnsureValidToken busca um novo.
func (m *Manager) UpdateCredentials(clientID, clientSecret string) {
	m.credMu.Lock()
	defer m.credMu.Unlock()

	if m.creds.ClientID == clientID && m.creds.ClientSecret == clientSecret {
		return
	}
	m.creds.ClientID = clientID
	m.creds.ClientSecret = clientSecret
	m.generation++
	m.token.Store(nil)

	m.log.Info().Str("client_id", clientID).Msg("credenciais atualizadas, token descartado")
}

// Credentials devolve uma cópia das credenciais atuais.
func (m *Manager) Credentials() Credentials {
	m.credMu.RLock()
	defer m.credMu.RUnlock()
	return m.creds
}

// Token devolve o token armazenado, se houver.
func (m *Manager) Token() (Token, bool) {
	t := m.token.Load()
	if t == nil {
		return Token{}, false
	}
	return *t, true
}

// Close descarta o token e libera as conexões ociosas do cliente HTTP
// associado. Pode ser chamado mais de uma vez.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		m.closed.Store(true)
		m.token.Store(nil)
		if m.httpClient != nil {
			m.httpClient.CloseIdleConnections()
		}
	})
	return nil
}
