package auth

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/raywall/legifrance-toolkit/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimer dispara imediatamente e guarda as esperas pedidas
type fakeTimer struct {
	mu    sync.Mutex
	waits []time.Duration
	ch    chan time.Time
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{ch: make(chan time.Time, 1)}
}

func (f *fakeTimer) Start(d time.Duration) {
	f.mu.Lock()
	f.waits = append(f.waits, d)
	f.mu.Unlock()
	f.ch <- time.Now()
}

func (f *fakeTimer) Stop()               {}
func (f *fakeTimer) C() <-chan time.Time { return f.ch }

func (f *fakeTimer) Waits() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.waits...)
}

// fakeClock permite avançar o tempo manualmente
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// MockFetcher simula a obtenção de tokens
func mockFetcher(calls *int32, token string, ttl time.Duration, err error) TokenFetcher {
	return func(ctx context.Context, creds Credentials) (string, time.Duration, error) {
		atomic.AddInt32(calls, 1)
		return token, ttl, err
	}
}

var testCreds = Credentials{ClientID: "id", ClientSecret: "secret", TokenURL: "http://localhost/token", Scope: "openid"}

func TestToken_Validity(t *testing.T) {
	issued := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	tok := Token{AccessToken: "abc", IssuedAt: issued, TTL: 3600 * time.Second}

	assert.True(t, tok.ValidAt(issued.Add(3599*time.Second)))
	assert.False(t, tok.ValidAt(issued.Add(3600*time.Second)), "validade é estritamente menor que o ttl")
	assert.False(t, Token{IssuedAt: issued, TTL: time.Hour}.ValidAt(issued), "token vazio nunca é válido")
	assert.Equal(t, issued.Add(time.Hour), tok.ExpiresAt())
}

func TestCredentials_StringMasksSecret(t *testing.T) {
	s := testCreds.String()
	assert.Contains(t, s, `"id"`)
	assert.NotContains(t, s, "secret\"")
	assert.Contains(t, s, "****")
}

func TestManager_EnsureValidToken(t *testing.T) {
	t.Run("Deve buscar uma vez e reutilizar o token válido", func(t *testing.T) {
		var calls int32
		clock := &fakeClock{now: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
		mgr := NewManager(testCreds, mockFetcher(&calls, "abc", 3600*time.Second, nil), WithClock(clock.Now))

		token, err := mgr.EnsureValidToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "abc", token)

		clock.Advance(3599 * time.Second)
		token, err = mgr.EnsureValidToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "abc", token)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "token válido não deve gerar nova busca")
	})

	t.Run("Deve renovar quando expira", func(t *testing.T) {
		var calls int32
		clock := &fakeClock{now: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
		mgr := NewManager(testCreds, mockFetcher(&calls, "abc", 3600*time.Second, nil), WithClock(clock.Now))

		_, err := mgr.EnsureValidToken(context.Background())
		require.NoError(t, err)

		clock.Advance(3601 * time.Second)
		_, err = mgr.EnsureValidToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

		tok, ok := mgr.Token()
		require.True(t, ok)
		assert.Equal(t, clock.Now(), tok.IssuedAt)
	})

	t.Run("Chamadas concorrentes compartilham a busca", func(t *testing.T) {
		var calls int32
		fetcher := func(ctx context.Context, creds Credentials) (string, time.Duration, error) {
			atomic.AddInt32(&calls, 1)
			time.Sleep(20 * time.Millisecond)
			return "shared", time.Hour, nil
		}
		mgr := NewManager(testCreds, fetcher)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				token, err := mgr.EnsureValidToken(context.Background())
				assert.NoError(t, err)
				assert.Equal(t, "shared", token)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestManager_FetchNewToken_Retry(t *testing.T) {
	t.Run("Sucesso na terceira tentativa com espera fixa de 5s", func(t *testing.T) {
		var calls int32
		fetcher := func(ctx context.Context, creds Credentials) (string, time.Duration, error) {
			if atomic.AddInt32(&calls, 1) < 3 {
				return "", 0, errors.New("connection refused")
			}
			return "third", time.Hour, nil
		}
		timer := newFakeTimer()
		mgr := NewManager(testCreds, fetcher, WithTimer(func() backoff.Timer { return timer }))

		tok, err := mgr.FetchNewToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "third", tok.AccessToken)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
		assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, timer.Waits())

		// o token obtido fica em cache e não gera nova busca
		token, err := mgr.EnsureValidToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "third", token)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("Três falhas geram AuthenticationError", func(t *testing.T) {
		var calls int32
		cause := errors.New("oauth provider retornou 401")
		mem := &metrics.MemoryProvider{}
		mgr := NewManager(testCreds, mockFetcher(&calls, "", 0, cause),
			WithTimer(func() backoff.Timer { return newFakeTimer() }),
			WithMetrics(metrics.NewRecorder(mem)))

		_, err := mgr.EnsureValidToken(context.Background())

		var authErr *AuthenticationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, 3, authErr.Attempts)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "não deve haver quarta tentativa")
		assert.Equal(t, float64(3), mem.Total(metrics.TokenFetch, "outcome:failure"))

		_, ok := mgr.Token()
		assert.False(t, ok)
	})

	t.Run("Política customizada", func(t *testing.T) {
		var calls int32
		timer := newFakeTimer()
		mgr := NewManager(testCreds, mockFetcher(&calls, "", 0, errors.New("boom")),
			WithRetryPolicy(1, time.Second),
			WithTimer(func() backoff.Timer { return timer }))

		_, err := mgr.FetchNewToken(context.Background())
		assert.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.Empty(t, timer.Waits())
	})

	t.Run("Cancelamento interrompe as tentativas", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var calls int32
		fetcher := func(context.Context, Credentials) (string, time.Duration, error) {
			atomic.AddInt32(&calls, 1)
			cancel()
			return "", 0, errors.New("timeout")
		}
		mgr := NewManager(testCreds, fetcher, WithRetryPolicy(3, time.Hour))

		_, err := mgr.FetchNewToken(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestManager_UpdateCredentials(t *testing.T) {
	var seen []Credentials
	var mu sync.Mutex
	fetcher := func(ctx context.Context, creds Credentials) (string, time.Duration, error) {
		mu.Lock()
		seen = append(seen, creds)
		mu.Unlock()
		return "tok-" + creds.ClientID, time.Hour, nil
	}
	mgr := NewManager(testCreds, fetcher)

	_, err := mgr.EnsureValidToken(context.Background())
	require.NoError(t, err)

	// Mesmas credenciais: nada muda
	mgr.UpdateCredentials("id", "secret")
	_, ok := mgr.Token()
	assert.True(t, ok)

	// Novas credenciais: token descartado sem ir à rede
	mgr.UpdateCredentials("id2", "secret2")
	_, ok = mgr.Token()
	assert.False(t, ok)
	assert.Len(t, seen, 1)

	token, err := mgr.EnsureValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-id2", token)
	assert.Equal(t, "id2", seen[1].ClientID)
	assert.Equal(t, "secret2", seen[1].ClientSecret)
	assert.Equal(t, testCreds.TokenURL, mgr.Credentials().TokenURL)
}

func TestManager_Close(t *testing.T) {
	var calls int32
	mgr := NewManager(testCreds, mockFetcher(&calls, "abc", time.Hour, nil))
	_, err := mgr.EnsureValidToken(context.Background())
	require.NoError(t, err)

	require.NoError(t, mgr.Close())
	require.NoError(t, mgr.Close(), "Close deve ser idempotente")

	_, err = mgr.EnsureValidToken(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}
