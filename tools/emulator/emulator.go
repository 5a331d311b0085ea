package emulator

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/raywall/legifrance-toolkit/tools/emulator/config"
	"github.com/raywall/legifrance-toolkit/tools/emulator/types"
	"github.com/rs/zerolog"
)

// PingRoute responde "pong" a qualquer token válido.
const PingRoute = "/consult/ping"

// Server emula o endpoint OAuth e a API Légifrance descritos por um
// config.ServerConfig.
type Server struct {
	cfg    config.ServerConfig
	router *mux.Router
	log    zerolog.Logger

	tokenCalls atomic.Int64
	issued     atomic.Int64

	mu     sync.RWMutex
	tokens map[string]bool
	hits   map[string]int
}

// Option customiza o Server.
type Option func(*Server)

// WithLogger injeta o logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// New monta o roteador do servidor emulado.
func New(cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg.WithDefaults(),
		router: mux.NewRouter(),
		log:    zerolog.Nop(),
		tokens: make(map[string]bool),
		hits:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.HandleFunc(s.cfg.TokenPath, s.handleToken).Methods(http.MethodPost)

	api := s.router.PathPrefix(s.cfg.BasePath).Subrouter()
	api.Use(s.authenticate)
	api.HandleFunc(PingRoute, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	}).Methods(http.MethodGet)

	for _, route := range s.cfg.Routes {
		api.HandleFunc(route.Path, config.NewHandler(route)).Methods(route.Method)
	}
	return s
}

// ServeHTTP implementa http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start escuta na porta configurada até o servidor falhar.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.log.Info().Int("port", s.cfg.Port).Str("base_path", s.cfg.BasePath).Msg("iniciando emulador")
	return http.ListenAndServe(addr, s)
}

// TokenCalls devolve o total de chamadas ao endpoint de token, inclusive
// as que falharam.
func (s *Server) TokenCalls() int { return int(s.tokenCalls.Load()) }

// Hits devolve quantas chamadas autenticadas a rota recebeu. route é
// relativa ao BasePath (ex.: "/search").
func (s *Server) Hits(route string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits[route]
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	call := s.tokenCalls.Add(1)

	if call <= int64(s.cfg.FailFirst) {
		s.log.Debug().Int64("call", call).Msg("falha simulada no token")
		config.SendResponse(w, http.StatusInternalServerError, types.OAuthError{Error: "server_error", Description: "falha simulada"})
		return
	}

	if err := r.ParseForm(); err != nil {
		config.SendResponse(w, http.StatusBadRequest, types.OAuthError{Error: "invalid_request"})
		return
	}
	if r.PostForm.Get("grant_type") != "client_credentials" {
		config.SendResponse(w, http.StatusBadRequest, types.OAuthError{Error: "unsupported_grant_type"})
		return
	}

	id, secret := r.PostForm.Get("client_id"), r.PostForm.Get("client_secret")
	if id == "" {
		id, secret, _ = r.BasicAuth()
	}
	if s.cfg.ClientID != "" && (id != s.cfg.ClientID || secret != s.cfg.ClientSecret) {
		config.SendResponse(w, http.StatusUnauthorized, types.OAuthError{Error: "invalid_client"})
		return
	}

	token := fmt.Sprintf("emu-token-%d", s.issued.Add(1))
	s.mu.Lock()
	s.tokens[token] = true
	s.mu.Unlock()

	config.SendResponse(w, http.StatusOK, types.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.TokenTTL,
		Scope:       r.PostForm.Get("scope"),
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		s.mu.Lock()
		valid := s.tokens[token]
		if valid {
			s.hits[strings.TrimPrefix(r.URL.Path, s.cfg.BasePath)]++
		}
		s.mu.Unlock()

		if !valid {
			config.SendResponse(w, http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
