package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// Config representa a estrutura do JSON de configuração (Lista de Servers)
type Config []ServerConfig

// Padrões de um servidor emulado.
const (
	DefaultBasePath  = "/api"
	DefaultTokenPath = "/oauth/token"
	DefaultTokenTTL  = 3600
)

// ServerConfig descreve um servidor: porta, endpoint de token e rotas da
// API protegidas por bearer token.
type ServerConfig struct {
	Port int `json:"port"`
	// BasePath prefixa as rotas da API (padrão /api).
	BasePath  string `json:"base_path,omitempty"`
	TokenPath string `json:"token_path,omitempty"`
	// ClientID e ClientSecret, quando informados, são exigidos no token.
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
	// TokenTTL é o expires_in emitido, em segundos.
	TokenTTL int `json:"token_ttl,omitempty"`
	// FailFirst faz as primeiras N chamadas ao token falharem com 500.
	FailFirst int           `json:"fail_first,omitempty"`
	Routes    []RouteConfig `json:"routes"`
}

// WithDefaults preenche os campos opcionais.
func (s ServerConfig) WithDefaults() ServerConfig {
	if s.BasePath == "" {
		s.BasePath = DefaultBasePath
	}
	if s.TokenPath == "" {
		s.TokenPath = DefaultTokenPath
	}
	if s.TokenTTL <= 0 {
		s.TokenTTL = DefaultTokenTTL
	}
	return s
}

// Load carrega a configuração do arquivo padrão (emulator.json) ou via variável de ambiente.
// Retorna uma configuração vazia se o arquivo não existir, para não quebrar a inicialização.
func Load() Config {
	cfg := make(Config, 0)

	path := os.Getenv("EMULATOR_CONFIG_PATH")
	if path == "" {
		path = "emulator.json"
	}

	if err := cfg.LoadFromFile(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("iniciando sem rotas mockadas")
		return cfg
	}

	return cfg
}

func (cfg *Config) LoadFromFile(filepath string) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("erro ao ler arquivo: %v", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("erro ao parsear json: %v", err)
	}
	return nil
}
