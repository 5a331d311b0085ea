package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingCredentials indica que client id ou client secret não foram
// informados. A validação falha cedo em vez de esperar pelo primeiro token.
var ErrMissingCredentials = errors.New("credenciais Légifrance ausentes: defina LEGIFRANCE_CLIENT_ID e LEGIFRANCE_CLIENT_SECRET")

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuração nula")
	}

	// Credenciais têm mensagem própria para facilitar o diagnóstico
	if strings.TrimSpace(cfg.API.ClientID) == "" || strings.TrimSpace(cfg.API.ClientSecret) == "" {
		return ErrMissingCredentials
	}

	// 1. Validação Estrutural (Tags do struct: required, oneof, etc)
	if err := cv.validate.Struct(cfg); err != nil {
		return structuralError(err)
	}

	// 2. Validação Semântica
	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

// ValidateAPI valida apenas o bloco da API, usado por quem monta o cliente
// sem passar pelo Load.
func (cv *ConfigValidator) ValidateAPI(api APIConfig) error {
	if strings.TrimSpace(api.ClientID) == "" || strings.TrimSpace(api.ClientSecret) == "" {
		return ErrMissingCredentials
	}
	if err := cv.validate.Struct(api); err != nil {
		return structuralError(err)
	}
	return nil
}

func structuralError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var errMsgs []string
		for _, e := range validationErrors {
			errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
		}
		return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
	}
	return fmt.Errorf("erro de validação estrutural: %w", err)
}

func (cv *ConfigValidator) validateSemantics(cfg *Config) error {
	// As rotas são concatenadas à URL base, que precisa terminar em "/"
	u, err := url.Parse(cfg.API.APIURL)
	if err != nil {
		return fmt.Errorf("api_url inválida: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		return fmt.Errorf("api_url deve terminar com '/': %s", cfg.API.APIURL)
	}

	if cfg.API.ConnectTimeout > cfg.API.ReadTimeout {
		return fmt.Errorf("connect_timeout (%s) maior que read_timeout (%s)", cfg.API.ConnectTimeout, cfg.API.ReadTimeout)
	}

	if cfg.Cache.Backend != "none" && cfg.Cache.Backend != "" && len(cfg.Cache.Routes) == 0 {
		return fmt.Errorf("cache habilitado sem rotas configuradas")
	}

	return nil
}
