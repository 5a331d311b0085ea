// Package credentials resolve o par client id / client secret do
// Légifrance a partir de variáveis de ambiente ou de serviços da AWS.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/raywall/legifrance-toolkit/pkg/config"
)

const (
	DefaultClientIDVar     = "LEGIFRANCE_CLIENT_ID"
	DefaultClientSecretVar = "LEGIFRANCE_CLIENT_SECRET"
)

// ErrMissingCredentials indica que a origem não forneceu id ou segredo.
var ErrMissingCredentials = errors.New("credentials: client id ou client secret ausente")

// Pair é o par de credenciais da aplicação.
type Pair struct {
	ClientID     string
	ClientSecret string
}

func (p Pair) validate(origin string) (Pair, error) {
	p.ClientID = strings.TrimSpace(p.ClientID)
	p.ClientSecret = strings.TrimSpace(p.ClientSecret)
	if p.ClientID == "" || p.ClientSecret == "" {
		return Pair{}, fmt.Errorf("%w (origem: %s)", ErrMissingCredentials, origin)
	}
	return p, nil
}

// Source fornece credenciais sob demanda.
type Source interface {
	Credentials(ctx context.Context) (Pair, error)
}

// EnvSource lê as credenciais de variáveis de ambiente no momento da chamada.
// Campos vazios usam LEGIFRANCE_CLIENT_ID e LEGIFRANCE_CLIENT_SECRET.
type EnvSource struct {
	ClientIDVar     string
	ClientSecretVar string
}

func (s EnvSource) Credentials(_ context.Context) (Pair, error) {
	idVar, secretVar := s.ClientIDVar, s.ClientSecretVar
	if idVar == "" {
		idVar = DefaultClientIDVar
	}
	if secretVar == "" {
		secretVar = DefaultClientSecretVar
	}
	return Pair{
		ClientID:     os.Getenv(idVar),
		ClientSecret: os.Getenv(secretVar),
	}.validate("env " + idVar + "/" + secretVar)
}

// StaticSource devolve sempre o mesmo par. Útil em testes.
type StaticSource Pair

func (s StaticSource) Credentials(_ context.Context) (Pair, error) {
	return Pair(s).validate("static")
}

// NewSource escolhe a origem conforme a configuração.
func NewSource(ctx context.Context, conf config.CredentialsConf) (Source, error) {
	switch conf.Source {
	case "", "env":
		return EnvSource{}, nil
	case "aws-secretsmanager":
		cfg, err := LoadAWSConfig(ctx, conf.Region)
		if err != nil {
			return nil, err
		}
		return NewSecretsManagerSource(newSecretsClient(cfg), conf.SecretID), nil
	case "aws-ssm":
		cfg, err := LoadAWSConfig(ctx, conf.Region)
		if err != nil {
			return nil, err
		}
		return NewParameterStoreSource(newSSMClient(cfg), conf.ClientIDParam, conf.SecretParam), nil
	default:
		return nil, fmt.Errorf("credentials: origem desconhecida '%s'", conf.Source)
	}
}
