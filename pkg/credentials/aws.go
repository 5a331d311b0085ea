package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Interfaces para abstrair o SDK da AWS (Permite Mocking)
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// LoadAWSConfig carrega a configuração da AWS (env vars, profile, IAM role).
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("credentials: falha ao carregar configuração AWS: %w", err)
	}
	return cfg, nil
}

func newSecretsClient(cfg aws.Config) SecretsClient { return secretsmanager.NewFromConfig(cfg) }
func newSSMClient(cfg aws.Config) SSMClient         { return ssm.NewFromConfig(cfg) }

// SecretsManagerSource lê um segredo JSON {"client_id": "...", "client_secret": "..."}.
type SecretsManagerSource struct {
	client   SecretsClient
	secretID string
}

func NewSecretsManagerSource(client SecretsClient, secretID string) *SecretsManagerSource {
	return &SecretsManagerSource{client: client, secretID: secretID}
}

func (s *SecretsManagerSource) Credentials(ctx context.Context) (Pair, error) {
	raw, err := getSecret(ctx, s.client, s.secretID)
	if err != nil {
		return Pair{}, err
	}

	var doc struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Pair{}, fmt.Errorf("credentials: segredo %s não é um JSON válido: %w", s.secretID, err)
	}
	return Pair{ClientID: doc.ClientID, ClientSecret: doc.ClientSecret}.validate("secretsmanager " + s.secretID)
}

// ParameterStoreSource lê id e segredo de dois parâmetros do SSM.
type ParameterStoreSource struct {
	client      SSMClient
	idParam     string
	secretParam string
}

func NewParameterStoreSource(client SSMClient, idParam, secretParam string) *ParameterStoreSource {
	return &ParameterStoreSource{client: client, idParam: idParam, secretParam: secretParam}
}

func (s *ParameterStoreSource) Credentials(ctx context.Context) (Pair, error) {
	id, err := getParameter(ctx, s.client, s.idParam, false)
	if err != nil {
		return Pair{}, err
	}
	secret, err := getParameter(ctx, s.client, s.secretParam, true)
	if err != nil {
		return Pair{}, err
	}
	return Pair{ClientID: id, ClientSecret: secret}.validate("ssm " + s.idParam)
}

// SSMResolver expõe o SSM para o injector de configuração (${ssm./path}).
func SSMResolver(client SSMClient) func(ctx context.Context, key string) (string, error) {
	return func(ctx context.Context, key string) (string, error) {
		return getParameter(ctx, client, key, true)
	}
}

// SecretResolver expõe o Secrets Manager para o injector (${secret.id}).
// Um sufixo "#campo" extrai uma chave de um segredo JSON.
func SecretResolver(client SecretsClient) func(ctx context.Context, key string) (string, error) {
	return func(ctx context.Context, key string) (string, error) {
		id, field := key, ""
		if i := strings.LastIndex(key, "#"); i >= 0 {
			id, field = key[:i], key[i+1:]
		}

		raw, err := getSecret(ctx, client, id)
		if err != nil || field == "" {
			return raw, err
		}

		var doc map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return "", fmt.Errorf("credentials: segredo %s não é um JSON válido: %w", id, err)
		}
		v, ok := doc[field]
		if !ok {
			return "", fmt.Errorf("credentials: campo '%s' ausente no segredo %s", field, id)
		}
		return fmt.Sprintf("%v", v), nil
	}
}

func getParameter(ctx context.Context, client SSMClient, path string, decrypt bool) (string, error) {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(decrypt),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SSM GetParameter %s: %w", path, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parâmetro SSM %s sem valor", path)
	}
	return *out.Parameter.Value, nil
}

func getSecret(ctx context.Context, client SecretsClient, secretID string) (string, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SecretsManager %s: %w", secretID, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("segredo %s sem SecretString", secretID)
	}
	return *out.SecretString, nil
}
