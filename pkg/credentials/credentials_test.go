package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/raywall/legifrance-toolkit/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockSSM struct {
	GetParameterFunc func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

func (m *MockSSM) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return m.GetParameterFunc(ctx, params, optFns...)
}

type MockSecrets struct {
	GetSecretValueFunc func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func (m *MockSecrets) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	return m.GetSecretValueFunc(ctx, params, optFns...)
}

func ssmWith(values map[string]string) *MockSSM {
	return &MockSSM{
		GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
			v, ok := values[*params.Name]
			if !ok {
				return nil, errors.New("ParameterNotFound")
			}
			return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(v)}}, nil
		},
	}
}

func secretWith(value string) *MockSecrets {
	return &MockSecrets{
		GetSecretValueFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
			return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(value)}, nil
		},
	}
}

// --- Testes ---

func TestEnvSource(t *testing.T) {
	t.Run("Variáveis padrão", func(t *testing.T) {
		t.Setenv(DefaultClientIDVar, "id")
		t.Setenv(DefaultClientSecretVar, " secret ")

		pair, err := EnvSource{}.Credentials(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Pair{ClientID: "id", ClientSecret: "secret"}, pair)
	})

	t.Run("Variável ausente", func(t *testing.T) {
		t.Setenv(DefaultClientIDVar, "id")
		t.Setenv(DefaultClientSecretVar, "")

		_, err := EnvSource{}.Credentials(context.Background())
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("Variáveis customizadas", func(t *testing.T) {
		t.Setenv("MY_ID", "a")
		t.Setenv("MY_SECRET", "b")

		pair, err := EnvSource{ClientIDVar: "MY_ID", ClientSecretVar: "MY_SECRET"}.Credentials(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "a", pair.ClientID)
	})
}

func TestSecretsManagerSource(t *testing.T) {
	t.Run("Sucesso", func(t *testing.T) {
		src := NewSecretsManagerSource(secretWith(`{"client_id": "id", "client_secret": "s"}`), "legifrance")
		pair, err := src.Credentials(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Pair{ClientID: "id", ClientSecret: "s"}, pair)
	})

	t.Run("Segredo não JSON", func(t *testing.T) {
		src := NewSecretsManagerSource(secretWith("plain"), "legifrance")
		_, err := src.Credentials(context.Background())
		assert.Error(t, err)
	})

	t.Run("Campo ausente", func(t *testing.T) {
		src := NewSecretsManagerSource(secretWith(`{"client_id": "id"}`), "legifrance")
		_, err := src.Credentials(context.Background())
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})
}

func TestParameterStoreSource(t *testing.T) {
	var decrypted []bool
	mock := ssmWith(map[string]string{"/lf/id": "id", "/lf/secret": "s"})
	inner := mock.GetParameterFunc
	mock.GetParameterFunc = func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
		decrypted = append(decrypted, *params.WithDecryption)
		return inner(ctx, params, optFns...)
	}

	pair, err := NewParameterStoreSource(mock, "/lf/id", "/lf/secret").Credentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Pair{ClientID: "id", ClientSecret: "s"}, pair)
	assert.Equal(t, []bool{false, true}, decrypted, "apenas o segredo é decifrado")

	_, err = NewParameterStoreSource(mock, "/lf/id", "/lf/missing").Credentials(context.Background())
	assert.ErrorContains(t, err, "ParameterNotFound")
}

func TestResolvers(t *testing.T) {
	ssmResolve := SSMResolver(ssmWith(map[string]string{"/lf/url": "https://x"}))
	v, err := ssmResolve(context.Background(), "/lf/url")
	require.NoError(t, err)
	assert.Equal(t, "https://x", v)

	secretResolve := SecretResolver(secretWith(`{"client_secret": "abc"}`))
	v, err = secretResolve(context.Background(), "legifrance#client_secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	v, err = secretResolve(context.Background(), "legifrance")
	require.NoError(t, err)
	assert.Equal(t, `{"client_secret": "abc"}`, v)

	_, err = secretResolve(context.Background(), "legifrance#client_id")
	assert.Error(t, err)
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(context.Background(), config.CredentialsConf{Source: "env"})
	require.NoError(t, err)
	assert.IsType(t, EnvSource{}, src)

	_, err = NewSource(context.Background(), config.CredentialsConf{Source: "vault"})
	assert.Error(t, err)

	pair, err := StaticSource{ClientID: "a", ClientSecret: "b"}.Credentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", pair.ClientID)
}
