package credentials

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/raywall/legifrance-toolkit/pkg/config/injector"
)

// NewInjector cria o injector com os resolvers ${env.X}, ${ssm./path} e
// ${secret.id#campo}. A configuração AWS só é carregada quando um
// placeholder da AWS aparece.
func NewInjector(region string) *injector.Injector {
	lazy := &lazyAWS{region: region}
	return injector.New(
		injector.WithResolver("ssm", func(ctx context.Context, key string) (string, error) {
			cfg, err := lazy.config(ctx)
			if err != nil {
				return "", err
			}
			return SSMResolver(newSSMClient(cfg))(ctx, key)
		}),
		injector.WithResolver("secret", func(ctx context.Context, key string) (string, error) {
			cfg, err := lazy.config(ctx)
			if err != nil {
				return "", err
			}
			return SecretResolver(newSecretsClient(cfg))(ctx, key)
		}),
	)
}

type lazyAWS struct {
	region string
	once   sync.Once
	cfg    aws.Config
	err    error
}

func (l *lazyAWS) config(ctx context.Context) (aws.Config, error) {
	l.once.Do(func() {
		l.cfg, l.err = LoadAWSConfig(ctx, l.region)
	})
	return l.cfg, l.err
}
