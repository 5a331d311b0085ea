package injector

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
)

// Regex para capturar padrões ${tipo.chave}
// Ex: ${env.LEGIFRANCE_CLIENT_ID}, ${ssm./legifrance/client-id}, ${secret.legifrance}
var pattern = regexp.MustCompile(`\$\{([a-z]+)\.([^}]+)\}`)

// Resolver busca o valor de uma chave em uma origem externa.
type Resolver func(ctx context.Context, key string) (string, error)

type Injector struct {
	resolvers map[string]Resolver
}

// Option customiza o Injector.
type Option func(*Injector)

// WithResolver registra (ou substitui) a origem identificada por prefix.
func WithResolver(prefix string, r Resolver) Option {
	return func(i *Injector) {
		i.resolvers[prefix] = r
	}
}

// New cria um Injector que já resolve ${env.X}.
func New(opts ...Option) *Injector {
	i := &Injector{
		resolvers: map[string]Resolver{
			"env": func(_ context.Context, key string) (string, error) {
				return os.Getenv(key), nil
			},
		},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inject percorre target substituindo os placeholders de todas as strings.
func (i *Injector) Inject(ctx context.Context, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target deve ser um ponteiro para struct não nulo")
	}
	return i.injectRecursive(ctx, v.Elem())
}

func (i *Injector) injectRecursive(ctx context.Context, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Struct:
		for k := 0; k < v.NumField(); k++ {
			value := v.Field(k)
			if !value.CanSet() {
				continue
			}
			if err := i.injectRecursive(ctx, value); err != nil {
				return err
			}
		}

	case reflect.String:
		if !v.CanSet() {
			return nil
		}
		newValue, err := i.interpolateString(ctx, v.String())
		if err != nil {
			return err
		}
		v.SetString(newValue)

	case reflect.Ptr:
		if !v.IsNil() {
			return i.injectRecursive(ctx, v.Elem())
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			if err := i.injectRecursive(ctx, v.Index(j)); err != nil {
				return err
			}
		}

	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String && !v.IsNil() {
			return i.injectMap(ctx, v)
		}
	}
	return nil
}

// interpolateString realiza a substituição baseada em Regex
func (i *Injector) interpolateString(ctx context.Context, input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var err error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		if err != nil {
			return match
		}
		parts := pattern.FindStringSubmatch(match)
		resolver, ok := i.resolvers[parts[1]]
		if !ok {
			err = fmt.Errorf("origem de configuração desconhecida '%s' em %s", parts[1], match)
			return match
		}

		val, resolveErr := resolver(ctx, parts[2])
		if resolveErr != nil {
			err = fmt.Errorf("falha ao resolver %s: %w", match, resolveErr)
			return match
		}
		return val
	})

	return result, err
}

// injectMap lida com mapas dinâmicos
func (i *Injector) injectMap(ctx context.Context, v reflect.Value) error {
	iter := v.MapRange()
	updates := make(map[string]reflect.Value)

	for iter.Next() {
		elem := iter.Value()
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		if !elem.IsValid() {
			continue
		}

		switch elem.Kind() {
		case reflect.String:
			newVal, err := i.interpolateString(ctx, elem.String())
			if err != nil {
				return err
			}
			updates[iter.Key().String()] = reflect.ValueOf(newVal)
		case reflect.Map:
			if err := i.injectMap(ctx, elem); err != nil {
				return err
			}
		}
	}

	for k, val := range updates {
		v.SetMapIndex(reflect.ValueOf(k), val.Convert(v.Type().Elem()))
	}
	return nil
}
