// Package cache guarda corpos de respostas da API de consulta, que mudam
// pouco e são caros de buscar. Tokens nunca passam por aqui.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/raywall/legifrance-toolkit/pkg/config"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix é o prefixo de todas as chaves gravadas.
const KeyPrefix = "legifrance:"

// Cache é o contrato mínimo usado pelo cliente.
type Cache interface {
	// Get devolve o valor e se ele foi encontrado.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Key deriva a chave de uma chamada a partir da rota e do corpo JSON.
func Key(route string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(route))
	h.Write([]byte{0})
	h.Write(body)
	return KeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// NewFromConfig cria o cache configurado. Backend "none" devolve nil.
func NewFromConfig(conf config.CacheConf) (Cache, error) {
	switch conf.Backend {
	case "", "none":
		return nil, nil
	case "memory":
		return NewMemory(), nil
	case "redis":
		opts, err := redis.ParseURL(conf.RedisURL)
		if err != nil {
			// Aceita também o formato host:porta
			opts = &redis.Options{Addr: conf.RedisURL}
		}
		return NewRedis(redis.NewClient(opts)), nil
	default:
		return nil, fmt.Errorf("cache: backend desconhecido '%s'", conf.Backend)
	}
}
