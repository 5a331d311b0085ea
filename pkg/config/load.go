package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/raywall/legifrance-toolkit/envloader"
	"gopkg.in/yaml.v3"
)

// Default devolve a configuração com os valores que não podem ser
// expressos por envDefault (booleanos verdadeiros por padrão).
func Default() *Config {
	return &Config{
		Logging: LoggingConf{Enabled: true},
	}
}

// Load monta a configuração a partir do arquivo YAML (opcional, path vazio
// ignora) e das variáveis de ambiente, e valida o resultado.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler arquivo de configuração %s: %w", path, err)
		}
		if err := Decode(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := envloader.Load(cfg); err != nil {
		return nil, fmt.Errorf("falha ao carregar variáveis de ambiente: %w", err)
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Decode interpreta um documento YAML sobre cfg, mantendo os campos
// ausentes no documento. Campos desconhecidos são rejeitados.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("falha ao interpretar YAML: %w", err)
	}
	return nil
}
