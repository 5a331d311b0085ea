package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/raywall/legifrance-toolkit/pkg/config"
	"github.com/rs/zerolog"
)

// Output é o destino dos logs. Stderr mantém o stdout livre para o JSON
// impresso pela CLI.
var Output io.Writer = os.Stderr

// Configure inicializa o logger baseando-se na configuração carregada.
// component identifica a origem dos eventos (ex: "client", "cli").
func Configure(cfg config.LoggingConf, component string) zerolog.Logger {
	// Define o nível de log (default: info)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// JSON para produção, Console "bonito" para uso local
	output := Output
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: Output, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(output).With().Timestamp()
	if component != "" {
		ctx = ctx.Str("component", component)
	}

	return ctx.Logger()
}
