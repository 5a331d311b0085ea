package main

import (
	"flag"

	"github.com/raywall/legifrance-toolkit/pkg/config"
	"github.com/raywall/legifrance-toolkit/pkg/logger"
	"github.com/raywall/legifrance-toolkit/tools/emulator"
	emuconfig "github.com/raywall/legifrance-toolkit/tools/emulator/config"
	"golang.org/x/sync/errgroup"
)

// Injetável para testes
var serverStarter = func(s *emulator.Server) error {
	return s.Start()
}

func main() {
	path := flag.String("config", "cmd/emulator/config.json", "arquivo JSON com os servidores emulados")
	flag.Parse()

	if err := run(*path); err != nil {
		log := logger.Configure(config.LoggingConf{Enabled: true, Level: "info", Format: "console"}, "emulator")
		log.Fatal().Err(err).Msg("emulador encerrado")
	}
}

// run sobe um servidor por entrada do arquivo e espera todos terminarem.
func run(configPath string) error {
	var cfg emuconfig.Config
	if err := cfg.LoadFromFile(configPath); err != nil {
		return err
	}

	log := logger.Configure(config.LoggingConf{Enabled: true, Level: "debug", Format: "console"}, "emulator")

	var g errgroup.Group
	for _, server := range cfg {
		srv := emulator.New(server, emulator.WithLogger(log))
		g.Go(func() error { return serverStarter(srv) })
	}
	return g.Wait()
}
