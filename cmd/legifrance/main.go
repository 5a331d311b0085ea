package main

import (
	"bufio"
	"os"

	"github.com/mitchellh/cli"
)

// Version é sobrescrita no build (-ldflags "-X main.Version=...").
var Version = "dev"

func main() {
	os.Exit(Main(os.Args, &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}))
}

// Main executa a CLI com os argumentos informados e devolve o exit code.
func Main(args []string, ui cli.Ui) int {
	name := "legifrance"
	if len(args) > 0 {
		name = args[0]
		args = args[1:]
	}

	c := &cli.CLI{
		Name:     name,
		Args:     args,
		Version:  Version,
		Commands: commands(&base{ui: ui, connect: connect}),
	}

	code, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	return code
}
