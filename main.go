package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"gitlab.com/elemk/clicmds"
)

func main() {
	app := cli.NewApp()
	app.Name = "elemk"
	app.Version = "0.1"
	app.Usage = "Query pages through typed components"
	app.Commands = clicmds.Commands()
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
