package main

import (
	"log"
	"os"

	"github.com/gemsec/gem-audit/pkg"
)

var version = "0.1.0"

func main() {
	app := pkg.NewApp(version)
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%+v", err)
	}
}
