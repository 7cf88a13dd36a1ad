package main

import (
	"os"

	"github.com/raulserranomena/QuakeReport/cmd/quakereport/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
