package main

import (
	"os"

	"github.com/mwantia/console/cmd/console/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
