package main

import (
	"os"

	"github.com/vimo-ai/eterm/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Run(os.Args, version))
}
