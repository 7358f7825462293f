package main

import (
	"os"

	"pptfonts/internal/cli"
)

// version is set via ldflags at release time.
var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
