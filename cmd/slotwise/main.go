package main

import (
	"os"

	"github.com/danieljhkim/slotwise/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute())
}
