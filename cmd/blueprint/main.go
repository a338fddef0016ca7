package main

import (
	"os"

	"github.com/aviniti/blueprint/internal/interface/cli"
)

func main() {
	os.Exit(cli.Execute())
}
