package main

import (
	"os"

	"calc/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
