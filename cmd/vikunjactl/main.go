package main

import (
	"os"

	"github.com/mekberg/vikunjactl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
