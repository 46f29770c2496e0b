package main

import (
	"os"

	"tax-engine/internal/cli"
	"tax-engine/internal/config"
)

func main() {
	cfg := config.Load()
	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
