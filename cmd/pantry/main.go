package main

import (
	"os"

	"github.com/pantry-it/backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
