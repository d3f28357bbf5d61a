package main

import (
	"os"

	"github.com/halcyonet/panelsdk/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
