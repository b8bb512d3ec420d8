package main

import (
	"os"

	"github.com/sagarbarkade/INNControl-MA/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
