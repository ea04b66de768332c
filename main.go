package main

import (
	"os"

	"github.com/gitmesh/docs-hub/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
