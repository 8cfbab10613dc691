package main

import (
	"os"

	"github.com/learnhub-dev/learnhub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
