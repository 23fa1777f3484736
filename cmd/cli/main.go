package main

import (
	"os"

	"github.com/hrdesk-dev/hrdesk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
