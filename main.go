package main

import (
	"os"

	"github.com/gridpilot/bessim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
