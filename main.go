package main

import (
	"os"

	"github.com/smarthire/smarthire-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
