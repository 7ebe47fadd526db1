package main

import (
	"os"

	"github.com/haldor-security/log4scan/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
