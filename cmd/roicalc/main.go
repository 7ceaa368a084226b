// Package main is the entry point for the roicalc CLI.
package main

import (
	"os"

	"github.com/sentratech/roi-engine/cmd/roicalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
