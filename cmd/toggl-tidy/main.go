// Package main is the entry point for the toggl-tidy CLI.
package main

import (
	"os"

	"toggl-tidy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
