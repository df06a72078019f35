// Package main provides the dataclean command-line tool.
package main

import (
	"os"

	"dataclean/cmd/dataclean/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
