// Package main is the entry point for metro-pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/metroretail/metro-pipeline/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
