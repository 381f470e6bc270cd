// ABOUTME: Journal CLI - Entry point for the subject-organized journal
// ABOUTME: Initializes CLI and routes commands
package main

import (
	"fmt"
	"os"

	"github.com/harper/journal/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
