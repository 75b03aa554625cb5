package main

import (
	"fmt"
	"os"

	"tongits/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	// A .env next to the binary may carry tongits_* overrides.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
