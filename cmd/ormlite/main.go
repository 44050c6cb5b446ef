// Package main is the entry point for the ormlite CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/satishbabariya/ormlite-go/cmd/ormlite/commands"
	"github.com/satishbabariya/ormlite-go/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := commands.NewRootCommand(commands.NewApp(config.AppFs))
	return rootCmd.ExecuteContext(ctx)
}
